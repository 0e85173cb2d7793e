package recommend

import (
	"fmt"

	"github.com/groomroom/groomroom/internal/domain"
)

// MaxPerRole caps recommendations per role.
const MaxPerRole = 3

var fieldRoles = map[domain.FieldKey]domain.Role{
	domain.FieldUserStory:             domain.RoleProductOwner,
	domain.FieldAcceptanceCriteria:    domain.RoleProductOwner,
	domain.FieldBrands:                domain.RoleProductOwner,
	domain.FieldOutcomeDefinition:     domain.RoleProductOwner,
	domain.FieldExpectedBehaviour:     domain.RoleProductOwner,
	domain.FieldSeverityPriority:      domain.RoleProductOwner,
	domain.FieldLinksToStory:          domain.RoleProductOwner,
	domain.FieldTestScenarios:         domain.RoleQA,
	domain.FieldStepsToReproduce:      domain.RoleQA,
	domain.FieldEnvironment:           domain.RoleQA,
	domain.FieldCurrentBehaviour:      domain.RoleQA,
	domain.FieldImplementationDetails: domain.RoleDevLead,
	domain.FieldArchitecturalSolution: domain.RoleDevLead,
	domain.FieldComponents:            domain.RoleDevLead,
	domain.FieldStoryPoints:           domain.RoleDevLead,
	domain.FieldDependencies:          domain.RoleDevLead,
	domain.FieldAdaCriteria:           domain.RoleDevLead,
	domain.FieldAgileTeam:             domain.RoleDevLead,
}

var missingAdvice = map[domain.FieldKey]string{
	domain.FieldUserStory:             `add a story in the form "As a <persona>, I want <goal>, so that <benefit>"`,
	domain.FieldAcceptanceCriteria:    "write criteria that each state a trigger, an expected outcome and a pass/fail condition",
	domain.FieldTestScenarios:         "list positive, negative and error-path scenarios",
	domain.FieldImplementationDetails: "describe the services, endpoints and data changes involved",
	domain.FieldArchitecturalSolution: "document the architectural approach and integration points",
	domain.FieldAdaCriteria:           "state keyboard, focus, ARIA and contrast expectations",
	domain.FieldBrands:                "list the brands or sites the change applies to",
	domain.FieldComponents:            "name the affected components",
	domain.FieldAgileTeam:             "assign the owning team",
	domain.FieldStoryPoints:           "agree an estimate in points",
	domain.FieldCurrentBehaviour:      "describe what happens today",
	domain.FieldStepsToReproduce:      "list numbered steps that reproduce the defect",
	domain.FieldExpectedBehaviour:     "state what should happen instead",
	domain.FieldEnvironment:           "record browser, device, OS and build",
	domain.FieldLinksToStory:          "link the story or feature the defect belongs to",
	domain.FieldSeverityPriority:      "set severity and priority",
	domain.FieldOutcomeDefinition:     "define the outcome that marks the task done",
	domain.FieldDependencies:          "list blockers and upstream work, or state that there are none",
}

// RoleFor returns the role that owns a gap.
func RoleFor(g domain.Gap) domain.Role {
	switch g.Kind {
	case domain.GapConflict, domain.GapWeakCriterion, domain.GapEmptyInput:
		return domain.RoleProductOwner
	case domain.GapMissingScenarios:
		return domain.RoleQA
	}
	if r, ok := fieldRoles[g.Field]; ok {
		return r
	}
	return domain.RoleProductOwner
}

// Recommend produces up to MaxPerRole items per role, each tied to a
// concrete gap. A role with no gaps of its own picks up gaps from the
// other roles it can act on; a role with nothing to act on is omitted.
func Recommend(gaps []domain.Gap) []domain.Recommendation {
	byRole := make(map[domain.Role][]domain.Gap)
	for _, g := range gaps {
		if !g.IsConcrete() {
			continue
		}
		r := RoleFor(g)
		byRole[r] = append(byRole[r], g)
	}

	var out []domain.Recommendation
	for _, role := range domain.Roles {
		own := byRole[role]
		if len(own) == 0 {
			own = borrowed(role, gaps)
		}
		for i, g := range own {
			if i == MaxPerRole {
				break
			}
			out = append(out, domain.Recommendation{Role: role, Text: text(role, g), Gap: g})
		}
	}
	return out
}

// borrowed picks gaps another role owns but this role can act on: QA pins
// down weak criteria and conflicts with tests, the dev lead resolves
// conflicts and sizes missing work.
func borrowed(role domain.Role, gaps []domain.Gap) []domain.Gap {
	var out []domain.Gap
	for _, g := range gaps {
		if !g.IsConcrete() {
			continue
		}
		switch role {
		case domain.RoleQA:
			if g.Kind == domain.GapWeakCriterion || g.Kind == domain.GapConflict {
				out = append(out, g)
			}
		case domain.RoleDevLead:
			if g.Kind == domain.GapConflict || (g.Kind == domain.GapMissingField && g.Field == domain.FieldAcceptanceCriteria) {
				out = append(out, g)
			}
		}
	}
	return out
}

func text(role domain.Role, g domain.Gap) string {
	owner := RoleFor(g)
	switch g.Kind {
	case domain.GapEmptyInput:
		return "Provide the ticket content: a user story or description, acceptance criteria and test scenarios."
	case domain.GapMissingField:
		if owner != role {
			return fmt.Sprintf("Review %s with the product owner once it exists; it is currently missing.", g.Name)
		}
		if advice, ok := missingAdvice[g.Field]; ok {
			return fmt.Sprintf("Missing %s: %s.", g.Name, advice)
		}
		return fmt.Sprintf("Missing %s: add it.", g.Name)
	case domain.GapWeakField:
		return fmt.Sprintf("Strengthen %s: %s.", g.Name, g.Detail)
	case domain.GapWeakCriterion:
		if role == domain.RoleQA {
			return fmt.Sprintf("Agree a verifiable pass/fail check for %s (%s) before writing tests.", g.Name, g.Detail)
		}
		return fmt.Sprintf("Rewrite %s: %s.", g.Name, g.Detail)
	case domain.GapConflict:
		switch role {
		case domain.RoleQA:
			return fmt.Sprintf("Hold test design for %s until the contradiction is settled: %s.", g.Name, g.Detail)
		case domain.RoleDevLead:
			return fmt.Sprintf("Confirm which behaviour is feasible for %s: %s.", g.Name, g.Detail)
		}
		return fmt.Sprintf("Resolve the conflict between %s: %s.", g.Name, g.Detail)
	case domain.GapMissingScenarios:
		return fmt.Sprintf("Add %s: %s.", g.Name, g.Detail)
	}
	return fmt.Sprintf("Address %s.", g.Name)
}
