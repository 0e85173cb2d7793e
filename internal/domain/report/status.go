// Package report assembles the final GroomReport and renders it as Markdown.
package report

import "github.com/groomroom/groomroom/internal/domain"

// DetermineStatus applies the readiness rules in order. No numeric blending:
// coverage never decides the status on its own.
//
// NotReady when any hard gate fails:
//   - Story or Feature card without a User Story
//   - Acceptance Criteria required but missing
//   - Task card without an Outcome Definition
//   - Test Scenarios missing and no acceptance criterion to derive them from
//   - no checklist for the card type
//
// NeedsRefinement when any soft gate fails:
//   - Implementation Details or Architectural Solution missing
//   - Test Scenarios missing (criteria exist to derive them from)
//   - UI-relevant ticket whose checklist wants ADA Criteria and has none
//   - contradicting acceptance criteria
//
// Missing Test Scenarios is a hard gate only when there is nothing to
// derive them from. Once acceptance criteria exist the scenarios can be
// written from them during grooming, so a story with criteria but no
// scenarios is NeedsRefinement rather than NotReady.
func DetermineStatus(ct domain.CardType, dor domain.DoRResult, criteriaCount int, uiRelevant bool) domain.Status {
	if len(dor.Required) == 0 || dor.Inconsistent {
		return domain.StatusNotReady
	}
	missing := dor.IsMissing

	switch {
	case ct.IsStoryLike() && missing(domain.FieldUserStory),
		missing(domain.FieldAcceptanceCriteria),
		ct == domain.CardTask && missing(domain.FieldOutcomeDefinition),
		missing(domain.FieldTestScenarios) && criteriaCount == 0:
		return domain.StatusNotReady
	}

	switch {
	case missing(domain.FieldImplementationDetails),
		missing(domain.FieldArchitecturalSolution),
		missing(domain.FieldTestScenarios),
		uiRelevant && missing(domain.FieldAdaCriteria),
		len(dor.Conflicts) > 0:
		return domain.StatusNeedsRefinement
	}
	return domain.StatusReady
}
