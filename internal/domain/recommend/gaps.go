// Package recommend turns Definition-of-Ready and criteria findings into
// concrete gaps and role-tagged action items.
package recommend

import (
	"fmt"
	"strings"

	"github.com/groomroom/groomroom/internal/domain"
	"github.com/groomroom/groomroom/internal/domain/criteria"
)

// Input is what the engine reads.
type Input struct {
	CardType domain.CardType
	DoR      domain.DoRResult
	Criteria []domain.AcceptanceCriterion
	Fields   domain.ExtractedFields
}

// Gaps lists every concrete shortcoming in priority order: missing fields,
// conflicts, weak criteria, weak fields, then scenario categories the
// ticket's own test scenarios do not cover.
func Gaps(in Input, vocab domain.Vocabulary) []domain.Gap {
	var gaps []domain.Gap

	for _, key := range in.DoR.Missing {
		detail := "not provided"
		if in.Fields.Status(key) == domain.FieldPlaceholder {
			detail = fmt.Sprintf("placeholder only (%q)", in.Fields.Get(key).Content)
		}
		gaps = append(gaps, domain.Gap{Kind: domain.GapMissingField, Field: key, Name: key.Label(), Detail: detail})
	}

	for _, c := range in.DoR.Conflicts {
		gaps = append(gaps, domain.Gap{
			Kind:   domain.GapConflict,
			Field:  domain.FieldAcceptanceCriteria,
			Name:   fmt.Sprintf("AC #%d vs AC #%d", c.A+1, c.B+1),
			Detail: c.Reason,
		})
	}

	for _, c := range in.Criteria {
		if !c.NeedsRewrite() {
			continue
		}
		idx := c.Index
		gaps = append(gaps, domain.Gap{
			Kind:      domain.GapWeakCriterion,
			Field:     domain.FieldAcceptanceCriteria,
			Criterion: &idx,
			Name:      fmt.Sprintf("AC #%d", c.Index+1),
			Detail:    criterionDetail(c),
		})
	}

	for _, w := range in.DoR.WeakAreas {
		if w.Field == domain.FieldAcceptanceCriteria && len(in.Criteria) > 0 {
			continue // already itemised per criterion
		}
		gaps = append(gaps, domain.Gap{Kind: domain.GapWeakField, Field: w.Field, Name: w.Field.Label(), Detail: w.Reason})
	}

	if in.Fields.IsPresent(domain.FieldTestScenarios) {
		for _, cat := range uncoveredCategories(in.Fields.Text(domain.FieldTestScenarios), vocab) {
			gaps = append(gaps, domain.Gap{
				Kind:   domain.GapMissingScenarios,
				Field:  domain.FieldTestScenarios,
				Name:   fmt.Sprintf("%s scenarios", cat),
				Detail: fmt.Sprintf("the listed test scenarios contain no %s case", strings.ToLower(string(cat))),
			})
		}
	}
	return gaps
}

func criterionDetail(c domain.AcceptanceCriterion) string {
	var parts []string
	if c.VaguePhrase != "" {
		parts = append(parts, fmt.Sprintf("vague phrase %q", c.VaguePhrase))
	}
	if missing := c.MissingElements(); len(missing) > 0 {
		parts = append(parts, "no "+joinOr(missing))
	}
	return strings.Join(parts, "; ")
}

// uncoveredCategories reports which of Positive, Negative and Error the
// ticket's own scenario list does not address.
func uncoveredCategories(text string, vocab domain.Vocabulary) []domain.ScenarioCategory {
	items := criteria.Split(text)
	var positive, negative, failure bool
	for _, item := range items {
		neg := domain.ContainsAny(item, vocab.ValidationMarkers) || domain.ContainsAny(item, []string{"negative", "unhappy", "edge case"})
		fail := domain.ContainsAny(item, vocab.FailureMarkers)
		negative = negative || neg
		failure = failure || fail
		positive = positive || (!neg && !fail)
	}
	var out []domain.ScenarioCategory
	if !positive {
		out = append(out, domain.ScenarioPositive)
	}
	if !negative {
		out = append(out, domain.ScenarioNegative)
	}
	if !failure {
		out = append(out, domain.ScenarioError)
	}
	return out
}

func joinOr(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " or " + items[len(items)-1]
	}
}
