// Package scoring evaluates a ticket against its Definition-of-Ready
// checklist.
package scoring

import (
	"github.com/groomroom/groomroom/internal/domain"
	"github.com/groomroom/groomroom/internal/domain/classify"
	"github.com/groomroom/groomroom/internal/domain/criteria"
)

// ScoreReadiness evaluates the required fields for cardType.
//
//   - present:   required fields whose status is Present
//   - missing:   required fields that are Absent or PlaceholderOnly
//   - weak:      present fields whose content fails a specificity check
//   - conflicts: contradicting acceptance-criteria pairs
//
// An unknown card type has no checklist; the result is marked
// Inconsistent and its coverage is 0.
func ScoreReadiness(fields domain.ExtractedFields, cardType domain.CardType, cs []domain.AcceptanceCriterion, vocab domain.Vocabulary) domain.DoRResult {
	required := classify.RequiredFields(cardType)
	res := domain.DoRResult{
		Required: required,
		Present:  []domain.FieldKey{},
		Missing:  []domain.FieldKey{},
	}
	if len(required) == 0 {
		res.Inconsistent = true
		return res
	}

	for _, key := range required {
		if fields.IsPresent(key) {
			res.Present = append(res.Present, key)
		} else {
			res.Missing = append(res.Missing, key)
		}
	}

	for _, key := range res.Present {
		if reason, weak := weakReason(key, fields, cs, vocab); weak {
			res.WeakAreas = append(res.WeakAreas, domain.WeakArea{Field: key, Reason: reason})
		}
	}

	res.Conflicts = criteria.DetectConflicts(cs, vocab)
	return res
}
