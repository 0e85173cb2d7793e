package scoring

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/groomroom/groomroom/internal/domain"
	"github.com/groomroom/groomroom/internal/domain/criteria"
)

var (
	storyShape   = regexp.MustCompile(`(?is)\bas\s+an?\s+.+?\bi\s+(?:want|need|would\s+like|wish)\b`)
	benefitShape = regexp.MustCompile(`(?i)\b(?:so\s+that|in\s+order\s+to|so\s+i\s+can)\b`)
	hasDigit     = regexp.MustCompile(`\d`)
)

type weakCheck func(content string, fields domain.ExtractedFields, cs []domain.AcceptanceCriterion, vocab domain.Vocabulary) (string, bool)

var weakChecks = map[domain.FieldKey]weakCheck{
	domain.FieldUserStory:          weakUserStory,
	domain.FieldAcceptanceCriteria: weakCriteria,
	domain.FieldTestScenarios:      weakScenarios,
	domain.FieldAdaCriteria:        weakAda,
	domain.FieldBrands:             weakBrands,
	domain.FieldStoryPoints:        weakStoryPoints,
	domain.FieldStepsToReproduce:   weakSteps,
	domain.FieldExpectedBehaviour:  weakExpected,
}

func weakReason(key domain.FieldKey, fields domain.ExtractedFields, cs []domain.AcceptanceCriterion, vocab domain.Vocabulary) (string, bool) {
	check, ok := weakChecks[key]
	if !ok {
		return "", false
	}
	return check(fields.Text(key), fields, cs, vocab)
}

func weakUserStory(content string, _ domain.ExtractedFields, _ []domain.AcceptanceCriterion, _ domain.Vocabulary) (string, bool) {
	if !storyShape.MatchString(content) {
		return "not written as \"As a <persona>, I want <goal>\"", true
	}
	if !benefitShape.MatchString(content) {
		return "no \"so that\" benefit clause", true
	}
	return "", false
}

func weakCriteria(_ string, _ domain.ExtractedFields, cs []domain.AcceptanceCriterion, _ domain.Vocabulary) (string, bool) {
	if len(cs) == 0 {
		return "no individual criteria could be parsed", true
	}
	vague, incomplete := 0, 0
	for _, c := range cs {
		switch {
		case c.Vague != "":
			vague++
		case c.NeedsRewrite():
			incomplete++
		}
	}
	switch {
	case vague > 0 && incomplete > 0:
		return fmt.Sprintf("%d of %d criteria are vague and %d lack a trigger, outcome or pass/fail condition", vague, len(cs), incomplete), true
	case vague > 0:
		return fmt.Sprintf("%d of %d criteria use vague phrasing", vague, len(cs)), true
	case incomplete > 0:
		return fmt.Sprintf("%d of %d criteria lack a trigger, outcome or pass/fail condition", incomplete, len(cs)), true
	}
	return "", false
}

func weakScenarios(content string, _ domain.ExtractedFields, _ []domain.AcceptanceCriterion, vocab domain.Vocabulary) (string, bool) {
	items := criteria.Split(content)
	if len(items) < 2 {
		return "only one scenario listed", true
	}
	if !domain.ContainsAny(content, vocab.FailureMarkers) && !domain.ContainsAny(content, vocab.ValidationMarkers) &&
		!domain.ContainsAny(content, []string{"negative", "edge case", "unhappy"}) {
		return "no negative or error-path scenario", true
	}
	return "", false
}

func weakAda(content string, _ domain.ExtractedFields, _ []domain.AcceptanceCriterion, vocab domain.Vocabulary) (string, bool) {
	if !domain.ContainsAny(content, vocab.AdaMechanisms) {
		return "names no concrete mechanism (keyboard, focus, ARIA, contrast, screen reader)", true
	}
	return "", false
}

func weakBrands(content string, _ domain.ExtractedFields, _ []domain.AcceptanceCriterion, vocab domain.Vocabulary) (string, bool) {
	if len(vocab.Brands) == 0 {
		return "", false
	}
	if strings.EqualFold(strings.TrimSpace(content), "all") || domain.ContainsAny(content, []string{"all brands"}) {
		return "", false
	}
	if !domain.ContainsAny(content, vocab.Brands) {
		return "names no known brand", true
	}
	return "", false
}

func weakStoryPoints(content string, _ domain.ExtractedFields, _ []domain.AcceptanceCriterion, _ domain.Vocabulary) (string, bool) {
	if !hasDigit.MatchString(content) {
		return "not a numeric estimate", true
	}
	return "", false
}

func weakSteps(content string, _ domain.ExtractedFields, _ []domain.AcceptanceCriterion, _ domain.Vocabulary) (string, bool) {
	if len(criteria.Split(content)) < 2 {
		return "a single step cannot be replayed reliably", true
	}
	return "", false
}

func weakExpected(content string, fields domain.ExtractedFields, _ []domain.AcceptanceCriterion, _ domain.Vocabulary) (string, bool) {
	current := fields.Text(domain.FieldCurrentBehaviour)
	if current != "" && domain.NormalizeLabel(current) == domain.NormalizeLabel(content) {
		return "restates the current behaviour", true
	}
	return "", false
}
