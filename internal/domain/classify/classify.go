// Package classify decides a ticket's card type and the Definition-of-Ready
// fields that type requires.
package classify

import (
	"regexp"
	"strings"

	"github.com/groomroom/groomroom/internal/domain"
)

var (
	typeLine     = regexp.MustCompile(`(?im)^\W*(?:issue\s*type|ticket\s*type|card\s*type|type)\s*[:：]\s*(.+?)\s*$`)
	storyPattern = regexp.MustCompile(`(?is)\bas\s+an?\s+.+?\bi\s+(?:want|need|would\s+like|wish)\b`)
)

var requiredFields = map[domain.CardType][]domain.FieldKey{
	domain.CardStory: {
		domain.FieldUserStory, domain.FieldAcceptanceCriteria, domain.FieldTestScenarios,
		domain.FieldImplementationDetails, domain.FieldArchitecturalSolution, domain.FieldAdaCriteria,
		domain.FieldBrands, domain.FieldComponents, domain.FieldAgileTeam, domain.FieldStoryPoints,
	},
	domain.CardBug: {
		domain.FieldCurrentBehaviour, domain.FieldStepsToReproduce, domain.FieldExpectedBehaviour,
		domain.FieldEnvironment, domain.FieldAcceptanceCriteria, domain.FieldTestScenarios,
		domain.FieldLinksToStory, domain.FieldSeverityPriority, domain.FieldComponents,
		domain.FieldAgileTeam, domain.FieldStoryPoints,
	},
	domain.CardTask: {
		domain.FieldOutcomeDefinition, domain.FieldDependencies, domain.FieldTestScenarios,
		domain.FieldComponents, domain.FieldAgileTeam, domain.FieldStoryPoints,
	},
}

// RequiredFields returns the Definition-of-Ready checklist for a card type.
// Feature shares the Story list. Unknown types yield nil.
func RequiredFields(ct domain.CardType) []domain.FieldKey {
	if ct == domain.CardFeature {
		ct = domain.CardStory
	}
	src := requiredFields[ct]
	if src == nil {
		return nil
	}
	out := make([]domain.FieldKey, len(src))
	copy(out, src)
	return out
}

// Classify determines the card type. Explicit metadata wins when it maps
// to a known type; otherwise content heuristics apply in priority order
// Bug, Story, Task, and Feature is the fallback.
func Classify(t domain.Ticket, fields domain.ExtractedFields, vocab domain.Vocabulary) domain.CardType {
	if ct, ok := explicitType(t, vocab); ok {
		return ct
	}

	text := t.Text()
	if isBug(text, fields, vocab) {
		return domain.CardBug
	}
	if hasUserStory(text, fields) {
		return domain.CardStory
	}
	if isTask(t, fields, vocab) {
		return domain.CardTask
	}
	return domain.CardFeature
}

// explicitType reads the Ticket.Type metadata, then a "Type:" line in the body.
func explicitType(t domain.Ticket, vocab domain.Vocabulary) (domain.CardType, bool) {
	if ct, ok := lookupType(t.Type, vocab); ok {
		return ct, true
	}
	if m := typeLine.FindStringSubmatch(t.Body); m != nil {
		return lookupType(m[1], vocab)
	}
	return "", false
}

func lookupType(s string, vocab domain.Vocabulary) (domain.CardType, bool) {
	norm := domain.NormalizeLabel(strings.Trim(s, "*_`[]{}. "))
	if norm == "" {
		return "", false
	}
	ct, ok := vocab.TypeAliases[norm]
	return ct, ok
}

func isBug(text string, fields domain.ExtractedFields, vocab domain.Vocabulary) bool {
	if fields.Status(domain.FieldCurrentBehaviour) != domain.FieldAbsent ||
		fields.Status(domain.FieldStepsToReproduce) != domain.FieldAbsent {
		return true
	}
	return domain.ContainsAny(text, vocab.BugMarkers)
}

func hasUserStory(text string, fields domain.ExtractedFields) bool {
	if fields.IsPresent(domain.FieldUserStory) && storyPattern.MatchString(fields.Text(domain.FieldUserStory)) {
		return true
	}
	return storyPattern.MatchString(text)
}

// isTask looks for an imperative task verb opening the title or the
// leading description, or an explicit outcome definition.
func isTask(t domain.Ticket, fields domain.ExtractedFields, vocab domain.Vocabulary) bool {
	if fields.Status(domain.FieldOutcomeDefinition) != domain.FieldAbsent {
		return true
	}
	for _, candidate := range []string{t.Title, firstLine(fields.Get(domain.FieldDescription).Content)} {
		if startsWithVerb(candidate, vocab.TaskVerbs) {
			return true
		}
	}
	return false
}

func startsWithVerb(s string, verbs []string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimLeft(s, "-*•#> ")
	for _, v := range verbs {
		if domain.PhraseIndex(s, v) == 0 {
			return true
		}
	}
	return false
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
