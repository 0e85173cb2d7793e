package synth

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/groomroom/groomroom/internal/domain"
)

var (
	personaClause = regexp.MustCompile(`(?i)\bas\s+(?:an?|the)\s+([a-z][\w\s'/-]{0,40}?)\s*(?:,|\bi\s+(?:want|need|would\s+like|wish)\b)`)
	goalClause    = regexp.MustCompile(`(?i)\bi\s+(?:want|need|would\s+like|wish)\s+(.+?)(?:,?\s*\b(?:so\s+that|in\s+order\s+to|so\s+i\s+can)\b|[.;\n]|$)`)
	benefitClause = regexp.MustCompile(`(?i)\b(so\s+that|in\s+order\s+to|so\s+i\s+can)\s+(.+?)(?:[.;\n]|$)`)
	sentenceEnd   = regexp.MustCompile(`[.!?\n]`)
)

// imperatives are verbs that open a goal-style title ("Add wishlist sharing").
var imperatives = []string{
	"add", "allow", "build", "create", "display", "enable", "filter", "improve", "introduce", "let", "provide",
	"show", "support", "sort", "search", "export", "import", "send", "track", "view", "edit", "manage", "save",
	"configure", "document", "migrate", "update", "remove", "replace", "hide", "redesign", "implement",
}

// Story holds the three parts of a user story.
type Story struct {
	Persona string
	Goal    string
	Benefit string
}

// String composes "As a {persona}, I want {goal}, so that {benefit}."
func (s Story) String() string {
	return fmt.Sprintf("As %s %s, I want %s, so that %s.", article(s.Persona), s.Persona, s.Goal, s.Benefit)
}

// Persona returns the "As a ..." persona of the ticket, or the first known
// persona word (singular or plural) in the text, or "user".
func Persona(text string, vocab domain.Vocabulary) string {
	if m := personaClause.FindStringSubmatch(text); m != nil {
		if p := strings.TrimSpace(m[1]); p != "" {
			return strings.ToLower(p)
		}
	}
	for _, p := range vocab.Personas {
		if domain.ContainsPhrase(text, p) || domain.ContainsPhrase(text, p+"s") {
			return p
		}
	}
	return "user"
}

// RewriteStory composes a user story from the ticket. The result must
// mention at least one domain term; when the first composition does not,
// the goal is re-seeded from the terms once before giving up.
func RewriteStory(t domain.Ticket, fields domain.ExtractedFields, terms []string, vocab domain.Vocabulary) (string, bool) {
	text := t.Text()
	src := fields.Text(domain.FieldUserStory)
	if src == "" {
		src = text
	}

	story := Story{
		Persona: Persona(src, vocab),
		Goal:    goalFrom(src, t, fields),
		Benefit: benefitFrom(src, text, fields, terms),
	}
	if story.Goal == "" {
		story.Goal = seedGoal(terms)
	}
	if story.Goal != "" && ContainsTerm(story.String(), terms) {
		return story.String(), true
	}

	story.Goal = seedGoal(terms)
	if story.Goal != "" && ContainsTerm(story.String(), terms) {
		return story.String(), true
	}
	return "", false
}

func goalFrom(src string, t domain.Ticket, fields domain.ExtractedFields) string {
	if m := goalClause.FindStringSubmatch(src); m != nil {
		if g := tidy(m[1]); g != "" {
			return g
		}
	}
	if g := goalFromHeadline(t.Title); g != "" {
		return g
	}
	return goalFromHeadline(firstSentence(fields.Get(domain.FieldDescription).Content))
}

func goalFromHeadline(s string) string {
	s = tidy(s)
	if s == "" {
		return ""
	}
	words := domain.Words(s)
	if len(words) == 0 {
		return ""
	}
	for _, v := range imperatives {
		if words[0] == v {
			return "to " + lowerFirst(s)
		}
	}
	return lowerFirst(s)
}

func benefitFrom(src, text string, fields domain.ExtractedFields, terms []string) string {
	for _, s := range []string{src, text} {
		if m := benefitClause.FindStringSubmatch(s); m != nil {
			b := tidy(m[2])
			if b == "" {
				continue
			}
			if strings.EqualFold(strings.Join(strings.Fields(m[1]), " "), "so that") {
				return b
			}
			return "I can " + b
		}
	}
	for _, key := range []domain.FieldKey{domain.FieldOutcomeDefinition, domain.FieldExpectedBehaviour} {
		if s := tidy(firstSentence(fields.Text(key))); s != "" {
			return lowerFirst(s)
		}
	}
	if len(terms) > 0 {
		return fmt.Sprintf("I can rely on %s without manual workarounds", terms[0])
	}
	return "I can finish my task without manual workarounds"
}

func seedGoal(terms []string) string {
	switch len(terms) {
	case 0:
		return ""
	case 1:
		return "to manage " + terms[0]
	default:
		return fmt.Sprintf("to manage %s and %s", terms[0], terms[1])
	}
}

func firstSentence(s string) string {
	s = strings.TrimSpace(s)
	if loc := sentenceEnd.FindStringIndex(s); loc != nil {
		return s[:loc[0]]
	}
	return s
}

// tidy trims whitespace, bullets and trailing punctuation.
func tidy(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.TrimLeft(s, "-*•> ")
	return strings.TrimRight(s, " .,;:!")
}

// lowerFirst lowercases the first letter unless the first word is an acronym.
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	if size < len(s) {
		next, _ := utf8.DecodeRuneInString(s[size:])
		if unicode.IsUpper(next) {
			return s
		}
	}
	return string(unicode.ToLower(r)) + s[size:]
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

func article(word string) string {
	if word == "" {
		return "a"
	}
	switch unicode.ToLower(rune(word[0])) {
	case 'a', 'e', 'i', 'o', 'u':
		return "an"
	}
	return "a"
}
