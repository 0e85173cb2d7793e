// Package criteria splits acceptance-criteria text into individual
// criteria, checks each for trigger, outcome and pass/fail structure,
// flags vague boilerplate and finds contradicting pairs.
package criteria

import (
	"regexp"
	"strings"

	"github.com/groomroom/groomroom/internal/domain"
	"github.com/groomroom/groomroom/internal/domain/extract"
)

var (
	gherkinContinuation = regexp.MustCompile(`(?i)^(?:and|then|but)\b`)
	gherkinGiven        = regexp.MustCompile(`(?i)^given\b`)
	gherkinWhen         = regexp.MustCompile(`(?i)^when\b`)
	gherkinTitle        = regexp.MustCompile(`(?i)^(?:scenario(?:\s+outline)?|feature|background|examples)\s*:`)
	numberedOrBullet    = regexp.MustCompile(`^(?:[-*•+>]+|\d+[.)]|[a-z][.)])\s+`)
	onEvent             = regexp.MustCompile(`(?i)\bon\s+(?:the\s+)?(?:click|tap|submit|submission|load|hover|focus|blur|change|select|selection|save|scroll|press|open|close|login|checkout|page\s+load)\b`)
	qualifier           = regexp.MustCompile(`\d|["“”'‘’:]|\bas\s+\w+`)
)

// Analyze parses and evaluates acceptance criteria. Blank input yields nil.
func Analyze(text string, vocab domain.Vocabulary) []domain.AcceptanceCriterion {
	lines := Split(text)
	if len(lines) == 0 {
		return nil
	}
	vague := vocab.SortedVaguePhrases()
	out := make([]domain.AcceptanceCriterion, 0, len(lines))
	for i, line := range lines {
		out = append(out, Evaluate(i, line, vocab, vague))
	}
	return out
}

// Split cuts criteria text into one entry per bullet, numbered item or
// line. Gherkin continuation lines (And/Then/But, or When after a Given)
// that are not bulleted join the criterion before them.
func Split(text string) []string {
	var out []string
	for _, raw := range strings.Split(extract.Normalize(text), "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || gherkinTitle.MatchString(trimmed) {
			continue
		}
		bulleted := numberedOrBullet.MatchString(trimmed)
		line := extract.StripBullet(trimmed)
		if line == "" || isRule(line) {
			continue
		}
		if !bulleted && len(out) > 0 && continues(out[len(out)-1], line) {
			out[len(out)-1] += " " + line
			continue
		}
		out = append(out, line)
	}
	return out
}

func continues(prev, line string) bool {
	if gherkinContinuation.MatchString(line) {
		return true
	}
	return gherkinWhen.MatchString(line) && gherkinGiven.MatchString(prev) &&
		!strings.Contains(strings.ToLower(prev), " when ")
}

func isRule(s string) bool {
	return strings.Trim(s, "-=*_~ ") == ""
}

// Evaluate sets the structural flags and vague-phrase match for one
// criterion. vague must be sorted longest first.
func Evaluate(index int, text string, vocab domain.Vocabulary, vague []domain.VaguePhrase) domain.AcceptanceCriterion {
	c := domain.AcceptanceCriterion{Index: index, Text: text}

	explicit := domain.ContainsAny(text, vocab.TriggerMarkers)
	implicit := !explicit && hasImplicitTrigger(text, vocab)
	c.HasTrigger = explicit || implicit
	c.TriggerImplicit = implicit
	c.HasExpectedOutcome = domain.ContainsAny(text, vocab.OutcomeMarkers)
	c.HasPassFailClarity = domain.ContainsAny(text, vocab.PassFailMarkers)

	if vp, ok := MatchVague(text, vague); ok {
		c.Vague = vp.Kind
		c.VaguePhrase = vp.Phrase
	}
	return c
}

// MatchVague returns the first (longest) vague phrase in text. A bare
// "properly" or "correctly" followed by a concrete qualifier does not count.
func MatchVague(text string, sorted []domain.VaguePhrase) (domain.VaguePhrase, bool) {
	for _, vp := range sorted {
		idx, end := domain.PhraseSpan(text, vp.Phrase)
		if idx < 0 {
			continue
		}
		if (vp.Kind == domain.VagueProperly || vp.Kind == domain.VagueCorrectly) &&
			qualifier.MatchString(text[end:]) {
			continue
		}
		return vp, true
	}
	return domain.VaguePhrase{}, false
}

func hasImplicitTrigger(text string, vocab domain.Vocabulary) bool {
	if onEvent.MatchString(text) || domain.ContainsAny(text, vocab.ImplicitTriggers) {
		return true
	}
	words := domain.Words(text)
	if len(words) == 0 {
		return false
	}
	_, gerund := vocab.VerbForms[words[0]]
	return gerund
}
