package synth

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/groomroom/groomroom/internal/domain"
	"github.com/groomroom/groomroom/internal/domain/criteria"
)

var (
	threshold  = regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:ms|milliseconds?|s|secs?|seconds?|minutes?|mins?)\b`)
	onEventArg = regexp.MustCompile(`(?i)\bon\s+(?:the\s+)?(click|tap|submit|submission|load|hover|focus|blur|change|select|selection|save|scroll|press|open|close|login|checkout|page\s+load)\b`)
	leadModal  = regexp.MustCompile(`(?i)^(?:it\s+)?(?:should|must|shall|will|needs\s+to)\s+`)
	spaces     = regexp.MustCompile(`\s+`)
)

var eventVerbs = map[string]string{
	"click": "clicks it", "tap": "taps it", "submit": "submits the form", "submission": "submits the form",
	"hover": "hovers over it", "focus": "moves focus to it", "blur": "moves focus away", "change": "changes the value",
	"select": "makes a selection", "selection": "makes a selection", "save": "saves", "scroll": "scrolls",
	"press": "presses it", "open": "opens it", "close": "closes it", "login": "logs in", "checkout": "checks out",
}

// rewriter produces concrete criteria for one ticket.
type rewriter struct {
	vocab   domain.Vocabulary
	vague   []domain.VaguePhrase
	terms   []string
	persona string
	links   []domain.DesignLink
	ui      bool
}

func newRewriter(vocab domain.Vocabulary, terms []string, persona string, links []domain.DesignLink, ui bool) *rewriter {
	return &rewriter{
		vocab:   vocab,
		vague:   vocab.SortedVaguePhrases(),
		terms:   terms,
		persona: persona,
		links:   links,
		ui:      ui,
	}
}

// Rewrite returns a version of c with an explicit trigger, an expected
// outcome and a pass/fail condition and no vague phrase. Vague phrases are
// replaced by a measurable statement about the criterion's subject.
func (r *rewriter) Rewrite(c domain.AcceptanceCriterion) string {
	residual, kinds := r.stripVague(c.Text)
	subject := r.subject(residual, c.Text)

	var body string
	if len(kinds) == 0 && c.HasTrigger && c.HasExpectedOutcome && !c.TriggerImplicit {
		body = strings.TrimRight(strings.TrimSpace(c.Text), ".;")
	} else {
		trigger, outcome := r.clauses(residual, subject)
		if len(kinds) > 0 {
			outcome = r.concreteOutcome(kinds[0], outcome, subject)
		}
		if outcome == "" {
			outcome = fmt.Sprintf("the %s displays the updated state", subject)
		}
		body = fmt.Sprintf("When %s, then %s", trigger, outcome)
	}

	body += r.timing(c.Text, kinds, body)
	body += r.designRef(c.Text, kinds, body)
	body += r.passFail(c.Text, body)
	rewrite := upperFirst(body) + "."

	if !r.clean(rewrite) {
		return r.fallback(subject)
	}
	return rewrite
}

func (r *rewriter) stripVague(text string) (string, []domain.VagueKind) {
	var kinds []domain.VagueKind
	residual := text
	for {
		vp, ok := criteria.MatchVague(residual, r.vague)
		if !ok {
			break
		}
		kinds = append(kinds, vp.Kind)
		start, end := domain.PhraseSpan(residual, vp.Phrase)
		if start < 0 {
			break
		}
		residual = residual[:start] + " " + residual[end:]
	}
	residual = spaces.ReplaceAllString(residual, " ")
	residual = leadModal.ReplaceAllString(strings.TrimSpace(residual), "")
	return tidy(residual), kinds
}

// subject picks the first domain term of the criterion, then of the ticket.
func (r *rewriter) subject(residual, original string) string {
	for _, s := range []string{residual, original} {
		if ts := DomainTerms(s, r.vocab); len(ts) > 0 {
			return ts[0]
		}
	}
	if len(r.terms) > 0 {
		return r.terms[0]
	}
	return "feature"
}

// clauses splits a criterion into its trigger and its outcome, inventing a
// trigger from the subject when the criterion has none.
func (r *rewriter) clauses(text, subject string) (string, string) {
	if text == "" {
		return r.defaultTrigger(subject), ""
	}

	if idx, end := r.firstTrigger(text); idx >= 0 {
		before := tidy(text[:idx])
		after := text[end:]
		if t, tEnd := domain.PhraseSpan(after, "then"); t >= 0 {
			return tidy(after[:t]), joinOutcome(tidy(after[tEnd:]), before)
		}
		if comma := strings.Index(after, ","); comma >= 0 {
			return tidy(after[:comma]), joinOutcome(tidy(after[comma+1:]), before)
		}
		if before != "" {
			return tidy(after), lowerFirst(before)
		}
		return tidy(after), ""
	}

	if m := onEventArg.FindStringSubmatchIndex(text); m != nil {
		event := strings.ToLower(spaces.ReplaceAllString(text[m[2]:m[3]], " "))
		outcome := tidy(text[:m[0]] + " " + text[m[1]:])
		if event == "load" || event == "page load" {
			return "the page loads", lowerFirst(outcome)
		}
		return fmt.Sprintf("the %s %s", r.persona, eventVerbs[event]), lowerFirst(outcome)
	}

	words := domain.Words(text)
	if len(words) > 0 {
		third, ok := r.vocab.VerbForms[words[0]]
		if at, end := domain.PhraseSpan(text, words[0]); ok && at >= 0 {
			rest := strings.TrimSpace(text[end:])
			trigger, outcome := rest, ""
			if idx := r.firstOutcome(rest); idx > 0 {
				trigger, outcome = rest[:idx], rest[idx:]
			}
			trigger = fmt.Sprintf("the %s %s %s", r.persona, third, tidy(trigger))
			if outcome != "" {
				outcome = fmt.Sprintf("the %s %s", r.surface(), tidy(outcome))
			}
			return strings.TrimSpace(trigger), outcome
		}
	}

	return r.defaultTrigger(subject), lowerFirst(text)
}

func (r *rewriter) defaultTrigger(subject string) string {
	if r.ui {
		return fmt.Sprintf("the %s opens the %s", r.persona, subject)
	}
	return fmt.Sprintf("the %s uses the %s", r.persona, subject)
}

func (r *rewriter) surface() string {
	if r.ui {
		return "page"
	}
	return "system"
}

// firstTrigger returns the byte range of the earliest trigger marker.
func (r *rewriter) firstTrigger(text string) (int, int) {
	best, bestEnd := -1, -1
	for _, m := range r.vocab.TriggerMarkers {
		if i, end := domain.PhraseSpan(text, m); i >= 0 && (best < 0 || i < best) {
			best, bestEnd = i, end
		}
	}
	return best, bestEnd
}

func (r *rewriter) firstOutcome(text string) int {
	best := -1
	for _, m := range r.vocab.OutcomeMarkers {
		if i := domain.PhraseIndex(text, m); i >= 0 && (best < 0 || i < best) {
			best = i
		}
	}
	return best
}

// concreteOutcome replaces what a vague phrase left behind with a
// measurable statement about the subject.
func (r *rewriter) concreteOutcome(kind domain.VagueKind, outcome, subject string) string {
	keep := outcome != "" && domain.ContainsAny(outcome, r.vocab.OutcomeMarkers)
	switch kind {
	case domain.VagueMatchesDesign:
		return fmt.Sprintf("the %s renders with the spacing, typography, colours and states specified in %s, with no deviation larger than 2px",
			subject, r.designSource())
	case domain.VagueUserFriendly:
		s := fmt.Sprintf("the %s can be completed in 3 steps or fewer with a visible label on every control", subject)
		if keep {
			return outcome + ", and " + s
		}
		return s
	case domain.VagueFast:
		if keep {
			return outcome
		}
		return fmt.Sprintf("the %s displays its result", subject)
	default:
		if keep {
			return outcome
		}
		return fmt.Sprintf("the %s completes and displays the resulting %s state", subject, subject)
	}
}

func (r *rewriter) designSource() string {
	if l, ok := r.primaryLink(); ok {
		return fmt.Sprintf("the linked design (%s)", l.URL)
	}
	return "the approved design file"
}

func (r *rewriter) primaryLink() (domain.DesignLink, bool) {
	for _, l := range r.links {
		if l.Confidence == domain.ConfidenceStrong {
			return l, true
		}
	}
	if len(r.links) > 0 {
		return r.links[0], true
	}
	return domain.DesignLink{}, false
}

func (r *rewriter) timing(original string, kinds []domain.VagueKind, body string) string {
	if threshold.MatchString(body) {
		return ""
	}
	perf := domain.ContainsAny(original, r.vocab.PerformanceMarkers)
	for _, k := range kinds {
		if k == domain.VagueFast {
			perf = true
		}
	}
	if !perf {
		return ""
	}
	if domain.ContainsAny(original, r.vocab.ImmediateMarkers) {
		return " within 1 second"
	}
	return " within 2 seconds"
}

func (r *rewriter) designRef(original string, kinds []domain.VagueKind, body string) string {
	l, ok := r.primaryLink()
	if !ok || strings.Contains(body, l.URL) {
		return ""
	}
	relevant := domain.ContainsAny(original, r.vocab.UIMarkers) || domain.ContainsAny(original, r.vocab.DesignWords)
	for _, k := range kinds {
		if k == domain.VagueMatchesDesign {
			relevant = true
		}
	}
	if !relevant {
		return ""
	}
	return fmt.Sprintf(" (reference: %s)", l.URL)
}

func (r *rewriter) passFail(original, body string) string {
	if domain.ContainsAny(body, r.vocab.PassFailMarkers) {
		return ""
	}
	if strings.Contains(body, "no deviation larger than") {
		return ", and any larger deviation fails visual review"
	}
	if domain.ContainsAny(original, r.vocab.ValidationMarkers) {
		return "; invalid input is rejected with an inline error message"
	}
	return "; on success the change is confirmed, and on failure an error message is shown"
}

func (r *rewriter) clean(s string) bool {
	c := criteria.Evaluate(0, s, r.vocab, r.vague)
	return c.Vague == "" && c.HasTrigger && c.HasExpectedOutcome && c.HasPassFailClarity
}

func (r *rewriter) fallback(subject string) string {
	return fmt.Sprintf("When the %s uses the %s, then the %s displays the updated state within 2 seconds and a success confirmation is shown; otherwise an error message is displayed.",
		r.persona, subject, subject)
}

func joinOutcome(outcome, before string) string {
	switch {
	case outcome == "":
		return lowerFirst(before)
	case before == "":
		return outcome
	default:
		return lowerFirst(before) + " and " + outcome
	}
}
