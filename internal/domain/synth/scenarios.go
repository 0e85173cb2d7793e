package synth

import (
	"fmt"
	"strings"

	"github.com/groomroom/groomroom/internal/domain"
)

const accessibilityTag = "accessibility"

// scenarioSource is one statement scenarios are derived from. index is nil
// for generated criteria that are not part of the analysed list.
type scenarioSource struct {
	index *int
	text  string
	orig  string
}

// scenarios maps criteria onto Positive, Negative and Error scenarios.
// Every source yields a Positive scenario; validation language adds a
// Negative one and failure language an Error one. Each category is
// guaranteed at least one entry, and UI tickets always get keyboard and
// screen-reader scenarios.
func (r *rewriter) scenarios(sources []scenarioSource) domain.ScenarioSet {
	set := domain.ScenarioSet{}
	add := func(cat domain.ScenarioCategory, desc string, idx *int, tag string) {
		set[cat] = append(set[cat], domain.TestScenario{Category: cat, Description: desc, SourceAC: idx, Tag: tag})
	}

	for _, src := range sources {
		short := shorten(src.text, 12)
		subject := r.subject(src.orig, src.text)

		add(domain.ScenarioPositive, "Verify: "+strings.TrimRight(src.text, "."), src.index, "")

		if domain.ContainsAny(src.orig, r.vocab.ValidationMarkers) {
			add(domain.ScenarioNegative,
				fmt.Sprintf("Provide invalid or missing %s input for %q and verify it is rejected with an inline error message", subject, short),
				src.index, "")
		}
		if domain.ContainsAny(src.orig, r.vocab.FailureMarkers) {
			add(domain.ScenarioError,
				fmt.Sprintf("Simulate a %s service failure during %q and verify an error message displays and no partial change is saved", subject, short),
				src.index, "")
		}
	}

	first := func() *int {
		for _, src := range sources {
			if src.index != nil {
				return src.index
			}
		}
		return nil
	}()
	subject := "feature"
	if len(r.terms) > 0 {
		subject = r.terms[0]
	}

	if len(set[domain.ScenarioPositive]) == 0 {
		add(domain.ScenarioPositive,
			fmt.Sprintf("Complete the main %s flow as a %s and verify the result is saved and shown", subject, r.persona), first, "")
	}
	if len(set[domain.ScenarioNegative]) == 0 {
		add(domain.ScenarioNegative,
			fmt.Sprintf("Submit empty or out-of-range %s values and verify they are rejected with an error message and nothing is saved", subject), first, "")
	}
	if len(set[domain.ScenarioError]) == 0 {
		add(domain.ScenarioError,
			fmt.Sprintf("Make the %s service unavailable and verify an error message with a retry option is shown", subject), first, "")
	}

	if r.ui {
		add(domain.ScenarioPositive,
			fmt.Sprintf("Keyboard only: reach and operate every %s control with Tab, Enter and Space, with visible focus at each step", subject),
			nil, accessibilityTag)
		add(domain.ScenarioPositive,
			fmt.Sprintf("Screen reader: the %s state change is announced (for example through an aria-live region) and every control has an accessible name", subject),
			nil, accessibilityTag)
	}
	return set
}

func shorten(s string, words int) string {
	f := strings.Fields(strings.TrimRight(s, "."))
	if len(f) <= words {
		return strings.Join(f, " ")
	}
	return strings.Join(f[:words], " ") + "..."
}
