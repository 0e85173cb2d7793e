package synth

import (
	"fmt"
	"strings"
)

// generateCriteria writes criteria from scratch for tickets whose
// acceptance criteria are absent or unusable. Every line names the
// ticket's own terms and carries a trigger, an outcome and a pass/fail
// condition. It returns 5 lines, 6 for UI tickets and 7 when a design
// link is known.
func (r *rewriter) generateCriteria(goal string) []string {
	t1, t2 := "change", "change"
	switch {
	case len(r.terms) > 1:
		t1, t2 = r.terms[0], r.terms[1]
	case len(r.terms) == 1:
		t1, t2 = r.terms[0], r.terms[0]
	}
	goal, _ = r.stripVague(goal)
	action := actionPhrase(goal, t1)

	out := []string{
		fmt.Sprintf("When the %s %s, then the %s view updates within 2 seconds and a success state is shown.", r.persona, action, t1),
		fmt.Sprintf("When the %s provides invalid or incomplete %s input, then the change is rejected and an inline error message names the invalid value.", r.persona, t1),
		fmt.Sprintf("When the %s service is unavailable, then an error message displays and the %s's %s input is kept for a retry.", t2, r.persona, t1),
		fmt.Sprintf("When the %s returns to the %s after a successful change, then the saved %s values are displayed unchanged.", r.persona, t1, t2),
		fmt.Sprintf("When there is no %s to show, then an empty state displays with a next action and no error is raised.", t1),
	}
	if r.ui {
		out = append(out, fmt.Sprintf("When the %s uses only the keyboard, then every %s control receives visible focus and can be operated successfully.", r.persona, t1))
	}
	if l, ok := r.primaryLink(); ok {
		out = append(out, fmt.Sprintf("When the %s screen renders, then spacing, typography and colours follow the linked design (%s) within 2px, and any larger deviation fails visual review.", t1, l.URL))
	}
	return out
}

// actionPhrase turns a story goal into a third-person clause:
// "to filter products by size" becomes "filters products by size".
func actionPhrase(goal, term string) string {
	g := strings.TrimSpace(goal)
	if strings.HasPrefix(strings.ToLower(g), "to ") {
		rest := strings.TrimSpace(g[3:])
		if i := strings.IndexByte(rest, ' '); i > 0 {
			return thirdPerson(rest[:i]) + rest[i:]
		}
		if rest != "" {
			return thirdPerson(rest)
		}
	}
	if g != "" {
		return "uses " + g
	}
	return "works with the " + term
}

func thirdPerson(verb string) string {
	lower := strings.ToLower(verb)
	switch lower {
	case "be":
		return "is"
	case "have":
		return "has"
	case "do":
		return "does"
	case "go":
		return "goes"
	}
	switch {
	case strings.HasSuffix(lower, "s"), strings.HasSuffix(lower, "sh"), strings.HasSuffix(lower, "ch"),
		strings.HasSuffix(lower, "x"), strings.HasSuffix(lower, "z"):
		return verb + "es"
	case strings.HasSuffix(lower, "y") && len(lower) > 1 && !strings.ContainsRune("aeiou", rune(lower[len(lower)-2])):
		return verb[:len(verb)-1] + "ies"
	}
	return verb + "s"
}
