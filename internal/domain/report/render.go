package report

import (
	"fmt"
	"strings"

	"github.com/groomroom/groomroom/internal/domain"
)

const (
	summaryGaps = 3
	insightGaps = 5
)

// conflictNote tells readers what conflict detection can and cannot see.
const conflictNote = "_Conflict detection is best-effort: it only catches opposed timing (immediate vs delayed) and opposed outcome wording for the same action._"

// RenderMarkdown renders the report for the given mode. Summary output
// reuses Actionable lines verbatim, so it never says anything the full
// rendering does not.
func RenderMarkdown(r *domain.GroomReport, mode domain.Mode) string {
	var b strings.Builder
	w := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	header(w, r)

	switch mode {
	case domain.ModeSummary:
		gapSection(w, r.Gaps, summaryGaps)
		recommendationSection(w, r, 1)
	case domain.ModeInsight:
		degradationSection(w, r)
		dorSection(w, r)
		gapSection(w, r.Gaps, insightGaps)
		insightCounts(w, r)
		conflictSection(w, r)
		enrichmentSection(w, r)
	default:
		degradationSection(w, r)
		dorSection(w, r)
		gapSection(w, r.Gaps, 0)
		storySection(w, r)
		criteriaSection(w, r)
		conflictSection(w, r)
		suggestedSection(w, r)
		scenarioSection(w, r)
		linkSection(w, r)
		recommendationSection(w, r, 0)
		enrichmentSection(w, r)
	}
	return b.String()
}

type writeFunc func(format string, args ...any)

func header(w writeFunc, r *domain.GroomReport) {
	title := "Untitled ticket"
	switch {
	case r.TicketID != "" && r.Title != "":
		title = r.TicketID + ": " + r.Title
	case r.Title != "":
		title = r.Title
	case r.TicketID != "":
		title = r.TicketID
	}
	w("# GroomRoom: %s", title)
	w("")
	w("**Status:** %s", r.Status.Label())
	w("**Card type:** %s", r.CardType)
	w("**Coverage:** %d%% (%d of %d required fields present)", r.Coverage(), len(r.DoR.Present), len(r.DoR.Present)+len(r.DoR.Missing))
}

func degradationSection(w writeFunc, r *domain.GroomReport) {
	if !r.IsDegraded() {
		return
	}
	w("")
	for _, d := range r.Degradations {
		w("> Degraded (%s): %s", d.Kind, d.Detail)
	}
}

func dorSection(w writeFunc, r *domain.GroomReport) {
	w("")
	w("## Definition of Ready")
	w("")
	w("- Present: %s", labels(r.DoR.Present))
	w("- Missing: %s", labels(r.DoR.Missing))
	for _, wa := range r.DoR.WeakAreas {
		w("- Weak: %s: %s", wa.Field.Label(), wa.Reason)
	}
}

func gapSection(w writeFunc, gaps []domain.Gap, limit int) {
	if len(gaps) == 0 {
		return
	}
	w("")
	w("## Gaps")
	w("")
	for i, g := range gaps {
		if limit > 0 && i == limit {
			break
		}
		w("%s", gapLine(g))
	}
}

func gapLine(g domain.Gap) string {
	if g.Detail == "" {
		return fmt.Sprintf("- **%s**", g.Name)
	}
	return fmt.Sprintf("- **%s**: %s", g.Name, g.Detail)
}

func storySection(w writeFunc, r *domain.GroomReport) {
	if r.StoryRewrite == "" {
		return
	}
	w("")
	w("## Suggested user story")
	w("")
	w("> %s", r.StoryRewrite)
}

func criteriaSection(w writeFunc, r *domain.GroomReport) {
	if len(r.Criteria) == 0 {
		return
	}
	w("")
	w("## Acceptance criteria")
	w("")
	for _, c := range r.Criteria {
		w("%d. %s", c.Index+1, c.Text)
		var flags []string
		if c.VaguePhrase != "" {
			flags = append(flags, fmt.Sprintf("vague phrase %q", c.VaguePhrase))
		}
		for _, m := range c.MissingElements() {
			flags = append(flags, "no "+m)
		}
		if len(flags) > 0 {
			w("   - Issues: %s", strings.Join(flags, "; "))
		}
		if c.Rewrite != "" {
			w("   - Rewrite: %s", c.Rewrite)
		}
	}
}

func conflictSection(w writeFunc, r *domain.GroomReport) {
	if len(r.DoR.Conflicts) == 0 {
		return
	}
	w("")
	w("## Conflicting criteria")
	w("")
	for _, c := range r.DoR.Conflicts {
		w("- AC #%d vs AC #%d: %s", c.A+1, c.B+1, c.Reason)
	}
	w("")
	w("%s", conflictNote)
}

func suggestedSection(w writeFunc, r *domain.GroomReport) {
	if len(r.SuggestedAC) == 0 {
		return
	}
	w("")
	w("## Suggested acceptance criteria")
	w("")
	for i, s := range r.SuggestedAC {
		w("%d. %s", i+1, s)
	}
}

func scenarioSection(w writeFunc, r *domain.GroomReport) {
	if r.Scenarios.Count() == 0 {
		return
	}
	w("")
	w("## Test scenarios")
	for _, cat := range domain.ScenarioCategories {
		list := r.Scenarios[cat]
		if len(list) == 0 {
			continue
		}
		w("")
		w("### %s", cat)
		w("")
		for _, s := range list {
			line := "- " + s.Description
			if s.SourceAC != nil {
				line += fmt.Sprintf(" (AC #%d)", *s.SourceAC+1)
			}
			w("%s", line)
		}
	}
}

func linkSection(w writeFunc, r *domain.GroomReport) {
	if len(r.DesignLinks) == 0 {
		return
	}
	w("")
	w("## Design links")
	w("")
	for _, l := range r.DesignLinks {
		w("- %s (%s, %s confidence)", l.URL, l.Section.Label(), l.Confidence)
	}
}

// recommendationSection renders up to perRole items per role; 0 means all.
func recommendationSection(w writeFunc, r *domain.GroomReport, perRole int) {
	if len(r.Recommendations) == 0 {
		return
	}
	w("")
	w("## Recommendations")
	for _, role := range domain.Roles {
		recs := r.RecommendationsFor(role)
		if len(recs) == 0 {
			continue
		}
		w("")
		w("### %s", role.Label())
		w("")
		for i, rec := range recs {
			if perRole > 0 && i == perRole {
				break
			}
			w("- %s", rec.Text)
		}
	}
}

func insightCounts(w writeFunc, r *domain.GroomReport) {
	weak := 0
	for _, c := range r.Criteria {
		if c.NeedsRewrite() {
			weak++
		}
	}
	w("")
	w("## At a glance")
	w("")
	w("- Acceptance criteria: %d parsed, %d need rewriting, %d suggested", len(r.Criteria), weak, len(r.SuggestedAC))
	w("- Test scenarios: %d positive, %d negative, %d error",
		len(r.Scenarios[domain.ScenarioPositive]), len(r.Scenarios[domain.ScenarioNegative]), len(r.Scenarios[domain.ScenarioError]))
	var roles []string
	for _, role := range domain.Roles {
		if n := len(r.RecommendationsFor(role)); n > 0 {
			roles = append(roles, fmt.Sprintf("%s %d", role.Label(), n))
		}
	}
	if len(roles) > 0 {
		w("- Recommendations: %s", strings.Join(roles, ", "))
	}
}

func enrichmentSection(w writeFunc, r *domain.GroomReport) {
	e := r.Enrichment
	if e == nil || e.Status != domain.EnrichmentApplied {
		return
	}
	w("")
	w("## AI suggestions")
	w("")
	if e.StoryRewrite != "" {
		w("- Story: %s", e.StoryRewrite)
	}
	for _, c := range e.AdditionalCriteria {
		w("- Criterion: %s", c)
	}
	for _, n := range e.Notes {
		w("- Note: %s", n)
	}
}

func labels(keys []domain.FieldKey) string {
	if len(keys) == 0 {
		return "none"
	}
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.Label()
	}
	return strings.Join(out, ", ")
}
