package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/groomroom/groomroom/internal/domain"
)

// ── Warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
	lime    = lipgloss.Color("#A3E635")
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	statusColors = map[domain.Status]lipgloss.Color{
		domain.StatusReady:           success,
		domain.StatusNeedsRefinement: warning,
		domain.StatusNotReady:        danger,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	sectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle     = lipgloss.NewStyle().Foreground(dim).Italic(true)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderReport formats a grooming report for the terminal. Summary mode
// keeps the header, the first gaps and one recommendation per role.
func RenderReport(r *domain.GroomReport, mode domain.Mode) string {
	var b strings.Builder

	renderHeader(&b, r)

	for _, d := range r.Degradations {
		fmt.Fprintf(&b, "  %s %s\n", warnTagStyle.Render("degraded"), dimStyle.Render(fmt.Sprintf("%s: %s", d.Kind, d.Detail)))
	}
	if r.IsDegraded() {
		b.WriteString("\n")
	}

	switch mode {
	case domain.ModeSummary:
		renderGaps(&b, r.Gaps, 3)
		renderRecommendations(&b, r, 1)
	case domain.ModeInsight:
		renderDoR(&b, r)
		renderGaps(&b, r.Gaps, 5)
		renderConflicts(&b, r)
		renderEnrichment(&b, r)
	default:
		renderDoR(&b, r)
		renderGaps(&b, r.Gaps, 0)
		renderStory(&b, r)
		renderCriteria(&b, r)
		renderConflicts(&b, r)
		renderScenarios(&b, r)
		renderRecommendations(&b, r, 0)
		renderEnrichment(&b, r)
	}

	b.WriteString("\n")
	return b.String()
}

func renderHeader(b *strings.Builder, r *domain.GroomReport) {
	name := strings.TrimSpace(r.TicketID + "  " + r.Title)
	if name == "" {
		name = "Untitled ticket"
	}
	color := statusColor(r.Status)
	title := headerStyle.Render("groomroom")
	subtitle := dimStyle.Render(name)
	statusLine := lipgloss.NewStyle().Bold(true).Foreground(color).Render(r.Status.Label())
	meta := dimStyle.Render(fmt.Sprintf("%s · %d%% ready", r.CardType, r.Coverage()))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + statusLine + "  " + meta))
	b.WriteString("\n\n")
	fmt.Fprintf(b, "  %s %s  %s\n\n",
		titleStyle.Render(padRight("Coverage", 12)),
		coloredBar(r.Coverage(), 30),
		dimStyle.Render(fmt.Sprintf("%d/%d fields", len(r.DoR.Present), len(r.DoR.Present)+len(r.DoR.Missing))),
	)
}

func renderDoR(b *strings.Builder, r *domain.GroomReport) {
	if len(r.DoR.Required) == 0 {
		return
	}
	b.WriteString("  " + sectionStyle.Render("Definition of Ready") + "\n")
	for _, k := range r.DoR.Required {
		icon := passStyle.Render("●")
		note := ""
		switch {
		case r.DoR.IsMissing(k):
			icon = failStyle.Render("●")
			if r.Fields.Status(k) == domain.FieldPlaceholder {
				note = "placeholder"
			} else {
				note = "missing"
			}
		case r.DoR.IsWeak(k):
			icon = warnStyle.Render("●")
			note = "weak"
		}
		line := fmt.Sprintf("    %s %s", icon, padRight(k.Label(), 26))
		if note != "" {
			line += " " + faintStyle.Render(note)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
}

func renderGaps(b *strings.Builder, gaps []domain.Gap, limit int) {
	if len(gaps) == 0 {
		b.WriteString("  " + passStyle.Render("No gaps found.") + "\n\n")
		return
	}
	b.WriteString("  " + sectionStyle.Render("Gaps") + " " + dimStyle.Render(fmt.Sprintf("(%d)", len(gaps))) + "\n")
	for i, g := range gaps {
		if limit > 0 && i == limit {
			b.WriteString("    " + hintStyle.Render(fmt.Sprintf("… %d more", len(gaps)-limit)) + "\n")
			break
		}
		fmt.Fprintf(b, "    %s %s", gapTag(g.Kind), g.Name)
		if g.Detail != "" {
			b.WriteString("  " + dimStyle.Render(g.Detail))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func gapTag(kind domain.GapKind) string {
	switch kind {
	case domain.GapMissingField, domain.GapConflict, domain.GapEmptyInput:
		return errorTagStyle.Render("error")
	case domain.GapWeakCriterion, domain.GapWeakField:
		return warnTagStyle.Render("warn ")
	default:
		return infoTagStyle.Render("info ")
	}
}

func renderStory(b *strings.Builder, r *domain.GroomReport) {
	if r.StoryRewrite == "" {
		return
	}
	b.WriteString("  " + sectionStyle.Render("Suggested user story") + "\n")
	b.WriteString("    " + r.StoryRewrite + "\n\n")
}

func renderCriteria(b *strings.Builder, r *domain.GroomReport) {
	if len(r.Criteria) == 0 {
		return
	}
	b.WriteString("  " + sectionStyle.Render("Acceptance criteria") + "\n")
	for _, c := range r.Criteria {
		icon := passStyle.Render("●")
		if c.NeedsRewrite() {
			icon = warnStyle.Render("●")
		}
		fmt.Fprintf(b, "    %s %s %s\n", icon, dimStyle.Render(fmt.Sprintf("AC #%d", c.Index+1)), c.Text)
		if c.Rewrite != "" {
			fmt.Fprintf(b, "      %s %s\n", faintStyle.Render("→"), RenderRewriteDiff(c.Text, c.Rewrite))
		}
	}
	b.WriteString("\n")
}

func renderConflicts(b *strings.Builder, r *domain.GroomReport) {
	if len(r.DoR.Conflicts) == 0 {
		return
	}
	b.WriteString("  " + sectionStyle.Render("Conflicts") + "\n")
	for _, c := range r.DoR.Conflicts {
		fmt.Fprintf(b, "    %s AC #%d vs AC #%d  %s\n", errorTagStyle.Render("×"), c.A+1, c.B+1, dimStyle.Render(c.Reason))
	}
	b.WriteString("    " + hintStyle.Render("Conflict detection is best-effort.") + "\n\n")
}

func renderScenarios(b *strings.Builder, r *domain.GroomReport) {
	if r.Scenarios.Count() == 0 {
		return
	}
	b.WriteString("  " + sectionStyle.Render("Test scenarios") + "\n")
	for _, cat := range domain.ScenarioCategories {
		list := r.Scenarios[cat]
		if len(list) == 0 {
			continue
		}
		b.WriteString("    " + titleStyle.Render(string(cat)) + "\n")
		for _, s := range list {
			line := "      ○ " + s.Description
			if s.SourceAC != nil {
				line += "  " + faintStyle.Render(fmt.Sprintf("AC #%d", *s.SourceAC+1))
			}
			b.WriteString(line + "\n")
		}
	}
	b.WriteString("\n")
}

func renderRecommendations(b *strings.Builder, r *domain.GroomReport, perRole int) {
	if len(r.Recommendations) == 0 {
		return
	}
	b.WriteString("  " + separatorLine + "\n\n")
	for _, role := range domain.Roles {
		recs := r.RecommendationsFor(role)
		if len(recs) == 0 {
			continue
		}
		b.WriteString("  " + titleStyle.Render(role.Label()) + "\n")
		for i, rec := range recs {
			if perRole > 0 && i == perRole {
				break
			}
			b.WriteString("    " + accentDot() + " " + rec.Text + "\n")
		}
		b.WriteString("\n")
	}
}

func renderEnrichment(b *strings.Builder, r *domain.GroomReport) {
	e := r.Enrichment
	if e == nil || e.Status == domain.EnrichmentDisabled {
		return
	}
	if e.Status != domain.EnrichmentApplied {
		b.WriteString("  " + hintStyle.Render(fmt.Sprintf("AI suggestions %s: %s", e.Status, e.Detail)) + "\n")
		return
	}
	b.WriteString("  " + sectionStyle.Render("AI suggestions") + "\n")
	if e.StoryRewrite != "" {
		b.WriteString("    story  " + e.StoryRewrite + "\n")
	}
	for _, c := range e.AdditionalCriteria {
		b.WriteString("    ac     " + c + "\n")
	}
	for _, n := range e.Notes {
		b.WriteString("    note   " + dimStyle.Render(n) + "\n")
	}
}

// RenderBatch formats one line per report.
func RenderBatch(reports []*domain.GroomReport) string {
	if len(reports) == 0 {
		return "  " + dimStyle.Render("No tickets analysed.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Batch") + "  " + dimStyle.Render(fmt.Sprintf("%d tickets", len(reports))) + "\n")
	b.WriteString("  " + separatorLine + "\n\n")

	counts := make(map[domain.Status]int)
	for _, r := range reports {
		counts[r.Status]++
		name := r.TicketID
		if name == "" {
			name = r.Title
		}
		if name == "" {
			name = "untitled"
		}
		fmt.Fprintf(&b, "  %s %s %s  %s\n",
			padRight(truncate(name, 18), 18),
			coloredBar(r.Coverage(), 20),
			padRight(fmt.Sprintf("%d%%", r.Coverage()), 4),
			lipgloss.NewStyle().Foreground(statusColor(r.Status)).Render(r.Status.Label()),
		)
	}

	b.WriteString("\n  ")
	b.WriteString(passStyle.Render(fmt.Sprintf("%d ready", counts[domain.StatusReady])) + "  ")
	b.WriteString(warnStyle.Render(fmt.Sprintf("%d need refinement", counts[domain.StatusNeedsRefinement])) + "  ")
	b.WriteString(failStyle.Render(fmt.Sprintf("%d not ready", counts[domain.StatusNotReady])))
	b.WriteString("\n")
	return b.String()
}

// RenderHistory formats run history for terminal output.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No run history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Run History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	prev := make(map[string]int)
	for _, e := range entries {
		date := e.Timestamp
		if len(date) > 10 {
			date = date[:10]
		}
		ticket := e.TicketID
		if ticket == "" {
			ticket = "·······"
		}

		covStyled := lipgloss.NewStyle().
			Foreground(scoreColor(e.Coverage)).
			Render(fmt.Sprintf("%3d%%", e.Coverage))

		line := fmt.Sprintf("  %s  %s  %s  %s",
			dimStyle.Render(date),
			faintStyle.Render(padRight(ticket, 12)),
			covStyled,
			e.Status.Label(),
		)

		if last, ok := prev[e.TicketID]; ok && e.TicketID != "" {
			diff := e.Coverage - last
			if diff > 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↑%d", diff))
			} else if diff < 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↓%d", -diff))
			}
		}
		prev[e.TicketID] = e.Coverage

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func accentDot() string {
	return lipgloss.NewStyle().Foreground(accent).Render("›")
}

func coloredBar(score, width int) string {
	filled := max(0, min(score*width/100, width))
	empty := width - filled

	color := scoreColor(score)
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func scoreColor(score int) lipgloss.Color {
	switch {
	case score >= 80:
		return success
	case score >= 60:
		return lime
	case score >= 40:
		return warning
	default:
		return danger
	}
}

func statusColor(s domain.Status) lipgloss.Color {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return fg
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
