package tui

import (
	"fmt"
	"strings"

	"github.com/groomroom/groomroom/internal/domain"
)

// RenderFields lists every known field grouped by extraction status.
// Required fields are marked with an asterisk.
func RenderFields(fields domain.ExtractedFields, ct domain.CardType, required []domain.FieldKey) string {
	var b strings.Builder

	req := make(map[domain.FieldKey]bool, len(required))
	for _, k := range required {
		req[k] = true
	}

	b.WriteString(boxStyle.Render(titleStyle.Render("Field inventory") + "\n" + dimStyle.Render(string(ct))))
	b.WriteString("\n")

	groups := []struct {
		title  string
		status domain.FieldStatus
	}{
		{"Present", domain.FieldPresent},
		{"Placeholder", domain.FieldPlaceholder},
		{"Absent", domain.FieldAbsent},
	}
	for _, g := range groups {
		var keys []domain.FieldKey
		for _, k := range domain.AllFields {
			if fields.Status(k) == g.status {
				keys = append(keys, k)
			}
		}
		renderFieldSection(&b, g.title, g.status, keys, fields, req)
	}

	b.WriteString("\n")
	b.WriteString("  " + hintStyle.Render("* required for this card type"))
	b.WriteString("\n")
	return b.String()
}

func renderFieldSection(b *strings.Builder, title string, status domain.FieldStatus, keys []domain.FieldKey, fields domain.ExtractedFields, req map[domain.FieldKey]bool) {
	if len(keys) == 0 {
		return
	}

	b.WriteString("\n")
	fmt.Fprintf(b, "  %s %s\n", sectionStyle.Render(title), dimStyle.Render(fmt.Sprintf("(%d)", len(keys))))

	for _, k := range keys {
		var icon string
		switch status {
		case domain.FieldPresent:
			icon = passStyle.Render("●")
		case domain.FieldPlaceholder:
			icon = warnStyle.Render("●")
		default:
			icon = failStyle.Render("●")
		}
		name := k.Label()
		if req[k] {
			name += "*"
		}
		line := fmt.Sprintf("    %s %s", icon, padRight(name, 26))
		if f := fields.Get(k); status != domain.FieldAbsent && f.Content != "" {
			line += "  " + faintStyle.Render(truncate(firstLine(f.Content), 40))
		}
		b.WriteString(line + "\n")
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
