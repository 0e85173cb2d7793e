package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sergi/go-diff/diffmatchpatch"
)

var (
	insertStyle = lipgloss.NewStyle().Foreground(success)
	deleteStyle = lipgloss.NewStyle().Foreground(danger).Strikethrough(true)
)

// RenderRewriteDiff shows a criterion rewrite as a word-level diff against
// the original: removed words struck through, added words highlighted.
func RenderRewriteDiff(original, rewrite string) string {
	var b strings.Builder
	for _, d := range WordDiff(original, rewrite) {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			b.WriteString(insertStyle.Render(d.Text))
		case diffmatchpatch.DiffDelete:
			b.WriteString(deleteStyle.Render(d.Text))
		default:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}

// WordDiff diffs a and b on word boundaries rather than characters, so a
// rewrite reads as replaced phrases.
func WordDiff(a, b string) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	wa, wb, words := wordsToChars(a, b)
	diffs := dmp.DiffMain(wa, wb, false)
	return hydrate(diffs, words)
}

// hydrate expands each encoded rune back into its word. DiffCharsToLines is
// not used because it expects its own index encoding, not one rune per entry.
func hydrate(diffs []diffmatchpatch.Diff, words []string) []diffmatchpatch.Diff {
	out := make([]diffmatchpatch.Diff, 0, len(diffs))
	for _, d := range diffs {
		var text strings.Builder
		for _, r := range d.Text {
			if i := wordIndex(r); i > 0 && i < len(words) {
				text.WriteString(words[i])
			}
		}
		out = append(out, diffmatchpatch.Diff{Type: d.Type, Text: text.String()})
	}
	return out
}

// wordsToChars maps every distinct word (with its trailing space) to one
// rune, the same trick DiffLinesToChars uses for lines.
func wordsToChars(a, b string) (string, string, []string) {
	words := []string{""}
	index := make(map[string]int)
	encode := func(s string) string {
		var out []rune
		for _, w := range splitKeepSpace(s) {
			i, ok := index[w]
			if !ok {
				words = append(words, w)
				i = len(words) - 1
				index[w] = i
			}
			out = append(out, wordRune(i))
		}
		return string(out)
	}
	ea := encode(a)
	eb := encode(b)
	return ea, eb, words
}

// wordRune skips the surrogate block so every index survives a round trip
// through a Go string.
func wordRune(i int) rune {
	if i >= 0xD800 {
		i += 0x800
	}
	return rune(i)
}

func wordIndex(r rune) int {
	i := int(r)
	if i >= 0xE000 {
		i -= 0x800
	}
	return i
}

func splitKeepSpace(s string) []string {
	var out []string
	start := 0
	for i, r := range s {
		if r == ' ' {
			out = append(out, s[start:i+1])
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}
