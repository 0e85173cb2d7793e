// Package extract turns free-form ticket text into named sections and
// detects design-tool links inside them.
package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/groomroom/groomroom/internal/domain"
)

var (
	userStoryStart = regexp.MustCompile(`(?i)^\W*as\s+an?\s+\S`)
	userStoryWant  = regexp.MustCompile(`(?i)\bi\s+(?:want|need|would\s+like|wish)\b`)
)

// Extractor recognises section headings through the vocabulary's synonym
// table. It holds no mutable state and is safe for concurrent use.
type Extractor struct {
	index        map[string]domain.FieldKey
	placeholders map[string]bool
}

// New builds an extractor for vocab.
func New(vocab domain.Vocabulary) *Extractor {
	ph := make(map[string]bool, len(vocab.Placeholders))
	for _, p := range vocab.Placeholders {
		ph[domain.NormalizeLabel(p)] = true
	}
	return &Extractor{index: vocab.HeadingIndex(), placeholders: ph}
}

type section struct {
	key     domain.FieldKey
	heading string
	lines   []string
}

func (s section) content() string {
	return strings.TrimSpace(strings.Join(s.lines, "\n"))
}

// Extract parses raw ticket text. Empty or unparseable text yields a set
// where every field is Absent; it never fails.
func (e *Extractor) Extract(raw string) domain.ExtractedFields {
	out := domain.NewExtractedFields()
	if strings.TrimSpace(raw) == "" {
		return out
	}

	sections := e.split(Normalize(raw))

	byKey := make(map[domain.FieldKey][]section)
	var order []domain.FieldKey
	for _, s := range sections {
		if _, seen := byKey[s.key]; !seen {
			order = append(order, s.key)
		}
		byKey[s.key] = append(byKey[s.key], s)
	}

	for _, key := range order {
		candidates := byKey[key]
		chosen := candidates[0]
		nonEmpty := 0
		for _, c := range candidates {
			if c.content() != "" {
				nonEmpty++
			}
			if len(c.content()) > len(chosen.content()) {
				chosen = c
			}
		}
		if nonEmpty > 1 && key != domain.FieldDescription {
			out.Ambiguities = append(out.Ambiguities,
				fmt.Sprintf("%s appears %d times; kept the longest section", key.Label(), nonEmpty))
		}
		content := chosen.content()
		out.Fields[key] = domain.Field{
			Key:     key,
			Status:  e.status(content),
			Heading: chosen.heading,
			Content: content,
		}
	}

	if !out.IsPresent(domain.FieldUserStory) {
		if story := findUserStory(sections); story != "" {
			out.Fields[domain.FieldUserStory] = domain.Field{
				Key:     domain.FieldUserStory,
				Status:  domain.FieldPresent,
				Content: story,
			}
		}
	}

	return out
}

// split walks normalised lines and cuts them at recognised headings. Text
// before the first heading lands in the description section.
func (e *Extractor) split(text string) []section {
	current := section{key: domain.FieldDescription}
	var sections []section

	for _, line := range strings.Split(text, "\n") {
		key, heading, rest, ok := e.parseHeading(line)
		if !ok {
			current.lines = append(current.lines, line)
			continue
		}
		sections = append(sections, current)
		current = section{key: key, heading: heading}
		if rest != "" {
			current.lines = append(current.lines, rest)
		}
	}
	sections = append(sections, current)

	// A description made only of blank lines carries nothing.
	if sections[0].key == domain.FieldDescription && sections[0].content() == "" {
		sections = sections[1:]
	}
	return sections
}

// parseHeading recognises "Heading", "Heading:" and "Heading: value" lines
// across Markdown, Jira wiki and bullet markup.
func (e *Extractor) parseHeading(line string) (domain.FieldKey, string, string, bool) {
	t := strings.TrimSpace(line)
	if t == "" || len(t) > 160 {
		return "", "", "", false
	}
	t = strings.TrimSpace(headingPrefix.ReplaceAllString(t, ""))
	bulleted := hasBullet(t)
	t = StripBullet(t)

	label, rest := t, ""
	if i := strings.IndexAny(t, ":："); i >= 0 {
		label, rest = t[:i], t[i+len(string([]rune(t[i:])[0])):]
	}
	label = cleanLabel(label)
	rest = cleanRest(rest)

	key, ok := e.lookup(label)
	if !ok {
		return "", "", "", false
	}
	// "- Steps: click save" inside a list is content, not a heading.
	if bulleted && rest != "" && len(strings.Fields(label)) < 2 {
		return "", "", "", false
	}
	return key, label, rest, true
}

func (e *Extractor) lookup(label string) (domain.FieldKey, bool) {
	norm := domain.NormalizeLabel(label)
	if norm == "" {
		return "", false
	}
	if key, ok := e.index[norm]; ok {
		return key, true
	}
	if trimmed := domain.NormalizeLabel(parenSuffix.ReplaceAllString(label, "")); trimmed != norm && trimmed != "" {
		if key, ok := e.index[trimmed]; ok {
			return key, true
		}
	}
	return "", false
}

// status classifies non-empty content as Present or PlaceholderOnly.
func (e *Extractor) status(content string) domain.FieldStatus {
	if content == "" {
		return domain.FieldAbsent
	}
	var parts []string
	for _, line := range strings.Split(content, "\n") {
		if l := StripBullet(line); l != "" {
			parts = append(parts, l)
		}
	}
	if len(parts) == 0 {
		return domain.FieldAbsent
	}
	joined := strings.Join(parts, " ")
	norm := domain.NormalizeLabel(strings.TrimRight(joined, ".!"))
	if e.placeholders[norm] || isRepeatedRun(norm) {
		return domain.FieldPlaceholder
	}
	return domain.FieldPresent
}

// isRepeatedRun reports whether s is one character repeated, e.g. "---" or
// "xxx". Digit runs are real values (story points "8", "13").
func isRepeatedRun(s string) bool {
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(s)
	if unicode.IsDigit(first) {
		return false
	}
	for _, r := range s {
		if r != first {
			return false
		}
	}
	return utf8.RuneCountInString(s) >= 2 || !unicode.IsLetter(first)
}

// findUserStory locates an unlabelled "As a ..., I want ..." paragraph.
func findUserStory(sections []section) string {
	for _, s := range sections {
		for i, line := range s.lines {
			if !userStoryStart.MatchString(line) {
				continue
			}
			para := []string{strings.TrimSpace(StripBullet(line))}
			for _, next := range s.lines[i+1:] {
				if strings.TrimSpace(next) == "" {
					break
				}
				para = append(para, strings.TrimSpace(StripBullet(next)))
			}
			joined := strings.Join(para, " ")
			if userStoryWant.MatchString(joined) {
				return joined
			}
		}
	}
	return ""
}
