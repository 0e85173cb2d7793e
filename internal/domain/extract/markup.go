package extract

import (
	"html"
	"regexp"
	"strings"
)

var (
	htmlAnchor   = regexp.MustCompile(`(?is)<a\s[^>]*href\s*=\s*["']([^"']+)["'][^>]*>(.*?)</a>`)
	htmlListItem = regexp.MustCompile(`(?i)<li[^>]*>`)
	htmlBlock    = regexp.MustCompile(`(?i)</?(?:p|div|br|ul|ol|li|h[1-6]|tr|td|th|table|tbody|thead|section|blockquote|pre)[^>]*>`)
	htmlTag      = regexp.MustCompile(`<[^>]+>`)
	wikiMacro    = regexp.MustCompile(`\{(?:color|panel|noformat|code|quote)(?::[^}]*)?\}`)
	wikiHeading  = regexp.MustCompile(`(?m)^\s*h[1-6]\.\s*`)

	// headingPrefix strips Markdown heading hashes, Jira wiki headings,
	// bullets and numbered-list markers.
	headingPrefix = regexp.MustCompile(`^(?:#{1,6}\s*|h[1-6]\.\s*)`)
	bulletPrefix  = regexp.MustCompile(`^(?:[-*•+>]+|\d+[.)]|[a-z][.)])\s+`)
	parenSuffix   = regexp.MustCompile(`\s*\([^)]*\)\s*$`)
)

// Normalize converts HTML, Jira wiki and Markdown flavoured ticket text
// into plain lines. HTML anchors become Markdown links so link detection
// still sees their targets.
func Normalize(raw string) string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = htmlAnchor.ReplaceAllString(s, "[$2]($1)")
	s = htmlListItem.ReplaceAllString(s, "\n- ")
	s = htmlBlock.ReplaceAllString(s, "\n")
	s = htmlTag.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = wikiMacro.ReplaceAllString(s, "")
	s = wikiHeading.ReplaceAllString(s, "")
	return s
}

// StripBullet removes a leading list marker from a trimmed line.
func StripBullet(line string) string {
	t := strings.TrimSpace(line)
	for {
		next := bulletPrefix.ReplaceAllString(t, "")
		next = strings.TrimSpace(next)
		if next == t {
			return t
		}
		t = next
	}
}

// hasBullet reports whether a trimmed line starts with a list marker.
func hasBullet(line string) bool {
	return bulletPrefix.MatchString(strings.TrimSpace(line))
}

// cleanLabel strips emphasis markers and trailing punctuation from a
// candidate heading.
func cleanLabel(s string) string {
	s = strings.NewReplacer("**", "", "__", "", "*", "", "{", "", "}", "", "[", "", "]", "", "`", "").Replace(s)
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "_")
	s = strings.TrimRight(s, " .-–—:")
	return strings.TrimSpace(s)
}

// cleanRest strips emphasis markers left over after splitting "Label: value".
func cleanRest(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "*_ ")
	if strings.HasSuffix(s, "**") || strings.HasSuffix(s, "__") {
		s = s[:len(s)-2]
	}
	return strings.TrimSpace(s)
}
