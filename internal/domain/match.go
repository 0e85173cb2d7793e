package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ContainsPhrase reports whether phrase occurs in text on word boundaries,
// ignoring case.
func ContainsPhrase(text, phrase string) bool {
	return PhraseIndex(text, phrase) >= 0
}

// PhraseIndex returns the byte offset of the first word-bounded,
// case-insensitive occurrence of phrase in text, or -1.
func PhraseIndex(text, phrase string) int {
	start, _ := PhraseSpan(text, phrase)
	return start
}

// PhraseSpan returns the byte range [start, end) of the first word-bounded,
// case-insensitive occurrence of phrase in text, or (-1, -1). Offsets index
// text itself; case folding may change byte lengths, so the match can be
// longer or shorter than phrase.
func PhraseSpan(text, phrase string) (int, int) {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return -1, -1
	}
	for start := 0; start < len(text); {
		if end, ok := foldPrefix(text[start:], phrase); ok {
			end += start
			if boundaryBefore(text, start) && boundaryAfter(text, end) {
				return start, end
			}
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		start += size
	}
	return -1, -1
}

// foldPrefix reports whether s starts with phrase ignoring case, and how
// many bytes of s the match covers.
func foldPrefix(s, phrase string) (int, bool) {
	i := 0
	for _, pr := range phrase {
		if i >= len(s) {
			return 0, false
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if !equalFold(r, pr) {
			return 0, false
		}
		i += size
	}
	return i, true
}

func equalFold(a, b rune) bool {
	if a == b {
		return true
	}
	if unicode.ToLower(a) == unicode.ToLower(b) {
		return true
	}
	for f := unicode.SimpleFold(a); f != a; f = unicode.SimpleFold(f) {
		if f == b {
			return true
		}
	}
	return false
}

// FirstPhrase returns the first phrase from phrases found in text.
func FirstPhrase(text string, phrases []string) (string, bool) {
	for _, p := range phrases {
		if ContainsPhrase(text, p) {
			return p, true
		}
	}
	return "", false
}

// ContainsAny reports whether any phrase occurs in text.
func ContainsAny(text string, phrases []string) bool {
	_, ok := FirstPhrase(text, phrases)
	return ok
}

// Words splits text into lowercase word tokens. Hyphens and apostrophes
// inside a word are kept.
func Words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '\'')
	})
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}
