// Package synth generates story rewrites, acceptance-criteria rewrites and
// test scenarios from a ticket's own vocabulary.
package synth

import (
	"regexp"
	"sort"
	"strings"

	"github.com/groomroom/groomroom/internal/domain"
)

var urlPattern = regexp.MustCompile(`https?://\S+`)

// DomainTerms returns the ticket's distinctive words ordered by frequency,
// then first occurrence. Stop words, generic nouns, heading words, design
// words, personas and analysis markers are excluded, as are words shorter
// than four letters.
func DomainTerms(text string, vocab domain.Vocabulary) []string {
	ignore := termIgnoreSet(vocab)

	type stat struct {
		count int
		first int
	}
	stats := make(map[string]*stat)
	for i, w := range domain.Words(urlPattern.ReplaceAllString(text, " ")) {
		w = strings.Trim(w, "-'")
		if !isTerm(w) || ignore[w] {
			continue
		}
		if s, ok := stats[w]; ok {
			s.count++
			continue
		}
		stats[w] = &stat{count: 1, first: i}
	}

	terms := make([]string, 0, len(stats))
	for w := range stats {
		terms = append(terms, w)
	}
	sort.Slice(terms, func(i, j int) bool {
		a, b := stats[terms[i]], stats[terms[j]]
		if a.count != b.count {
			return a.count > b.count
		}
		return a.first < b.first
	})
	return terms
}

// ContainsTerm reports whether s mentions any of terms.
func ContainsTerm(s string, terms []string) bool {
	return domain.ContainsAny(s, terms)
}

func isTerm(w string) bool {
	if len(w) < 4 || strings.ContainsAny(w, "0123456789'") {
		return false
	}
	if strings.HasSuffix(w, "ly") {
		return false
	}
	return true
}

func termIgnoreSet(vocab domain.Vocabulary) map[string]bool {
	ignore := make(map[string]bool)
	add := func(phrases []string) {
		for _, p := range phrases {
			for _, w := range domain.Words(p) {
				ignore[w] = true
			}
		}
	}
	add(vocab.StopWords)
	add(vocab.GenericNouns)
	add(vocab.DesignWords)
	add(vocab.Personas)
	add(vocab.TriggerMarkers)
	add(vocab.OutcomeMarkers)
	add(vocab.PassFailMarkers)
	add(vocab.Placeholders)
	add(vocab.ImmediateMarkers)
	add(vocab.DelayedMarkers)
	for _, syns := range vocab.HeadingSynonyms {
		add(syns)
	}
	for _, vp := range vocab.VaguePhrases {
		add([]string{vp.Phrase})
	}
	for gerund := range vocab.VerbForms {
		ignore[gerund] = true
	}
	for _, w := range []string{
		"should", "shall", "want", "wants", "need", "needs", "like", "able", "make", "sure", "also", "there",
		"find", "know", "help", "allow", "allows", "provide", "faster", "easier", "better", "easily", "without",
	} {
		ignore[w] = true
	}
	return ignore
}
