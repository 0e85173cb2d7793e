package criteria

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/groomroom/groomroom/internal/domain"
)

// numericDelay catches "after a 2-second delay", "in 5 minutes", "30s later".
var numericDelay = regexp.MustCompile(`(?i)\b(?:after|in)\s+(?:an?\s+)?\d+(?:\.\d+)?[\s-]*(?:ms|milliseconds?|s|secs?|seconds?|minutes?|mins?|hours?|hrs?|days?)\b|\b\d+(?:\.\d+)?[\s-]*(?:ms|milliseconds?|s|secs?|seconds?|minutes?|mins?|hours?|hrs?|days?)\s+(?:delay|later)\b`)

const (
	// timingOverlap is the share of the smaller subject that two criteria
	// must share before opposed timing counts as a contradiction.
	timingOverlap = 0.5
	// outcomeSimilarity is the Jaccard similarity required for opposed
	// outcomes. Criteria that differ in their condition ("valid" vs
	// "invalid") must stay below it.
	outcomeSimilarity = 0.75
)

type timing int

const (
	timingNone timing = iota
	timingImmediate
	timingDelayed
)

// DetectConflicts compares every pair of criteria for opposed timing
// (immediate vs delayed) or opposed outcomes (enabled vs disabled) on the
// same subject. It only catches contradictions expressible through the
// vocabulary's keyword pairs.
func DetectConflicts(cs []domain.AcceptanceCriterion, vocab domain.Vocabulary) []domain.Conflict {
	if len(cs) < 2 {
		return nil
	}
	ignore := ignoredWords(vocab)
	timings := make([]timing, len(cs))
	subjects := make([]map[string]bool, len(cs))
	for i, c := range cs {
		timings[i] = classifyTiming(c.Text, vocab)
		subjects[i] = contentWords(c.Text, ignore)
	}

	var out []domain.Conflict
	for i := 0; i < len(cs); i++ {
		for j := i + 1; j < len(cs); j++ {
			reason := ""
			switch {
			case opposedTiming(timings[i], timings[j]) && overlap(subjects[i], subjects[j]) >= timingOverlap:
				reason = "one criterion expects an immediate result, the other a delayed one, for the same action"
			default:
				if a, b, ok := opposedOutcome(cs[i].Text, cs[j].Text, vocab); ok &&
					jaccard(without(subjects[i], a, b), without(subjects[j], a, b)) >= outcomeSimilarity {
					reason = fmt.Sprintf("one criterion expects %q, the other %q, under the same condition", a, b)
				}
			}
			if reason == "" {
				continue
			}
			out = append(out, domain.Conflict{
				A: cs[i].Index, B: cs[j].Index,
				TextA: cs[i].Text, TextB: cs[j].Text,
				Reason: reason,
			})
		}
	}
	return out
}

func classifyTiming(text string, vocab domain.Vocabulary) timing {
	immediate := domain.ContainsAny(text, vocab.ImmediateMarkers)
	delayed := domain.ContainsAny(text, vocab.DelayedMarkers) || numericDelay.MatchString(text)
	switch {
	case immediate && !delayed:
		return timingImmediate
	case delayed && !immediate:
		return timingDelayed
	default:
		return timingNone
	}
}

func opposedTiming(a, b timing) bool {
	return (a == timingImmediate && b == timingDelayed) || (a == timingDelayed && b == timingImmediate)
}

// opposedOutcome returns the pair of outcome words when a carries one side
// of an opposite pair and b carries only the other.
func opposedOutcome(a, b string, vocab domain.Vocabulary) (string, string, bool) {
	for _, pair := range vocab.OppositeOutcomes {
		x, y := pair[0], pair[1]
		ax, ay := domain.ContainsPhrase(a, x), domain.ContainsPhrase(a, y)
		bx, by := domain.ContainsPhrase(b, x), domain.ContainsPhrase(b, y)
		if ax && !ay && by && !bx {
			return x, y, true
		}
		if ay && !ax && bx && !by {
			return y, x, true
		}
	}
	return "", "", false
}

func ignoredWords(vocab domain.Vocabulary) map[string]bool {
	ignore := make(map[string]bool)
	for _, list := range [][]string{vocab.StopWords, vocab.ImmediateMarkers, vocab.DelayedMarkers, vocab.TriggerMarkers} {
		for _, phrase := range list {
			for _, w := range domain.Words(phrase) {
				ignore[w] = true
			}
		}
	}
	return ignore
}

func contentWords(text string, ignore map[string]bool) map[string]bool {
	out := make(map[string]bool)
	for _, w := range domain.Words(text) {
		if ignore[w] || strings.ContainsAny(w, "0123456789") || len(w) < 2 {
			continue
		}
		out[w] = true
	}
	return out
}

func without(set map[string]bool, drop ...string) map[string]bool {
	out := make(map[string]bool, len(set))
	for w := range set {
		out[w] = true
	}
	for _, d := range drop {
		for _, w := range domain.Words(d) {
			delete(out, w)
		}
	}
	return out
}

// overlap is |a∩b| / min(|a|,|b|).
func overlap(a, b map[string]bool) float64 {
	small, large := a, b
	if len(large) < len(small) {
		small, large = large, small
	}
	if len(small) == 0 {
		return 0
	}
	n := 0
	for w := range small {
		if large[w] {
			n++
		}
	}
	return float64(n) / float64(len(small))
}

func jaccard(a, b map[string]bool) float64 {
	union := make(map[string]bool, len(a)+len(b))
	n := 0
	for w := range a {
		union[w] = true
		if b[w] {
			n++
		}
	}
	for w := range b {
		union[w] = true
	}
	if len(union) == 0 {
		return 0
	}
	return float64(n) / float64(len(union))
}
