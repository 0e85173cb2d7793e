package synth

import (
	"github.com/groomroom/groomroom/internal/domain"
)

// Input is what the synthesizer reads from earlier stages.
type Input struct {
	Ticket     domain.Ticket
	Fields     domain.ExtractedFields
	CardType   domain.CardType
	Criteria   []domain.AcceptanceCriterion
	Links      []domain.DesignLink
	UIRelevant bool
}

// Output carries the generated content. Criteria is a copy of the input
// criteria with Rewrite filled in for every flagged entry.
type Output struct {
	StoryRewrite string
	Criteria     []domain.AcceptanceCriterion
	Suggested    []string
	Scenarios    domain.ScenarioSet
	Terms        []string
	Degradations []domain.Degradation
}

// IsUIRelevant reports whether the ticket touches a user interface: it
// links a design artifact or uses UI vocabulary.
func IsUIRelevant(text string, links []domain.DesignLink, vocab domain.Vocabulary) bool {
	return len(links) > 0 || domain.ContainsAny(text, vocab.UIMarkers)
}

// Synthesize generates the story rewrite (Story and Feature cards only),
// criteria rewrites or fresh criteria, and test scenarios. It never fails;
// content it cannot ground in the ticket's vocabulary is reported as a
// synthesis_failure degradation.
func Synthesize(in Input, vocab domain.Vocabulary) Output {
	text := in.Ticket.Text()
	storySrc := in.Fields.Text(domain.FieldUserStory)
	if storySrc == "" {
		storySrc = text
	}
	persona := Persona(storySrc, vocab)
	goal := goalFrom(storySrc, in.Ticket, in.Fields)
	terms := dropWords(DomainTerms(text, vocab), persona, goalVerb(goal))
	if goal == "" {
		goal = seedGoal(terms)
	}
	r := newRewriter(vocab, terms, persona, in.Links, in.UIRelevant)

	out := Output{Terms: terms}

	if in.CardType.IsStoryLike() {
		story, ok := RewriteStory(in.Ticket, in.Fields, terms, vocab)
		if ok {
			out.StoryRewrite = story
		} else {
			out.Degradations = append(out.Degradations, domain.Degradation{
				Kind:   domain.DegradedSynthesisFailure,
				Detail: "story rewrite omitted: the ticket has no domain-specific terms to ground it",
			})
		}
	}

	out.Criteria = make([]domain.AcceptanceCriterion, len(in.Criteria))
	copy(out.Criteria, in.Criteria)
	for i, c := range out.Criteria {
		if c.NeedsRewrite() {
			out.Criteria[i].Rewrite = r.Rewrite(c)
		}
	}

	if !in.Fields.IsPresent(domain.FieldAcceptanceCriteria) || len(out.Criteria) == 0 {
		out.Suggested = r.generateCriteria(goal)
		if len(terms) == 0 {
			out.Degradations = append(out.Degradations, domain.Degradation{
				Kind:   domain.DegradedSynthesisFailure,
				Detail: "suggested criteria use placeholder subjects: no domain-specific terms found",
			})
		}
	}

	var sources []scenarioSource
	for i, c := range out.Criteria {
		idx := i
		stmt := c.Text
		if c.Rewrite != "" {
			stmt = c.Rewrite
		}
		sources = append(sources, scenarioSource{index: &idx, text: stmt, orig: c.Text})
	}
	for _, s := range out.Suggested {
		sources = append(sources, scenarioSource{text: s, orig: s})
	}
	out.Scenarios = r.scenarios(sources)

	return out
}

// goalVerb returns the verb of a "to <verb> ..." goal.
func goalVerb(goal string) string {
	words := domain.Words(goal)
	if len(words) > 1 && words[0] == "to" {
		return words[1]
	}
	return ""
}

func dropWords(terms []string, phrases ...string) []string {
	drop := make(map[string]bool)
	for _, p := range phrases {
		for _, w := range domain.Words(p) {
			drop[w] = true
		}
	}
	out := terms[:0:0]
	for _, t := range terms {
		if !drop[t] {
			out = append(out, t)
		}
	}
	return out
}
