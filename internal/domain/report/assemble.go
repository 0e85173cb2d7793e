package report

import (
	"fmt"

	"github.com/groomroom/groomroom/internal/domain"
	"github.com/groomroom/groomroom/internal/domain/classify"
	"github.com/groomroom/groomroom/internal/domain/criteria"
	"github.com/groomroom/groomroom/internal/domain/extract"
	"github.com/groomroom/groomroom/internal/domain/recommend"
	"github.com/groomroom/groomroom/internal/domain/scoring"
	"github.com/groomroom/groomroom/internal/domain/synth"
)

// Parts are the outputs of every analysis stage for one ticket.
type Parts struct {
	Ticket          domain.Ticket
	CardType        domain.CardType
	Fields          domain.ExtractedFields
	DoR             domain.DoRResult
	Synthesis       synth.Output
	Links           []domain.DesignLink
	UIRelevant      bool
	Gaps            []domain.Gap
	Recommendations []domain.Recommendation
}

// Analyze runs the whole pipeline on one ticket:
// extract → classify → analyze criteria → score → synthesize → recommend → assemble.
// It never fails; problems surface as degradations on the report.
func Analyze(t domain.Ticket, vocab domain.Vocabulary, mode domain.Mode) *domain.GroomReport {
	if t.IsEmpty() {
		return Empty(t, vocab, mode)
	}

	text := t.Text()
	fields := extract.New(vocab).Extract(text)
	ct := classify.Classify(t, fields, vocab)
	cs := criteria.Analyze(fields.Text(domain.FieldAcceptanceCriteria), vocab)
	dor := scoring.ScoreReadiness(fields, ct, cs, vocab)
	links := extract.DetectLinks(fields, vocab)
	ui := synth.IsUIRelevant(text, links, vocab)

	syn := synth.Synthesize(synth.Input{
		Ticket:     t,
		Fields:     fields,
		CardType:   ct,
		Criteria:   cs,
		Links:      links,
		UIRelevant: ui,
	}, vocab)

	gaps := recommend.Gaps(recommend.Input{CardType: ct, DoR: dor, Criteria: cs, Fields: fields}, vocab)

	return Assemble(Parts{
		Ticket:          t,
		CardType:        ct,
		Fields:          fields,
		DoR:             dor,
		Synthesis:       syn,
		Links:           links,
		UIRelevant:      ui,
		Gaps:            gaps,
		Recommendations: recommend.Recommend(gaps),
	}, mode)
}

// Assemble builds the report from stage outputs, derives the status and
// collects degradations. The structured report does not depend on mode;
// mode is recorded for rendering only.
func Assemble(p Parts, mode domain.Mode) *domain.GroomReport {
	cs := p.Synthesis.Criteria
	if cs == nil {
		cs = []domain.AcceptanceCriterion{}
	}
	scenarios := p.Synthesis.Scenarios
	if scenarios == nil {
		scenarios = domain.ScenarioSet{}
	}
	gaps := p.Gaps
	if gaps == nil {
		gaps = []domain.Gap{}
	}
	recs := p.Recommendations
	if recs == nil {
		recs = []domain.Recommendation{}
	}

	r := &domain.GroomReport{
		TicketID:        p.Ticket.ID,
		Title:           p.Ticket.Title,
		CardType:        p.CardType,
		Status:          DetermineStatus(p.CardType, p.DoR, len(cs), p.UIRelevant),
		Fields:          p.Fields,
		DoR:             p.DoR,
		StoryRewrite:    p.Synthesis.StoryRewrite,
		Criteria:        cs,
		SuggestedAC:     p.Synthesis.Suggested,
		Scenarios:       scenarios,
		DesignLinks:     p.Links,
		Recommendations: recs,
		Gaps:            gaps,
		UIRelevant:      p.UIRelevant,
		Mode:            mode,
	}

	for _, a := range p.Fields.Ambiguities {
		r.Degradations = append(r.Degradations, domain.Degradation{Kind: domain.DegradedExtractionAmbiguous, Detail: a})
	}
	r.Degradations = append(r.Degradations, p.Synthesis.Degradations...)
	if len(cs) > 0 {
		for _, cat := range domain.ScenarioCategories {
			if len(scenarios[cat]) == 0 {
				r.Degradations = append(r.Degradations, domain.Degradation{
					Kind:   domain.DegradedSynthesisFailure,
					Detail: fmt.Sprintf("no %s test scenario could be derived", cat),
				})
			}
		}
	}
	for _, problem := range consistencyProblems(p.DoR) {
		r.Degradations = append(r.Degradations, domain.Degradation{Kind: domain.DegradedInconsistent, Detail: problem})
	}
	return r
}

// Empty returns the report for a ticket with no content: every field
// Absent, coverage 0, status NotReady, and one recommendation asking for
// the ticket content.
func Empty(t domain.Ticket, vocab domain.Vocabulary, mode domain.Mode) *domain.GroomReport {
	fields := domain.NewExtractedFields()
	ct := classify.Classify(t, fields, vocab)
	gap := domain.Gap{Kind: domain.GapEmptyInput, Name: "ticket content", Detail: "the ticket has no title or body"}
	gaps := []domain.Gap{gap}

	r := Assemble(Parts{
		Ticket:          t,
		CardType:        ct,
		Fields:          fields,
		DoR:             scoring.ScoreReadiness(fields, ct, nil, vocab),
		Gaps:            gaps,
		Recommendations: recommend.Recommend(gaps),
	}, mode)
	r.Status = domain.StatusNotReady
	r.Degradations = append([]domain.Degradation{{Kind: domain.DegradedInputEmpty, Detail: "ticket text is empty"}}, r.Degradations...)
	return r
}

// consistencyProblems cross-checks the DoR result against its checklist.
func consistencyProblems(dor domain.DoRResult) []string {
	var out []string
	if dor.Inconsistent {
		out = append(out, "card type has no Definition-of-Ready checklist")
	}
	required := make(map[domain.FieldKey]bool, len(dor.Required))
	for _, k := range dor.Required {
		required[k] = true
	}
	seen := make(map[domain.FieldKey]int)
	for _, k := range append(append([]domain.FieldKey{}, dor.Present...), dor.Missing...) {
		seen[k]++
		if !required[k] && seen[k] == 1 {
			out = append(out, fmt.Sprintf("%s is scored but not required", k.Label()))
		}
	}
	for _, k := range dor.Required {
		if seen[k] != 1 {
			out = append(out, fmt.Sprintf("%s is counted %d times across present and missing", k.Label(), seen[k]))
		}
	}
	return out
}
