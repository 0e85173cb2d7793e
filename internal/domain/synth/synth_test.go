package synth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groomroom/groomroom/internal/domain"
	"github.com/groomroom/groomroom/internal/domain/criteria"
	"github.com/groomroom/groomroom/internal/domain/extract"
	"github.com/groomroom/groomroom/internal/domain/synth"
)

var vocab = domain.DefaultVocabulary()

func run(t *testing.T, ticket domain.Ticket, ct domain.CardType) synth.Output {
	t.Helper()
	fields := extract.New(vocab).Extract(ticket.Text())
	links := extract.DetectLinks(fields, vocab)
	return synth.Synthesize(synth.Input{
		Ticket:     ticket,
		Fields:     fields,
		CardType:   ct,
		Criteria:   criteria.Analyze(fields.Text(domain.FieldAcceptanceCriteria), vocab),
		Links:      links,
		UIRelevant: synth.IsUIRelevant(ticket.Text(), links, vocab),
	}, vocab)
}

func requireClean(t *testing.T, s string) {
	t.Helper()
	c := criteria.Evaluate(0, s, vocab, vocab.SortedVaguePhrases())
	assert.True(t, c.HasTrigger, "no trigger: %s", s)
	assert.True(t, c.HasExpectedOutcome, "no outcome: %s", s)
	assert.True(t, c.HasPassFailClarity, "no pass/fail: %s", s)
	assert.Empty(t, c.Vague, "vague phrase %q in: %s", c.VaguePhrase, s)
}

func TestDomainTerms(t *testing.T) {
	terms := synth.DomainTerms("As a shopper, I want to filter products by size, so that I find items faster. "+
		"The size filter should work properly. See https://figma.com/file/abc", vocab)
	require.GreaterOrEqual(t, len(terms), 2)
	assert.Equal(t, []string{"filter", "size"}, terms[:2])
	assert.Contains(t, terms, "products")
	assert.NotContains(t, terms, "shopper")
	assert.NotContains(t, terms, "properly")
	assert.NotContains(t, terms, "figma")
	assert.NotContains(t, terms, "abc")
}

func TestPersona(t *testing.T) {
	assert.Equal(t, "shopper", synth.Persona("As a shopper, I want filters", vocab))
	assert.Equal(t, "store manager", synth.Persona("As a store manager I need stock alerts", vocab))
	assert.Equal(t, "admin", synth.Persona("Admins can export invoices from the admin console", vocab))
	assert.Equal(t, "user", synth.Persona("Export invoices", vocab))
}

func TestSynthesize_StoryRewriteFromUserStory(t *testing.T) {
	out := run(t, domain.Ticket{Body: "As a shopper, I want to filter products by size, so that I find items faster.\n" +
		"Acceptance Criteria:\n- Selecting a size updates the grid"}, domain.CardStory)

	assert.Equal(t, "As a shopper, I want to filter products by size, so that I find items faster.", out.StoryRewrite)
	assert.Empty(t, out.Degradations)
}

func TestSynthesize_StoryRewriteInfersParts(t *testing.T) {
	out := run(t, domain.Ticket{
		Title: "Add wishlist sharing",
		Body:  "Shoppers share wishlists with friends by link.\nOutcome: more wishlist conversions",
	}, domain.CardFeature)

	assert.True(t, strings.HasPrefix(out.StoryRewrite, "As a shopper, I want to add wishlist sharing, so that"), out.StoryRewrite)
	assert.Contains(t, out.StoryRewrite, "wishlist")
}

func TestSynthesize_NoStoryForBugsAndTasks(t *testing.T) {
	out := run(t, domain.Ticket{Body: "Current Behaviour: checkout spinner never stops"}, domain.CardBug)
	assert.Empty(t, out.StoryRewrite)
}

func TestSynthesize_StoryWithoutDomainTermsIsDegraded(t *testing.T) {
	out := run(t, domain.Ticket{Body: "As a user I want it to work"}, domain.CardStory)
	assert.Empty(t, out.StoryRewrite)
	require.NotEmpty(t, out.Degradations)
	assert.Equal(t, domain.DegradedSynthesisFailure, out.Degradations[0].Kind)
}

func TestSynthesize_ImplicitTriggerRewrite(t *testing.T) {
	out := run(t, domain.Ticket{Body: "As a shopper, I want to filter products by size, so that I find items faster.\n" +
		"Acceptance Criteria:\n- Selecting a size updates the grid"}, domain.CardStory)

	require.Len(t, out.Criteria, 1)
	rw := out.Criteria[0].Rewrite
	require.NotEmpty(t, rw)
	assert.Contains(t, rw, "the shopper selects a size")
	assert.Contains(t, rw, "updates the grid")
	requireClean(t, rw)
}

func TestSynthesize_MatchFigmaRewrite(t *testing.T) {
	out := run(t, domain.Ticket{
		Title: "Checkout summary panel",
		Body:  "Acceptance Criteria:\n- Should match Figma",
	}, domain.CardStory)

	require.Len(t, out.Criteria, 1)
	c := out.Criteria[0]
	assert.Equal(t, domain.VagueMatchesDesign, c.Vague)
	require.NotEmpty(t, c.Rewrite)
	assert.NotContains(t, strings.ToLower(c.Rewrite), "match figma")
	assert.Contains(t, c.Rewrite, "2px")
	assert.Contains(t, c.Rewrite, "checkout")
	requireClean(t, c.Rewrite)
}

func TestSynthesize_MatchFigmaRewriteReferencesLink(t *testing.T) {
	out := run(t, domain.Ticket{
		Title: "Checkout summary panel",
		Body: "Design: [Figma](https://www.figma.com/file/abc/Checkout)\n" +
			"Acceptance Criteria:\n- Should match Figma",
	}, domain.CardStory)

	rw := out.Criteria[0].Rewrite
	assert.Contains(t, rw, "https://www.figma.com/file/abc/Checkout")
	assert.NotContains(t, strings.ToLower(rw), "match figma")
	requireClean(t, rw)
}

func TestSynthesize_PerformanceAddsThreshold(t *testing.T) {
	out := run(t, domain.Ticket{Body: "Acceptance Criteria:\n- Search results load fast\n- Result shows immediately on click"}, domain.CardStory)

	require.Len(t, out.Criteria, 2)
	assert.Contains(t, out.Criteria[0].Rewrite, "within 2 seconds")
	assert.Contains(t, out.Criteria[1].Rewrite, "within 1 second")
	for _, c := range out.Criteria {
		requireClean(t, c.Rewrite)
	}
}

func TestSynthesize_EveryRewriteReanalysesClean(t *testing.T) {
	body := "Acceptance Criteria:\n" +
		"- Checkout works correctly\n" +
		"- Totals are calculated properly\n" +
		"- The coupon form is user-friendly\n" +
		"- When the coupon is applied the basket total\n" +
		"- The banner is blue\n" +
		"- Given a saved card When the shopper pays Then the order is placed\n" +
		"- Works as expected"
	out := run(t, domain.Ticket{Title: "Coupon codes at checkout", Body: body}, domain.CardStory)

	require.Len(t, out.Criteria, 7)
	for _, c := range out.Criteria {
		require.True(t, c.NeedsRewrite(), c.Text)
		requireClean(t, c.Rewrite)
	}
}

func TestSynthesize_CompleteCriteriaAreNotRewritten(t *testing.T) {
	out := run(t, domain.Ticket{Body: "Acceptance Criteria:\n- When the shopper enters an invalid postcode then an error message displays"}, domain.CardStory)
	require.Len(t, out.Criteria, 1)
	assert.Empty(t, out.Criteria[0].Rewrite)
}

func TestSynthesize_GeneratesCriteriaWhenMissing(t *testing.T) {
	tests := []struct {
		name string
		body string
		min  int
		max  int
	}{
		{"absent", "As a librarian I want to renew loans online so that patrons avoid late fees", 5, 7},
		{"placeholder", "As a librarian I want to renew loans online so that patrons avoid late fees\nAcceptance Criteria: TBD", 5, 7},
		{"ui with design link", "As a librarian I want to renew loans from the loans page\nMockup: https://www.figma.com/file/loans", 7, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := run(t, domain.Ticket{Body: tt.body}, domain.CardStory)
			assert.GreaterOrEqual(t, len(out.Suggested), tt.min)
			assert.LessOrEqual(t, len(out.Suggested), tt.max)
			for _, s := range out.Suggested {
				requireClean(t, s)
				assert.True(t, synth.ContainsTerm(s, out.Terms), "no domain term in %q", s)
			}
		})
	}
}

func TestSynthesize_ScenarioCategoriesNeverEmpty(t *testing.T) {
	inputs := []string{
		"Acceptance Criteria:\n- Selecting a size updates the grid",
		"Acceptance Criteria:\n- Should match Figma",
		"Wishlist sharing",
		"Acceptance Criteria:\n- When an invalid code is entered then an error shows\n- If the API is unavailable then a retry message shows",
	}
	for _, raw := range inputs {
		out := run(t, domain.Ticket{Body: raw}, domain.CardStory)
		for _, cat := range domain.ScenarioCategories {
			assert.NotEmpty(t, out.Scenarios[cat], "category %s for %q", cat, raw)
		}
	}
}

func TestSynthesize_ScenariosReferenceCriteria(t *testing.T) {
	out := run(t, domain.Ticket{Body: "Acceptance Criteria:\n" +
		"- When an invalid promo code is entered then an error message displays\n" +
		"- If the pricing API times out then a retry banner shows"}, domain.CardStory)

	pos := out.Scenarios[domain.ScenarioPositive]
	require.GreaterOrEqual(t, len(pos), 2)
	require.NotNil(t, pos[0].SourceAC)
	assert.Equal(t, 0, *pos[0].SourceAC)
	require.NotNil(t, pos[1].SourceAC)
	assert.Equal(t, 1, *pos[1].SourceAC)

	neg := out.Scenarios[domain.ScenarioNegative]
	require.NotEmpty(t, neg)
	assert.Equal(t, 0, *neg[0].SourceAC)

	errs := out.Scenarios[domain.ScenarioError]
	require.NotEmpty(t, errs)
	found := false
	for _, s := range errs {
		if s.SourceAC != nil && *s.SourceAC == 1 {
			found = true
		}
	}
	assert.True(t, found, "timeout criterion should yield an error scenario")
}

func TestSynthesize_UIAddsAccessibilityScenarios(t *testing.T) {
	out := run(t, domain.Ticket{Body: "Acceptance Criteria:\n- Clicking the Save button shows a success toast"}, domain.CardStory)

	var tagged []domain.TestScenario
	for _, s := range out.Scenarios[domain.ScenarioPositive] {
		if s.Tag == "accessibility" {
			tagged = append(tagged, s)
		}
	}
	require.Len(t, tagged, 2)
	assert.Contains(t, tagged[0].Description, "Keyboard")
	assert.Contains(t, tagged[1].Description, "Screen reader")
}

func TestSynthesize_NonUIHasNoAccessibilityScenarios(t *testing.T) {
	out := run(t, domain.Ticket{Body: "Acceptance Criteria:\n- When the nightly export job completes then an audit record is stored successfully"}, domain.CardTask)
	for _, s := range out.Scenarios[domain.ScenarioPositive] {
		assert.NotEqual(t, "accessibility", s.Tag)
	}
}

func TestSynthesize_Deterministic(t *testing.T) {
	ticket := domain.Ticket{Title: "Coupon codes", Body: "Acceptance Criteria:\n- Coupon works correctly\n- Totals load fast"}
	first := run(t, ticket, domain.CardStory)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, run(t, ticket, domain.CardStory))
	}
}
