package criteria_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groomroom/groomroom/internal/domain"
	"github.com/groomroom/groomroom/internal/domain/criteria"
)

var vocab = domain.DefaultVocabulary()

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"bullets", "- one\n* two\n• three", []string{"one", "two", "three"}},
		{"numbered", "1. first\n2) second\na. third", []string{"first", "second", "third"}},
		{"plain lines", "first line\n\nsecond line", []string{"first line", "second line"}},
		{
			"gherkin continuation",
			"Scenario: happy path\nGiven a cart with items\nWhen the shopper pays\nThen an order confirmation shows\nAnd an email is sent",
			[]string{"Given a cart with items When the shopper pays Then an order confirmation shows And an email is sent"},
		},
		{"bulleted and is its own criterion", "- When saved then toast shows\n- And the list refreshes", []string{"When saved then toast shows", "And the list refreshes"}},
		{"rules are skipped", "- one\n---\n- two", []string{"one", "two"}},
		{"html list", "<ul><li>one</li><li>two</li></ul>", []string{"one", "two"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, criteria.Split(tt.in))
		})
	}
}

func TestAnalyze_StructuralFlags(t *testing.T) {
	cs := criteria.Analyze(
		"- When the shopper submits an invalid postcode then an error message displays\n"+
			"- Selecting a size updates the grid\n"+
			"- The banner is blue", vocab)
	require.Len(t, cs, 3)

	full := cs[0]
	assert.Equal(t, 0, full.Index)
	assert.True(t, full.HasTrigger)
	assert.False(t, full.TriggerImplicit)
	assert.True(t, full.HasExpectedOutcome)
	assert.True(t, full.HasPassFailClarity)
	assert.Empty(t, full.Vague)
	assert.False(t, full.NeedsRewrite())

	implicit := cs[1]
	assert.True(t, implicit.HasTrigger)
	assert.True(t, implicit.TriggerImplicit)
	assert.True(t, implicit.HasExpectedOutcome)
	assert.False(t, implicit.HasPassFailClarity)
	assert.True(t, implicit.NeedsRewrite())
	assert.Equal(t, []string{"pass/fail condition"}, implicit.MissingElements())

	bare := cs[2]
	assert.False(t, bare.HasTrigger)
	assert.False(t, bare.HasExpectedOutcome)
	assert.Equal(t, []string{"trigger", "expected outcome", "pass/fail condition"}, bare.MissingElements())
}

func TestAnalyze_OnEventIsImplicitTrigger(t *testing.T) {
	cs := criteria.Analyze("Result shows immediately on click", vocab)
	require.Len(t, cs, 1)
	assert.True(t, cs[0].HasTrigger)
	assert.True(t, cs[0].TriggerImplicit)
}

func TestAnalyze_VaguePhrases(t *testing.T) {
	tests := []struct {
		text   string
		kind   domain.VagueKind
		phrase string
	}{
		{"Should match Figma", domain.VagueMatchesDesign, "should match figma"},
		{"The page matches the design", domain.VagueMatchesDesign, "matches the design"},
		{"Checkout works correctly", domain.VagueWorksCorrectly, "works correctly"},
		{"Search works as expected", domain.VagueAsExpected, "works as expected"},
		{"Modal behaves as designed", domain.VagueAsDesigned, "as designed"},
		{"Totals are calculated properly", domain.VagueProperly, "properly"},
		{"Prices round correctly", domain.VagueCorrectly, "correctly"},
		{"The form is user-friendly", domain.VagueUserFriendly, "user-friendly"},
		{"Results load fast", domain.VagueFast, "fast"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			cs := criteria.Analyze(tt.text, vocab)
			require.Len(t, cs, 1)
			assert.Equal(t, tt.kind, cs[0].Vague)
			assert.Equal(t, tt.phrase, cs[0].VaguePhrase)
			assert.True(t, cs[0].NeedsRewrite())
		})
	}
}

func TestAnalyze_QualifiedCorrectlyIsNotVague(t *testing.T) {
	cs := criteria.Analyze("- Prices round correctly to 2 decimal places\n- Label renders correctly as \"Sold out\"", vocab)
	require.Len(t, cs, 2)
	assert.Empty(t, cs[0].Vague)
	assert.Empty(t, cs[1].Vague)
}

func TestAnalyze_WordBoundaries(t *testing.T) {
	cs := criteria.Analyze("Breakfast menu shows a success badge when opened", vocab)
	require.Len(t, cs, 1)
	assert.Empty(t, cs[0].Vague, "fast inside breakfast must not match")
}

func TestAnalyze_Empty(t *testing.T) {
	assert.Nil(t, criteria.Analyze("", vocab))
	assert.Nil(t, criteria.Analyze("\n - \n", vocab))
}
