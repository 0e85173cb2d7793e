package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groomroom/groomroom/internal/domain"
)

func TestDoRResult_Coverage(t *testing.T) {
	k := domain.FieldUserStory
	tests := []struct {
		present int
		missing int
		want    int
	}{
		{0, 0, 0},
		{0, 10, 0},
		{10, 0, 100},
		{4, 6, 40},
		{1, 5, 17},
		{3, 8, 27},
		{2, 1, 67},
	}
	for _, tt := range tests {
		r := domain.DoRResult{}
		for i := 0; i < tt.present; i++ {
			r.Present = append(r.Present, k)
		}
		for i := 0; i < tt.missing; i++ {
			r.Missing = append(r.Missing, k)
		}
		assert.Equal(t, tt.want, r.Coverage(), "%d present, %d missing", tt.present, tt.missing)
	}
}

func TestDoRResult_JSONCarriesDerivedCoverage(t *testing.T) {
	r := domain.DoRResult{
		Required: []domain.FieldKey{domain.FieldUserStory, domain.FieldAcceptanceCriteria},
		Present:  []domain.FieldKey{domain.FieldUserStory},
		Missing:  []domain.FieldKey{domain.FieldAcceptanceCriteria},
	}
	data, err := json.Marshal(r)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.EqualValues(t, 50, out["coverage"])
	assert.Equal(t, []any{"user_story"}, out["present"])
}

func TestDoRResult_Lookups(t *testing.T) {
	r := domain.DoRResult{
		Missing:   []domain.FieldKey{domain.FieldBrands},
		WeakAreas: []domain.WeakArea{{Field: domain.FieldStoryPoints, Reason: "no numeric estimate"}},
	}
	assert.True(t, r.IsMissing(domain.FieldBrands))
	assert.False(t, r.IsMissing(domain.FieldStoryPoints))
	assert.True(t, r.IsWeak(domain.FieldStoryPoints))
	assert.False(t, r.IsWeak(domain.FieldBrands))
}

func TestStatus_RankAndLabel(t *testing.T) {
	assert.Greater(t, domain.StatusReady.Rank(), domain.StatusNeedsRefinement.Rank())
	assert.Greater(t, domain.StatusNeedsRefinement.Rank(), domain.StatusNotReady.Rank())
	assert.Equal(t, "Needs Refinement", domain.StatusNeedsRefinement.Label())
	assert.Equal(t, "Not Ready", domain.StatusNotReady.Label())
}

func TestParseMode(t *testing.T) {
	for _, m := range domain.ValidModes {
		got, err := domain.ParseMode(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	got, err := domain.ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, domain.ModeActionable, got)

	_, err = domain.ParseMode("verbose")
	assert.Error(t, err)
}

func TestAcceptanceCriterion_NeedsRewrite(t *testing.T) {
	complete := domain.AcceptanceCriterion{HasTrigger: true, HasExpectedOutcome: true, HasPassFailClarity: true}
	assert.False(t, complete.NeedsRewrite())
	assert.Empty(t, complete.MissingElements())

	vague := complete
	vague.Vague = domain.VagueFast
	assert.True(t, vague.NeedsRewrite())

	bare := domain.AcceptanceCriterion{HasExpectedOutcome: true}
	assert.True(t, bare.NeedsRewrite())
	assert.Equal(t, []string{"trigger", "pass/fail condition"}, bare.MissingElements())
}

func TestGap_IsConcrete(t *testing.T) {
	assert.True(t, domain.Gap{Kind: domain.GapMissingField, Name: "Brands"}.IsConcrete())
	assert.False(t, domain.Gap{Kind: domain.GapMissingField}.IsConcrete())
	assert.False(t, domain.Gap{Name: "Brands"}.IsConcrete())
}

func TestGroomReport_RecommendationsFor(t *testing.T) {
	r := domain.GroomReport{Recommendations: []domain.Recommendation{
		{Role: domain.RoleQA, Text: "a"},
		{Role: domain.RoleDevLead, Text: "b"},
		{Role: domain.RoleQA, Text: "c"},
	}}
	qa := r.RecommendationsFor(domain.RoleQA)
	require.Len(t, qa, 2)
	assert.Equal(t, "c", qa[1].Text)
	assert.Empty(t, r.RecommendationsFor(domain.RoleProductOwner))
	assert.Equal(t, "Product Owner", domain.RoleProductOwner.Label())
	assert.Equal(t, "Dev Lead", domain.RoleDevLead.Label())
}

func TestScenarioSet_Count(t *testing.T) {
	s := domain.ScenarioSet{
		domain.ScenarioPositive: {{Description: "a"}, {Description: "b"}},
		domain.ScenarioError:    {{Description: "c"}},
	}
	assert.Equal(t, 3, s.Count())
	assert.Zero(t, domain.ScenarioSet{}.Count())
}
