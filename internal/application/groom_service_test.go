package application_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groomroom/groomroom/internal/application"
	"github.com/groomroom/groomroom/internal/domain"
)

const filterStory = "As a shopper, I want to filter products by size, so that I find items faster.\n" +
	"Acceptance Criteria:\n- Selecting a size updates the grid"

type stubConfig struct {
	cfg domain.Config
	err error
}

func (s stubConfig) Load(string) (domain.Config, error) { return s.cfg, s.err }

func enabled() stubConfig {
	return stubConfig{cfg: domain.Config{Enrichment: domain.EnrichmentConfig{Enabled: true, TimeoutSeconds: 1}}}
}

type stubEnricher struct {
	reply string
	err   error
	delay time.Duration
	calls atomic.Int32
	last  domain.PromptContext
}

func (s *stubEnricher) Enrich(ctx context.Context, pc domain.PromptContext) (string, error) {
	s.calls.Add(1)
	s.last = pc
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.reply, s.err
}

func TestGroomService_AnalyzeWithoutEnricher(t *testing.T) {
	svc := application.NewGroomService(stubConfig{}, nil)

	r, err := svc.Analyze(context.Background(), application.Request{Ticket: domain.Ticket{Body: filterStory}})
	require.NoError(t, err)

	assert.Equal(t, domain.CardStory, r.CardType)
	assert.Equal(t, domain.StatusNeedsRefinement, r.Status)
	assert.Equal(t, domain.ModeActionable, r.Mode)
	require.NotNil(t, r.Enrichment)
	assert.Equal(t, domain.EnrichmentDisabled, r.Enrichment.Status)
}

func TestGroomService_ConfiguredModeIsDefault(t *testing.T) {
	svc := application.NewGroomService(stubConfig{cfg: domain.Config{Mode: domain.ModeSummary}}, nil)

	r, err := svc.Analyze(context.Background(), application.Request{Ticket: domain.Ticket{Body: filterStory}})
	require.NoError(t, err)
	assert.Equal(t, domain.ModeSummary, r.Mode)

	r, err = svc.Analyze(context.Background(), application.Request{Ticket: domain.Ticket{Body: filterStory}, Mode: domain.ModeInsight})
	require.NoError(t, err)
	assert.Equal(t, domain.ModeInsight, r.Mode)
}

func TestGroomService_ConfigErrorIsReturned(t *testing.T) {
	svc := application.NewGroomService(stubConfig{err: errors.New("bad yaml")}, nil)

	_, err := svc.Analyze(context.Background(), application.Request{Ticket: domain.Ticket{Body: filterStory}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestGroomService_EnrichmentDisabledInConfigSkipsCall(t *testing.T) {
	enr := &stubEnricher{reply: `{"notes":["x"]}`}
	svc := application.NewGroomService(stubConfig{}, enr)

	r, err := svc.Analyze(context.Background(), application.Request{Ticket: domain.Ticket{Body: filterStory}})
	require.NoError(t, err)
	assert.Equal(t, domain.EnrichmentDisabled, r.Enrichment.Status)
	assert.Zero(t, enr.calls.Load())
}

func TestGroomService_EnrichmentApplied(t *testing.T) {
	enr := &stubEnricher{reply: "Here you go:\n```json\n" +
		`{"story_rewrite":"As a shopper, I want to filter the grid by size, so that I find items faster.",` +
		`"criteria":["Given a size is selected, when the grid reloads, then only that size displays"],` +
		`"notes":["Confirm the sold-out behaviour"]}` + "\n```"}
	svc := application.NewGroomService(enabled(), enr)

	r, err := svc.Analyze(context.Background(), application.Request{Ticket: domain.Ticket{Body: filterStory}})
	require.NoError(t, err)

	e := r.Enrichment
	require.NotNil(t, e)
	assert.Equal(t, domain.EnrichmentApplied, e.Status)
	assert.Contains(t, e.StoryRewrite, "size")
	assert.Len(t, e.AdditionalCriteria, 1)
	assert.Equal(t, []string{"Confirm the sold-out behaviour"}, e.Notes)

	assert.Equal(t, "groom", enr.last.Purpose)
	assert.Equal(t, domain.CardStory, enr.last.CardType)
	assert.Contains(t, enr.last.MissingFields, "Test Scenarios")
}

func TestGroomService_EnrichmentNeverChangesRuleBasedFields(t *testing.T) {
	plain := application.NewGroomService(stubConfig{}, nil)
	enr := &stubEnricher{reply: `{"story_rewrite":"As a shopper, I want size filters on the grid.","notes":["n"]}`}
	enriched := application.NewGroomService(enabled(), enr)

	a, err := plain.Analyze(context.Background(), application.Request{Ticket: domain.Ticket{Body: filterStory}})
	require.NoError(t, err)
	b, err := enriched.Analyze(context.Background(), application.Request{Ticket: domain.Ticket{Body: filterStory}})
	require.NoError(t, err)

	assert.Equal(t, a.Status, b.Status)
	assert.Equal(t, a.StoryRewrite, b.StoryRewrite)
	assert.Equal(t, a.Criteria, b.Criteria)
	assert.Equal(t, a.Scenarios, b.Scenarios)
	assert.Equal(t, a.Recommendations, b.Recommendations)
}

func TestGroomService_EnrichmentRejected(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"not json", "I think this ticket is fine."},
		{"unknown property", `{"verdict":"ok"}`},
		{"empty object", `{}`},
		{"wrong type", `{"criteria":"one"}`},
		{"story without domain terms", `{"story_rewrite":"As a user, I want things to be better."}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := application.NewGroomService(enabled(), &stubEnricher{reply: tt.reply})

			r, err := svc.Analyze(context.Background(), application.Request{Ticket: domain.Ticket{Body: filterStory}})
			require.NoError(t, err)
			assert.Equal(t, domain.EnrichmentRejected, r.Enrichment.Status)
			assert.NotEmpty(t, r.Enrichment.Detail)
			assert.Empty(t, r.Enrichment.StoryRewrite)
		})
	}
}

func TestGroomService_EnrichmentUnavailable(t *testing.T) {
	t.Run("error", func(t *testing.T) {
		enr := &stubEnricher{err: fmt.Errorf("calling model: %w", domain.ErrEnrichmentUnavailable)}
		svc := application.NewGroomService(enabled(), enr)

		r, err := svc.Analyze(context.Background(), application.Request{Ticket: domain.Ticket{Body: filterStory}})
		require.NoError(t, err)
		assert.Equal(t, domain.EnrichmentUnavailable, r.Enrichment.Status)
		assert.Equal(t, domain.StatusNeedsRefinement, r.Status)
	})

	t.Run("timeout", func(t *testing.T) {
		enr := &stubEnricher{reply: `{"notes":["late"]}`, delay: 3 * time.Second}
		svc := application.NewGroomService(enabled(), enr)

		start := time.Now()
		r, err := svc.Analyze(context.Background(), application.Request{Ticket: domain.Ticket{Body: filterStory}})
		require.NoError(t, err)
		assert.Less(t, time.Since(start), 3*time.Second)
		assert.Equal(t, domain.EnrichmentUnavailable, r.Enrichment.Status)
	})
}

func TestGroomService_EmptyTicketSkipsEnrichment(t *testing.T) {
	enr := &stubEnricher{reply: `{"notes":["x"]}`}
	svc := application.NewGroomService(enabled(), enr)

	r, err := svc.Analyze(context.Background(), application.Request{Ticket: domain.Ticket{}})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNotReady, r.Status)
	assert.Equal(t, domain.EnrichmentDisabled, r.Enrichment.Status)
	assert.Zero(t, enr.calls.Load())
}

func TestGroomService_AnalyzeBatchKeepsInputOrder(t *testing.T) {
	svc := application.NewGroomService(stubConfig{}, nil)
	tickets := []domain.Ticket{
		{ID: "A-1", Body: filterStory},
		{ID: "A-2"},
		{ID: "A-3", Body: "Current Behaviour: crash\nSteps to Reproduce:\n1. open\n2. tap"},
		{ID: "A-4", Title: "Update the export job"},
	}

	results, err := svc.AnalyzeBatch(context.Background(), ".", tickets, domain.ModeSummary, 3)
	require.NoError(t, err)
	require.Len(t, results, len(tickets))
	for i, r := range results {
		assert.Equal(t, tickets[i].ID, r.TicketID)
		assert.Equal(t, domain.ModeSummary, r.Mode)
	}
	assert.Equal(t, domain.StatusNotReady, results[1].Status)
	assert.Equal(t, domain.CardBug, results[2].CardType)
}

func TestGroomService_AnalyzeBatchMatchesSingleAnalysis(t *testing.T) {
	svc := application.NewGroomService(stubConfig{}, nil)
	tickets := []domain.Ticket{{ID: "B-1", Body: filterStory}, {ID: "B-2", Body: "Acceptance Criteria:\n- Works as expected"}}

	batch, err := svc.AnalyzeBatch(context.Background(), ".", tickets, "", 0)
	require.NoError(t, err)
	for i, tk := range tickets {
		single, err := svc.Analyze(context.Background(), application.Request{Ticket: tk})
		require.NoError(t, err)
		assert.Equal(t, single, batch[i])
	}
}

func TestGroomService_AnalyzeBatchCancelled(t *testing.T) {
	svc := application.NewGroomService(stubConfig{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.AnalyzeBatch(ctx, ".", []domain.Ticket{{Body: filterStory}}, "", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
