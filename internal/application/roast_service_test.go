package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groomroom/groomroom/internal/application"
	"github.com/groomroom/groomroom/internal/domain"
)

func TestRoastService_LinesFollowGaps(t *testing.T) {
	svc := application.NewRoastService(stubConfig{}, nil)

	r, err := svc.Roast(context.Background(), ".", domain.Ticket{ID: "SHOP-7", Body: filterStory})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusNeedsRefinement, r.Status)
	assert.NotEmpty(t, r.Opener)
	require.NotEmpty(t, r.Lines)
	assert.LessOrEqual(t, len(r.Lines), 6)
	assert.Empty(t, r.PunchLine)
	assert.Contains(t, r.Lines[0], "Test Scenarios")
}

func TestRoastService_Deterministic(t *testing.T) {
	svc := application.NewRoastService(stubConfig{}, nil)
	ticket := domain.Ticket{Body: "Acceptance Criteria:\n- Should match Figma\n- Works as expected"}

	a, err := svc.Roast(context.Background(), ".", ticket)
	require.NoError(t, err)
	b, err := svc.Roast(context.Background(), ".", ticket)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, a.Markdown(), b.Markdown())
}

func TestRoastService_EmptyTicket(t *testing.T) {
	svc := application.NewRoastService(stubConfig{}, nil)

	r, err := svc.Roast(context.Background(), ".", domain.Ticket{})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNotReady, r.Status)
	assert.Equal(t, []string{"This ticket is a blank canvas. Minimalism, but for requirements."}, r.Lines)
	assert.Contains(t, r.Markdown(), "# EpicRoast: Untitled ticket")
}

func TestRoastService_PunchLine(t *testing.T) {
	enr := &stubEnricher{reply: "\n\"This ticket has more open questions than a quiz night.\"\nignored"}
	svc := application.NewRoastService(enabled(), enr)

	r, err := svc.Roast(context.Background(), ".", domain.Ticket{Body: filterStory})
	require.NoError(t, err)
	assert.Equal(t, "This ticket has more open questions than a quiz night.", r.PunchLine)
	assert.Equal(t, "roast", enr.last.Purpose)
	assert.Contains(t, r.Markdown(), "> This ticket has more open questions")
}

func TestRoastService_PunchLineUnavailable(t *testing.T) {
	enr := &stubEnricher{err: domain.ErrEnrichmentUnavailable}
	svc := application.NewRoastService(enabled(), enr)

	r, err := svc.Roast(context.Background(), ".", domain.Ticket{Body: filterStory})
	require.NoError(t, err)
	assert.Empty(t, r.PunchLine)
	assert.NotEmpty(t, r.Lines)
}

func TestRoastLines(t *testing.T) {
	gaps := []domain.Gap{
		{Kind: domain.GapMissingField, Name: "Brands"},
		{Kind: domain.GapMissingField, Name: "Components"},
		{Kind: domain.GapWeakCriterion, Name: "AC #2"},
		{Kind: domain.GapWeakCriterion},
	}

	lines := application.RoastLines(gaps)
	assert.Equal(t, []string{
		"Brands? Never heard of it, and neither has this ticket.",
		"The Components section went out for coffee and never came back.",
		"AC #2 reads like a horoscope: everyone can agree it came true.",
	}, lines)
	assert.Empty(t, application.RoastLines(nil))
}
