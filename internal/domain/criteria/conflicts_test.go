package criteria_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groomroom/groomroom/internal/domain/criteria"
)

func TestDetectConflicts_ImmediateVersusDelayed(t *testing.T) {
	cs := criteria.Analyze("- Result shows immediately on click\n- Result shows after a 2-second delay on click", vocab)
	conflicts := criteria.DetectConflicts(cs, vocab)

	require.Len(t, conflicts, 1)
	assert.Equal(t, 0, conflicts[0].A)
	assert.Equal(t, 1, conflicts[0].B)
	assert.Equal(t, "Result shows immediately on click", conflicts[0].TextA)
	assert.Equal(t, "Result shows after a 2-second delay on click", conflicts[0].TextB)
	assert.Contains(t, conflicts[0].Reason, "immediate")
}

func TestDetectConflicts_NumericDelayWithoutKeyword(t *testing.T) {
	cs := criteria.Analyze("- Order email is sent instantly after checkout\n- Order email is sent in 10 minutes after checkout", vocab)
	assert.Len(t, criteria.DetectConflicts(cs, vocab), 1)
}

func TestDetectConflicts_DifferentSubjectsDoNotConflict(t *testing.T) {
	cs := criteria.Analyze("- Cart badge updates immediately on add\n- Nightly report email is queued for the warehouse", vocab)
	assert.Empty(t, criteria.DetectConflicts(cs, vocab))
}

func TestDetectConflicts_ThresholdIsNotDelay(t *testing.T) {
	cs := criteria.Analyze("- Results show immediately on search\n- Results show within 2 seconds on search", vocab)
	assert.Empty(t, criteria.DetectConflicts(cs, vocab))
}

func TestDetectConflicts_OpposedOutcomes(t *testing.T) {
	cs := criteria.Analyze(
		"- When the form is valid the Save button is enabled\n"+
			"- When the form is valid the Save button is disabled", vocab)
	conflicts := criteria.DetectConflicts(cs, vocab)
	require.Len(t, conflicts, 1)
	assert.Contains(t, conflicts[0].Reason, `"enabled"`)
	assert.Contains(t, conflicts[0].Reason, `"disabled"`)
}

func TestDetectConflicts_DifferentConditionsFlipOutcome(t *testing.T) {
	cs := criteria.Analyze(
		"- When the form is valid the Save button is enabled\n"+
			"- When the form is invalid the Save button is disabled", vocab)
	assert.Empty(t, criteria.DetectConflicts(cs, vocab))
}

func TestDetectConflicts_MixedTimingIsNeutral(t *testing.T) {
	cs := criteria.Analyze(
		"- Toast shows immediately and the email is sent later\n"+
			"- Toast shows after a delay", vocab)
	assert.Empty(t, criteria.DetectConflicts(cs, vocab))
}

func TestDetectConflicts_FewerThanTwo(t *testing.T) {
	assert.Nil(t, criteria.DetectConflicts(nil, vocab))
	assert.Nil(t, criteria.DetectConflicts(criteria.Analyze("one", vocab), vocab))
}
