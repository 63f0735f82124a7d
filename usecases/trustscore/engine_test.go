package trustscore

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinelsec/sentinel-backend/models"
	"github.com/sentinelsec/sentinel-backend/repositories/clock"
)

func newTestEngine(t *testing.T) (TrustScoreEngine, *clock.Mock) {
	t.Helper()
	mock := clock.NewMock(time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC))
	return NewTrustScoreEngine(mock), mock
}

func TestCalculateScore_NoInputs(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.CalculateScore(CalculateScoreRequest{
		UserId:   "user_1",
		TenantId: uuid.New(),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNoDimensionInputs)
	assert.ErrorIs(t, err, models.BadParameterError)
}

func TestCalculateScore_RejectsOutOfRangeScore(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.CalculateScore(CalculateScoreRequest{
		UserId: "user_1",
		Dimensions: map[models.Dimension]DimensionInput{
			models.DimensionIdentity: {Score: 1.2, Weight: 1},
		},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, models.BadParameterError)
	assert.NotErrorIs(t, err, models.ErrNoDimensionInputs)
}

func TestCalculateScore_RejectsNegativeWeight(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.CalculateScore(CalculateScoreRequest{
		UserId: "user_1",
		Dimensions: map[models.Dimension]DimensionInput{
			models.DimensionIdentity: {Score: 0.5, Weight: -1},
		},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, models.BadParameterError)
}

func TestCalculateScore_WeightedMean(t *testing.T) {
	engine, mock := newTestEngine(t)

	result, err := engine.CalculateScore(CalculateScoreRequest{
		UserId:   "user_1",
		TenantId: uuid.New(),
		Dimensions: map[models.Dimension]DimensionInput{
			models.DimensionIdentity:   {Score: 0.9, Weight: 3},
			models.DimensionBehavioral: {Score: 0.5, Weight: 1},
		},
	})
	require.NoError(t, err)

	// (0.9*3 + 0.5*1) / 4
	assert.InDelta(t, 0.8, result.OverallScore, 1e-9)
	assert.Equal(t, models.ScoreCategoryHigh, result.Category)
	assert.Equal(t, mock.Now(), result.CalculationTime)
	assert.Len(t, result.DimensionScores, 2)
}

func TestCalculateScore_RenormalizesOverPresentDimensions(t *testing.T) {
	engine, _ := newTestEngine(t)

	// Only one dimension present: the overall score is that score, not a
	// mean dragged down by absent dimensions.
	result, err := engine.CalculateScore(CalculateScoreRequest{
		UserId: "user_1",
		Dimensions: map[models.Dimension]DimensionInput{
			models.DimensionDevice: {Score: 0.8, Weight: 2},
		},
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.8, result.OverallScore, 1e-9)
}

func TestCalculateScore_ZeroWeightCountsAsOne(t *testing.T) {
	engine, _ := newTestEngine(t)

	result, err := engine.CalculateScore(CalculateScoreRequest{
		UserId: "user_1",
		Dimensions: map[models.Dimension]DimensionInput{
			models.DimensionIdentity:   {Score: 0.2},
			models.DimensionBehavioral: {Score: 0.6},
		},
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.4, result.OverallScore, 1e-9)
}

func TestCalculateScore_CategoryBoundaries(t *testing.T) {
	engine, _ := newTestEngine(t)

	tests := []struct {
		score    float64
		expected models.ScoreCategory
	}{
		{0.95, models.ScoreCategoryVeryHigh},
		{0.90, models.ScoreCategoryVeryHigh},
		{0.75, models.ScoreCategoryHigh},
		{0.50, models.ScoreCategoryMedium},
		{0.30, models.ScoreCategoryLow},
		{0.29, models.ScoreCategoryVeryLow},
		{0, models.ScoreCategoryVeryLow},
	}
	for _, tt := range tests {
		result, err := engine.CalculateScore(CalculateScoreRequest{
			UserId: "user_1",
			Dimensions: map[models.Dimension]DimensionInput{
				models.DimensionOverall: {Score: tt.score, Weight: 1},
			},
		})
		require.NoError(t, err)
		assert.Equalf(t, tt.expected, result.Category, "score %f", tt.score)
	}
}

func TestCalculateScore_ConfidenceCompletenessOnly(t *testing.T) {
	engine, _ := newTestEngine(t)

	// No history: confidence is the completeness factor alone, 2 of the 5
	// expected dimensions present.
	result, err := engine.CalculateScore(CalculateScoreRequest{
		UserId: "user_1",
		Dimensions: map[models.Dimension]DimensionInput{
			models.DimensionIdentity: {Score: 0.5, Weight: 1},
			models.DimensionDevice:   {Score: 0.5, Weight: 1},
		},
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.4, result.Confidence, 1e-9)
}

func TestCalculateScore_ConfidenceMonotoneInSampleCount(t *testing.T) {
	engine, _ := newTestEngine(t)

	confidenceFor := func(sampleCount int) float64 {
		result, err := engine.CalculateScore(CalculateScoreRequest{
			UserId: "user_1",
			Dimensions: map[models.Dimension]DimensionInput{
				models.DimensionIdentity: {Score: 0.5, Weight: 1},
			},
			History: &ScoreHistory{SampleCount: sampleCount},
		})
		require.NoError(t, err)
		return result.Confidence
	}

	previous := confidenceFor(0)
	for _, count := range []int{5, 10, 99, 100, 999, 1000, 5000} {
		current := confidenceFor(count)
		assert.GreaterOrEqualf(t, current, previous, "sample count %d", count)
		previous = current
	}
}

func TestCalculateScore_ConsistencyFactor(t *testing.T) {
	engine, _ := newTestEngine(t)

	stable, err := engine.CalculateScore(CalculateScoreRequest{
		UserId: "user_1",
		Dimensions: map[models.Dimension]DimensionInput{
			models.DimensionIdentity: {Score: 0.5, Weight: 1},
		},
		History: &ScoreHistory{
			SampleCount:  1000,
			RecentScores: []float64{0.5, 0.5, 0.5},
		},
	})
	require.NoError(t, err)

	volatile, err := engine.CalculateScore(CalculateScoreRequest{
		UserId: "user_1",
		Dimensions: map[models.Dimension]DimensionInput{
			models.DimensionIdentity: {Score: 0.5, Weight: 1},
		},
		History: &ScoreHistory{
			SampleCount:  1000,
			RecentScores: []float64{0.1, 0.9, 0.1, 0.9},
		},
	})
	require.NoError(t, err)

	assert.Greater(t, stable.Confidence, volatile.Confidence)
}

func TestCalculateScore_AnomaliesCarriedNotScored(t *testing.T) {
	engine, _ := newTestEngine(t)

	anomaly := models.DetectedAnomaly{
		Type:               "impossible_travel",
		Severity:           models.AnomalySeverityHigh,
		AffectedDimensions: []models.Dimension{models.DimensionBehavioral},
		Confidence:         0.9,
	}

	without, err := engine.CalculateScore(CalculateScoreRequest{
		UserId: "user_1",
		Dimensions: map[models.Dimension]DimensionInput{
			models.DimensionBehavioral: {Score: 0.7, Weight: 1},
		},
	})
	require.NoError(t, err)

	with, err := engine.CalculateScore(CalculateScoreRequest{
		UserId: "user_1",
		Dimensions: map[models.Dimension]DimensionInput{
			models.DimensionBehavioral: {Score: 0.7, Weight: 1},
		},
		Anomalies: []models.DetectedAnomaly{anomaly},
	})
	require.NoError(t, err)

	assert.Equal(t, without.OverallScore, with.OverallScore)
	require.Len(t, with.Anomalies, 1)
	assert.Equal(t, anomaly.Type, with.Anomalies[0].Type)
}

func TestConsistencyFactor_NotAvailable(t *testing.T) {
	_, ok := consistencyFactor(nil)
	assert.False(t, ok)

	_, ok = consistencyFactor([]float64{0.5})
	assert.False(t, ok)

	_, ok = consistencyFactor([]float64{0, 0})
	assert.False(t, ok)
}

func TestCalculateScore_ErrorsCarryDetail(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.CalculateScore(CalculateScoreRequest{UserId: "user_1"})
	require.Error(t, err)
	assert.NotEmpty(t, errors.FlattenDetails(err))
}
