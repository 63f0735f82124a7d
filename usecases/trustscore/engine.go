package trustscore

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/sentinelsec/sentinel-backend/models"
	"github.com/sentinelsec/sentinel-backend/repositories/clock"
)

// DimensionInput is one upstream risk signal: a raw score with its declared
// weight. A zero weight means "unweighted" and counts as 1.
type DimensionInput struct {
	Score  float64
	Weight float64
}

// ScoreHistory is the optional read-only history the engine can use to
// qualify its confidence. It never feeds the score itself.
type ScoreHistory struct {
	SampleCount  int
	RecentScores []float64
}

type CalculateScoreRequest struct {
	UserId     string
	TenantId   uuid.UUID
	Context    models.ScalingContext
	RegionCode string
	Dimensions map[models.Dimension]DimensionInput
	History    *ScoreHistory
	Anomalies  []models.DetectedAnomaly
}

var defaultExpectedDimensions = []models.Dimension{
	models.DimensionIdentity,
	models.DimensionBehavioral,
	models.DimensionDevice,
	models.DimensionDocument,
	models.DimensionBureau,
}

// TrustScoreEngine aggregates per-dimension risk results into one
// TrustScoreResult. CalculateScore is a pure function over its inputs:
// persisting the result is the caller's responsibility.
type TrustScoreEngine struct {
	clock              clock.Clock
	expectedDimensions []models.Dimension
}

func NewTrustScoreEngine(c clock.Clock) TrustScoreEngine {
	return TrustScoreEngine{
		clock:              c,
		expectedDimensions: defaultExpectedDimensions,
	}
}

func (engine TrustScoreEngine) CalculateScore(req CalculateScoreRequest) (models.TrustScoreResult, error) {
	if len(req.Dimensions) == 0 {
		return models.TrustScoreResult{}, errors.WithDetail(models.ErrNoDimensionInputs,
			"empty dimension input map")
	}

	dimensionScores := make(map[models.Dimension]float64, len(req.Dimensions))
	var weightedSum, weightSum float64
	for dimension, input := range req.Dimensions {
		if input.Score < 0 || input.Score > 1 {
			return models.TrustScoreResult{}, errors.Wrapf(models.BadParameterError,
				"dimension %q score %f out of [0,1]", dimension, input.Score)
		}
		if input.Weight < 0 {
			return models.TrustScoreResult{}, errors.Wrapf(models.BadParameterError,
				"dimension %q has negative weight", dimension)
		}

		weight := input.Weight
		if weight == 0 {
			weight = 1
		}

		dimensionScores[dimension] = input.Score
		weightedSum += input.Score * weight
		weightSum += weight
	}

	// The mean is renormalized over the dimensions actually present:
	// a missing dimension does not drag the average toward zero.
	overallScore := weightedSum / weightSum

	return models.TrustScoreResult{
		UserId:          req.UserId,
		TenantId:        req.TenantId,
		Context:         req.Context,
		RegionCode:      req.RegionCode,
		OverallScore:    overallScore,
		DimensionScores: dimensionScores,
		Category:        models.ScoreCategoryOf(overallScore),
		Confidence:      engine.computeConfidence(dimensionScores, req.History),
		Anomalies:       req.Anomalies,
		CalculationTime: engine.clock.Now(),
	}, nil
}

// computeConfidence is the unweighted mean of the confidence factors that
// are available. An absent factor is excluded from the mean, it never
// defaults to zero.
func (engine TrustScoreEngine) computeConfidence(
	dimensionScores map[models.Dimension]float64,
	history *ScoreHistory,
) float64 {
	factors := []float64{engine.completenessFactor(dimensionScores)}

	if history != nil {
		factors = append(factors, sampleAdequacyFactor(history.SampleCount))

		if consistency, ok := consistencyFactor(history.RecentScores); ok {
			factors = append(factors, consistency)
		}
	}

	var sum float64
	for _, f := range factors {
		sum += f
	}
	return sum / float64(len(factors))
}

func (engine TrustScoreEngine) completenessFactor(dimensionScores map[models.Dimension]float64) float64 {
	present := 0
	for _, dimension := range engine.expectedDimensions {
		if _, ok := dimensionScores[dimension]; ok {
			present++
		}
	}
	return min(float64(present)/float64(len(engine.expectedDimensions)), 1.0)
}

// sampleAdequacyFactor discretizes the amount of supporting evidence into
// bands. Monotone in the sample count.
func sampleAdequacyFactor(sampleCount int) float64 {
	switch {
	case sampleCount >= 1000:
		return 1.0
	case sampleCount >= 100:
		return 0.75
	case sampleCount >= 10:
		return 0.5
	default:
		return 0.25
	}
}

// consistencyFactor is the inverse of the coefficient of variation across
// repeated recent measurements, clamped to [0,1]. It needs at least two
// samples with a non-zero mean.
func consistencyFactor(recentScores []float64) (float64, bool) {
	if len(recentScores) < 2 {
		return 0, false
	}

	var sum float64
	for _, s := range recentScores {
		sum += s
	}
	mean := sum / float64(len(recentScores))
	if mean == 0 {
		return 0, false
	}

	var sumSquares float64
	for _, s := range recentScores {
		sumSquares += (s - mean) * (s - mean)
	}
	stddev := math.Sqrt(sumSquares / float64(len(recentScores)))

	return max(0, min(1, 1-stddev/mean)), true
}
