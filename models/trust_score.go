package models

import (
	"time"

	"github.com/google/uuid"
)

// Dimension is a named axis of risk contributing to the trust score.
type Dimension string

const (
	DimensionIdentity   Dimension = "identity"
	DimensionBehavioral Dimension = "behavioral"
	DimensionDevice     Dimension = "device"
	DimensionDocument   Dimension = "document"
	DimensionBureau     Dimension = "bureau"

	// DimensionOverall is not a real dimension: triggers use it to match
	// against the aggregated overall score.
	DimensionOverall Dimension = "overall"
)

type ScoreCategory int

const (
	UnknownScoreCategory ScoreCategory = iota
	ScoreCategoryVeryLow
	ScoreCategoryLow
	ScoreCategoryMedium
	ScoreCategoryHigh
	ScoreCategoryVeryHigh
)

func (c ScoreCategory) String() string {
	switch c {
	case ScoreCategoryVeryLow:
		return "very_low"
	case ScoreCategoryLow:
		return "low"
	case ScoreCategoryMedium:
		return "medium"
	case ScoreCategoryHigh:
		return "high"
	case ScoreCategoryVeryHigh:
		return "very_high"
	}
	return "unknown"
}

func ScoreCategoryFrom(s string) ScoreCategory {
	switch s {
	case "very_low":
		return ScoreCategoryVeryLow
	case "low":
		return ScoreCategoryLow
	case "medium":
		return ScoreCategoryMedium
	case "high":
		return ScoreCategoryHigh
	case "very_high":
		return ScoreCategoryVeryHigh
	}
	return UnknownScoreCategory
}

// ScoreCategoryOf maps an overall score to its category. Boundaries are
// inclusive on the lower bound.
func ScoreCategoryOf(overallScore float64) ScoreCategory {
	switch {
	case overallScore >= 0.90:
		return ScoreCategoryVeryHigh
	case overallScore >= 0.75:
		return ScoreCategoryHigh
	case overallScore >= 0.50:
		return ScoreCategoryMedium
	case overallScore >= 0.30:
		return ScoreCategoryLow
	default:
		return ScoreCategoryVeryLow
	}
}

// TrustScoreResult is the snapshot of computed trust for one evaluation.
// It is passed by value into the adaptive scaling engine, which keeps no
// back-reference to it.
type TrustScoreResult struct {
	UserId          string
	TenantId        uuid.UUID
	Context         ScalingContext
	RegionCode      string
	OverallScore    float64
	DimensionScores map[Dimension]float64
	Category        ScoreCategory
	Confidence      float64
	Anomalies       []DetectedAnomaly
	CalculationTime time.Time
}
