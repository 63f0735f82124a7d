package dto

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/sentinelsec/sentinel-backend/models"
	"github.com/sentinelsec/sentinel-backend/pure_utils"
	"github.com/sentinelsec/sentinel-backend/usecases/trustscore"
	"github.com/sentinelsec/sentinel-backend/utils"
)

type DimensionInputBody struct {
	Score  float64 `json:"score" binding:"min=0,max=1"`
	Weight float64 `json:"weight" binding:"omitempty,gt=0"`
}

type AnomalyBody struct {
	Type               string    `json:"type" binding:"required"`
	Severity           string    `json:"severity" binding:"required,oneof=low medium high critical"`
	AffectedDimensions []string  `json:"affected_dimensions"`
	Confidence         float64   `json:"confidence" binding:"min=0,max=1"`
	DetectionTime      time.Time `json:"detection_time"`
}

type ScoreHistoryBody struct {
	SampleCount  int       `json:"sample_count" binding:"min=0"`
	RecentScores []float64 `json:"recent_scores" binding:"omitempty,dive,min=0,max=1"`
}

type CreateTrustScoreBody struct {
	UserId     string                        `json:"user_id" binding:"required"`
	TenantId   string                        `json:"tenant_id" binding:"required,uuid"`
	ContextId  string                        `json:"context_id"`
	RegionCode string                        `json:"region_code"`
	Dimensions map[string]DimensionInputBody `json:"dimensions" binding:"required"`
	History    *ScoreHistoryBody             `json:"history"`
	Anomalies  []AnomalyBody                 `json:"anomalies" binding:"omitempty,dive"`
}

var knownDimensions = map[models.Dimension]struct{}{
	models.DimensionIdentity:   {},
	models.DimensionBehavioral: {},
	models.DimensionDevice:     {},
	models.DimensionDocument:   {},
	models.DimensionBureau:     {},
}

func adaptDimension(s string) (models.Dimension, error) {
	dimension := models.Dimension(s)
	if _, ok := knownDimensions[dimension]; !ok {
		return "", errors.Wrapf(models.BadParameterError, "unknown dimension %q", s)
	}
	return dimension, nil
}

func AdaptCalculateScoreRequest(body CreateTrustScoreBody) (trustscore.CalculateScoreRequest, error) {
	tenantId, err := uuid.Parse(body.TenantId)
	if err != nil {
		return trustscore.CalculateScoreRequest{},
			errors.Wrap(models.BadParameterError, "invalid tenant id")
	}

	dimensions := make(map[models.Dimension]trustscore.DimensionInput, len(body.Dimensions))
	for name, input := range body.Dimensions {
		dimension, err := adaptDimension(name)
		if err != nil {
			return trustscore.CalculateScoreRequest{}, err
		}
		dimensions[dimension] = trustscore.DimensionInput{
			Score:  input.Score,
			Weight: input.Weight,
		}
	}

	anomalies, err := pure_utils.MapErr(body.Anomalies, adaptAnomaly)
	if err != nil {
		return trustscore.CalculateScoreRequest{}, err
	}

	scalingContext := models.DefaultScalingContext()
	if body.ContextId != "" {
		scalingContext = models.NamedScalingContext(body.ContextId)
	}

	var history *trustscore.ScoreHistory
	if body.History != nil {
		history = &trustscore.ScoreHistory{
			SampleCount:  body.History.SampleCount,
			RecentScores: body.History.RecentScores,
		}
	}

	return trustscore.CalculateScoreRequest{
		UserId:     body.UserId,
		TenantId:   tenantId,
		Context:    scalingContext,
		RegionCode: body.RegionCode,
		Dimensions: dimensions,
		History:    history,
		Anomalies:  anomalies,
	}, nil
}

func adaptAnomaly(body AnomalyBody) (models.DetectedAnomaly, error) {
	affected := make([]models.Dimension, 0, len(body.AffectedDimensions))
	for _, name := range body.AffectedDimensions {
		dimension, err := adaptDimension(name)
		if err != nil {
			return models.DetectedAnomaly{}, err
		}
		affected = append(affected, dimension)
	}

	return models.DetectedAnomaly{
		Type:               body.Type,
		Severity:           models.AnomalySeverityFrom(body.Severity),
		AffectedDimensions: affected,
		Confidence:         body.Confidence,
		DetectionTime:      body.DetectionTime,
	}, nil
}

type TrustScoreDto struct {
	UserId          string             `json:"user_id"`
	TenantId        string             `json:"tenant_id"`
	ContextId       string             `json:"context_id,omitempty"`
	RegionCode      string             `json:"region_code,omitempty"`
	OverallScore    float64            `json:"overall_score"`
	DimensionScores map[string]float64 `json:"dimension_scores"`
	Category        string             `json:"category"`
	Confidence      float64            `json:"confidence"`
	CalculationTime time.Time          `json:"calculation_time"`
}

func AdaptTrustScoreDto(result models.TrustScoreResult) TrustScoreDto {
	dimensionScores := make(map[string]float64, len(result.DimensionScores))
	for dimension, score := range result.DimensionScores {
		dimensionScores[string(dimension)] = score
	}

	contextId, _ := result.Context.Name()

	return TrustScoreDto{
		UserId:          result.UserId,
		TenantId:        result.TenantId.String(),
		ContextId:       contextId,
		RegionCode:      result.RegionCode,
		OverallScore:    result.OverallScore,
		DimensionScores: dimensionScores,
		Category:        result.Category.String(),
		Confidence:      result.Confidence,
		CalculationTime: result.CalculationTime,
	}
}

type TrustScoreEvaluationDto struct {
	TrustScore   TrustScoreDto    `json:"trust_score"`
	ScalingEvent *ScalingEventDto `json:"scaling_event,omitempty"`
}

func AdaptTrustScoreEvaluationDto(result models.TrustScoreResult,
	event *models.ScalingEvent,
) TrustScoreEvaluationDto {
	dto := TrustScoreEvaluationDto{
		TrustScore: AdaptTrustScoreDto(result),
	}
	if event != nil {
		dto.ScalingEvent = utils.Ptr(AdaptScalingEventDto(*event))
	}
	return dto
}
