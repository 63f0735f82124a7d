package adaptive

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/sentinelsec/sentinel-backend/models"
	"github.com/sentinelsec/sentinel-backend/utils"
)

var (
	testTenantId      = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	testOtherTenantId = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	testTriggerId     = uuid.MustParse("00000000-0000-0000-0000-000000000010")
	testPolicyId      = uuid.MustParse("00000000-0000-0000-0000-000000000020")
)

func thresholdTrigger(id uuid.UUID, dimension models.Dimension, comparator models.Comparator,
	value float64, direction models.ScalingDirection,
) models.ScalingTrigger {
	return models.ScalingTrigger{
		Id:      id,
		Enabled: true,
		Condition: models.TriggerCondition{
			Kind: models.TriggerConditionThreshold,
			Threshold: &models.ThresholdCondition{
				Dimension:  dimension,
				Comparator: comparator,
				Value:      value,
			},
		},
		Direction: direction,
	}
}

func policyFor(id uuid.UUID, priority int, triggerIds ...uuid.UUID) models.ScalingPolicy {
	return models.ScalingPolicy{
		Id:         id,
		Enabled:    true,
		Priority:   priority,
		TriggerIds: triggerIds,
		Adjustments: map[models.ScalingDirection]map[models.SecurityMechanism]models.SecurityLevel{
			models.ScalingDirectionUp: {
				models.MechanismAuthFactors: models.SecurityLevelHigh,
			},
			models.ScalingDirectionDown: {
				models.MechanismAuthFactors: models.SecurityLevelLow,
			},
		},
	}
}

func snapshotOf(triggers []models.ScalingTrigger, policies []models.ScalingPolicy) *RuleSnapshot {
	return NewRuleSnapshot(triggers, policies,
		models.AdaptiveConfig{Enabled: true}, time.Now())
}

func lowScoreResult(score float64) models.TrustScoreResult {
	return models.TrustScoreResult{
		UserId:       "user_1",
		TenantId:     testTenantId,
		OverallScore: score,
		DimensionScores: map[models.Dimension]float64{
			models.DimensionIdentity: score,
		},
		Category: models.ScoreCategoryOf(score),
	}
}

func TestEvaluateTriggers_ThresholdFires(t *testing.T) {
	snapshot := snapshotOf(
		[]models.ScalingTrigger{
			thresholdTrigger(testTriggerId, models.DimensionOverall, models.ComparatorLt, 0.5,
				models.ScalingDirectionUp),
		},
		[]models.ScalingPolicy{policyFor(testPolicyId, 1, testTriggerId)},
	)

	candidates := EvaluateTriggers(snapshot, lowScoreResult(0.3))

	assert.Equal(t, []Candidate{{
		PolicyId:  testPolicyId,
		TriggerId: testTriggerId,
		Direction: models.ScalingDirectionUp,
	}}, candidates)
}

func TestEvaluateTriggers_ThresholdNotMet(t *testing.T) {
	snapshot := snapshotOf(
		[]models.ScalingTrigger{
			thresholdTrigger(testTriggerId, models.DimensionOverall, models.ComparatorLt, 0.5,
				models.ScalingDirectionUp),
		},
		[]models.ScalingPolicy{policyFor(testPolicyId, 1, testTriggerId)},
	)

	assert.Nil(t, EvaluateTriggers(snapshot, lowScoreResult(0.7)))
}

func TestEvaluateTriggers_DisabledTriggerIgnored(t *testing.T) {
	trigger := thresholdTrigger(testTriggerId, models.DimensionOverall, models.ComparatorLt, 0.5,
		models.ScalingDirectionUp)
	trigger.Enabled = false

	snapshot := snapshotOf(
		[]models.ScalingTrigger{trigger},
		[]models.ScalingPolicy{policyFor(testPolicyId, 1, testTriggerId)},
	)

	assert.Nil(t, EvaluateTriggers(snapshot, lowScoreResult(0.3)))
}

func TestEvaluateTriggers_TriggerScopeMismatch(t *testing.T) {
	trigger := thresholdTrigger(testTriggerId, models.DimensionOverall, models.ComparatorLt, 0.5,
		models.ScalingDirectionUp)
	trigger.Scope = models.RuleScope{TenantId: utils.Ptr(testOtherTenantId)}

	snapshot := snapshotOf(
		[]models.ScalingTrigger{trigger},
		[]models.ScalingPolicy{policyFor(testPolicyId, 1, testTriggerId)},
	)

	assert.Nil(t, EvaluateTriggers(snapshot, lowScoreResult(0.3)))
}

func TestEvaluateTriggers_PolicyScopeMismatch(t *testing.T) {
	policy := policyFor(testPolicyId, 1, testTriggerId)
	policy.Scope = models.RuleScope{RegionCode: utils.Ptr("eu-west")}

	snapshot := snapshotOf(
		[]models.ScalingTrigger{
			thresholdTrigger(testTriggerId, models.DimensionOverall, models.ComparatorLt, 0.5,
				models.ScalingDirectionUp),
		},
		[]models.ScalingPolicy{policy},
	)

	result := lowScoreResult(0.3)
	result.RegionCode = "us-east"

	assert.Nil(t, EvaluateTriggers(snapshot, result))
}

func TestEvaluateTriggers_MissingDimensionNeverFires(t *testing.T) {
	snapshot := snapshotOf(
		[]models.ScalingTrigger{
			thresholdTrigger(testTriggerId, models.DimensionBureau, models.ComparatorLt, 0.5,
				models.ScalingDirectionUp),
		},
		[]models.ScalingPolicy{policyFor(testPolicyId, 1, testTriggerId)},
	)

	// The result has no bureau score at all: even "lt 0.5" must not match.
	assert.Nil(t, EvaluateTriggers(snapshot, lowScoreResult(0.1)))
}

func TestEvaluateTriggers_PerDimensionThreshold(t *testing.T) {
	snapshot := snapshotOf(
		[]models.ScalingTrigger{
			thresholdTrigger(testTriggerId, models.DimensionIdentity, models.ComparatorLe, 0.3,
				models.ScalingDirectionUp),
		},
		[]models.ScalingPolicy{policyFor(testPolicyId, 1, testTriggerId)},
	)

	assert.Len(t, EvaluateTriggers(snapshot, lowScoreResult(0.3)), 1)
	assert.Nil(t, EvaluateTriggers(snapshot, lowScoreResult(0.31)))
}

func TestEvaluateTriggers_AnomalyCondition(t *testing.T) {
	trigger := models.ScalingTrigger{
		Id:      testTriggerId,
		Enabled: true,
		Condition: models.TriggerCondition{
			Kind: models.TriggerConditionAnomaly,
			Anomaly: &models.AnomalyCondition{
				Dimension: models.DimensionBehavioral,
				MinCount:  2,
			},
		},
		Direction: models.ScalingDirectionUp,
	}
	snapshot := snapshotOf(
		[]models.ScalingTrigger{trigger},
		[]models.ScalingPolicy{policyFor(testPolicyId, 1, testTriggerId)},
	)

	behavioral := models.DetectedAnomaly{
		Type:               "velocity",
		Severity:           models.AnomalySeverityMedium,
		AffectedDimensions: []models.Dimension{models.DimensionBehavioral},
	}
	device := models.DetectedAnomaly{
		Type:               "new_device",
		Severity:           models.AnomalySeverityLow,
		AffectedDimensions: []models.Dimension{models.DimensionDevice},
	}

	result := lowScoreResult(0.8)
	result.Anomalies = []models.DetectedAnomaly{behavioral, device}
	assert.Nil(t, EvaluateTriggers(snapshot, result),
		"one behavioral anomaly is below min count 2")

	result.Anomalies = []models.DetectedAnomaly{behavioral, behavioral, device}
	assert.Len(t, EvaluateTriggers(snapshot, result), 1)
}

func TestEvaluateTriggers_PolicyMustReferenceTrigger(t *testing.T) {
	unrelatedTriggerId := uuid.MustParse("00000000-0000-0000-0000-000000000011")

	snapshot := snapshotOf(
		[]models.ScalingTrigger{
			thresholdTrigger(testTriggerId, models.DimensionOverall, models.ComparatorLt, 0.5,
				models.ScalingDirectionUp),
		},
		[]models.ScalingPolicy{policyFor(testPolicyId, 1, unrelatedTriggerId)},
	)

	assert.Nil(t, EvaluateTriggers(snapshot, lowScoreResult(0.3)))
}

func TestEvaluateTriggers_DuplicateReferencesDeduplicated(t *testing.T) {
	snapshot := snapshotOf(
		[]models.ScalingTrigger{
			thresholdTrigger(testTriggerId, models.DimensionOverall, models.ComparatorLt, 0.5,
				models.ScalingDirectionUp),
		},
		[]models.ScalingPolicy{policyFor(testPolicyId, 1, testTriggerId, testTriggerId)},
	)

	assert.Len(t, EvaluateTriggers(snapshot, lowScoreResult(0.3)), 1)
}

func TestEvaluateTriggers_MalformedConditionNeverFires(t *testing.T) {
	trigger := models.ScalingTrigger{
		Id:        testTriggerId,
		Enabled:   true,
		Condition: models.TriggerCondition{Kind: models.TriggerConditionThreshold},
		Direction: models.ScalingDirectionUp,
	}
	snapshot := snapshotOf(
		[]models.ScalingTrigger{trigger},
		[]models.ScalingPolicy{policyFor(testPolicyId, 1, testTriggerId)},
	)

	assert.Nil(t, EvaluateTriggers(snapshot, lowScoreResult(0.3)))
}
