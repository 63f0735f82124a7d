package adaptive

import (
	"github.com/google/uuid"
	"github.com/hashicorp/go-set/v2"

	"github.com/sentinelsec/sentinel-backend/models"
)

// Candidate is one (policy, trigger) pair eligible to act on an incoming
// trust score result. Direction is the firing trigger's direction.
type Candidate struct {
	PolicyId  uuid.UUID
	TriggerId uuid.UUID
	Direction models.ScalingDirection
}

// EvaluateTriggers returns the deduplicated set of candidates for one trust
// score result against a rule snapshot. A candidate requires an enabled
// trigger whose scope matches and whose condition holds, plus an enabled
// policy that references it and whose own scope also matches.
func EvaluateTriggers(snapshot *RuleSnapshot, result models.TrustScoreResult) []Candidate {
	fired := set.New[uuid.UUID](0)
	directions := make(map[uuid.UUID]models.ScalingDirection)
	for _, trigger := range snapshot.Triggers {
		if !trigger.Enabled {
			continue
		}
		if !trigger.Scope.Matches(result) {
			continue
		}
		if !conditionHolds(trigger.Condition, result) {
			continue
		}
		fired.Insert(trigger.Id)
		directions[trigger.Id] = trigger.Direction
	}
	if fired.Empty() {
		return nil
	}

	candidates := set.New[Candidate](fired.Size())
	for _, policy := range snapshot.Policies {
		if !policy.Enabled {
			continue
		}
		if !policy.Scope.Matches(result) {
			continue
		}
		for _, triggerId := range policy.TriggerIds {
			if !fired.Contains(triggerId) {
				continue
			}
			candidates.Insert(Candidate{
				PolicyId:  policy.Id,
				TriggerId: triggerId,
				Direction: directions[triggerId],
			})
		}
	}
	if candidates.Empty() {
		return nil
	}
	return candidates.Slice()
}

func conditionHolds(condition models.TriggerCondition, result models.TrustScoreResult) bool {
	switch condition.Kind {
	case models.TriggerConditionThreshold:
		if condition.Threshold == nil {
			return false
		}
		value, ok := dimensionValue(result, condition.Threshold.Dimension)
		if !ok {
			return false
		}
		return condition.Threshold.Comparator.Compare(value, condition.Threshold.Value)

	case models.TriggerConditionAnomaly:
		if condition.Anomaly == nil {
			return false
		}
		return anomalyCount(result, condition.Anomaly.Dimension) >= max(condition.Anomaly.MinCount, 1)
	}
	return false
}

// dimensionValue resolves the score a threshold condition compares against.
// A dimension absent from the result never satisfies a condition.
func dimensionValue(result models.TrustScoreResult, dimension models.Dimension) (float64, bool) {
	if dimension == models.DimensionOverall {
		return result.OverallScore, true
	}
	value, ok := result.DimensionScores[dimension]
	return value, ok
}

func anomalyCount(result models.TrustScoreResult, dimension models.Dimension) int {
	count := 0
	for _, anomaly := range result.Anomalies {
		if dimension == "" || dimension == models.DimensionOverall || anomaly.Affects(dimension) {
			count++
		}
	}
	return count
}
