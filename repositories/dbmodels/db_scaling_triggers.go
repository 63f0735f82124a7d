package dbmodels

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/guregu/null/v5"

	"github.com/sentinelsec/sentinel-backend/models"
	"github.com/sentinelsec/sentinel-backend/utils"
)

type DbScalingTrigger struct {
	Id              uuid.UUID       `db:"id"`
	Enabled         bool            `db:"enabled"`
	TenantId        *uuid.UUID      `db:"tenant_id"`
	RegionCode      null.String     `db:"region_code"`
	ContextId       null.String     `db:"context_id"`
	ConditionType   string          `db:"condition_type"`
	Condition       json.RawMessage `db:"condition"`
	Direction       string          `db:"direction"`
	CooldownSeconds null.Int        `db:"cooldown_seconds"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

const TABLE_SCALING_TRIGGERS = "scaling_triggers"

var SelectScalingTriggerColumns = utils.ColumnList[DbScalingTrigger]()

type dbTriggerConditionPayload struct {
	Dimension  string  `json:"dimension"`
	Comparator string  `json:"comparator"`
	Value      float64 `json:"value"`
	MinCount   int     `json:"min_count"`
}

// AdaptScalingTrigger validates the row as it adapts it. The snapshot
// loader excludes rows that fail here, with a logged warning, instead of
// aborting the whole load.
func AdaptScalingTrigger(db DbScalingTrigger) (models.ScalingTrigger, error) {
	direction := models.ScalingDirectionFrom(db.Direction)
	if direction == models.UnknownScalingDirection {
		return models.ScalingTrigger{}, errors.Newf("trigger %s: unknown direction %q", db.Id, db.Direction)
	}

	var payload dbTriggerConditionPayload
	if err := json.Unmarshal(db.Condition, &payload); err != nil {
		return models.ScalingTrigger{}, errors.Wrapf(err, "trigger %s: invalid condition payload", db.Id)
	}
	if payload.Dimension == "" {
		return models.ScalingTrigger{}, errors.Newf("trigger %s: condition has no dimension", db.Id)
	}

	var condition models.TriggerCondition
	switch models.TriggerConditionKindFrom(db.ConditionType) {
	case models.TriggerConditionThreshold:
		comparator := models.ComparatorFrom(payload.Comparator)
		if comparator == models.UnknownComparator {
			return models.ScalingTrigger{}, errors.Newf(
				"trigger %s: unknown comparator %q", db.Id, payload.Comparator)
		}
		condition = models.TriggerCondition{
			Kind: models.TriggerConditionThreshold,
			Threshold: &models.ThresholdCondition{
				Dimension:  models.Dimension(payload.Dimension),
				Comparator: comparator,
				Value:      payload.Value,
			},
		}
	case models.TriggerConditionAnomaly:
		if payload.MinCount < 0 {
			return models.ScalingTrigger{}, errors.Newf(
				"trigger %s: negative anomaly min_count %d", db.Id, payload.MinCount)
		}
		condition = models.TriggerCondition{
			Kind: models.TriggerConditionAnomaly,
			Anomaly: &models.AnomalyCondition{
				Dimension: models.Dimension(payload.Dimension),
				MinCount:  payload.MinCount,
			},
		}
	default:
		return models.ScalingTrigger{}, errors.Newf(
			"trigger %s: unknown condition type %q", db.Id, db.ConditionType)
	}

	trigger := models.ScalingTrigger{
		Id:        db.Id,
		Enabled:   db.Enabled,
		Scope:     adaptRuleScope(db.TenantId, db.RegionCode, db.ContextId),
		Condition: condition,
		Direction: direction,
		CreatedAt: db.CreatedAt,
		UpdatedAt: db.UpdatedAt,
	}
	if db.CooldownSeconds.Valid {
		cooldown := time.Duration(db.CooldownSeconds.Int64) * time.Second
		trigger.Cooldown = &cooldown
	}
	return trigger, nil
}

func adaptRuleScope(tenantId *uuid.UUID, regionCode, contextId null.String) models.RuleScope {
	scope := models.RuleScope{TenantId: tenantId}
	if regionCode.Valid {
		scope.RegionCode = &regionCode.String
	}
	if contextId.Valid {
		scope.ContextId = &contextId.String
	}
	return scope
}
