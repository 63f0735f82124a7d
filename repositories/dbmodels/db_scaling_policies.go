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

type DbScalingPolicy struct {
	Id          uuid.UUID       `db:"id"`
	Enabled     bool            `db:"enabled"`
	Priority    int             `db:"priority"`
	TenantId    *uuid.UUID      `db:"tenant_id"`
	RegionCode  null.String     `db:"region_code"`
	ContextId   null.String     `db:"context_id"`
	TriggerIds  []uuid.UUID     `db:"trigger_ids"`
	Adjustments json.RawMessage `db:"adjustments"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

const TABLE_SCALING_POLICIES = "scaling_policies"

var SelectScalingPolicyColumns = utils.ColumnList[DbScalingPolicy]()

// AdaptScalingPolicy validates that the adjustment map only references
// known directions, mechanisms and levels. Invalid rows are excluded from
// the snapshot by the loader.
func AdaptScalingPolicy(db DbScalingPolicy) (models.ScalingPolicy, error) {
	var payload map[string]map[string]string
	if err := json.Unmarshal(db.Adjustments, &payload); err != nil {
		return models.ScalingPolicy{}, errors.Wrapf(err, "policy %s: invalid adjustments payload", db.Id)
	}
	if len(payload) == 0 {
		return models.ScalingPolicy{}, errors.Newf("policy %s: empty adjustment map", db.Id)
	}

	adjustments := make(map[models.ScalingDirection]map[models.SecurityMechanism]models.SecurityLevel, len(payload))
	for directionName, byMechanism := range payload {
		direction := models.ScalingDirectionFrom(directionName)
		if direction == models.UnknownScalingDirection {
			return models.ScalingPolicy{}, errors.Newf(
				"policy %s: unknown direction %q in adjustment map", db.Id, directionName)
		}

		levels := make(map[models.SecurityMechanism]models.SecurityLevel, len(byMechanism))
		for mechanismName, levelName := range byMechanism {
			mechanism := models.SecurityMechanismFrom(mechanismName)
			if mechanism == models.UnknownSecurityMechanism {
				return models.ScalingPolicy{}, errors.Newf(
					"policy %s: unknown mechanism %q", db.Id, mechanismName)
			}
			level := models.SecurityLevelFrom(levelName)
			if level == models.UnknownSecurityLevel {
				return models.ScalingPolicy{}, errors.Newf(
					"policy %s: unknown level %q for mechanism %q", db.Id, levelName, mechanismName)
			}
			levels[mechanism] = level
		}
		adjustments[direction] = levels
	}

	return models.ScalingPolicy{
		Id:          db.Id,
		Enabled:     db.Enabled,
		Priority:    db.Priority,
		Scope:       adaptRuleScope(db.TenantId, db.RegionCode, db.ContextId),
		TriggerIds:  db.TriggerIds,
		Adjustments: adjustments,
		CreatedAt:   db.CreatedAt,
		UpdatedAt:   db.UpdatedAt,
	}, nil
}
