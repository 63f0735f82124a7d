package dbmodels

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/guregu/null/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinelsec/sentinel-backend/models"
)

func validDbTrigger() DbScalingTrigger {
	return DbScalingTrigger{
		Id:            uuid.MustParse("00000000-0000-0000-0000-000000000010"),
		Enabled:       true,
		ConditionType: "threshold",
		Condition:     json.RawMessage(`{"dimension":"overall","comparator":"lt","value":0.4}`),
		Direction:     "up",
	}
}

func TestAdaptScalingTrigger_Threshold(t *testing.T) {
	trigger, err := AdaptScalingTrigger(validDbTrigger())
	require.NoError(t, err)

	assert.Equal(t, models.ScalingDirectionUp, trigger.Direction)
	assert.Equal(t, models.TriggerConditionThreshold, trigger.Condition.Kind)
	require.NotNil(t, trigger.Condition.Threshold)
	assert.Equal(t, models.DimensionOverall, trigger.Condition.Threshold.Dimension)
	assert.Equal(t, models.ComparatorLt, trigger.Condition.Threshold.Comparator)
	assert.Equal(t, 0.4, trigger.Condition.Threshold.Value)
	assert.Nil(t, trigger.Cooldown)
}

func TestAdaptScalingTrigger_Anomaly(t *testing.T) {
	db := validDbTrigger()
	db.ConditionType = "anomaly"
	db.Condition = json.RawMessage(`{"dimension":"identity","min_count":3}`)

	trigger, err := AdaptScalingTrigger(db)
	require.NoError(t, err)

	assert.Equal(t, models.TriggerConditionAnomaly, trigger.Condition.Kind)
	require.NotNil(t, trigger.Condition.Anomaly)
	assert.Equal(t, models.DimensionIdentity, trigger.Condition.Anomaly.Dimension)
	assert.Equal(t, 3, trigger.Condition.Anomaly.MinCount)
}

func TestAdaptScalingTrigger_CooldownOverride(t *testing.T) {
	db := validDbTrigger()
	db.CooldownSeconds = null.IntFrom(900)

	trigger, err := AdaptScalingTrigger(db)
	require.NoError(t, err)
	require.NotNil(t, trigger.Cooldown)
	assert.Equal(t, 15*time.Minute, *trigger.Cooldown)
}

func TestAdaptScalingTrigger_Scope(t *testing.T) {
	tenantId := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	db := validDbTrigger()
	db.TenantId = &tenantId
	db.RegionCode = null.StringFrom("eu-west-1")
	db.ContextId = null.StringFrom("payments")

	trigger, err := AdaptScalingTrigger(db)
	require.NoError(t, err)
	require.NotNil(t, trigger.Scope.TenantId)
	assert.Equal(t, tenantId, *trigger.Scope.TenantId)
	require.NotNil(t, trigger.Scope.RegionCode)
	assert.Equal(t, "eu-west-1", *trigger.Scope.RegionCode)
	require.NotNil(t, trigger.Scope.ContextId)
	assert.Equal(t, "payments", *trigger.Scope.ContextId)
}

func TestAdaptScalingTrigger_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*DbScalingTrigger)
	}{
		{
			name:   "unknown direction",
			mutate: func(db *DbScalingTrigger) { db.Direction = "sideways" },
		},
		{
			name:   "unknown condition type",
			mutate: func(db *DbScalingTrigger) { db.ConditionType = "schedule" },
		},
		{
			name: "unknown comparator",
			mutate: func(db *DbScalingTrigger) {
				db.Condition = json.RawMessage(`{"dimension":"overall","comparator":"between","value":0.4}`)
			},
		},
		{
			name: "missing dimension",
			mutate: func(db *DbScalingTrigger) {
				db.Condition = json.RawMessage(`{"comparator":"lt","value":0.4}`)
			},
		},
		{
			name: "malformed payload",
			mutate: func(db *DbScalingTrigger) {
				db.Condition = json.RawMessage(`not json`)
			},
		},
		{
			name: "negative anomaly min_count",
			mutate: func(db *DbScalingTrigger) {
				db.ConditionType = "anomaly"
				db.Condition = json.RawMessage(`{"dimension":"identity","min_count":-1}`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := validDbTrigger()
			tt.mutate(&db)
			_, err := AdaptScalingTrigger(db)
			assert.Error(t, err)
		})
	}
}
