package dbmodels

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinelsec/sentinel-backend/models"
)

func validDbPolicy() DbScalingPolicy {
	return DbScalingPolicy{
		Id:       uuid.MustParse("00000000-0000-0000-0000-000000000020"),
		Enabled:  true,
		Priority: 10,
		TriggerIds: []uuid.UUID{
			uuid.MustParse("00000000-0000-0000-0000-000000000010"),
		},
		Adjustments: json.RawMessage(
			`{"up":{"auth_factors":"high","session_timeout":"high"},"down":{"auth_factors":"low"}}`),
	}
}

func TestAdaptScalingPolicy(t *testing.T) {
	policy, err := AdaptScalingPolicy(validDbPolicy())
	require.NoError(t, err)

	assert.Equal(t, 10, policy.Priority)
	require.Contains(t, policy.Adjustments, models.ScalingDirectionUp)
	assert.Equal(t, models.SecurityLevelHigh,
		policy.Adjustments[models.ScalingDirectionUp][models.MechanismAuthFactors])
	assert.Equal(t, models.SecurityLevelHigh,
		policy.Adjustments[models.ScalingDirectionUp][models.MechanismSessionTimeout])
	require.Contains(t, policy.Adjustments, models.ScalingDirectionDown)
	assert.Equal(t, models.SecurityLevelLow,
		policy.Adjustments[models.ScalingDirectionDown][models.MechanismAuthFactors])
}

func TestAdaptScalingPolicy_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		adjustments string
	}{
		{name: "empty map", adjustments: `{}`},
		{name: "malformed payload", adjustments: `not json`},
		{name: "unknown direction", adjustments: `{"sideways":{"auth_factors":"high"}}`},
		{name: "unknown mechanism", adjustments: `{"up":{"captcha":"high"}}`},
		{name: "unknown level", adjustments: `{"up":{"auth_factors":"maximum"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := validDbPolicy()
			db.Adjustments = json.RawMessage(tt.adjustments)
			_, err := AdaptScalingPolicy(db)
			assert.Error(t, err)
		})
	}
}
