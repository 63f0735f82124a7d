package adaptive

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/sentinelsec/sentinel-backend/models"
	"github.com/sentinelsec/sentinel-backend/utils"
)

func TestRuleSnapshot_CooldownFor(t *testing.T) {
	withOverride := thresholdTrigger(testTriggerId, models.DimensionOverall,
		models.ComparatorLt, 0.5, models.ScalingDirectionUp)
	withOverride.Cooldown = utils.Ptr(5 * time.Minute)

	snapshot := NewRuleSnapshot(
		[]models.ScalingTrigger{withOverride},
		nil,
		models.AdaptiveConfig{Enabled: true, DefaultCooldown: time.Hour},
		time.Now(),
	)

	assert.Equal(t, 5*time.Minute, snapshot.CooldownFor(testTriggerId))
	assert.Equal(t, time.Hour, snapshot.CooldownFor(uuid.New()),
		"unknown trigger falls back to the config default")
}

func TestRuleSnapshot_ConfigDefaultsApplied(t *testing.T) {
	snapshot := NewRuleSnapshot(nil, nil, models.AdaptiveConfig{Enabled: true}, time.Now())

	assert.Equal(t, models.DefaultCooldown, snapshot.Config.DefaultCooldown)
	assert.Equal(t, models.DefaultAdjustmentTTL, snapshot.Config.AdjustmentTTL)
}

func TestRuleSnapshot_PolicyById(t *testing.T) {
	policy := policyFor(testPolicyId, 1, testTriggerId)
	snapshot := NewRuleSnapshot(nil, []models.ScalingPolicy{policy},
		models.AdaptiveConfig{Enabled: true}, time.Now())

	found, ok := snapshot.PolicyById(testPolicyId)
	assert.True(t, ok)
	assert.Equal(t, policy.Id, found.Id)

	_, ok = snapshot.PolicyById(uuid.New())
	assert.False(t, ok)
}
