package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestComparator_Compare(t *testing.T) {
	tests := []struct {
		comparator Comparator
		value      float64
		threshold  float64
		expected   bool
	}{
		{ComparatorLt, 0.3, 0.4, true},
		{ComparatorLt, 0.4, 0.4, false},
		{ComparatorLe, 0.4, 0.4, true},
		{ComparatorGt, 0.5, 0.4, true},
		{ComparatorGt, 0.4, 0.4, false},
		{ComparatorGe, 0.4, 0.4, true},
		{ComparatorEq, 0.4, 0.4, true},
		{ComparatorEq, 0.41, 0.4, false},
		{UnknownComparator, 0.4, 0.4, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.comparator.Compare(tt.value, tt.threshold),
			"%s(%v, %v)", tt.comparator, tt.value, tt.threshold)
	}
}

func TestRuleScope_Matches(t *testing.T) {
	tenantId := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	otherTenantId := uuid.MustParse("00000000-0000-0000-0000-000000000002")
	region := "eu-west-1"
	contextId := "payments"

	result := TrustScoreResult{
		TenantId:   tenantId,
		RegionCode: "eu-west-1",
		Context:    NamedScalingContext("payments"),
	}

	assert.True(t, RuleScope{}.Matches(result), "empty scope is a wildcard")
	assert.True(t, RuleScope{TenantId: &tenantId, RegionCode: &region, ContextId: &contextId}.Matches(result))
	assert.False(t, RuleScope{TenantId: &otherTenantId}.Matches(result))

	otherRegion := "us-east-1"
	assert.False(t, RuleScope{RegionCode: &otherRegion}.Matches(result))

	otherContext := "onboarding"
	assert.False(t, RuleScope{ContextId: &otherContext}.Matches(result))
}

func TestSecurityPosture_EffectiveLevel(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	posture := SecurityPosture{
		Level:         SecurityLevelHigh,
		BaselineLevel: SecurityLevelStandard,
		ExpiresAt:     now.Add(time.Hour),
	}

	assert.Equal(t, SecurityLevelHigh, posture.EffectiveLevel(now))
	assert.Equal(t, SecurityLevelStandard, posture.EffectiveLevel(now.Add(time.Hour)),
		"expiry boundary reverts to baseline")

	posture.ExpiresAt = time.Time{}
	assert.Equal(t, SecurityLevelHigh, posture.EffectiveLevel(now.Add(24*time.Hour)),
		"zero expiry never reverts")
}

func TestScalingContext(t *testing.T) {
	assert.True(t, DefaultScalingContext().IsDefault())
	assert.False(t, NamedScalingContext("payments").IsDefault())

	name, ok := NamedScalingContext("payments").Name()
	assert.True(t, ok)
	assert.Equal(t, "payments", name)

	_, ok = DefaultScalingContext().Name()
	assert.False(t, ok)

	assert.Equal(t, DefaultScalingContext(), ScalingContextFromStorage(""))
	assert.Equal(t, NamedScalingContext("payments"), ScalingContextFromStorage("payments"))
}
