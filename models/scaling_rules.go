package models

import (
	"time"

	"github.com/google/uuid"
)

type ScalingDirection int

const (
	UnknownScalingDirection ScalingDirection = iota
	ScalingDirectionUp
	ScalingDirectionDown
)

func (d ScalingDirection) String() string {
	switch d {
	case ScalingDirectionUp:
		return "up"
	case ScalingDirectionDown:
		return "down"
	}
	return "unknown"
}

func ScalingDirectionFrom(s string) ScalingDirection {
	switch s {
	case "up":
		return ScalingDirectionUp
	case "down":
		return ScalingDirectionDown
	}
	return UnknownScalingDirection
}

type Comparator int

const (
	UnknownComparator Comparator = iota
	ComparatorLt
	ComparatorLe
	ComparatorGt
	ComparatorGe
	ComparatorEq
)

func (c Comparator) String() string {
	switch c {
	case ComparatorLt:
		return "lt"
	case ComparatorLe:
		return "le"
	case ComparatorGt:
		return "gt"
	case ComparatorGe:
		return "ge"
	case ComparatorEq:
		return "eq"
	}
	return "unknown"
}

func ComparatorFrom(s string) Comparator {
	switch s {
	case "lt":
		return ComparatorLt
	case "le":
		return ComparatorLe
	case "gt":
		return ComparatorGt
	case "ge":
		return ComparatorGe
	case "eq":
		return ComparatorEq
	}
	return UnknownComparator
}

func (c Comparator) Compare(value, threshold float64) bool {
	switch c {
	case ComparatorLt:
		return value < threshold
	case ComparatorLe:
		return value <= threshold
	case ComparatorGt:
		return value > threshold
	case ComparatorGe:
		return value >= threshold
	case ComparatorEq:
		return value == threshold
	}
	return false
}

// RuleScope restricts a trigger or policy to a tenant, region or context.
// A nil field is a wildcard; a set field must equal the corresponding field
// of the incoming trust score result.
type RuleScope struct {
	TenantId   *uuid.UUID
	RegionCode *string
	ContextId  *string
}

func (s RuleScope) Matches(result TrustScoreResult) bool {
	if s.TenantId != nil && *s.TenantId != result.TenantId {
		return false
	}
	if s.RegionCode != nil && *s.RegionCode != result.RegionCode {
		return false
	}
	if s.ContextId != nil && *s.ContextId != result.Context.StorageKey() {
		return false
	}
	return true
}

type TriggerConditionKind int

const (
	UnknownTriggerCondition TriggerConditionKind = iota
	TriggerConditionThreshold
	TriggerConditionAnomaly
)

func (k TriggerConditionKind) String() string {
	switch k {
	case TriggerConditionThreshold:
		return "threshold"
	case TriggerConditionAnomaly:
		return "anomaly"
	}
	return "unknown"
}

func TriggerConditionKindFrom(s string) TriggerConditionKind {
	switch s {
	case "threshold":
		return TriggerConditionThreshold
	case "anomaly":
		return TriggerConditionAnomaly
	}
	return UnknownTriggerCondition
}

type ThresholdCondition struct {
	Dimension  Dimension
	Comparator Comparator
	Value      float64
}

type AnomalyCondition struct {
	Dimension Dimension
	// MinCount is the minimum number of anomalies affecting Dimension for
	// the condition to hold. Zero means any.
	MinCount int
}

// TriggerCondition is a tagged union: exactly one of Threshold and Anomaly
// is set, according to Kind. Rows with payloads that do not decode into a
// valid condition are excluded at snapshot load time.
type TriggerCondition struct {
	Kind      TriggerConditionKind
	Threshold *ThresholdCondition
	Anomaly   *AnomalyCondition
}

type ScalingTrigger struct {
	Id        uuid.UUID
	Enabled   bool
	Scope     RuleScope
	Condition TriggerCondition
	Direction ScalingDirection
	// Cooldown overrides AdaptiveConfig.DefaultCooldown when set.
	Cooldown  *time.Duration
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ScalingPolicy struct {
	Id          uuid.UUID
	Enabled     bool
	Priority    int
	Scope       RuleScope
	TriggerIds  []uuid.UUID
	Adjustments map[ScalingDirection]map[SecurityMechanism]SecurityLevel
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p ScalingPolicy) References(triggerId uuid.UUID) bool {
	for _, id := range p.TriggerIds {
		if id == triggerId {
			return true
		}
	}
	return false
}
