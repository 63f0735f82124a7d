package models

import (
	"time"

	"github.com/google/uuid"
)

// SecurityPosture is the current security level of one mechanism for one
// (user, tenant, context). Level applies until ExpiresAt, after which the
// effective level reverts to BaselineLevel unless a later event supersedes
// it.
type SecurityPosture struct {
	UserId        string
	TenantId      uuid.UUID
	Mechanism     SecurityMechanism
	Context       ScalingContext
	Level         SecurityLevel
	BaselineLevel SecurityLevel
	EventTime     time.Time
	ExpiresAt     time.Time
}

// EffectiveLevel computes the level as of now, without requiring the expiry
// sweep to have run.
func (p SecurityPosture) EffectiveLevel(now time.Time) SecurityLevel {
	if !p.ExpiresAt.IsZero() && !now.Before(p.ExpiresAt) {
		return p.BaselineLevel
	}
	return p.Level
}

type UpsertPostureRequest struct {
	UserId        string
	TenantId      uuid.UUID
	Mechanism     SecurityMechanism
	Context       ScalingContext
	Level         SecurityLevel
	BaselineLevel SecurityLevel
	EventTime     time.Time
	ExpiresAt     time.Time
}

// UserSecurityProfile aggregates the effective level of every known
// mechanism plus recent scaling events, for observability. Building it
// never mutates state.
type UserSecurityProfile struct {
	UserId       string
	TenantId     uuid.UUID
	Levels       map[SecurityMechanism]SecurityLevel
	RecentEvents []ScalingEvent
}
