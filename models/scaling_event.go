package models

import (
	"time"

	"github.com/google/uuid"
)

// ScalingEvent is the immutable audit record of an applied adaptive
// decision. Events are append-only: they are never updated or deleted.
type ScalingEvent struct {
	Id          uuid.UUID
	UserId      string
	TenantId    uuid.UUID
	Context     ScalingContext
	RegionCode  string
	TriggerId   uuid.UUID
	PolicyId    uuid.UUID
	TrustScore  float64
	Direction   ScalingDirection
	Adjustments []SecurityAdjustment
	EventTime   time.Time
	ExpiresAt   time.Time
}

type CreateScalingEventRequest struct {
	UserId      string
	TenantId    uuid.UUID
	Context     ScalingContext
	RegionCode  string
	TriggerId   uuid.UUID
	PolicyId    uuid.UUID
	TrustScore  float64
	Direction   ScalingDirection
	Adjustments []SecurityAdjustment
	EventTime   time.Time
	ExpiresAt   time.Time
}

type ScalingEventFilters struct {
	UserId   string
	TenantId uuid.UUID
	From     time.Time
	To       time.Time
	Limit    int
}
