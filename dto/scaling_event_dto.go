package dto

import (
	"time"

	"github.com/sentinelsec/sentinel-backend/models"
	"github.com/sentinelsec/sentinel-backend/pure_utils"
)

type SecurityAdjustmentDto struct {
	Mechanism    string `json:"mechanism"`
	CurrentLevel string `json:"current_level"`
	NewLevel     string `json:"new_level"`
	Reason       string `json:"reason"`
}

func AdaptSecurityAdjustmentDto(adjustment models.SecurityAdjustment) SecurityAdjustmentDto {
	return SecurityAdjustmentDto{
		Mechanism:    adjustment.Mechanism.String(),
		CurrentLevel: adjustment.CurrentLevel.String(),
		NewLevel:     adjustment.NewLevel.String(),
		Reason:       adjustment.Reason,
	}
}

type ScalingEventDto struct {
	Id          string                  `json:"id"`
	UserId      string                  `json:"user_id"`
	TenantId    string                  `json:"tenant_id"`
	ContextId   string                  `json:"context_id,omitempty"`
	RegionCode  string                  `json:"region_code,omitempty"`
	TriggerId   string                  `json:"trigger_id"`
	PolicyId    string                  `json:"policy_id"`
	TrustScore  float64                 `json:"trust_score"`
	Direction   string                  `json:"direction"`
	Adjustments []SecurityAdjustmentDto `json:"adjustments"`
	EventTime   time.Time               `json:"event_time"`
	ExpiresAt   time.Time               `json:"expires_at"`
}

func AdaptScalingEventDto(event models.ScalingEvent) ScalingEventDto {
	contextId, _ := event.Context.Name()

	return ScalingEventDto{
		Id:          event.Id.String(),
		UserId:      event.UserId,
		TenantId:    event.TenantId.String(),
		ContextId:   contextId,
		RegionCode:  event.RegionCode,
		TriggerId:   event.TriggerId.String(),
		PolicyId:    event.PolicyId.String(),
		TrustScore:  event.TrustScore,
		Direction:   event.Direction.String(),
		Adjustments: pure_utils.Map(event.Adjustments, AdaptSecurityAdjustmentDto),
		EventTime:   event.EventTime,
		ExpiresAt:   event.ExpiresAt,
	}
}
