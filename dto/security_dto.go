package dto

import (
	"time"

	"github.com/sentinelsec/sentinel-backend/models"
	"github.com/sentinelsec/sentinel-backend/pure_utils"
)

type SecurityLevelParams struct {
	UserId    string `form:"user_id" binding:"required"`
	TenantId  string `form:"tenant_id" binding:"required,uuid"`
	Mechanism string `form:"mechanism" binding:"required,oneof=auth_factors session_timeout"`
	ContextId string `form:"context_id"`
}

type SecurityProfileParams struct {
	UserId   string `form:"user_id" binding:"required"`
	TenantId string `form:"tenant_id" binding:"required,uuid"`
}

type ScalingEventsParams struct {
	UserId   string    `form:"user_id" binding:"required"`
	TenantId string    `form:"tenant_id" binding:"required,uuid"`
	From     time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To       time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit    int       `form:"limit" binding:"omitempty,min=1,max=100"`
}

type SecurityLevelDto struct {
	UserId    string `json:"user_id"`
	TenantId  string `json:"tenant_id"`
	ContextId string `json:"context_id,omitempty"`
	Mechanism string `json:"mechanism"`
	Level     string `json:"level"`
}

type SecurityProfileDto struct {
	UserId       string            `json:"user_id"`
	TenantId     string            `json:"tenant_id"`
	Levels       map[string]string `json:"levels"`
	RecentEvents []ScalingEventDto `json:"recent_events"`
}

func AdaptSecurityProfileDto(profile models.UserSecurityProfile) SecurityProfileDto {
	levels := make(map[string]string, len(profile.Levels))
	for mechanism, level := range profile.Levels {
		levels[mechanism.String()] = level.String()
	}

	return SecurityProfileDto{
		UserId:       profile.UserId,
		TenantId:     profile.TenantId.String(),
		Levels:       levels,
		RecentEvents: pure_utils.Map(profile.RecentEvents, AdaptScalingEventDto),
	}
}
