package api

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sentinelsec/sentinel-backend/dto"
	"github.com/sentinelsec/sentinel-backend/models"
	"github.com/sentinelsec/sentinel-backend/usecases"
)

func handleGetSecurityLevel(uc *usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		var params dto.SecurityLevelParams
		if err := c.ShouldBindQuery(&params); err != nil {
			presentError(c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}
		tenantId := uuid.MustParse(params.TenantId)

		scalingContext := models.DefaultScalingContext()
		if params.ContextId != "" {
			scalingContext = models.NamedScalingContext(params.ContextId)
		}

		level, err := uc.AdaptiveScalingUsecase().GetCurrentSecurityLevel(
			c.Request.Context(),
			params.UserId,
			tenantId,
			models.SecurityMechanismFrom(params.Mechanism),
			scalingContext,
		)
		if presentError(c, err) {
			return
		}

		c.JSON(http.StatusOK, dto.SecurityLevelDto{
			UserId:    params.UserId,
			TenantId:  params.TenantId,
			ContextId: params.ContextId,
			Mechanism: params.Mechanism,
			Level:     level.String(),
		})
	}
}

func handleGetSecurityProfile(uc *usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		var params dto.SecurityProfileParams
		if err := c.ShouldBindQuery(&params); err != nil {
			presentError(c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		profile, err := uc.AdaptiveScalingUsecase().GetUserSecurityProfile(
			c.Request.Context(),
			params.UserId,
			uuid.MustParse(params.TenantId),
		)
		if presentError(c, err) {
			return
		}

		c.JSON(http.StatusOK, dto.AdaptSecurityProfileDto(profile))
	}
}
