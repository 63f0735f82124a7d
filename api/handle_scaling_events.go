package api

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sentinelsec/sentinel-backend/dto"
	"github.com/sentinelsec/sentinel-backend/models"
	"github.com/sentinelsec/sentinel-backend/pure_utils"
	"github.com/sentinelsec/sentinel-backend/usecases"
)

func handleListScalingEvents(uc *usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		var params dto.ScalingEventsParams
		if err := c.ShouldBindQuery(&params); err != nil {
			presentError(c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		events, err := uc.AdaptiveScalingUsecase().ListScalingEvents(c.Request.Context(),
			models.ScalingEventFilters{
				UserId:   params.UserId,
				TenantId: uuid.MustParse(params.TenantId),
				From:     params.From,
				To:       params.To,
				Limit:    params.Limit,
			})
		if presentError(c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"scaling_events": pure_utils.Map(events, dto.AdaptScalingEventDto),
		})
	}
}
