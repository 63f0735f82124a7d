package api

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/sentinelsec/sentinel-backend/dto"
	"github.com/sentinelsec/sentinel-backend/models"
	"github.com/sentinelsec/sentinel-backend/usecases"
)

// handlePostTrustScore computes the trust score from the submitted dimension
// inputs and runs it through the adaptive scaling engine in the same
// request. The response carries the score and, when a policy acted on it,
// the resulting scaling event.
func handlePostTrustScore(uc *usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		var body dto.CreateTrustScoreBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		request, err := dto.AdaptCalculateScoreRequest(body)
		if presentError(c, err) {
			return
		}

		engine := uc.NewTrustScoreEngine()
		result, err := engine.CalculateScore(request)
		if presentError(c, err) {
			return
		}

		event, err := uc.AdaptiveScalingUsecase().EvaluateTrustScore(c.Request.Context(), result)
		if presentError(c, err) {
			return
		}

		c.JSON(http.StatusOK, dto.AdaptTrustScoreEvaluationDto(result, event))
	}
}
