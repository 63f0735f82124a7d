package api

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/sentinelsec/sentinel-backend/dto"
	"github.com/sentinelsec/sentinel-backend/models"
	"github.com/sentinelsec/sentinel-backend/utils"
)

// presentError maps domain errors onto http responses. Returns true when an
// error was written, so handlers can bail with an early return.
func presentError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, models.BadParameterError):
		c.JSON(http.StatusBadRequest, dto.APIErrorResponse{
			Message:   err.Error(),
			ErrorCode: dto.BadRequest,
		})
	case errors.Is(err, models.NotFoundError):
		c.JSON(http.StatusNotFound, dto.APIErrorResponse{
			Message:   err.Error(),
			ErrorCode: dto.NotFound,
		})
	case errors.Is(err, models.ErrEngineDisabled):
		c.JSON(http.StatusServiceUnavailable, dto.APIErrorResponse{
			Message:   "adaptive scaling engine is not available",
			ErrorCode: dto.EngineDisabled,
		})
	default:
		utils.LogAndReportSentryError(c.Request.Context(), err)
		c.JSON(http.StatusInternalServerError, dto.APIErrorResponse{
			Message:   "internal error",
			ErrorCode: dto.InternalError,
		})
	}
	return true
}
