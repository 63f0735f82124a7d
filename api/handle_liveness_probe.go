package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sentinelsec/sentinel-backend/usecases"
)

func handleLivenessProbe(uc *usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		usecase := uc.NewLivenessUsecase()
		err := usecase.Liveness(c.Request.Context())
		if presentError(c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	}
}
