package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sentinelsec/sentinel-backend/usecases"
)

func addRoutes(r *gin.Engine, uc *usecases.Usecases) {
	r.GET("/liveness", handleLivenessProbe(uc))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/trust-scores", handlePostTrustScore(uc))
	r.GET("/security-level", handleGetSecurityLevel(uc))
	r.GET("/security-profile", handleGetSecurityProfile(uc))
	r.GET("/scaling-events", handleListScalingEvents(uc))
}
