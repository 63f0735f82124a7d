package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/sentinelsec/sentinel-backend/usecases"
)

func NewServer(
	router *gin.Engine,
	conf Configuration,
	uc *usecases.Usecases,
) *http.Server {
	addRoutes(router, uc)

	timeout := conf.DefaultTimeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	return &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%s", conf.Port),
		WriteTimeout: timeout,
		ReadTimeout:  timeout,
		IdleTimeout:  timeout,
		Handler:      h2c.NewHandler(router, &http2.Server{}),
	}
}
