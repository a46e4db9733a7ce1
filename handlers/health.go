package handlers

import (
	"net/http"

	"providerhub/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last dependency snapshot; 503 when anything is down.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Healthy {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
