package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/greencode-advisor/pkg/api"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, api.Health{Status: "ok"})
}
