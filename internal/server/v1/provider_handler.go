package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/greencode-advisor/internal/advisor"
	"github.com/nulzo/greencode-advisor/pkg/api"
)

type ProviderHandler struct {
	service    advisor.Service
	defaultKey KeyLookup
}

func NewProviderHandler(service advisor.Service, defaultKey KeyLookup) *ProviderHandler {
	return &ProviderHandler{service: service, defaultKey: defaultKey}
}

func (h *ProviderHandler) ListProviders(c *gin.Context) {
	infos := h.service.Providers()

	data := make([]api.ProviderInfo, 0, len(infos))
	for _, info := range infos {
		data = append(data, api.ProviderInfo{
			Name:          info.Provider.String(),
			RequiresKey:   info.RequiresKey,
			Mock:          info.Mock,
			HasDefaultKey: h.defaultKey != nil && h.defaultKey(info.Provider) != "",
		})
	}

	c.JSON(http.StatusOK, api.NewList(data))
}
