package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/greencode-advisor/internal/advisor"
	"github.com/nulzo/greencode-advisor/internal/llm"
	"github.com/nulzo/greencode-advisor/internal/server/validator"
	"github.com/nulzo/greencode-advisor/pkg/api"
)

// KeyLookup returns the server-side credential for a provider, or "".
type KeyLookup func(llm.Provider) string

type AnalyzeHandler struct {
	service    advisor.Service
	validator  *validator.Validator
	defaultKey KeyLookup
}

func NewAnalyzeHandler(service advisor.Service, v *validator.Validator, defaultKey KeyLookup) *AnalyzeHandler {
	if defaultKey == nil {
		defaultKey = func(llm.Provider) string { return "" }
	}
	return &AnalyzeHandler{service: service, validator: v, defaultKey: defaultKey}
}

func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req api.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(api.ValidationError(h.validator.ParseError(err)))
		return
	}

	credential := req.APIKey
	if credential == "" {
		// unknown names fall through to the dispatcher, which rejects them
		if p, err := llm.ParseProvider(req.Provider); err == nil {
			credential = h.defaultKey(p)
		}
	}

	result, err := h.service.Analyze(c.Request.Context(), req.Code, req.Provider, credential)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, api.AnalyzeResponse{Provider: req.Provider, Result: result})
}
