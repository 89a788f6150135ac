package server

import (
	"github.com/nulzo/greencode-advisor/internal/server/middleware"
	v1 "github.com/nulzo/greencode-advisor/internal/server/v1"
	"github.com/nulzo/greencode-advisor/internal/server/validator"
)

func (s *Server) SetupRoutes() {
	s.router.Use(middleware.CORS())
	s.router.Use(middleware.ErrorHandler(s.logger))

	healthHandler := v1.NewHealthHandler()
	s.router.GET("/health", healthHandler.Health)

	api := s.router.Group("/v1")
	{
		analyzeHandler := v1.NewAnalyzeHandler(s.service, validator.New(), s.config.DefaultKey)
		api.POST("/analyze", analyzeHandler.Analyze)

		providerHandler := v1.NewProviderHandler(s.service, s.config.DefaultKey)
		api.GET("/providers", providerHandler.ListProviders)
	}
}
