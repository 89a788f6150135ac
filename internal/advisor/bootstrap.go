package advisor

import (
	"net/http"

	"github.com/nulzo/greencode-advisor/internal/config"
	"github.com/nulzo/greencode-advisor/internal/llm/google"
	"github.com/nulzo/greencode-advisor/internal/llm/mock"
	"github.com/nulzo/greencode-advisor/internal/llm/openai"
	"go.uber.org/zap"
)

// FromConfig wires the four adapters around one shared HTTP client.
func FromConfig(cfg *config.Config, logger *zap.Logger) *Dispatcher {
	client := &http.Client{Timeout: cfg.HTTP.Timeout}

	adapters := Adapters{
		OpenAI: openai.NewAdapter(openai.Config{
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.Model,
			Client:  client,
		}),
		Gemini: google.NewAdapter(google.Config{
			BaseURL:         cfg.Gemini.BaseURL,
			Versions:        cfg.Gemini.Versions,
			PreferredModels: cfg.Gemini.PreferredModels,
			Fallbacks:       cfg.Gemini.Fallbacks,
			Client:          client,
			Logger:          logger,
		}),
		Grok:  mock.NewGrok(cfg.Mock.Delay),
		Llama: mock.NewLlama(cfg.Mock.Delay),
	}

	logger.Debug("Analysis adapters ready",
		zap.String("openai_model", cfg.OpenAI.Model),
		zap.Strings("gemini_versions", cfg.Gemini.Versions),
		zap.Duration("mock_delay", cfg.Mock.Delay),
		zap.Duration("timeout", cfg.Analysis.Timeout),
	)

	return NewDispatcher(adapters, cfg.Analysis.Timeout, logger)
}
