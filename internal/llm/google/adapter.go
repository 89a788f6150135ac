package google

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/nulzo/greencode-advisor/internal/httpclient"
	"github.com/nulzo/greencode-advisor/internal/llm"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const (
	providerName     = "Gemini"
	defaultBaseURL   = "https://generativelanguage.googleapis.com"
	diagnosticLimit  = 10
	noSupportedModel = "No supported model found."
)

var tracer = otel.Tracer("github.com/nulzo/greencode-advisor/internal/llm/google")

// Fallback is a known version/model pair tried when discovery yields nothing.
type Fallback struct {
	Version string `mapstructure:"version"`
	Model   string `mapstructure:"model"`
}

var (
	DefaultVersions        = []string{"v1", "v1beta"}
	DefaultPreferredModels = []string{"gemini-1.5-flash", "gemini-1.5-pro"}
	DefaultFallbacks       = []Fallback{
		{Version: "v1", Model: "gemini-1.5-flash-latest"},
		{Version: "v1beta", Model: "gemini-1.5-flash"},
		{Version: "v1", Model: "gemini-1.0-pro-latest"},
		{Version: "v1beta", Model: "gemini-1.0-pro"},
	}
)

type Config struct {
	// BaseURL is the API root without a version segment.
	BaseURL string
	// Versions are discovered in order, newest stable first.
	Versions []string
	// PreferredModels are substrings ranked ahead of any other generative model.
	PreferredModels []string
	Fallbacks       []Fallback
	// DiagnosticVersion is listed once more when everything failed.
	DiagnosticVersion string
	Client            httpclient.HTTPClient
	Logger            *zap.Logger
}

type Adapter struct {
	config     Config
	placements []placement
	strategies []strategy
	logger     *zap.Logger
}

func NewAdapter(config Config) *Adapter {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if len(config.Versions) == 0 {
		config.Versions = DefaultVersions
	}
	if config.PreferredModels == nil {
		config.PreferredModels = DefaultPreferredModels
	}
	if config.Fallbacks == nil {
		config.Fallbacks = DefaultFallbacks
	}
	if config.DiagnosticVersion == "" {
		config.DiagnosticVersion = config.Versions[0]
	}
	if config.Client == nil {
		config.Client = &http.Client{Timeout: 60 * time.Second}
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Adapter{
		config:     config,
		placements: defaultPlacements,
		strategies: buildStrategies(config),
		logger:     logger.With(zap.String("provider", providerName)),
	}
}

// Analyze walks the strategies in order and returns the first text produced.
func (a *Adapter) Analyze(ctx context.Context, code, credential string) (string, error) {
	if credential == "" {
		return "", llm.MissingKey(providerName)
	}

	s := &session{adapter: a, credential: credential}
	prompt := llm.CombinedPrompt(code)

	var lastErr error
	for _, st := range a.strategies {
		text, err := a.run(ctx, s, st, prompt)
		if err == nil {
			return text, nil
		}
		if ctx.Err() != nil {
			return "", llm.NetworkError(providerName, ctx.Err())
		}
		lastErr = err
	}

	return "", a.exhausted(ctx, s, lastErr)
}

func (a *Adapter) run(ctx context.Context, s *session, st strategy, prompt string) (string, error) {
	ctx, span := tracer.Start(ctx, "gemini.attempt")
	defer span.End()
	span.SetAttributes(attribute.String("gemini.strategy", st.String()))

	text, err := st.attempt(ctx, s, prompt)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		a.logger.Debug("Gemini strategy failed",
			zap.String("strategy", st.String()),
			zap.String("reason", err.Error()),
			zap.String("cause", httpclient.RedactURL(causeOf(err))),
		)
		return "", err
	}
	a.logger.Debug("Gemini strategy succeeded", zap.String("strategy", st.String()))
	return text, nil
}

// exhausted builds the final error, listing available models when the
// diagnostic listing works so the user can pick a valid one.
func (a *Adapter) exhausted(ctx context.Context, s *session, lastErr error) error {
	msg := noSupportedModel
	kind := llm.KindProvider
	if lastErr != nil {
		msg = lastErr.Error()
		if k := llm.KindOf(lastErr); k != llm.KindUnknown {
			kind = k
		}
	}

	out := &llm.Error{Kind: kind, Provider: providerName, Message: "Gemini error: " + msg, Err: lastErr}
	if names := a.diagnose(ctx, s); len(names) > 0 {
		out.Message += " Available models: " + strings.Join(names, ", ")
	}
	return out
}

func (a *Adapter) diagnose(ctx context.Context, s *session) []string {
	if ctx.Err() != nil {
		return nil
	}
	url, _ := queryPlacement{}.apply(a.config.BaseURL+"/"+a.config.DiagnosticVersion+"/models", s.credential)

	var resp ListModelsResponse
	if err := httpclient.SendRequest(ctx, a.config.Client, http.MethodGet, url, nil, nil, &resp); err != nil {
		a.logger.Debug("Gemini diagnostic listing failed", zap.String("cause", httpclient.RedactURL(err.Error())))
		return nil
	}
	return modelNames(resp.Models, diagnosticLimit)
}

func causeOf(err error) string {
	if e, ok := err.(*llm.Error); ok && e.Err != nil {
		return e.Err.Error()
	}
	return err.Error()
}
