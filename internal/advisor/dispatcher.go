package advisor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nulzo/greencode-advisor/internal/httpclient"
	"github.com/nulzo/greencode-advisor/internal/llm"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("github.com/nulzo/greencode-advisor/internal/advisor")

// Service is the analysis entry point shared by the HTTP API and the CLI.
type Service interface {
	// Analyze returns a markdown critique of code from the named provider.
	// Every failure is an *llm.Error whose message is fit for the user.
	Analyze(ctx context.Context, code, provider, credential string) (string, error)
	Providers() []ProviderInfo
}

// ProviderInfo describes a provider for selectors.
type ProviderInfo struct {
	Provider    llm.Provider
	RequiresKey bool
	Mock        bool
}

// Adapters holds one backend per provider. All four are required.
type Adapters struct {
	OpenAI llm.Adapter
	Gemini llm.Adapter
	Grok   llm.Adapter
	Llama  llm.Adapter
}

type Dispatcher struct {
	adapters Adapters
	timeout  time.Duration
	logger   *zap.Logger
}

// NewDispatcher returns a dispatcher bounding every call by timeout.
// A zero timeout leaves the caller's context untouched.
func NewDispatcher(adapters Adapters, timeout time.Duration, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{adapters: adapters, timeout: timeout, logger: logger}
}

func (d *Dispatcher) Analyze(ctx context.Context, code, provider, credential string) (string, error) {
	p, err := llm.ParseProvider(provider)
	if err != nil {
		d.logger.Warn("Rejected analysis request", zap.String("provider", provider), zap.Error(err))
		return "", err
	}

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	ctx, span := tracer.Start(ctx, "advisor.analyze", trace.WithAttributes(
		attribute.String("advisor.provider", p.String()),
		attribute.Int("advisor.code_length", len(code)),
	))
	defer span.End()

	start := time.Now()
	result, err := d.adapter(p).Analyze(ctx, code, credential)
	elapsed := time.Since(start)

	if err != nil {
		err = normalize(p, err)
		kind := llm.KindOf(err)
		span.SetAttributes(attribute.String("advisor.error_kind", kind.String()))
		span.SetStatus(codes.Error, err.Error())
		d.logger.Warn("Analysis failed",
			zap.String("provider", p.String()),
			zap.Duration("duration", elapsed),
			zap.Stringer("kind", kind),
			zap.String("error", err.Error()),
		)
		return "", err
	}

	d.logger.Info("Analysis completed",
		zap.String("provider", p.String()),
		zap.Duration("duration", elapsed),
		zap.Int("result_length", len(result)),
	)
	return result, nil
}

// adapter is an exhaustive switch over llm.Provider; ParseProvider
// guarantees p is one of the listed values.
func (d *Dispatcher) adapter(p llm.Provider) llm.Adapter {
	switch p {
	case llm.OpenAI:
		return d.adapters.OpenAI
	case llm.Gemini:
		return d.adapters.Gemini
	case llm.Grok:
		return d.adapters.Grok
	case llm.Llama:
		return d.adapters.Llama
	}
	panic(fmt.Sprintf("advisor: no adapter for provider %d", int(p)))
}

func (d *Dispatcher) Providers() []ProviderInfo {
	out := make([]ProviderInfo, 0, len(llm.Providers))
	for _, p := range llm.Providers {
		out = append(out, ProviderInfo{Provider: p, RequiresKey: p.RequiresKey(), Mock: p.Mock()})
	}
	return out
}

// normalize makes sure only *llm.Error crosses the boundary and that its
// message carries no credential.
func normalize(p llm.Provider, err error) error {
	var e *llm.Error
	if errors.As(err, &e) {
		return e
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return llm.NetworkError(p.String(), err)
	}
	return &llm.Error{
		Kind:     llm.KindUnknown,
		Provider: p.String(),
		Message:  httpclient.RedactURL(err.Error()),
		Err:      err,
	}
}
