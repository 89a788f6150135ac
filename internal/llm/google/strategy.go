package google

import (
	"context"
	"fmt"

	"github.com/nulzo/greencode-advisor/internal/llm"
)

// strategy is one way of getting text out of the backend. A returned error
// is a soft failure: the caller moves on to the next strategy.
type strategy interface {
	attempt(ctx context.Context, s *session, prompt string) (string, error)
	String() string
}

// discover lists the models of one API version and generates with the best one.
type discover struct {
	version   string
	preferred []string
}

func (d discover) attempt(ctx context.Context, s *session, prompt string) (string, error) {
	models, err := s.listModels(ctx, d.version)
	if err != nil {
		return "", err
	}
	if len(models) == 0 {
		return "", &llm.Error{Kind: llm.KindProvider, Provider: providerName, Message: fmt.Sprintf("%s listed no models", d.version)}
	}
	model := pickModel(models, d.preferred)
	if model == "" {
		return "", &llm.Error{Kind: llm.KindProvider, Provider: providerName, Message: fmt.Sprintf("no %s model supports %s", d.version, generateMethod)}
	}
	return s.generate(ctx, d.version, model, prompt)
}

func (d discover) String() string {
	return "discover/" + d.version
}

// fixed addresses a known model id directly.
type fixed struct {
	Fallback
}

func (f fixed) attempt(ctx context.Context, s *session, prompt string) (string, error) {
	return s.generate(ctx, f.Version, f.Model, prompt)
}

func (f fixed) String() string {
	return f.Version + "/" + f.Model
}

func buildStrategies(cfg Config) []strategy {
	out := make([]strategy, 0, len(cfg.Versions)+len(cfg.Fallbacks))
	for _, v := range cfg.Versions {
		out = append(out, discover{version: v, preferred: cfg.PreferredModels})
	}
	for _, f := range cfg.Fallbacks {
		out = append(out, fixed{f})
	}
	return out
}
