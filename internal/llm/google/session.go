package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/nulzo/greencode-advisor/internal/httpclient"
	"github.com/nulzo/greencode-advisor/internal/llm"
)

// session carries the per-call credential. Nothing in it outlives Analyze.
type session struct {
	adapter    *Adapter
	credential string
}

// attemptError collects one failure per credential placement, in order.
type attemptError struct {
	errs []error
}

func (e *attemptError) Error() string {
	return errors.Join(e.errs...).Error()
}

func (e *attemptError) Unwrap() []error {
	return e.errs
}

// upstreamMessage prefers the message of the last placement tried.
func (e *attemptError) upstreamMessage() string {
	for i := len(e.errs) - 1; i >= 0; i-- {
		var upstream *httpclient.UpstreamError
		if errors.As(e.errs[i], &upstream) {
			if msg := upstream.Message(); msg != "" {
				return msg
			}
		}
	}
	return ""
}

func (e *attemptError) transportOnly() bool {
	for _, err := range e.errs {
		var transport *httpclient.TransportError
		if !errors.As(err, &transport) {
			return false
		}
	}
	return len(e.errs) > 0
}

// send tries each placement until one returns a 2xx that decodes into out.
func (s *session) send(ctx context.Context, method, path string, body, out interface{}) error {
	failed := &attemptError{}
	for _, p := range s.adapter.placements {
		if err := ctx.Err(); err != nil {
			return err
		}
		url, headers := p.apply(s.adapter.config.BaseURL+path, s.credential)
		err := httpclient.SendRequest(ctx, s.adapter.config.Client, method, url, headers, body, out)
		if err == nil {
			return nil
		}
		failed.errs = append(failed.errs, err)
	}
	return failed
}

// maxListPages bounds how many pages of the models listing are followed.
const maxListPages = 5

func (s *session) listModels(ctx context.Context, version string) ([]Model, error) {
	var models []Model
	token := ""
	for page := 0; page < maxListPages; page++ {
		path := "/" + version + "/models"
		if token != "" {
			path += "?pageToken=" + url.QueryEscape(token)
		}

		var resp ListModelsResponse
		if err := s.send(ctx, http.MethodGet, path, nil, &resp); err != nil {
			return nil, &llm.Error{
				Kind:     llm.KindProvider,
				Provider: providerName,
				Message:  fmt.Sprintf("%s list failed", version),
				Err:      err,
			}
		}
		models = append(models, resp.Models...)

		if resp.NextPageToken == "" {
			break
		}
		token = resp.NextPageToken
	}
	return models, nil
}

func (s *session) generate(ctx context.Context, version, model, prompt string) (string, error) {
	var resp GenerateResponse
	path := fmt.Sprintf("/%s/models/%s:%s", version, model, generateMethod)
	if err := s.send(ctx, http.MethodPost, path, newPrompt(prompt), &resp); err != nil {
		return "", classify(err, version, model)
	}
	text := resp.Text()
	if text == "" {
		return "", llm.EmptyResponse(providerName)
	}
	return text, nil
}

func classify(err error, version, model string) error {
	var failed *attemptError
	if !errors.As(err, &failed) {
		return llm.NetworkError(providerName, err)
	}
	if msg := failed.upstreamMessage(); msg != "" {
		return &llm.Error{Kind: llm.KindProvider, Provider: providerName, Message: msg, Err: err}
	}
	if failed.transportOnly() {
		return llm.NetworkError(providerName, err)
	}
	return &llm.Error{
		Kind:     llm.KindProvider,
		Provider: providerName,
		Message:  fmt.Sprintf("%s/%s not available", version, model),
		Err:      err,
	}
}
