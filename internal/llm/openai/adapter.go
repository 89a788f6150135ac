package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nulzo/greencode-advisor/internal/httpclient"
	"github.com/nulzo/greencode-advisor/internal/llm"
)

const (
	providerName   = "OpenAI"
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-3.5-turbo"
)

type Config struct {
	BaseURL string
	Model   string
	Client  httpclient.HTTPClient
}

type Adapter struct {
	config Config
}

func NewAdapter(config Config) *Adapter {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Model == "" {
		config.Model = defaultModel
	}
	if config.Client == nil {
		config.Client = &http.Client{Timeout: 60 * time.Second}
	}
	return &Adapter{config: config}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Analyze sends the code as the user turn of a single chat completion.
func (a *Adapter) Analyze(ctx context.Context, code, credential string) (string, error) {
	if credential == "" {
		return "", llm.MissingKey(providerName)
	}

	req := chatRequest{
		Model: a.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: llm.SystemInstruction},
			{Role: "user", Content: code},
		},
	}
	headers := map[string]string{
		"Authorization": "Bearer " + credential,
	}
	url := fmt.Sprintf("%s/chat/completions", strings.TrimRight(a.config.BaseURL, "/"))

	var resp chatResponse
	if err := httpclient.SendRequest(ctx, a.config.Client, http.MethodPost, url, headers, req, &resp); err != nil {
		return "", a.handleUpstreamError(err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", llm.EmptyResponse(providerName)
	}
	return resp.Choices[0].Message.Content, nil
}

func (a *Adapter) handleUpstreamError(err error) error {
	var transportErr *httpclient.TransportError
	if errors.As(err, &transportErr) {
		return llm.NetworkError(providerName, err)
	}

	var upstreamErr *httpclient.UpstreamError
	if !errors.As(err, &upstreamErr) {
		// body could not be encoded or decoded
		return &llm.Error{Kind: llm.KindProvider, Provider: providerName, Message: fmt.Sprintf("OpenAI API error: %v", err), Err: err}
	}

	msg := upstreamErr.Message()
	if msg == "" {
		msg = fmt.Sprintf("OpenAI API error: %d %s", upstreamErr.StatusCode, upstreamErr.Status)
	}
	return &llm.Error{Kind: llm.KindProvider, Provider: providerName, Message: msg, Err: err}
}
