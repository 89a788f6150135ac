package llm

import (
	"context"
)

// Provider is the closed set of analysis backends a caller can select.
type Provider int

const (
	OpenAI Provider = iota
	Gemini
	Grok
	Llama
)

// Providers lists every provider in selector order.
var Providers = []Provider{OpenAI, Gemini, Grok, Llama}

// String returns the wire name the UI sends for the provider.
func (p Provider) String() string {
	switch p {
	case OpenAI:
		return "OpenAI"
	case Gemini:
		return "Gemini"
	case Grok:
		return "Grok (Mock)"
	case Llama:
		return "Llama (Mock)"
	}
	return "unknown"
}

// RequiresKey reports whether the provider needs a credential to be called.
func (p Provider) RequiresKey() bool {
	return p == OpenAI || p == Gemini
}

// Mock reports whether the provider is an in-process placeholder.
func (p Provider) Mock() bool {
	return p == Grok || p == Llama
}

// ParseProvider resolves a wire name by exact match.
func ParseProvider(name string) (Provider, error) {
	for _, p := range Providers {
		if p.String() == name {
			return p, nil
		}
	}
	return 0, &Error{Kind: KindSelection, Message: MsgInvalidProvider}
}

// Adapter turns a code snippet into a markdown critique using one backend.
type Adapter interface {
	Analyze(ctx context.Context, code, credential string) (string, error)
}

// AdapterFunc lets a plain function satisfy Adapter.
type AdapterFunc func(ctx context.Context, code, credential string) (string, error)

func (f AdapterFunc) Analyze(ctx context.Context, code, credential string) (string, error) {
	return f(ctx, code, credential)
}
