package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const ValidationType = "https://greencode.dev/problems/validation"

// Problem implements RFC 9457
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	Extensions map[string]interface{} `json:"-"`

	// Log is for the server log only, never serialized.
	Log error `json:"-"`
}

func (p *Problem) Error() string {
	return fmt.Sprintf("[%d] %s: %s", p.Status, p.Title, p.Detail)
}

func (p *Problem) Unwrap() error {
	return p.Log
}

// MarshalJSON flattens Extensions into the top level object, as RFC 9457
// requires. Standard members win over extensions with the same name.
func (p *Problem) MarshalJSON() ([]byte, error) {
	data := make(map[string]interface{}, len(p.Extensions)+5)
	for k, v := range p.Extensions {
		data[k] = v
	}
	data["type"] = p.Type
	data["title"] = p.Title
	data["status"] = p.Status
	if p.Detail != "" {
		data["detail"] = p.Detail
	}
	if p.Instance != "" {
		data["instance"] = p.Instance
	}
	return json.Marshal(data)
}

type ProblemOption func(*Problem)

// NewProblem creates a generic Problem
func NewProblem(status int, title, detail string, opts ...ProblemOption) *Problem {
	p := &Problem{
		Type:       "about:blank",
		Title:      title,
		Status:     status,
		Detail:     detail,
		Extensions: make(map[string]interface{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WithExtension adds a custom member to the response
func WithExtension(key string, value interface{}) ProblemOption {
	return func(p *Problem) {
		p.Extensions[key] = value
	}
}

// WithLog attaches an internal error for server-side logging
func WithLog(err error) ProblemOption {
	return func(p *Problem) {
		p.Log = err
	}
}

// WithInstance sets the RFC "instance" member, usually the request path.
func WithInstance(instance string) ProblemOption {
	return func(p *Problem) {
		p.Instance = instance
	}
}

// ValidationError reports field errors keyed by json name.
func ValidationError(fields map[string]string) *Problem {
	return NewProblem(
		http.StatusBadRequest,
		"Validation Error",
		"One or more fields failed validation",
		func(p *Problem) { p.Type = ValidationType },
		WithExtension("errors", fields),
	)
}

func BadRequest(detail string, opts ...ProblemOption) *Problem {
	return NewProblem(http.StatusBadRequest, http.StatusText(http.StatusBadRequest), detail, opts...)
}

func BadGateway(detail string, opts ...ProblemOption) *Problem {
	return NewProblem(http.StatusBadGateway, http.StatusText(http.StatusBadGateway), detail, opts...)
}

func ServiceUnavailable(detail string, opts ...ProblemOption) *Problem {
	return NewProblem(http.StatusServiceUnavailable, http.StatusText(http.StatusServiceUnavailable), detail, opts...)
}

func InternalError(detail string, opts ...ProblemOption) *Problem {
	return NewProblem(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), detail, opts...)
}
