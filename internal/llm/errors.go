package llm

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies a dispatch failure.
type Kind int

const (
	KindUnknown Kind = iota
	// KindConfiguration is a missing credential, detected before any network call.
	KindConfiguration
	// KindTransport means the request could not be sent or completed.
	KindTransport
	// KindProvider means the backend answered with an error status or payload.
	KindProvider
	// KindEmptyResponse is a successful response with nothing usable in it.
	KindEmptyResponse
	// KindSelection is an unrecognized provider name.
	KindSelection
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindTransport:
		return "transport"
	case KindProvider:
		return "provider"
	case KindEmptyResponse:
		return "empty_response"
	case KindSelection:
		return "selection"
	}
	return "unknown"
}

const MsgInvalidProvider = "Invalid AI provider selected."

// Error is the only error type that crosses the dispatcher boundary.
// Message is shown to the user as is; Err is kept for logs.
type Error struct {
	Kind     Kind
	Provider string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// MissingKey builds the configuration error for a provider that needs a credential.
func MissingKey(provider string) *Error {
	return &Error{
		Kind:     KindConfiguration,
		Provider: provider,
		Message:  fmt.Sprintf("API key is required for %s.", provider),
	}
}

// NetworkError builds the provider-labelled transport error. Deadline and
// cancellation get their own wording so the user can tell them from an outage.
func NetworkError(provider string, err error) *Error {
	msg := fmt.Sprintf("Network error: Unable to connect to %s API.", provider)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		msg = fmt.Sprintf("%s request timed out.", provider)
	case errors.Is(err, context.Canceled):
		msg = fmt.Sprintf("%s request was cancelled.", provider)
	}
	return &Error{Kind: KindTransport, Provider: provider, Message: msg, Err: err}
}

// EmptyResponse builds the soft-failure error for a response without content.
func EmptyResponse(provider string) *Error {
	return &Error{
		Kind:     KindEmptyResponse,
		Provider: provider,
		Message:  fmt.Sprintf("%s API returned no content.", provider),
	}
}

// KindOf returns the Kind of err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
