package httpclient

import (
	"encoding/json"
	"fmt"
)

// UpstreamError represents an error returned by an upstream service
type UpstreamError struct {
	StatusCode int
	Status     string
	Body       []byte
	URL        string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error: status %d from %s", e.StatusCode, e.URL)
}

// Message digs the human readable message out of an `{"error":{"message":...}}`
// body, the shape both OpenAI and Google use. Empty when the body has none.
func (e *UpstreamError) Message() string {
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(e.Body, &body); err != nil {
		return ""
	}
	return body.Error.Message
}

// TransportError means no response was received at all.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return RedactURL(fmt.Sprintf("request to %s failed: %v", e.URL, e.Err))
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
