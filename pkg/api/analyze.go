package api

// AnalyzeRequest is the body of POST /v1/analyze.
type AnalyzeRequest struct {
	Code     string `json:"code" binding:"required,notblank"`
	Provider string `json:"provider" binding:"required,notblank"`
	// APIKey may be empty for mock providers or when the server holds a key.
	APIKey string `json:"api_key,omitempty"`
}

// AnalyzeResponse carries the markdown report.
type AnalyzeResponse struct {
	Provider string `json:"provider"`
	Result   string `json:"result"`
}

type ProviderInfo struct {
	Name          string `json:"name"`
	RequiresKey   bool   `json:"requires_key"`
	Mock          bool   `json:"mock"`
	HasDefaultKey bool   `json:"has_default_key"`
}

// List is the envelope for collection responses.
type List[T any] struct {
	Object string `json:"object"`
	Data   []T    `json:"data"`
}

func NewList[T any](data []T) List[T] {
	if data == nil {
		data = []T{}
	}
	return List[T]{Object: "list", Data: data}
}

type Health struct {
	Status string `json:"status"`
}
