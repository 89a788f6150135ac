package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nulzo/greencode-advisor/internal/advisor"
	"github.com/nulzo/greencode-advisor/internal/config"
	"github.com/nulzo/greencode-advisor/internal/llm"
	"github.com/nulzo/greencode-advisor/internal/llm/mock"
	"github.com/nulzo/greencode-advisor/internal/server"
	"github.com/nulzo/greencode-advisor/pkg/api"
	"github.com/stretchr/testify/assert"
	testifymock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockService struct {
	testifymock.Mock
}

func (m *MockService) Analyze(ctx context.Context, code, provider, credential string) (string, error) {
	args := m.Called(ctx, code, provider, credential)
	return args.String(0), args.Error(1)
}

func (m *MockService) Providers() []advisor.ProviderInfo {
	args := m.Called()
	return args.Get(0).([]advisor.ProviderInfo)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newServer(t *testing.T, svc advisor.Service, keys map[string]string) http.Handler {
	t.Helper()
	cfg := &config.Config{Providers: map[string]config.ProviderConfig{}}
	cfg.Server.Env = "test"
	for name, key := range keys {
		cfg.Providers[name] = config.ProviderConfig{APIKey: key}
	}
	return server.New(cfg, zap.NewNop(), svc).Handler()
}

func do(h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			_ = json.NewEncoder(&buf).Encode(b)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	h := newServer(t, new(MockService), nil)

	w := do(h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	_, err := uuid.Parse(w.Header().Get("X-Request-ID"))
	assert.NoError(t, err)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestID_Propagated(t *testing.T) {
	h := newServer(t, new(MockService), nil)
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", id)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, id, w.Header().Get("X-Request-ID"))
}

func TestPreflight(t *testing.T) {
	h := newServer(t, new(MockService), nil)

	w := do(h, http.MethodOptions, "/v1/analyze", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestAnalyze_MockProviderEndToEnd(t *testing.T) {
	d := advisor.NewDispatcher(advisor.Adapters{
		OpenAI: llm.AdapterFunc(func(context.Context, string, string) (string, error) { return "", errors.New("unused") }),
		Gemini: llm.AdapterFunc(func(context.Context, string, string) (string, error) { return "", errors.New("unused") }),
		Grok:   mock.NewGrok(0),
		Llama:  mock.NewLlama(0),
	}, 0, zap.NewNop())
	h := newServer(t, d, nil)

	w := do(h, http.MethodPost, "/v1/analyze", api.AnalyzeRequest{Code: "print('hi')", Provider: "Grok (Mock)"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp api.AnalyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Grok (Mock)", resp.Provider)
	assert.Contains(t, resp.Result, "Grok Analysis (Mock)")
	assert.Contains(t, resp.Result, "print('hi')")
}

func TestAnalyze_PassesRequestThrough(t *testing.T) {
	svc := new(MockService)
	svc.On("Analyze", testifymock.Anything, "x = 1", "OpenAI", "sk-user").Return("## Report", nil).Once()
	h := newServer(t, svc, map[string]string{"openai": "sk-server"})

	w := do(h, http.MethodPost, "/v1/analyze", api.AnalyzeRequest{Code: "x = 1", Provider: "OpenAI", APIKey: "sk-user"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"provider":"OpenAI","result":"## Report"}`, w.Body.String())
	svc.AssertExpectations(t)
}

func TestAnalyze_UsesServerKeyWhenBlank(t *testing.T) {
	svc := new(MockService)
	svc.On("Analyze", testifymock.Anything, "x = 1", "Gemini", "AIza-server").Return("ok", nil).Once()
	h := newServer(t, svc, map[string]string{"gemini": "AIza-server"})

	w := do(h, http.MethodPost, "/v1/analyze", api.AnalyzeRequest{Code: "x = 1", Provider: "Gemini"})
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestAnalyze_DispatchErrorsBecomeProblems(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"selection", &llm.Error{Kind: llm.KindSelection, Message: llm.MsgInvalidProvider}, http.StatusBadRequest},
		{"configuration", llm.MissingKey("OpenAI"), http.StatusBadRequest},
		{"transport", llm.NetworkError("OpenAI", errors.New("dial tcp")), http.StatusServiceUnavailable},
		{"provider", &llm.Error{Kind: llm.KindProvider, Provider: "OpenAI", Message: "Incorrect API key provided"}, http.StatusBadGateway},
		{"empty", llm.EmptyResponse("Gemini"), http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"unclassified", &llm.Error{Kind: llm.KindUnknown, Provider: "OpenAI", Message: "boom: unexpected EOF"}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			svc.On("Analyze", testifymock.Anything, "code", "OpenAI", "k").Return("", tt.err)
			h := newServer(t, svc, nil)

			w := do(h, http.MethodPost, "/v1/analyze", api.AnalyzeRequest{Code: "code", Provider: "OpenAI", APIKey: "k"})
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))

			body := decode(t, w)
			assert.Equal(t, float64(tt.status), body["status"])
			assert.Equal(t, "/v1/analyze", body["instance"])
			if tt.status != http.StatusInternalServerError {
				assert.Equal(t, tt.err.Error(), body["detail"])
			} else {
				assert.Equal(t, "An unexpected error occurred.", body["detail"])
				assert.NotContains(t, w.Body.String(), "boom")
			}
		})
	}
}

func TestAnalyze_UnknownProviderWithRealDispatcher(t *testing.T) {
	d := advisor.NewDispatcher(advisor.Adapters{}, 0, zap.NewNop())
	h := newServer(t, d, nil)

	w := do(h, http.MethodPost, "/v1/analyze", api.AnalyzeRequest{Code: "code", Provider: "UnknownXYZ"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid AI provider selected.", decode(t, w)["detail"])
}

func TestAnalyze_Validation(t *testing.T) {
	svc := new(MockService)
	h := newServer(t, svc, nil)

	w := do(h, http.MethodPost, "/v1/analyze", map[string]string{"provider": "OpenAI"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Validation Error", body["title"])
	errs := body["errors"].(map[string]interface{})
	assert.Equal(t, "code is a required field", errs["code"])

	w = do(h, http.MethodPost, "/v1/analyze", map[string]string{"code": "   ", "provider": "OpenAI"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "code must not be blank", decode(t, w)["errors"].(map[string]interface{})["code"])

	w = do(h, http.MethodPost, "/v1/analyze", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["errors"], "body")

	svc.AssertNotCalled(t, "Analyze", testifymock.Anything, testifymock.Anything, testifymock.Anything, testifymock.Anything)
}

func TestProviders(t *testing.T) {
	svc := new(MockService)
	svc.On("Providers").Return(advisor.NewDispatcher(advisor.Adapters{}, 0, nil).Providers())
	h := newServer(t, svc, map[string]string{"openai": "sk-server"})

	w := do(h, http.MethodGet, "/v1/providers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"object": "list",
		"data": [
			{"name": "OpenAI", "requires_key": true, "mock": false, "has_default_key": true},
			{"name": "Gemini", "requires_key": true, "mock": false, "has_default_key": false},
			{"name": "Grok (Mock)", "requires_key": false, "mock": true, "has_default_key": false},
			{"name": "Llama (Mock)", "requires_key": false, "mock": true, "has_default_key": false}
		]
	}`, w.Body.String())
}
