package tool

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWebSearchSimulatedFallback(t *testing.T) {
	search := NewWebSearchTool() // no credentials

	out, err := search.Call(context.Background(), map[string]any{"query": "golang"})
	assert.NoError(t, err)

	payload := out.(map[string]any)
	assert.Equal(t, "success", payload["status"])
	assert.Equal(t, "golang", payload["query"])
	assert.Equal(t, true, payload["simulated"])
	assert.Equal(t, 5, payload["count"])
}

func TestWebSearchNumResultsCap(t *testing.T) {
	search := NewWebSearchTool()

	out, err := search.Call(context.Background(), map[string]any{
		"query":       "golang",
		"num_results": float64(25),
	})
	assert.NoError(t, err)
	assert.Equal(t, 10, out.(map[string]any)["count"])
}

func TestWebSearchMissingQuery(t *testing.T) {
	search := NewWebSearchTool()

	_, err := search.Call(context.Background(), map[string]any{})
	assert.Error(t, err)
	toolErr, ok := err.(*ToolError)
	assert.True(t, ok)
	assert.Equal(t, CodeValidationError, toolErr.Code)
}

func TestWebSearchAgainstServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "test-cx", r.URL.Query().Get("cx"))
		assert.Equal(t, "go concurrency", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[
			{"title":"Go by Example","link":"https://gobyexample.com","snippet":"Goroutines and channels"},
			{"title":"Effective Go","link":"https://go.dev/doc/effective_go","snippet":"Concurrency section"}
		]}`))
	}))
	defer server.Close()

	search := NewWebSearchTool(func(o *WebSearchOptions) {
		o.APIKey = "test-key"
		o.EngineID = "test-cx"
		o.BaseURL = server.URL
	})

	out, err := search.Call(context.Background(), map[string]any{"query": "go concurrency"})
	assert.NoError(t, err)

	payload := out.(map[string]any)
	assert.Equal(t, "success", payload["status"])
	assert.Equal(t, 2, payload["count"])
	assert.NotContains(t, payload, "simulated")

	results := payload["results"].([]map[string]any)
	assert.Equal(t, "Go by Example", results[0]["title"])
}

func TestWebSearchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	search := NewWebSearchTool(func(o *WebSearchOptions) {
		o.APIKey = "test-key"
		o.EngineID = "test-cx"
		o.BaseURL = server.URL
	})

	_, err := search.Call(context.Background(), map[string]any{"query": "anything"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}
