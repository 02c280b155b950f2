package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultSearchBaseURL = "https://www.googleapis.com/customsearch/v1"

// WebSearchOptions configures the web search tool.
type WebSearchOptions struct {
	// APIKey and EngineID enable real Google Custom Search queries. When
	// either is empty the tool returns simulated results so agents remain
	// usable in development.
	APIKey   string
	EngineID string
	// BaseURL overrides the search endpoint (tests).
	BaseURL string
	// HTTPClient overrides the default client.
	HTTPClient *http.Client
	// MaxResults caps the number of results per query (API limit is 10).
	MaxResults int
}

// NewWebSearchTool builds a tool that searches the web via the Google Custom
// Search API, falling back to simulated results when no API credentials are
// configured.
func NewWebSearchTool(optFns ...func(o *WebSearchOptions)) *FunctionTool {
	opts := WebSearchOptions{
		BaseURL:    defaultSearchBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		MaxResults: 5,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "The search query",
			},
			"num_results": map[string]any{
				"type":        "integer",
				"description": "Number of results to return (max 10)",
			},
		},
		"required": []string{"query"},
	}

	return NewFunctionTool(
		"web_search",
		"Search the web for information on a topic",
		schema,
		func(ctx context.Context, args map[string]any) (any, error) {
			query, _ := args["query"].(string)
			n := opts.MaxResults
			if raw, ok := args["num_results"].(float64); ok && int(raw) > 0 {
				n = int(raw)
			}
			if n > 10 {
				n = 10
			}
			if opts.APIKey == "" || opts.EngineID == "" {
				return simulatedSearch(query, n), nil
			}
			return googleSearch(ctx, opts, query, n)
		},
	)
}

type searchResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

func googleSearch(ctx context.Context, opts WebSearchOptions, query string, n int) (any, error) {
	params := url.Values{}
	params.Set("key", opts.APIKey)
	params.Set("cx", opts.EngineID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(n))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opts.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	resp, err := opts.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned status %d", resp.StatusCode)
	}

	var payload struct {
		Items []searchResult `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	results := make([]map[string]any, 0, len(payload.Items))
	for _, item := range payload.Items {
		results = append(results, map[string]any{
			"title":   item.Title,
			"link":    item.Link,
			"snippet": item.Snippet,
		})
	}
	return map[string]any{
		"status":  "success",
		"query":   query,
		"results": results,
		"count":   len(results),
	}, nil
}

// simulatedSearch produces placeholder results when no API key is configured,
// mirroring the behavior of the search backends this tool wraps in
// development environments.
func simulatedSearch(query string, n int) any {
	results := make([]map[string]any, 0, n)
	for i := 1; i <= n; i++ {
		results = append(results, map[string]any{
			"title":   fmt.Sprintf("Simulated result %d for: %s", i, query),
			"link":    fmt.Sprintf("https://example.com/result-%d", i),
			"snippet": fmt.Sprintf("This is a simulated search result about %s.", query),
		})
	}
	return map[string]any{
		"status":    "success",
		"query":     query,
		"results":   results,
		"count":     len(results),
		"simulated": true,
	}
}
