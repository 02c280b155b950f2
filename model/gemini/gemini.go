// Package gemini adapts the Google Gemini API (via the official
// google.golang.org/genai SDK) to the model.Model gateway interface. It
// supports both the Gemini API (API key) and Vertex AI (project/location)
// backends.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/pversteeg/conclave/core"
	"github.com/pversteeg/conclave/model"
)

// Options configure the Gemini model adapter.
type Options struct {
	Model       string
	Temperature float64
	TopP        float64
	TopK        int
	MaxTokens   int

	// APIKey selects the Gemini API backend.
	APIKey string
	// Project and Location select the Vertex AI backend instead.
	Project  string
	Location string
}

// Model wraps the Gemini generate-content API behind model.Model.
type Model struct {
	client *genai.Client
	opts   Options
}

// New creates a Gemini model. It returns an error when neither an API key nor
// a Vertex project is configured; callers typically construct the agent with
// a nil gateway in that case, degrading it to disabled mode.
func New(optFns ...func(o *Options)) (*Model, error) {
	opts := Options{
		Model:       core.DefaultModel,
		Temperature: core.DefaultTemperature,
		TopP:        core.DefaultTopP,
		TopK:        core.DefaultTopK,
		MaxTokens:   core.DefaultMaxTokens,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	cc := &genai.ClientConfig{}
	switch {
	case opts.Project != "":
		cc.Backend = genai.BackendVertexAI
		cc.Project = opts.Project
		cc.Location = opts.Location
	case opts.APIKey != "":
		cc.APIKey = opts.APIKey
	default:
		return nil, fmt.Errorf("gemini: either an API key or a Vertex project is required")
	}

	client, err := genai.NewClient(context.Background(), cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Model{client: client, opts: opts}, nil
}

// NewFromClient creates a Gemini model from an existing client.
func NewFromClient(client *genai.Client, optFns ...func(o *Options)) *Model {
	opts := Options{
		Model:       core.DefaultModel,
		Temperature: core.DefaultTemperature,
		TopP:        core.DefaultTopP,
		TopK:        core.DefaultTopK,
		MaxTokens:   core.DefaultMaxTokens,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Model{client: client, opts: opts}
}

// Generate implements model.Model.
func (m *Model) Generate(ctx context.Context, req model.Request) (*model.Response, error) {
	contents := buildContents(req.Contents)
	config := m.buildConfig(req)

	resp, err := m.client.Models.GenerateContent(ctx, m.opts.Model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini generation failed: %w", err)
	}
	return parseResponse(resp)
}

// Info implements model.Model.
func (m *Model) Info() model.Info {
	return model.Info{Name: m.opts.Model, Provider: "gemini", SupportsTools: true}
}

// buildContents converts normalized contents to genai contents. Tool
// responses become function-response parts under the user role, matching the
// Gemini conversation shape.
func buildContents(contents []core.Content) []*genai.Content {
	var out []*genai.Content
	for _, c := range contents {
		var parts []*genai.Part
		role := genai.RoleUser

		switch c.Role {
		case "assistant":
			role = genai.RoleModel
			for _, p := range c.Parts {
				switch part := p.(type) {
				case core.TextPart:
					if part.Text != "" {
						parts = append(parts, &genai.Part{Text: part.Text})
					}
				case core.FunctionCallPart:
					args := map[string]any{}
					if part.FunctionCall.Arguments != "" {
						_ = json.Unmarshal([]byte(part.FunctionCall.Arguments), &args)
					}
					parts = append(parts, &genai.Part{FunctionCall: &genai.FunctionCall{
						ID:   part.FunctionCall.ID,
						Name: part.FunctionCall.Name,
						Args: args,
					}})
				}
			}
		case "tool":
			for _, p := range c.Parts {
				fr, ok := p.(core.FunctionResponsePart)
				if !ok {
					continue
				}
				parts = append(parts, &genai.Part{FunctionResponse: &genai.FunctionResponse{
					ID:       fr.FunctionResponse.ID,
					Name:     fr.FunctionResponse.Name,
					Response: responseMap(fr.FunctionResponse.Response),
				}})
			}
		default: // user, system leftovers
			if text := c.Text(); text != "" {
				parts = append(parts, &genai.Part{Text: text})
			}
		}

		if len(parts) > 0 {
			out = append(out, &genai.Content{Role: role, Parts: parts})
		}
	}
	return out
}

// responseMap shapes arbitrary tool output into the map payload Gemini expects.
func responseMap(response any) map[string]any {
	if m, ok := response.(map[string]any); ok {
		return m
	}
	return map[string]any{"result": fmt.Sprintf("%v", response)}
}

func (m *Model) buildConfig(req model.Request) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(m.opts.Temperature)),
		TopP:            genai.Ptr(float32(m.opts.TopP)),
		MaxOutputTokens: int32(m.opts.MaxTokens),
	}
	if m.opts.TopK > 0 {
		config.TopK = genai.Ptr(float32(m.opts.TopK))
	}
	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: req.System}},
		}
	}
	if len(req.Tools) > 0 {
		config.Tools = buildTools(req.Tools)
	}
	return config
}

func buildTools(tools []model.ToolDefinition) []*genai.Tool {
	out := make([]*genai.Tool, 0, len(tools))
	for _, t := range tools {
		out = append(out, &genai.Tool{
			FunctionDeclarations: []*genai.FunctionDeclaration{{
				Name:        t.Function.Name,
				Description: t.Function.Description,
				Parameters:  toGenaiSchema(t.Function.Parameters),
			}},
		})
	}
	return out
}

// toGenaiSchema converts the minimal JSON-schema map used by tools into a
// genai.Schema.
func toGenaiSchema(schema map[string]any) *genai.Schema {
	if schema == nil {
		return nil
	}
	s := &genai.Schema{}
	if t, ok := schema["type"].(string); ok {
		s.Type = genaiType(t)
	}
	if desc, ok := schema["description"].(string); ok {
		s.Description = desc
	}
	if props, ok := schema["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*genai.Schema, len(props))
		for name, prop := range props {
			if pm, ok := prop.(map[string]any); ok {
				s.Properties[name] = toGenaiSchema(pm)
			}
		}
	}
	if items, ok := schema["items"].(map[string]any); ok {
		s.Items = toGenaiSchema(items)
	}
	switch req := schema["required"].(type) {
	case []string:
		s.Required = req
	case []any:
		for _, r := range req {
			if str, ok := r.(string); ok {
				s.Required = append(s.Required, str)
			}
		}
	}
	switch enum := schema["enum"].(type) {
	case []string:
		s.Enum = enum
	case []any:
		for _, e := range enum {
			if str, ok := e.(string); ok {
				s.Enum = append(s.Enum, str)
			}
		}
	}
	return s
}

func genaiType(t string) genai.Type {
	switch t {
	case "string":
		return genai.TypeString
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeUnspecified
	}
}

func parseResponse(resp *genai.GenerateContentResponse) (*model.Response, error) {
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("gemini: no candidates returned")
	}
	candidate := resp.Candidates[0]

	var parts []core.Part
	if candidate.Content != nil {
		for _, p := range candidate.Content.Parts {
			if p.Text != "" {
				parts = append(parts, core.TextPart{Text: p.Text})
			}
			if p.FunctionCall != nil {
				args := ""
				if raw, err := json.Marshal(p.FunctionCall.Args); err == nil {
					args = string(raw)
				}
				parts = append(parts, core.FunctionCallPart{FunctionCall: core.FunctionCall{
					ID:        p.FunctionCall.ID,
					Name:      p.FunctionCall.Name,
					Arguments: args,
				}})
			}
		}
	}

	out := &model.Response{
		Content:      core.Content{Role: "assistant", Parts: parts},
		FinishReason: string(candidate.FinishReason),
	}
	if resp.UsageMetadata != nil {
		out.Usage = &model.TokenUsage{
			PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
		}
	}
	return out, nil
}
