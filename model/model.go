// Package model defines the gateway contract between agents and generative
// model providers: a normalized request (conversation contents plus optional
// tool schemas) and a single response that is either a final text answer or a
// set of tool invocation requests. Provider adapters live in subpackages
// (gemini, openai, anthropic); ScriptedModel is an in-memory implementation
// for tests and examples.
package model

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pversteeg/conclave/core"
)

// ToolDefinition declaratively exposes a callable function to the model.
// The schema is the only contract the provider sees; the executable behind
// it is opaque.
type ToolDefinition struct {
	Type     string             `json:"type"` // "function"
	Function FunctionDefinition `json:"function"`
}

// FunctionDefinition describes an individual function (tool) exposed to the
// model. Parameters is a JSON Schema object (minimal subset: type,
// properties, required).
type FunctionDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Request captures one normalized model turn: the system prompt, the
// conversation so far, and the tool schemas the model may call.
type Request struct {
	System   string           `json:"system,omitempty"`
	Contents []core.Content   `json:"contents"`
	Tools    []ToolDefinition `json:"tools,omitempty"`
}

// TokenUsage captures token accounting for a response when the provider
// reports it.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is a complete model turn. It contains either a final text answer,
// one or more function call requests, or both.
type Response struct {
	ID           string       `json:"id,omitempty"`
	Content      core.Content `json:"content"`
	FinishReason string       `json:"finish_reason,omitempty"` // "stop", "tool_calls", "length", ...
	Usage        *TokenUsage  `json:"usage,omitempty"`
}

// Text returns the concatenated text of the response.
func (r *Response) Text() string { return r.Content.Text() }

// ToolCalls returns any function call requests contained in the response.
func (r *Response) ToolCalls() []core.FunctionCall { return r.Content.FunctionCalls() }

// Info contains metadata about a model implementation.
type Info struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"` // "gemini", "openai", "anthropic", "scripted", ...
	SupportsTools bool   `json:"supports_tools"`
}

// Model is the minimal gateway interface required to drive a conversation
// loop. Generate performs one turn: it must honor ctx cancellation and return
// a transport or provider failure as an error (the loop converts that into a
// failed result).
type Model interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// scriptedTurn is one canned gateway reply.
type scriptedTurn struct {
	resp  *Response
	err   error
	delay time.Duration
}

// ScriptedModel is a deterministic in-memory Model for tests and examples.
// Turns are consumed in FIFO order; once the script is exhausted it echoes
// the last user text, which keeps repeated identical runs deterministic.
type ScriptedModel struct {
	mu       sync.Mutex
	info     Info
	turns    []scriptedTurn
	requests []Request
}

// NewScriptedModel constructs a ScriptedModel with tool support enabled.
func NewScriptedModel(name string) *ScriptedModel {
	return &ScriptedModel{
		info: Info{Name: name, Provider: "scripted", SupportsTools: true},
	}
}

// AddTextTurn queues a final text answer.
func (m *ScriptedModel) AddTextTurn(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = append(m.turns, scriptedTurn{resp: &Response{
		Content:      core.NewTextContent("assistant", text),
		FinishReason: "stop",
	}})
}

// AddToolCallTurn queues a turn requesting the named tool with a JSON
// argument payload.
func (m *ScriptedModel) AddToolCallTurn(toolName, argsJSON string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = append(m.turns, scriptedTurn{resp: &Response{
		Content: core.Content{
			Role: "assistant",
			Parts: []core.Part{core.FunctionCallPart{FunctionCall: core.FunctionCall{
				ID:        fmt.Sprintf("call-%d", len(m.turns)+1),
				Name:      toolName,
				Arguments: argsJSON,
			}}},
		},
		FinishReason: "tool_calls",
	}})
}

// AddErrorTurn queues a transport-level failure.
func (m *ScriptedModel) AddErrorTurn(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = append(m.turns, scriptedTurn{err: err})
}

// AddDelayedTextTurn queues a text answer that blocks for the given duration
// (or until ctx is done) before replying. Useful for timeout tests.
func (m *ScriptedModel) AddDelayedTextTurn(text string, delay time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = append(m.turns, scriptedTurn{resp: &Response{
		Content:      core.NewTextContent("assistant", text),
		FinishReason: "stop",
	}, delay: delay})
}

// Requests returns a copy of every request seen so far, in order.
func (m *ScriptedModel) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// Calls reports how many times Generate has been invoked.
func (m *ScriptedModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Generate implements Model.
func (m *ScriptedModel) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	var turn scriptedTurn
	scripted := len(m.turns) > 0
	if scripted {
		turn = m.turns[0]
		m.turns = m.turns[1:]
	}
	m.mu.Unlock()

	if !scripted {
		var lastText string
		for i := len(req.Contents) - 1; i >= 0; i-- {
			if req.Contents[i].Role == "user" {
				lastText = req.Contents[i].Text()
				break
			}
		}
		return &Response{
			Content:      core.NewTextContent("assistant", "Scripted response to: "+lastText),
			FinishReason: "stop",
		}, nil
	}

	if turn.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(turn.delay):
		}
	}
	if turn.err != nil {
		return nil, turn.err
	}
	return turn.resp, nil
}

// Info implements Model.
func (m *ScriptedModel) Info() Info { return m.info }
