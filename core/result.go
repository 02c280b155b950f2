package core

import (
	"time"

	"github.com/google/uuid"
)

// Status tracks the lifecycle of an agent execution.
type Status string

const (
	// StatusIdle means the agent has not started processing.
	StatusIdle Status = "idle"
	// StatusRunning means a task is currently executing.
	StatusRunning Status = "running"
	// StatusCompleted means the last task finished successfully.
	StatusCompleted Status = "completed"
	// StatusFailed means the last task terminated with an error.
	StatusFailed Status = "failed"
)

// ToolInvocation records a single tool call made during a conversation loop:
// the function name, the arguments the model supplied, and the result or
// error the tool produced. The slice attached to a Result is append-only
// while the loop runs and immutable once it ends.
type ToolInvocation struct {
	Name   string         `json:"function"`
	Args   map[string]any `json:"args,omitempty"`
	Result any            `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// Result is the terminal outcome of a Run or workflow call. It is created
// once per invocation and never mutated after being returned; ownership
// transfers to the caller.
type Result struct {
	ID        string           `json:"id"`
	AgentName string           `json:"agent_name"`
	Content   string           `json:"content"`
	Status    Status           `json:"status"`
	Metadata  map[string]any   `json:"metadata,omitempty"`
	ToolCalls []ToolInvocation `json:"tool_calls,omitempty"`
	Error     string           `json:"error,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// NewResult creates an empty result owned by the named agent.
func NewResult(agentName string) *Result {
	return &Result{
		ID:        NewID(),
		AgentName: agentName,
		Metadata:  map[string]any{},
		CreatedAt: time.Now().UTC(),
	}
}

// NewCompletedResult creates a successful result carrying the final content.
func NewCompletedResult(agentName, content string) *Result {
	r := NewResult(agentName)
	r.Status = StatusCompleted
	r.Content = content
	return r
}

// NewFailedResult creates a failed result carrying a human-readable error message.
func NewFailedResult(agentName, errMsg string) *Result {
	r := NewResult(agentName)
	r.Status = StatusFailed
	r.Error = errMsg
	return r
}

// NewID generates a unique identifier for results and correlation.
func NewID() string { return uuid.NewString() }
