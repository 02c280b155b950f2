// Package tool implements the function calling subsystem that lets agents
// invoke structured capabilities (APIs, subprocesses, filesystem access) with
// schema-validated arguments and consistent error handling. It also ships
// reference tools mirroring common agent needs: web search, code execution
// and file management.
package tool

import (
	"context"
	"fmt"

	"github.com/pversteeg/conclave/internal/util"
)

// Tool is a named, schema-described function an agent's model may request to
// invoke mid-conversation.
//
// Implementations should:
//   - Provide clear, descriptive names (snake_case recommended) and descriptions
//   - Define a proper JSON schema for parameters
//   - Return errors instead of panicking; the conversation loop converts
//     failures into structured error payloads fed back to the model
//   - Be safe for concurrent use if shared across agents
type Tool interface {
	// Name returns the unique identifier for this tool within an agent.
	Name() string

	// Description returns a human-readable description of what this tool
	// does. It is handed to the model to guide tool selection.
	Description() string

	// Parameters returns a JSON schema describing the expected arguments.
	Parameters() map[string]any

	// Call executes the tool with arguments decoded from the model's JSON
	// payload. Blocking work must respect ctx.
	Call(ctx context.Context, args map[string]any) (any, error)
}

// ValidationError is re-exported so callers can type-assert validation
// failures without importing internal packages.
type ValidationError = util.ValidationError

// Error codes attached to ToolError by FunctionTool.
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeExecutionError  = "EXECUTION_ERROR"
)

// ToolError represents an error raised during tool execution.
type ToolError struct {
	Tool    string `json:"tool"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a ToolError with the given details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{Tool: tool, Message: message, Code: code}
}
