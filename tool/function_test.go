package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sumTool() *FunctionTool {
	return NewFunctionTool(
		"calculate_sum",
		"Calculate the sum of two numbers",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"a": map[string]any{"type": "number"},
				"b": map[string]any{"type": "number"},
			},
			"required": []string{"a", "b"},
		},
		func(_ context.Context, args map[string]any) (any, error) {
			return args["a"].(float64) + args["b"].(float64), nil
		},
	)
}

func TestFunctionToolCall(t *testing.T) {
	sum := sumTool()

	assert.Equal(t, "calculate_sum", sum.Name())
	assert.Equal(t, "Calculate the sum of two numbers", sum.Description())
	assert.Equal(t, "object", sum.Parameters()["type"])

	out, err := sum.Call(context.Background(), map[string]any{"a": 2.0, "b": 3.0})
	assert.NoError(t, err)
	assert.Equal(t, 5.0, out)
}

func TestFunctionToolValidationError(t *testing.T) {
	sum := sumTool()

	_, err := sum.Call(context.Background(), map[string]any{"a": 2.0})
	assert.Error(t, err)

	toolErr, ok := err.(*ToolError)
	assert.True(t, ok)
	assert.Equal(t, CodeValidationError, toolErr.Code)
	assert.Equal(t, "calculate_sum", toolErr.Tool)
	assert.Contains(t, toolErr.Error(), "VALIDATION_ERROR")
}

func TestFunctionToolExecutionError(t *testing.T) {
	failing := NewFunctionTool("boom", "always fails", map[string]any{"type": "object"},
		func(_ context.Context, _ map[string]any) (any, error) {
			return nil, errors.New("backend unavailable")
		})

	_, err := failing.Call(context.Background(), map[string]any{})
	toolErr, ok := err.(*ToolError)
	assert.True(t, ok)
	assert.Equal(t, CodeExecutionError, toolErr.Code)
	assert.Equal(t, "backend unavailable", toolErr.Message)
}

func TestFunctionToolPreservesCustomToolError(t *testing.T) {
	custom := NewToolError("quota", "rate limited", "RATE_LIMITED")
	failing := NewFunctionTool("quota", "rate limited tool", map[string]any{"type": "object"},
		func(_ context.Context, _ map[string]any) (any, error) {
			return nil, custom
		})

	_, err := failing.Call(context.Background(), map[string]any{})
	toolErr, ok := err.(*ToolError)
	assert.True(t, ok)
	assert.Equal(t, "RATE_LIMITED", toolErr.Code)
	assert.Same(t, custom, toolErr)
}

type echoParams struct {
	Message string `json:"message" description:"Text to echo"`
	Times   *int   `json:"times" description:"Optional repeat count"`
}

func TestFunctionToolFromStruct(t *testing.T) {
	echo := NewFunctionToolFromStruct("echo", "Echo a message", echoParams{},
		func(_ context.Context, args map[string]any) (any, error) {
			return args["message"], nil
		})

	props := echo.Parameters()["properties"].(map[string]any)
	assert.Contains(t, props, "message")
	assert.Contains(t, props, "times")

	_, err := echo.Call(context.Background(), map[string]any{})
	assert.Error(t, err) // message is required

	out, err := echo.Call(context.Background(), map[string]any{"message": "hi"})
	assert.NoError(t, err)
	assert.Equal(t, "hi", out)
}
