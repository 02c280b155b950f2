package tool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeExecutorUnsupportedLanguage(t *testing.T) {
	executor := NewCodeExecutorTool()

	_, err := executor.Call(context.Background(), map[string]any{
		"language": "fortran",
		"code":     "PRINT *, 'hi'",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported language")
}

func TestCodeExecutorSandboxRejection(t *testing.T) {
	executor := NewCodeExecutorTool()

	_, err := executor.Call(context.Background(), map[string]any{
		"language": "bash",
		"code":     "rm -rf /",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sandbox mode rejects")
}

func TestCodeExecutorBash(t *testing.T) {
	executor := NewCodeExecutorTool(func(o *CodeExecutorOptions) {
		o.WorkDir = t.TempDir()
	})

	out, err := executor.Call(context.Background(), map[string]any{
		"language": "bash",
		"code":     "echo hello",
	})
	assert.NoError(t, err)

	payload := out.(map[string]any)
	assert.Equal(t, "success", payload["status"])
	assert.Equal(t, "hello\n", payload["stdout"])
	assert.Equal(t, 0, payload["return_code"])
	assert.Equal(t, "bash", payload["language"])
}

func TestCodeExecutorNonZeroExit(t *testing.T) {
	executor := NewCodeExecutorTool(func(o *CodeExecutorOptions) {
		o.WorkDir = t.TempDir()
	})

	out, err := executor.Call(context.Background(), map[string]any{
		"language": "bash",
		"code":     "echo oops >&2; exit 3",
	})
	assert.NoError(t, err)

	payload := out.(map[string]any)
	assert.Equal(t, "error", payload["status"])
	assert.Equal(t, 3, payload["return_code"])
	assert.Equal(t, "oops\n", payload["stderr"])
}

func TestCodeExecutorMissingArgs(t *testing.T) {
	executor := NewCodeExecutorTool()

	_, err := executor.Call(context.Background(), map[string]any{"language": "bash"})
	toolErr, ok := err.(*ToolError)
	assert.True(t, ok)
	assert.Equal(t, CodeValidationError, toolErr.Code)
}
