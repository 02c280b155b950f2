package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContentText(t *testing.T) {
	c := Content{Role: "assistant", Parts: []Part{
		TextPart{Text: "Hello, "},
		FunctionCallPart{FunctionCall: FunctionCall{Name: "noop"}},
		TextPart{Text: "world"},
	}}
	assert.Equal(t, "Hello, world", c.Text())
}

func TestContentFunctionCalls(t *testing.T) {
	c := Content{Role: "assistant", Parts: []Part{
		FunctionCallPart{FunctionCall: FunctionCall{ID: "1", Name: "first"}},
		TextPart{Text: "thinking"},
		FunctionCallPart{FunctionCall: FunctionCall{ID: "2", Name: "second"}},
	}}

	calls := c.FunctionCalls()
	assert.Len(t, calls, 2)
	assert.Equal(t, "first", calls[0].Name)
	assert.Equal(t, "second", calls[1].Name)
}

func TestNewTextContent(t *testing.T) {
	c := NewTextContent("user", "hi")
	assert.Equal(t, "user", c.Role)
	assert.Equal(t, "hi", c.Text())
	assert.Empty(t, c.FunctionCalls())
}

func TestResultConstructors(t *testing.T) {
	ok := NewCompletedResult("analyst", "done")
	assert.Equal(t, StatusCompleted, ok.Status)
	assert.Equal(t, "analyst", ok.AgentName)
	assert.Equal(t, "done", ok.Content)
	assert.NotEmpty(t, ok.ID)
	assert.WithinDuration(t, time.Now().UTC(), ok.CreatedAt, 5*time.Second)

	failed := NewFailedResult("analyst", "backend down")
	assert.Equal(t, StatusFailed, failed.Status)
	assert.Equal(t, "backend down", failed.Error)
	assert.Empty(t, failed.Content)

	assert.NotEqual(t, ok.ID, failed.ID)
}

func TestDefaultAgentConfig(t *testing.T) {
	cfg := DefaultAgentConfig("researcher")
	assert.Equal(t, "researcher", cfg.Name)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, DefaultTemperature, cfg.Temperature)
	assert.Equal(t, DefaultTopP, cfg.TopP)
	assert.Equal(t, DefaultTopK, cfg.TopK)
	assert.Equal(t, DefaultMaxTokens, cfg.MaxTokens)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.NoError(t, cfg.Validate())
}

func TestAgentConfigValidate(t *testing.T) {
	cfg := DefaultAgentConfig("")
	assert.ErrorIs(t, cfg.Validate(), ErrMissingName)

	cfg = DefaultAgentConfig("a")
	cfg.Model = ""
	assert.Error(t, cfg.Validate())

	cfg = DefaultAgentConfig("a")
	cfg.Temperature = 2.5
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "temperature")

	cfg.Temperature = 0
	assert.NoError(t, cfg.Validate())
}
