package agent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenericRolePrompt(t *testing.T) {
	r := GenericRole{}
	assert.Equal(t, "generic", r.Name())

	assert.Equal(t, "just the task", r.FormatPrompt("just the task", nil))

	prompt := r.FormatPrompt("the task", map[string]any{"b": 2, "a": 1})
	assert.True(t, strings.HasPrefix(prompt, "the task\n\nContext:\n"))
	// Context keys render in sorted order for deterministic prompts.
	assert.Contains(t, prompt, "- a: 1\n- b: 2\n")
}

func TestAnalysisRolePrompt(t *testing.T) {
	r := AnalysisRole{}
	assert.Equal(t, "analysis", r.Name())

	prompt := r.FormatPrompt("find trends", map[string]any{"dataset": "sales"})
	assert.True(t, strings.HasPrefix(prompt, "Analysis Task: find trends\n\n"))
	assert.Contains(t, prompt, "Data/Context to Analyze:\n- dataset: sales")
	assert.Contains(t, prompt, "Identify key patterns and trends")

	// No context block without context.
	bare := r.FormatPrompt("find trends", nil)
	assert.NotContains(t, bare, "Data/Context to Analyze")
}

func TestResearchRolePrompt(t *testing.T) {
	r := ResearchRole{}
	assert.Equal(t, "research", r.Name())

	prompt := r.FormatPrompt("wasm adoption", map[string]any{"depth": "survey"})
	assert.True(t, strings.HasPrefix(prompt, "Research Task: wasm adoption\n\n"))
	assert.Contains(t, prompt, "Additional Context:\n- depth: survey")
	assert.Contains(t, prompt, "Cite sources")
}

func TestSystemPromptForRole(t *testing.T) {
	assert.Contains(t, SystemPromptForRole(AnalysisRole{}), "analytical agent")
	assert.Contains(t, SystemPromptForRole(ResearchRole{}), "research specialist agent")
	assert.Equal(t, "You are a helpful AI agent.", SystemPromptForRole(GenericRole{}))
}
