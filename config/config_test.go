package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pversteeg/conclave/core"
)

const sampleYAML = `
target: my-project
location: europe-west1

defaults:
  model: gemini-2.0-flash
  temperature: 0.3
  max_tokens: 2048

agents:
  researcher:
    system_prompt: "You research things."
    temperature: 0.9
    timeout_seconds: 30
  analyst:
    model: gemini-2.5-pro
`

func TestParseAndLayering(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	assert.NoError(t, err)
	assert.Equal(t, "my-project", cfg.Target)
	assert.ElementsMatch(t, []string{"researcher", "analyst"}, cfg.AgentNames())

	// Agent spec overrides the defaults block, which overrides library defaults.
	researcher, err := cfg.AgentConfig("researcher")
	assert.NoError(t, err)
	assert.Equal(t, "researcher", researcher.Name)
	assert.Equal(t, "gemini-2.0-flash", researcher.Model)
	assert.Equal(t, "You research things.", researcher.SystemPrompt)
	assert.Equal(t, 0.9, researcher.Temperature)
	assert.Equal(t, 2048, researcher.MaxTokens)
	assert.Equal(t, 30*time.Second, researcher.Timeout)
	assert.Equal(t, "my-project", researcher.Target)

	analyst, err := cfg.AgentConfig("analyst")
	assert.NoError(t, err)
	assert.Equal(t, "gemini-2.5-pro", analyst.Model)
	assert.Equal(t, 0.3, analyst.Temperature)
	// Untouched fields keep library defaults.
	assert.Equal(t, core.DefaultTopP, analyst.TopP)
	assert.Equal(t, core.DefaultTimeout, analyst.Timeout)

	_, err = cfg.AgentConfig("ghost")
	assert.Error(t, err)
}

func TestParseExpandsEnvVars(t *testing.T) {
	t.Setenv("TEST_PROJECT", "env-project")
	t.Setenv("TEST_MODEL", "")

	cfg, err := Parse([]byte(`
target: ${TEST_PROJECT}
agents:
  a:
    model: ${TEST_MODEL:-fallback-model}
`))
	assert.NoError(t, err)
	assert.Equal(t, "env-project", cfg.Target)

	a, err := cfg.AgentConfig("a")
	assert.NoError(t, err)
	assert.Equal(t, "fallback-model", a.Model)
}

func TestParseTargetFallsBackToEnv(t *testing.T) {
	t.Setenv("PROJECT_ID", "ambient-project")

	cfg, err := Parse([]byte("agents:\n  a: {}\n"))
	assert.NoError(t, err)
	assert.Equal(t, "ambient-project", cfg.Target)
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("agents: [not a map"))
	assert.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agents.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "my-project", cfg.Target)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("PROJECT_ID", "p1")
	t.Setenv("LOCATION", "")
	t.Setenv("GOOGLE_API_KEY", "gk")
	t.Setenv("SEARCH_API_KEY", "sk")

	env := FromEnv()
	assert.Equal(t, "p1", env.Target)
	assert.Equal(t, "us-central1", env.Location) // default when unset
	assert.Equal(t, "gk", env.GoogleAPIKey)
	assert.Equal(t, "sk", env.SearchAPIKey)
}
