package core

import (
	"errors"
	"fmt"
	"time"
)

// Default sampling parameters applied by DefaultAgentConfig.
const (
	DefaultModel       = "gemini-2.0-flash"
	DefaultTemperature = 0.7
	DefaultTopP        = 0.95
	DefaultTopK        = 40
	DefaultMaxTokens   = 8192
	DefaultTimeout     = 5 * time.Minute
)

// AgentConfig is the immutable configuration an agent is constructed with.
// Name must be unique within an orchestrator's registry.
type AgentConfig struct {
	Name         string        `json:"name"`
	Model        string        `json:"model"`
	SystemPrompt string        `json:"system_prompt"`
	Temperature  float64       `json:"temperature"`
	TopP         float64       `json:"top_p"`
	TopK         int           `json:"top_k"`
	MaxTokens    int           `json:"max_tokens"`
	Timeout      time.Duration `json:"timeout"`
	// Target identifies the endpoint the model gateway should talk to
	// (project/location equivalent). Providers that authenticate purely via
	// API key may leave it empty.
	Target string `json:"target,omitempty"`
}

// DefaultAgentConfig returns a config with the library defaults for the named agent.
func DefaultAgentConfig(name string) AgentConfig {
	return AgentConfig{
		Name:         name,
		Model:        DefaultModel,
		SystemPrompt: "You are a helpful AI agent.",
		Temperature:  DefaultTemperature,
		TopP:         DefaultTopP,
		TopK:         DefaultTopK,
		MaxTokens:    DefaultMaxTokens,
		Timeout:      DefaultTimeout,
	}
}

// ErrMissingName indicates a config without an agent name.
var ErrMissingName = errors.New("agent name is required")

// Validate reports configuration problems. A failing config does not prevent
// agent construction; it degrades the agent to a disabled mode where every
// Run returns a failed result carrying this error.
func (c AgentConfig) Validate() error {
	if c.Name == "" {
		return ErrMissingName
	}
	if c.Model == "" {
		return fmt.Errorf("agent %q: model identifier is required", c.Name)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("agent %q: temperature %v out of range [0, 2]", c.Name, c.Temperature)
	}
	return nil
}
