// Package config loads agent definitions from YAML and environment
// variables. It is a consumer-side surface: it produces core.AgentConfig
// values for callers to construct agents with, and no other component reads
// configuration or the environment on its own.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pversteeg/conclave/core"
)

// AgentSpec is one agent (or the defaults block) in a YAML file. Pointer
// fields distinguish "not set" from zero so defaults can layer cleanly.
type AgentSpec struct {
	Model          string   `yaml:"model,omitempty"`
	SystemPrompt   string   `yaml:"system_prompt,omitempty"`
	Temperature    *float64 `yaml:"temperature,omitempty"`
	TopP           *float64 `yaml:"top_p,omitempty"`
	TopK           *int     `yaml:"top_k,omitempty"`
	MaxTokens      *int     `yaml:"max_tokens,omitempty"`
	TimeoutSeconds *int     `yaml:"timeout_seconds,omitempty"`
}

// Config is a parsed configuration file: an optional endpoint target,
// defaults applied to every agent, and per-agent overrides keyed by agent
// name (names are unique by construction).
type Config struct {
	// Target is the endpoint identifier (project/location equivalent)
	// applied to every agent.
	Target   string               `yaml:"target,omitempty"`
	Location string               `yaml:"location,omitempty"`
	Defaults AgentSpec            `yaml:"defaults,omitempty"`
	Agents   map[string]AgentSpec `yaml:"agents"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses YAML configuration bytes after expanding ${VAR} references
// against the process environment.
func Parse(data []byte) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Target == "" {
		cfg.Target = FromEnv().Target
	}
	return &cfg, nil
}

// AgentConfig resolves the named agent into a core.AgentConfig, layering
// library defaults, the file's defaults block and the agent's own spec.
func (c *Config) AgentConfig(name string) (core.AgentConfig, error) {
	spec, ok := c.Agents[name]
	if !ok {
		return core.AgentConfig{}, fmt.Errorf("agent %q not defined in config", name)
	}

	out := core.DefaultAgentConfig(name)
	out.Target = c.Target
	applySpec(&out, c.Defaults)
	applySpec(&out, spec)
	return out, nil
}

// AgentNames returns the configured agent names.
func (c *Config) AgentNames() []string {
	names := make([]string, 0, len(c.Agents))
	for name := range c.Agents {
		names = append(names, name)
	}
	return names
}

func applySpec(cfg *core.AgentConfig, spec AgentSpec) {
	if spec.Model != "" {
		cfg.Model = spec.Model
	}
	if spec.SystemPrompt != "" {
		cfg.SystemPrompt = spec.SystemPrompt
	}
	if spec.Temperature != nil {
		cfg.Temperature = *spec.Temperature
	}
	if spec.TopP != nil {
		cfg.TopP = *spec.TopP
	}
	if spec.TopK != nil {
		cfg.TopK = *spec.TopK
	}
	if spec.MaxTokens != nil {
		cfg.MaxTokens = *spec.MaxTokens
	}
	if spec.TimeoutSeconds != nil {
		cfg.Timeout = time.Duration(*spec.TimeoutSeconds) * time.Second
	}
}
