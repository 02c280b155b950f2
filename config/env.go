package config

import (
	"os"
	"regexp"

	"github.com/joho/godotenv"
)

// Env collects the environment-level settings consumed by the library:
// the default endpoint target and provider credentials.
type Env struct {
	// Target is the default endpoint identifier (PROJECT_ID equivalent).
	Target   string
	Location string

	GoogleAPIKey    string
	OpenAIAPIKey    string
	AnthropicAPIKey string

	SearchAPIKey   string
	SearchEngineID string
}

// LoadEnv loads .env files into the process environment. Missing files are
// ignored so the call is safe in production where variables come from the
// real environment.
func LoadEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}
}

// FromEnv snapshots the relevant environment variables.
func FromEnv() Env {
	location := os.Getenv("LOCATION")
	if location == "" {
		location = "us-central1"
	}
	return Env{
		Target:          os.Getenv("PROJECT_ID"),
		Location:        location,
		GoogleAPIKey:    os.Getenv("GOOGLE_API_KEY"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		SearchAPIKey:    os.Getenv("SEARCH_API_KEY"),
		SearchEngineID:  os.Getenv("SEARCH_ENGINE_ID"),
	}
}

var (
	envWithDefault = regexp.MustCompile(`\$\{([A-Z_][A-Z0-9_]*):-(.*?)\}`)
	envBraced      = regexp.MustCompile(`\$\{([A-Z_][A-Z0-9_]*)\}`)
)

// expandEnvVars substitutes ${VAR} and ${VAR:-default} references in raw
// configuration text.
func expandEnvVars(s string) string {
	s = envWithDefault.ReplaceAllStringFunc(s, func(match string) string {
		parts := envWithDefault.FindStringSubmatch(match)
		if val := os.Getenv(parts[1]); val != "" {
			return val
		}
		return parts[2]
	})
	s = envBraced.ReplaceAllStringFunc(s, func(match string) string {
		parts := envBraced.FindStringSubmatch(match)
		return os.Getenv(parts[1])
	})
	return s
}
