package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
	ProviderMock       = "mock"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// defaultModels is the model used when Config.Model is empty.
var defaultModels = map[string]string{
	ProviderAnthropic:  "claude-haiku",
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderOpenRouter: "google/gemini-2.0-flash-001",
	ProviderGemini:     "gemini-flash",
	ProviderMock:       "mock",
}

// Config selects and configures one provider.
type Config struct {
	Provider string        `toml:"provider"`
	Model    string        `toml:"model"`
	BaseURL  string        `toml:"base_url"`
	Timeout  time.Duration `toml:"-"`

	// APIKey is never read from the config file.
	APIKey string      `toml:"-"`
	Retry  RetryConfig `toml:"-"`
}

// RetryConfig controls backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetry is three attempts starting at one second.
func DefaultRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Second,
		MaxWait:     10 * time.Second,
		Multiplier:  2,
	}
}

// WithDefaults fills unset fields.
func (c Config) WithDefaults() Config {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Model == "" {
		c.Model = defaultModels[c.Provider]
	}
	if c.Provider == ProviderOpenRouter && c.BaseURL == "" {
		c.BaseURL = defaultOpenRouterBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	if c.Retry.MaxAttempts == 0 {
		c.Retry = DefaultRetry()
	}
	return c
}

// ApplyEnv overlays MUMSKIDS_LLM_* variables and the provider's API key.
// When no provider is configured, the first standard vendor key found
// (GEMINI, OPENAI, ANTHROPIC, OPENROUTER) selects one.
func (c Config) ApplyEnv(getenv func(string) string) Config {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv("MUMSKIDS_LLM_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := getenv("MUMSKIDS_LLM_MODEL"); v != "" {
		c.Model = v
	}
	if v := getenv("MUMSKIDS_LLM_BASE_URL"); v != "" {
		c.BaseURL = v
	}

	if c.Provider == "" {
		for _, p := range []string{ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderOpenRouter} {
			if getenv(vendorKeyVar(p)) != "" {
				c.Provider = p
				break
			}
		}
	}
	if c.APIKey == "" && c.Provider != "" {
		c.APIKey = getenv(keyVar(c.Provider))
		if c.APIKey == "" {
			c.APIKey = getenv(vendorKeyVar(c.Provider))
		}
	}
	return c
}

// Enabled reports whether a provider is selected.
func (c Config) Enabled() bool {
	return c.Provider != ""
}

// Validate checks that the provider is known and has a key.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderMock:
		return nil
	case ProviderAnthropic, ProviderOpenAI, ProviderOpenRouter, ProviderGemini:
		if c.APIKey == "" {
			return fmt.Errorf("%s or %s is required for the %s provider",
				keyVar(c.Provider), vendorKeyVar(c.Provider), c.Provider)
		}
		return nil
	default:
		return fmt.Errorf("unknown llm provider %q", c.Provider)
	}
}

func keyVar(provider string) string {
	return "MUMSKIDS_" + strings.ToUpper(provider) + "_API_KEY"
}

func vendorKeyVar(provider string) string {
	return strings.ToUpper(provider) + "_API_KEY"
}
