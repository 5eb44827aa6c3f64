package config

import (
	"os"
	"strconv"
)

// Config is the on-disk configuration document (config.yaml). It is
// immutable during a turn's execution; a turn reads it once at start.
type Config struct {
	// Model selects the generation backend model
	Model string `yaml:"model"`
	// Rules is the system message content
	Rules string `yaml:"rules"`
	// Temperature is the sampling temperature (0-2)
	Temperature float64 `yaml:"temperature"`
	// MaxTokens caps the generation length
	MaxTokens int `yaml:"max_tokens"`
	// MaxSearchAttempts is the total search rounds allowed per turn,
	// pre-emptive and model-requested combined
	MaxSearchAttempts int `yaml:"max_search_attempts"`
	// MaxToolAttempts caps tool-call rounds per turn
	MaxToolAttempts int `yaml:"max_tool_attempts"`
	// HistoryCap is the transcript length enforced on save
	HistoryCap int `yaml:"history_cap"`
}

// Normalize fills zero or out-of-range fields from the defaults so a
// sparse or hand-edited config.yaml still yields a usable configuration.
func (c *Config) Normalize() {
	defaults := Default()
	if c.Model == "" {
		c.Model = defaults.Model
	}
	if c.Rules == "" {
		c.Rules = defaults.Rules
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		c.Temperature = defaults.Temperature
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = defaults.MaxTokens
	}
	if c.MaxSearchAttempts < 1 {
		c.MaxSearchAttempts = defaults.MaxSearchAttempts
	}
	if c.MaxToolAttempts < 1 {
		c.MaxToolAttempts = defaults.MaxToolAttempts
	}
	if c.HistoryCap < 3 {
		c.HistoryCap = defaults.HistoryCap
	}
}

// Runtime holds the process-level settings that come from the
// environment rather than config.yaml: endpoints, credentials, paths.
//
// Environment variables:
// - JARVIS_DATA_DIR: data directory for config.yaml and history.db (default: jarvis_data)
// - LLM_API_URL: OpenAI-compatible endpoint (default: http://localhost:11434/v1)
// - LLM_API_KEY: bearer token, empty for a local backend
// - LLM_TIMEOUT: request timeout in seconds (default: 120)
// - SEARCH_API_KEY: Tavily API key, empty disables web search
// - SEARCH_API_URL: Tavily endpoint (default: https://api.tavily.com/search)
// - SEARCH_MAX_RETRIES: attempts per search call (default: 3)
// - LISTEN_ADDR: HTTP listen address, empty for REPL mode
type Runtime struct {
	DataDir          string
	LLMAPIURL        string
	LLMAPIKey        string
	LLMTimeout       int
	SearchAPIKey     string
	SearchAPIURL     string
	SearchMaxRetries int
	ListenAddr       string
}

// NewRuntimeFromEnv reads the runtime settings from the environment
func NewRuntimeFromEnv() Runtime {
	return Runtime{
		DataDir:          getEnvString("JARVIS_DATA_DIR", "jarvis_data"),
		LLMAPIURL:        getEnvString("LLM_API_URL", "http://localhost:11434/v1"),
		LLMAPIKey:        getEnvString("LLM_API_KEY", ""),
		LLMTimeout:       getEnvInt("LLM_TIMEOUT", 120),
		SearchAPIKey:     getEnvString("SEARCH_API_KEY", ""),
		SearchAPIURL:     getEnvString("SEARCH_API_URL", "https://api.tavily.com/search"),
		SearchMaxRetries: getEnvInt("SEARCH_MAX_RETRIES", 3),
		ListenAddr:       getEnvString("LISTEN_ADDR", ""),
	}
}

// getEnvString gets a string value from environment variables with default
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer value from environment variables with default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
