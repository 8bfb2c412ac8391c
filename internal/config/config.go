// Package config resolves API credentials and endpoints from a local .env
// file and the environment.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	OpenRouterKey     string
	OpenRouterBaseURL string
	Model             string
	HuggingFaceToken  string
	SummaryURL        string
}

// Load reads .env from the working directory when present, then resolves
// settings from the environment. A missing .env is not an error.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		OpenRouterKey:     os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterBaseURL: os.Getenv("OPENROUTER_BASE_URL"),
		Model:             os.Getenv("MERGELENS_MODEL"),
		HuggingFaceToken:  os.Getenv("HF_API_TOKEN"),
		SummaryURL:        os.Getenv("HF_SUMMARY_URL"),
	}
}

// RequireOpenRouter fails when no key is available for the chat completions
// backend. Only commands that actually reach the network call this.
func (c Config) RequireOpenRouter() error {
	if c.OpenRouterKey == "" {
		return fmt.Errorf("missing OpenRouter API key: set OPENROUTER_API_KEY in the environment or a .env file")
	}
	return nil
}

// RequireHuggingFace fails when no token is available for the summarization
// backend.
func (c Config) RequireHuggingFace() error {
	if c.HuggingFaceToken == "" {
		return fmt.Errorf("missing HuggingFace token: set HF_API_TOKEN in the environment or a .env file")
	}
	return nil
}
