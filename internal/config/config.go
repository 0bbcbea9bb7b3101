package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/wayne-14e/Lexicon-AI/pkg/validator"
)

// Config holds all application configuration
type Config struct {
	Addr    string `validate:"required"`
	DataDir string `validate:"required"`
	Gemini  GeminiConfig
}

// GeminiConfig holds AI gateway settings
type GeminiConfig struct {
	APIKey       string `validate:"required"`
	BaseURL      string `validate:"required,url"`
	EntryModel   string `validate:"required"`
	PassageModel string `validate:"required"`
	SpeechModel  string `validate:"required"`
	Timeout      time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		Addr:    getEnv("LEXICON_ADDR", "localhost:8787"),
		DataDir: getEnv("LEXICON_DATA_DIR", "data"),
		Gemini: GeminiConfig{
			APIKey:       os.Getenv("GEMINI_API_KEY"),
			BaseURL:      getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
			EntryModel:   getEnv("GEMINI_ENTRY_MODEL", "gemini-3-flash-preview"),
			PassageModel: getEnv("GEMINI_PASSAGE_MODEL", "gemini-3-pro-preview"),
			SpeechModel:  getEnv("GEMINI_SPEECH_MODEL", "gemini-2.5-flash-preview-tts"),
			Timeout:      90 * time.Second,
		},
	}

	if err := validator.ValidateStruct(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DBPath returns the SQLite database file location
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "lexicon.db")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
