package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		setEnv       bool
		envValue     string
		expected     string
	}{
		{
			name:         "env variable set",
			key:          "TEST_KEY",
			defaultValue: "default",
			setEnv:       true,
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable not set",
			key:          "TEST_KEY_NOT_SET",
			defaultValue: "default",
			setEnv:       false,
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			}

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestConfig_DBPath(t *testing.T) {
	cfg := &Config{DataDir: "data"}
	assert.Equal(t, filepath.Join("data", "lexicon.db"), cfg.DBPath())
}

// clearConfigEnv unsets every variable Load reads so the surrounding
// environment cannot leak into assertions; originals are restored on
// cleanup
func clearConfigEnv(t *testing.T) {
	t.Helper()

	keys := []string{
		"LEXICON_ADDR",
		"LEXICON_DATA_DIR",
		"GEMINI_API_KEY",
		"GEMINI_BASE_URL",
		"GEMINI_ENTRY_MODEL",
		"GEMINI_PASSAGE_MODEL",
		"GEMINI_SPEECH_MODEL",
	}
	for _, key := range keys {
		if original, ok := os.LookupEnv(key); ok {
			key, original := key, original
			t.Cleanup(func() { os.Setenv(key, original) })
			os.Unsetenv(key)
		}
	}
}

func TestLoad_MissingAPIKey(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_Defaults(t *testing.T) {
	clearConfigEnv(t)
	os.Setenv("GEMINI_API_KEY", "test-key")
	defer os.Unsetenv("GEMINI_API_KEY")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, "localhost:8787", cfg.Addr)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "https://generativelanguage.googleapis.com", cfg.Gemini.BaseURL)
	assert.Equal(t, "gemini-3-flash-preview", cfg.Gemini.EntryModel)
	assert.Equal(t, "gemini-3-pro-preview", cfg.Gemini.PassageModel)
	assert.Equal(t, "gemini-2.5-flash-preview-tts", cfg.Gemini.SpeechModel)
}
