package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("QUOKKA_SUPABASE_URL", "https://abcd.supabase.co")
	t.Setenv("QUOKKA_SUPABASE_ANONKEY", "anon-key")
	t.Setenv("QUOKKA_LLM_PROVIDER", "anthropic")
	t.Setenv("QUOKKA_LLM_MODEL", "claude-haiku")
	t.Setenv("QUOKKA_APP_PORT", "9000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://abcd.supabase.co", cfg.Supabase.URL)
	assert.Equal(t, ProviderAnthropic, cfg.LLM.Provider)
	assert.Equal(t, "claude-haiku", cfg.LLM.Model)
	assert.Equal(t, 9000, cfg.App.Port)
	assert.Equal(t, 0.7, cfg.LLM.Temperature)
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr())
}

func TestLoad_MissingSupabase(t *testing.T) {
	t.Setenv("QUOKKA_SUPABASE_URL", "")
	t.Setenv("QUOKKA_SUPABASE_ANONKEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "supabase")
}

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Database: DBCfg{DSN: "host=localhost"},
			LLM:      LLMCfg{Provider: ProviderOpenAI},
			Supabase: SupabaseCfg{URL: "https://x.supabase.co", AnonKey: "k"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "gemini provider", mutate: func(c *Config) { c.LLM.Provider = ProviderGemini }},
		{name: "unknown provider", mutate: func(c *Config) { c.LLM.Provider = "mistral" }, wantErr: "invalid llm.provider"},
		{name: "empty dsn", mutate: func(c *Config) { c.Database.DSN = "" }, wantErr: "database.dsn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
