package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("DatabaseType = %q, want sqlite", cfg.DatabaseType)
	}
	if cfg.GroqModel != "llama-3.3-70b-versatile" {
		t.Errorf("GroqModel = %q, want llama-3.3-70b-versatile", cfg.GroqModel)
	}
	if cfg.GroqBaseURL != "https://api.groq.com/openai/v1" {
		t.Errorf("GroqBaseURL = %q", cfg.GroqBaseURL)
	}
	if cfg.ATBaseURL != "https://api.africastalking.com" {
		t.Errorf("ATBaseURL = %q", cfg.ATBaseURL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("DB_URL", "postgres://localhost/learneasy")
	t.Setenv("GROQ_MODEL", "llama-3.1-8b-instant")

	cfg := Load()

	if cfg.ServerPort != "9090" {
		t.Errorf("ServerPort = %q, want 9090", cfg.ServerPort)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("DatabaseType = %q, want postgres", cfg.DatabaseType)
	}
	if cfg.DatabaseURL != "postgres://localhost/learneasy" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.GroqModel != "llama-3.1-8b-instant" {
		t.Errorf("GroqModel = %q", cfg.GroqModel)
	}
}
