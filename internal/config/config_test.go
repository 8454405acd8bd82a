package config

import (
	"os"
	"testing"
)

func setRequiredVars(t *testing.T) {
	t.Helper()
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
}

func TestLoad_WithRequiredVars(t *testing.T) {
	setRequiredVars(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("expected MongoURI to be set, got %s", cfg.MongoURI)
	}

	if cfg.JWTSecret != "test-secret" {
		t.Errorf("expected JWTSecret to be set, got %s", cfg.JWTSecret)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("MONGO_URI")
	os.Unsetenv("REDIS_URL")
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("STRIPE_SECRET_KEY")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing required vars, got nil")
	}
}

func TestConfig_Defaults(t *testing.T) {
	setRequiredVars(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.AppEnv != "development" {
		t.Errorf("expected default AppEnv 'development', got %s", cfg.AppEnv)
	}

	if cfg.AppPort != 5000 {
		t.Errorf("expected default AppPort 5000, got %d", cfg.AppPort)
	}

	if cfg.MongoDB != "altiq" {
		t.Errorf("expected default MongoDB 'altiq', got %s", cfg.MongoDB)
	}

	if cfg.SessionTTL.Hours() != 1 {
		t.Errorf("expected default SessionTTL 1h, got %s", cfg.SessionTTL)
	}

	if cfg.LogFormat != "json" {
		t.Errorf("expected default LogFormat 'json', got %s", cfg.LogFormat)
	}

	if !cfg.RateLimitLoginEnabled {
		t.Error("expected login rate limiting enabled by default")
	}
}

func TestConfig_IsProduction(t *testing.T) {
	cfg := &Config{AppEnv: "production"}
	if !cfg.IsProduction() {
		t.Error("expected IsProduction to return true")
	}
	if cfg.IsDevelopment() {
		t.Error("expected IsDevelopment to return false")
	}
}

func TestConfig_GetCORSAllowedOrigins(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"empty", "", 0},
		{"single", "https://example.com", 1},
		{"multiple with spaces", "https://a.com, https://b.com ,https://c.com", 3},
		{"trailing comma", "https://a.com,", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{CORSAllowedOrigins: tt.value}
			got := cfg.GetCORSAllowedOrigins()
			if len(got) != tt.want {
				t.Errorf("expected %d origins, got %d (%v)", tt.want, len(got), got)
			}
		})
	}
}
