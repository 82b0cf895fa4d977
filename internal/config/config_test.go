package config

import (
	"testing"

	"github.com/hitoshi/logbook/internal/credential"
)

// 必須環境変数が未設定の場合にエラーになることを検証
func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when DATABASE_URL is not set")
	}
}

// 任意項目が既定値で埋められることを検証
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/logbook?sslmode=disable")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("CORS_ALLOWED_ORIGIN", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("HASH_ITERATIONS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want %q", cfg.ServerPort, "8080")
	}
	if cfg.CORSAllowedOrigin != "http://localhost:3000" {
		t.Errorf("CORSAllowedOrigin = %q, want %q", cfg.CORSAllowedOrigin, "http://localhost:3000")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.HashIterations != credential.DefaultIterations {
		t.Errorf("HashIterations = %d, want %d", cfg.HashIterations, credential.DefaultIterations)
	}
}

// 環境変数による上書きが反映されることを検証
func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/logbook?sslmode=disable")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HASH_ITERATIONS", "120000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.ServerPort != "9090" {
		t.Errorf("ServerPort = %q, want %q", cfg.ServerPort, "9090")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.HashIterations != 120000 {
		t.Errorf("HashIterations = %d, want %d", cfg.HashIterations, 120000)
	}
}

// 数値変換に失敗した環境変数が既定値になることを検証
func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/logbook?sslmode=disable")
	t.Setenv("HASH_ITERATIONS", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.HashIterations != credential.DefaultIterations {
		t.Errorf("HashIterations = %d, want default %d", cfg.HashIterations, credential.DefaultIterations)
	}
}
