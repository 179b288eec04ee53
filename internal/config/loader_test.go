package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoader_ParseEnvironment(t *testing.T) {

	t.Run("applies defaults when variables are missing", func(t *testing.T) {
		for _, key := range []string{
			"EVENTREG_HTTP_PORT",
			"EVENTREG_SQLITE_PATH",
			"EVENTREG_LOG_LEVEL",
			"EVENTREG_SHUTDOWN_TIMEOUT",
		} {
			t.Setenv(key, "")
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 8080 {
			t.Fatalf("expected default HTTP port 8080, got %d", cfg.HTTPPort)
		}
		if cfg.SQLitePath != "eventreg.db" {
			t.Fatalf("unexpected default path: %q", cfg.SQLitePath)
		}
		if cfg.LogLevel != slog.LevelInfo {
			t.Fatalf("expected info level, got %s", cfg.LogLevel)
		}
		if cfg.ShutdownTimeout != 10*time.Second {
			t.Fatalf("expected 10s shutdown timeout, got %s", cfg.ShutdownTimeout)
		}
		if cfg.Addr() != ":8080" {
			t.Fatalf("unexpected addr %q", cfg.Addr())
		}
	})

	t.Run("parses explicit values", func(t *testing.T) {
		t.Setenv("EVENTREG_HTTP_PORT", "9090")
		t.Setenv("EVENTREG_SQLITE_PATH", "/tmp/events.db")
		t.Setenv("EVENTREG_LOG_LEVEL", "debug")
		t.Setenv("EVENTREG_SHUTDOWN_TIMEOUT", "3s")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 9090 {
			t.Fatalf("expected HTTP port 9090, got %d", cfg.HTTPPort)
		}
		if cfg.SQLitePath != "/tmp/events.db" {
			t.Fatalf("unexpected path: %q", cfg.SQLitePath)
		}
		if cfg.LogLevel != slog.LevelDebug {
			t.Fatalf("expected debug level, got %s", cfg.LogLevel)
		}
		if cfg.ShutdownTimeout != 3*time.Second {
			t.Fatalf("expected 3s, got %s", cfg.ShutdownTimeout)
		}
	})

	t.Run("reports every invalid value", func(t *testing.T) {
		t.Setenv("EVENTREG_HTTP_PORT", "-1")
		t.Setenv("EVENTREG_LOG_LEVEL", "loud")
		t.Setenv("EVENTREG_SHUTDOWN_TIMEOUT", "soon")

		_, err := Load()
		if err == nil {
			t.Fatalf("expected error for invalid values")
		}
		expected := "invalid environment values: EVENTREG_HTTP_PORT, EVENTREG_LOG_LEVEL, EVENTREG_SHUTDOWN_TIMEOUT"
		if err.Error() != expected {
			t.Fatalf("unexpected error message: %q", err.Error())
		}
	})
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		if err := LoadEnvFile(filepath.Join(t.TempDir(), "absent.env")); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	})

	t.Run("values do not override the environment", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.env")
		content := "EVENTREG_HTTP_PORT=7070\nEVENTREG_SQLITE_PATH=from-file.db\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write env file: %v", err)
		}

		t.Setenv("EVENTREG_HTTP_PORT", "6060")
		t.Setenv("EVENTREG_SQLITE_PATH", "")
		if err := os.Unsetenv("EVENTREG_SQLITE_PATH"); err != nil {
			t.Fatalf("failed to unset: %v", err)
		}

		if err := LoadEnvFile(path); err != nil {
			t.Fatalf("LoadEnvFile returned error: %v", err)
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if cfg.HTTPPort != 6060 {
			t.Fatalf("expected environment to win, got %d", cfg.HTTPPort)
		}
		if cfg.SQLitePath != "from-file.db" {
			t.Fatalf("expected path from env file, got %q", cfg.SQLitePath)
		}
	})
}
