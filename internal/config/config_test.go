package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("unexpected default addr %q", cfg.Addr)
	}
	if cfg.Database.DSN != "printgen.db" {
		t.Fatalf("unexpected default dsn %q", cfg.Database.DSN)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("unexpected default log level %q", cfg.Log.Level)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "printgen.yaml")
	contents := "addr: \":9090\"\ndatabase:\n  dsn: /tmp/test.db\nlog:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.Database.DSN != "/tmp/test.db" || cfg.Log.Level != "debug" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PRINTGEN_ADDR", ":7070")
	t.Setenv("PRINTGEN_LOG_LEVEL", "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.Log.Level != "warn" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/does/not/exist.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
