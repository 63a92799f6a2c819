package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Spok95/campus-bot/internal/domain/attendance"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
app:
  env: dev
telegram:
  token: "123:abc"
postgres:
  dsn: "postgres://localhost/campus"
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.App.Env != "dev" || c.Telegram.Token != "123:abc" {
		t.Errorf("file values not read: %+v", c)
	}
	if c.Telegram.PollTimeout != 30 || c.HTTP.Addr != ":8080" || !c.Metrics.Enabled {
		t.Errorf("defaults not applied: %+v", c)
	}
	if c.Policy() != attendance.DefaultPolicy() {
		t.Errorf("policy = %+v, want default", c.Policy())
	}
}

func TestLoad_CustomPolicy(t *testing.T) {
	path := writeConfig(t, `
attendance:
  threshold: 75
  match: exact
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := attendance.Policy{Threshold: 75, Match: attendance.MatchExact}
	if c.Policy() != want {
		t.Errorf("policy = %+v, want %+v", c.Policy(), want)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, `
http:
  addr: ":9000"
`)
	t.Setenv("APP_HTTP_ADDR", ":9100")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.HTTP.Addr != ":9100" {
		t.Errorf("addr = %q, want env override", c.HTTP.Addr)
	}
}

func TestLoad_InvalidPolicy(t *testing.T) {
	path := writeConfig(t, `
attendance:
  threshold: 120
`)
	if _, err := Load(path); !errors.Is(err, attendance.ErrInvalidThreshold) {
		t.Errorf("expected ErrInvalidThreshold, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
