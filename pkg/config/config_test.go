package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "ddnsadmin.yaml")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfigFile(t, `
services:
  auto_reload:
    enabled: false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if cfg.Server.Listen != "127.0.0.1:8045" {
		t.Fatalf("default listen=%q", cfg.Server.Listen)
	}
	if cfg.Server.ReadTimeoutMs != 30000 || cfg.Server.WriteTimeoutMs != 30000 {
		t.Fatalf("default timeouts=%d/%d", cfg.Server.ReadTimeoutMs, cfg.Server.WriteTimeoutMs)
	}
	if cfg.Services.Dir != "/etc/config" {
		t.Fatalf("default services.dir=%q", cfg.Services.Dir)
	}
	if cfg.Services.AutoReload.Enabled {
		t.Fatalf("services.auto_reload.enabled default should be false")
	}
	if cfg.Services.AutoReload.DebounceMs != 300 {
		t.Fatalf("services.auto_reload.debounce_ms default=%d", cfg.Services.AutoReload.DebounceMs)
	}
	if !cfg.Logging.AccessLog {
		t.Fatalf("access_log default should be true")
	}
	if cfg.Server.MaxConns != 0 {
		t.Fatalf("max_conns default=%d", cfg.Server.MaxConns)
	}
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfigFile(t, `
server:
  listen: ":9001"
  max_conns: 8
services:
  dir: "./testdata/services"
  auto_reload:
    enabled: true
    debounce_ms: 150
logging:
  access_log_format_preset: "ddns_minimal"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if cfg.Server.Listen != ":9001" {
		t.Fatalf("listen=%q", cfg.Server.Listen)
	}
	if cfg.Server.MaxConns != 8 {
		t.Fatalf("max_conns=%d", cfg.Server.MaxConns)
	}
	if cfg.Services.Dir != "./testdata/services" {
		t.Fatalf("services.dir=%q", cfg.Services.Dir)
	}
	if !cfg.Services.AutoReload.Enabled || cfg.Services.AutoReload.DebounceMs != 150 {
		t.Fatalf("auto_reload=%+v", cfg.Services.AutoReload)
	}
	if cfg.Logging.AccessLogFormatPreset != "ddns_minimal" {
		t.Fatalf("preset=%q", cfg.Logging.AccessLogFormatPreset)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DDNSADM_LISTEN", ":7777")
	t.Setenv("DDNSADM_SERVICES_DIR", "/tmp/services")
	t.Setenv("DDNSADM_SERVICES_AUTO_RELOAD_ENABLED", "yes")
	t.Setenv("DDNSADM_MAX_CONNS", "4")

	path := writeConfigFile(t, "server:\n  listen: \":9001\"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if cfg.Server.Listen != ":7777" {
		t.Fatalf("env listen=%q", cfg.Server.Listen)
	}
	if cfg.Services.Dir != "/tmp/services" {
		t.Fatalf("env services.dir=%q", cfg.Services.Dir)
	}
	if !cfg.Services.AutoReload.Enabled {
		t.Fatalf("env auto_reload should be enabled")
	}
	if cfg.Server.MaxConns != 4 {
		t.Fatalf("env max_conns=%d", cfg.Server.MaxConns)
	}
}

func TestLoadIfExists(t *testing.T) {
	cfg, err := LoadIfExists(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing file err=%v", err)
	}
	if cfg != nil {
		t.Fatalf("missing file should yield nil config")
	}
	if cfg, err := LoadIfExists(""); err != nil || cfg != nil {
		t.Fatalf("empty path should yield nil,nil (got %v,%v)", cfg, err)
	}
}
