package uci

import (
	"os"
	"path/filepath"
	"testing"
)

func writeServiceFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestRegistry_ReloadFromDir(t *testing.T) {
	dir := t.TempDir()
	writeServiceFile(t, dir, "ddns", `
config service 'dyndns'
	option enabled '1'
	option lookup_host 'example.com'

config service 'noip'
	option enabled '0'
`)
	writeServiceFile(t, dir, "broken", "option stray '1'\n")
	writeServiceFile(t, dir, ".hidden", "config service 'ghost'\n")

	reg := NewRegistry()
	res, err := reg.ReloadFromDir(dir)
	if err != nil {
		t.Fatalf("ReloadFromDir err=%v", err)
	}
	if len(res.LoadedServices) != 2 {
		t.Fatalf("loaded=%v, want 2 services", res.LoadedServices)
	}
	if len(res.SkippedFiles) != 1 || res.SkippedFiles[0] != "broken" {
		t.Fatalf("skipped=%v", res.SkippedFiles)
	}

	names := reg.ListServiceNames()
	if len(names) != 2 || names[0] != "dyndns" || names[1] != "noip" {
		t.Fatalf("names=%v", names)
	}

	svc, ok := reg.GetService("dyndns")
	if !ok {
		t.Fatalf("dyndns not found")
	}
	if !svc.Enabled() {
		t.Fatalf("dyndns should be enabled")
	}
	if svc.Section.Get("lookup_host") != "example.com" {
		t.Fatalf("lookup_host=%q", svc.Section.Get("lookup_host"))
	}
	if _, ok := reg.GetService("ghost"); ok {
		t.Fatalf("hidden file must not be loaded")
	}
}

func TestRegistry_ReloadReplacesView(t *testing.T) {
	dir := t.TempDir()
	writeServiceFile(t, dir, "ddns", "config service 'old'\n\toption enabled '1'\n")

	reg := NewRegistry()
	if _, err := reg.ReloadFromDir(dir); err != nil {
		t.Fatalf("first reload err=%v", err)
	}

	writeServiceFile(t, dir, "ddns", "config service 'new'\n\toption enabled '1'\n")
	if _, err := reg.ReloadFromDir(dir); err != nil {
		t.Fatalf("second reload err=%v", err)
	}
	if _, ok := reg.GetService("old"); ok {
		t.Fatalf("stale service survived reload")
	}
	if _, ok := reg.GetService("new"); !ok {
		t.Fatalf("new service missing after reload")
	}
}

func TestRegistry_MissingDirIsEmpty(t *testing.T) {
	reg := NewRegistry()
	res, err := reg.ReloadFromDir(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("missing dir err=%v", err)
	}
	if len(res.LoadedServices) != 0 || len(reg.ListServiceNames()) != 0 {
		t.Fatalf("expected empty registry")
	}
}
