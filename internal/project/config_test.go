package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte(body), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return dir
}

func TestLoadMissingManifestGivesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Defaults() {
		t.Fatalf("cfg = %#v, want defaults", cfg)
	}
}

func TestLoadOverridesOnlyPresentKeys(t *testing.T) {
	dir := writeManifest(t, `
[docs]
root = "doc/impl"

[browser]
color = "off"
`)
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Docs.Root != "doc/impl" {
		t.Fatalf("Docs.Root = %q", cfg.Docs.Root)
	}
	if cfg.Docs.Pattern != Defaults().Docs.Pattern {
		t.Fatalf("Docs.Pattern = %q, want default kept", cfg.Docs.Pattern)
	}
	if cfg.Browser.Color != "off" {
		t.Fatalf("Browser.Color = %q", cfg.Browser.Color)
	}
	if !cfg.Browser.ShowSynthetic {
		t.Fatal("Browser.ShowSynthetic default lost")
	}
}

func TestLoadRejectsBadColor(t *testing.T) {
	dir := writeManifest(t, `
[browser]
color = "sometimes"
`)
	_, err := Load(dir)
	if !errors.Is(err, ErrBadColorMode) {
		t.Fatalf("error = %v, want ErrBadColorMode", err)
	}
}

func TestLoadRejectsAbsoluteRoot(t *testing.T) {
	dir := writeManifest(t, `
[docs]
root = "/etc"
`)
	_, err := Load(dir)
	if !errors.Is(err, ErrAbsDocsRoot) {
		t.Fatalf("error = %v, want ErrAbsDocsRoot", err)
	}
}

func TestLoadRejectsBrokenTOML(t *testing.T) {
	dir := writeManifest(t, `[docs`)
	if _, err := Load(dir); err == nil {
		t.Fatal("Load accepted broken TOML")
	}
}
