package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tvconvert/internal/services"
	"tvconvert/internal/testsupport"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.FFmpegStub{}, "alpha.mkv")

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath, "")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "Targets: 1")
	requireContains(t, out, "== Readiness ==")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "", "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	_, _, err = runCLI(t, []string{"config", "init", "--path", target}, "", "")
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected existing config error, got %v", err)
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, "", ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigExampleSkipsLoading(t *testing.T) {
	broken := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(broken, []byte("not = [valid"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	out, _, err := runCLI(t, []string{"config", "example"}, broken, "")
	if err != nil {
		t.Fatalf("config example: %v", err)
	}
	requireContains(t, out, "[paths]")

	if _, _, err := runCLI(t, []string{"config", "validate"}, broken, ""); err == nil {
		t.Fatal("expected validate to reject a malformed config")
	}
}

func TestConfigValidateRejectsMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.toml")
	_, _, err := runCLI(t, []string{"config", "validate"}, missing, "")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	requireContains(t, err.Error(), missing)
}
