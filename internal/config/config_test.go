package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// Run from an empty directory so no config.json is picked up.
	chdirTemp(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.APIPort != DefaultAPIPort {
		t.Errorf("unexpected port: %q", cfg.APIPort)
	}
	if cfg.GeneratorProvider != DefaultGeneratorProvider {
		t.Errorf("unexpected provider: %q", cfg.GeneratorProvider)
	}
	if cfg.Signature != DefaultSignature {
		t.Errorf("unexpected signature: %q", cfg.Signature)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := chdirTemp(t)

	content := `{"api_port": "9090", "generator_model": "gemini-1.5-pro", "signature": "Cheers,\nJD"}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.APIPort != "9090" {
		t.Errorf("file value not applied: %q", cfg.APIPort)
	}
	if cfg.GeneratorModel != "gemini-1.5-pro" {
		t.Errorf("file value not applied: %q", cfg.GeneratorModel)
	}
	if cfg.Signature != "Cheers,\nJD" {
		t.Errorf("file value not applied: %q", cfg.Signature)
	}
	// Untouched fields keep their defaults.
	if cfg.DataDir != DefaultDataDir {
		t.Errorf("default lost: %q", cfg.DataDir)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	content := `{"api_port": "9090"}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Setenv("EMAIL_AGENT_API_PORT", "7070")
	t.Setenv("GENERATOR_API_KEY", "test-key")
	t.Setenv("GENERATOR_PROVIDER", "claude")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.APIPort != "7070" {
		t.Errorf("env did not win over file: %q", cfg.APIPort)
	}
	if cfg.GeneratorAPIKey != "test-key" || cfg.GeneratorProvider != "claude" {
		t.Errorf("generator env not applied: %+v", cfg)
	}
}

func TestGetUploadsDir(t *testing.T) {
	cfg := &Config{DataDir: "data"}
	if got := cfg.GetUploadsDir(); got != filepath.Join("data", "uploads") {
		t.Errorf("unexpected default uploads dir: %q", got)
	}

	cfg.UploadsDir = "/tmp/attachments"
	if got := cfg.GetUploadsDir(); got != "/tmp/attachments" {
		t.Errorf("explicit uploads dir ignored: %q", got)
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := chdirTemp(t)

	cfg := &Config{APIPort: "1234", DataDir: "data", Signature: "Hi"}
	path := filepath.Join(dir, "config.json")
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.APIPort != "1234" || loaded.Signature != "Hi" {
		t.Errorf("saved values not reloaded: %+v", loaded)
	}
}

// chdirTemp switches the working directory to a fresh temp dir for the test
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() { os.Chdir(old) })
	return dir
}
