package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteDefaultAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ".convtrace.toml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.Contains(string(data), "billing_base_url") {
		t.Errorf("config file missing platform section:\n%s", data)
	}
	if strings.Contains(string(data), "token") && !strings.Contains(string(data), "WENI_BEARER_TOKEN") {
		t.Error("config file should not store a token")
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Platform.BillingBaseURL != "https://billing.weni.ai" {
		t.Errorf("BillingBaseURL = %q", cfg.Platform.BillingBaseURL)
	}
	if cfg.Platform.RequestsPerSecond != 4 {
		t.Errorf("RequestsPerSecond = %v, want 4", cfg.Platform.RequestsPerSecond)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.toml")
	content := "[project]\nuuid = \"abc-123\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Project.UUID != "abc-123" {
		t.Errorf("UUID = %q", cfg.Project.UUID)
	}
	// Defaults fill in everything the file omits.
	if cfg.Platform.NexusBaseURL != "https://nexus.weni.ai" {
		t.Errorf("NexusBaseURL = %q", cfg.Platform.NexusBaseURL)
	}
}
