// Package config generates and loads the convtrace configuration file.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the persistent configuration for convtrace.
type Config struct {
	Project  ProjectConfig  `toml:"project"`
	Platform PlatformConfig `toml:"platform"`
	Output   OutputConfig   `toml:"output"`
}

// ProjectConfig identifies the default platform project.
type ProjectConfig struct {
	UUID string `toml:"uuid"`
}

// PlatformConfig tunes how the platform APIs are called.
type PlatformConfig struct {
	BillingBaseURL    string  `toml:"billing_base_url"`
	NexusBaseURL      string  `toml:"nexus_base_url"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
}

// OutputConfig controls where reports are written.
type OutputConfig struct {
	Dir        string `toml:"dir"`
	SaveTraces bool   `toml:"save_traces"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Platform: PlatformConfig{
			BillingBaseURL:    "https://billing.weni.ai",
			NexusBaseURL:      "https://nexus.weni.ai",
			RequestsPerSecond: 4,
			TimeoutSeconds:    60,
		},
		Output: OutputConfig{
			Dir: ".",
		},
	}
}

const fileHeader = `# convtrace configuration
# The bearer token is never stored here; set WENI_BEARER_TOKEN instead.

`

// WriteDefault writes a commented default configuration file.
func WriteDefault(outputPath string) error {
	var buf bytes.Buffer
	buf.WriteString(fileHeader)
	if err := toml.NewEncoder(&buf).Encode(Default()); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Load reads a configuration file, applying defaults for absent fields.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}
