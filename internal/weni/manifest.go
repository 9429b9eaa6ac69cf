package weni

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProjectManifest lists the projects covered by one batch analysis run.
type ProjectManifest struct {
	Projects []Project `yaml:"projects"`
}

// Project identifies one platform project in a batch manifest.
type Project struct {
	Name string `yaml:"name"`
	UUID string `yaml:"uuid"`
}

// ParseProjectManifest parses a YAML batch manifest.
func ParseProjectManifest(filePath string) (*ProjectManifest, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var manifest ProjectManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateManifest(&manifest); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return &manifest, nil
}

func validateManifest(manifest *ProjectManifest) error {
	if len(manifest.Projects) == 0 {
		return fmt.Errorf("at least one project is required")
	}
	for i, p := range manifest.Projects {
		if p.UUID == "" {
			return fmt.Errorf("project %d: uuid is required", i)
		}
		if p.Name == "" {
			return fmt.Errorf("project %q: name is required", p.UUID)
		}
	}
	return nil
}
