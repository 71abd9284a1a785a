package database

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SeedFile is the layout of a fixtures file.
type SeedFile struct {
	Instruments []map[string]any `yaml:"instruments"`
}

// LoadSeed reads raw instrument documents from a YAML fixtures file. The
// documents are returned undecoded so they can go through request
// validation.
func LoadSeed(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes a fixtures document.
func ParseSeed(data []byte) ([]map[string]any, error) {
	var file SeedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return file.Instruments, nil
}
