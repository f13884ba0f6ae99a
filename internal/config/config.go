// Package config loads the optional YAML configuration file accepted by
// cmd/bearc, following the same gopkg.in/yaml.v3 unmarshal-into-struct
// style used elsewhere in the corpus for declarative definitions.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk shape of a bearc configuration file.
type Config struct {
	IndentWidth int    `yaml:"indentWidth"`
	TabWidth    int    `yaml:"tabWidth"`
	Preamble    string `yaml:"preamble"` // "minimal" or "complete"
	OutputDir   string `yaml:"outputDir"`
}

// Load reads and decodes the YAML file at path. A missing file is not
// treated specially here; callers that want "absent config is fine"
// semantics should check os.IsNotExist on the returned error themselves,
// matching how an explicitly-requested --config path should fail loudly
// while an unrequested default path should not.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// IsPreambleMinimal reports whether the config explicitly selected the
// minimal preamble. Any other value, including the empty default,
// selects the complete preamble.
func (c *Config) IsPreambleMinimal() bool {
	return c != nil && c.Preamble == "minimal"
}
