// Package config loads dataprep configuration from .dataprep.yml with
// DATAPREP_* environment overrides layered on top.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Config is the top-level dataprep configuration, corresponding to
// .dataprep.yml.
type Config struct {
	// Root is the dataset root directory, local or gs://.
	Root string `yaml:"root" koanf:"root"`
	// FileExt is the extension (without dot) of dataset files.
	FileExt string `yaml:"file_ext" koanf:"file_ext"`
	// IDColumn and LabelColumn name the manifest columns holding item IDs
	// and label values.
	IDColumn    string `yaml:"id_column" koanf:"id_column"`
	LabelColumn string `yaml:"label_column" koanf:"label_column"`
	// Bucket is the gs:// bucket for uploads and the layout helpers.
	Bucket string `yaml:"bucket" koanf:"bucket"`
	// Project names the experiment; it keys the data/ and work/ layout
	// directories inside the bucket.
	Project string `yaml:"project" koanf:"project"`
	// Credentials is a path to a service account JSON key. Empty means
	// application default credentials.
	Credentials string `yaml:"credentials" koanf:"credentials"`
	// Exclude lists subdirectory names skipped when enumerating label
	// directories.
	Exclude []string `yaml:"exclude" koanf:"exclude"`
}

// DefaultExcludes are subdirectory names that show up inside dataset trees
// without being label directories.
var DefaultExcludes = []string{
	".ipynb_checkpoints",
	"__MACOSX",
	".DS_Store",
	"Thumbs.db",
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Root:        ".",
		FileExt:     "jpg",
		IDColumn:    "id",
		LabelColumn: "label",
		Exclude:     DefaultExcludes,
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (DATAPREP_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// DATAPREP_FILE_EXT -> file_ext, etc.
	if err := k.Load(env.Provider("DATAPREP_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "DATAPREP_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.FileExt == "" {
		return fmt.Errorf("file_ext is required")
	}
	if strings.HasPrefix(c.FileExt, ".") {
		return fmt.Errorf("file_ext must not include the dot: %q", c.FileExt)
	}
	if c.IDColumn == "" {
		return fmt.Errorf("id_column is required")
	}
	if c.LabelColumn == "" {
		return fmt.Errorf("label_column is required")
	}
	if c.Bucket != "" && !strings.HasPrefix(c.Bucket, "gs://") {
		return fmt.Errorf("bucket must be a gs:// URL, got %q", c.Bucket)
	}
	return nil
}
