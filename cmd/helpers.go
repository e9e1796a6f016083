package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/ziadkadry99/dataprep/internal/config"
	"github.com/ziadkadry99/dataprep/internal/storage"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `dataprep init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// backendFor picks the storage backend matching a path: GCS for gs:// paths,
// local filesystem for everything else.
func backendFor(ctx context.Context, cfg *config.Config, path string) (storage.FS, error) {
	if strings.HasPrefix(path, "gs://") {
		return storage.NewGCS(ctx, storage.GCSConfig{CredentialsFile: cfg.Credentials})
	}
	return storage.NewLocal(), nil
}
