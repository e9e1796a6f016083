package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.FileExt != "jpg" {
		t.Errorf("FileExt = %q, want jpg", cfg.FileExt)
	}
	if cfg.IDColumn != "id" || cfg.LabelColumn != "label" {
		t.Errorf("columns = %q/%q, want id/label", cfg.IDColumn, cfg.LabelColumn)
	}
	if !reflect.DeepEqual(cfg.Exclude, DefaultExcludes) {
		t.Errorf("Exclude = %v", cfg.Exclude)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".dataprep.yml")
	content := "root: /data/dogs\nfile_ext: png\nbucket: gs://experiments\nproject: dogs\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Root != "/data/dogs" {
		t.Errorf("Root = %q", cfg.Root)
	}
	if cfg.FileExt != "png" {
		t.Errorf("FileExt = %q", cfg.FileExt)
	}
	if cfg.Bucket != "gs://experiments" || cfg.Project != "dogs" {
		t.Errorf("Bucket/Project = %q/%q", cfg.Bucket, cfg.Project)
	}
	// Unset keys keep their defaults.
	if cfg.IDColumn != "id" {
		t.Errorf("IDColumn = %q, want default id", cfg.IDColumn)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".dataprep.yml")
	if err := os.WriteFile(path, []byte("file_ext: png\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DATAPREP_FILE_EXT", "tif")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.FileExt != "tif" {
		t.Errorf("FileExt = %q, want env override tif", cfg.FileExt)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".dataprep.yml")

	cfg := Default()
	cfg.Root = "/data/birds"
	cfg.Bucket = "gs://b"
	cfg.Project = "birds"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !reflect.DeepEqual(cfg, loaded) {
		t.Errorf("roundtrip mismatch:\n  saved  %+v\n  loaded %+v", cfg, loaded)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"empty ext", func(c *Config) { c.FileExt = "" }, true},
		{"ext with dot", func(c *Config) { c.FileExt = ".jpg" }, true},
		{"empty id column", func(c *Config) { c.IDColumn = "" }, true},
		{"empty label column", func(c *Config) { c.LabelColumn = "" }, true},
		{"bucket without scheme", func(c *Config) { c.Bucket = "experiments" }, true},
		{"gs bucket", func(c *Config) { c.Bucket = "gs://experiments" }, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
