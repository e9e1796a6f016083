package config

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// .dataprep.yml and returns it.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to dataprep! Let's configure your project.")
	fmt.Println()

	cfg := Default()

	rootPrompt := promptui.Prompt{
		Label:   "Dataset root directory",
		Default: cfg.Root,
	}
	root, err := rootPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("root prompt: %w", err)
	}
	cfg.Root = root

	extPrompt := promptui.Prompt{
		Label:   "Dataset file extension (without dot)",
		Default: cfg.FileExt,
		Validate: func(s string) error {
			if s == "" {
				return fmt.Errorf("extension must not be empty")
			}
			if strings.HasPrefix(s, ".") {
				return fmt.Errorf("leave out the dot")
			}
			return nil
		},
	}
	ext, err := extPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("extension prompt: %w", err)
	}
	cfg.FileExt = ext

	bucketPrompt := promptui.Prompt{
		Label: "GCS bucket for uploads (gs://..., empty to skip)",
		Validate: func(s string) error {
			if s != "" && !strings.HasPrefix(s, "gs://") {
				return fmt.Errorf("bucket must start with gs://")
			}
			return nil
		},
	}
	bucket, err := bucketPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("bucket prompt: %w", err)
	}
	cfg.Bucket = bucket

	if bucket != "" {
		projectPrompt := promptui.Prompt{
			Label: "Project name (keys the data/ and work/ bucket layout)",
		}
		project, err := projectPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("project prompt: %w", err)
		}
		cfg.Project = project

		credsPrompt := promptui.Prompt{
			Label: "Service account key file (empty for application default credentials)",
		}
		creds, err := credsPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("credentials prompt: %w", err)
		}
		cfg.Credentials = creds
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(".dataprep.yml"); err != nil {
		return nil, err
	}

	fmt.Println()
	fmt.Println("Wrote .dataprep.yml")
	return cfg, nil
}
