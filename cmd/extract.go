package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/dataprep/internal/archive"
	"github.com/ziadkadry99/dataprep/internal/progress"
)

var (
	extractDest      string
	extractOverwrite bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <archive>...",
	Short: "Extract dataset archives into a destination directory",
	Long: `Extracts one or more archives (.zip, .tar.gz, .7z, ...) into --dest.
If the destination already exists the extraction is skipped, unless
--overwrite is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := archive.Extract(cmd.Context(), args, extractDest, extractOverwrite, progress.New())
		if errors.Is(err, archive.ErrDestExists) {
			fmt.Fprintf(os.Stderr, "%s already exists, skipping (use --overwrite to replace)\n", extractDest)
			return nil
		}
		return err
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractDest, "dest", ".", "destination directory")
	extractCmd.Flags().BoolVar(&extractOverwrite, "overwrite", false, "replace the destination if it exists")
	rootCmd.AddCommand(extractCmd)
}
