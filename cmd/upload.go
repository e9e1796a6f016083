package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/dataprep/internal/storage"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <local-file> <remote-path>",
	Short: "Copy a local file to cloud storage unless it is already there",
	Long: `Uploads a local file to a gs:// path. An existing remote file is never
overwritten; the upload is skipped with a notice instead.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		local, remote := args[0], args[1]

		fsys, err := backendFor(cmd.Context(), cfg, remote)
		if err != nil {
			return err
		}
		err = storage.Upload(cmd.Context(), fsys, local, remote)
		if errors.Is(err, storage.ErrRemoteExists) {
			fmt.Fprintf(os.Stderr, "%s already exists, skipping\n", remote)
			return nil
		}
		if err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "uploaded %s to %s\n", local, remote)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}
