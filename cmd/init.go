package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/dataprep/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize dataprep configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure dataprep for your dataset and generates a .dataprep.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
