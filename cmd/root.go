package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "dataprep",
	Short: "Dataset bookkeeping for ML experiments",
	Long: `dataprep handles the file side of ML experimentation: discovering
labeled dataset files from directory trees or CSV manifests, extracting
dataset archives, and moving files to and from Google Cloud Storage.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".dataprep.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
