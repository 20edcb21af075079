package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var logger *zap.Logger

var rootCmd = &cobra.Command{
	Use:   "gridpartition",
	Short: "Partition an index transform's input domain against a grid.",
	Long: "gridpartition walks the input domain of an index transform, grouping it into\n" +
		"the grid cells its output dimensions intersect, and emits either the full\n" +
		"per-cell transform list or a coalesced list of cell-index ranges.",
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug-level logging")
	rootCmd.AddCommand(partitionCmd)
	rootCmd.AddCommand(rangesCmd)
}

func initLogger(cmd *cobra.Command) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	logger = l
	return nil
}

// Execute adds all child commands to the root command and runs it. This is
// called by main.main(); it only needs to happen once.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
