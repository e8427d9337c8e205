package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kestrel-labs/radgo/internal/radlog"
)

var (
	verbose bool
	logger  radlog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "radgo",
	Short: "A scalar automatic-differentiation CLI",
	Long: `radgo is a CLI over the rad automatic-differentiation engine.

It parses small infix expressions over inputs [0], [1], ... and can
evaluate them, differentiate them (forward or reverse mode), or run the
built-in dense-net XOR training demo.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := radlog.LevelInfo
		if verbose {
			level = radlog.LevelDebug
		}
		logger = radlog.New(level, os.Stdout)
		return nil
	},
	Example: `  radgo eval "[0]*[0] + [0]*[1]" --inputs 2,3
  radgo grad "[0]/([0]*[0] + [1]*[1])" --inputs 3,4
  radgo train --config train.yaml`,
}

// Execute runs the root command, exiting the process with status 1 on
// failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose (debug-level) logging")
}

// GetLogger returns the logger configured by the root command's
// PersistentPreRunE.
func GetLogger() radlog.Logger {
	return logger
}

// BinName returns the base name of the current executable.
func BinName() string {
	return filepath.Base(os.Args[0])
}
