package main

import (
	"fmt"
	"os"

	"github.com/aretw0/madhouse/examples/counter"
	"github.com/aretw0/madhouse/examples/mining"
	"github.com/aretw0/madhouse/pkg/registry"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "madhouse",
	Short: "Madhouse runs state-machine models against generated command sequences",
	Long: `Madhouse generates sequences of commands, applies the ones whose preconditions
hold to a fresh state, and reports what was selected and executed. Failing
sequences are shrunk towards a minimal reproduction.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// models returns the registry of built-in models.
func models() *registry.Registry {
	reg := registry.NewRegistry()
	reg.Register(counter.Model(), mining.Model())
	return reg
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); overrides MADHOUSE_LOG_LEVEL")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored command labels")
}
