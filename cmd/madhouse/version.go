package main

import (
	"fmt"

	"github.com/aretw0/madhouse"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of madhouse",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "madhouse version %s\n", madhouse.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
