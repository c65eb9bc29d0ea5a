package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/urakawa"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of urakawa",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "urakawa version %s\n", urakawa.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
