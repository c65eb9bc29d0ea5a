package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/urakawa/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check that a XUK document can be read",
	Long:  `Decodes the document in strict mode, so unknown elements are reported as errors, and prints what it contains.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pr, err := readProject(args[0], true)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		st := cli.Collect(pr)
		fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d presentation(s), %d node(s), %d channel(s), %d media object(s) ✅\n",
			args[0], st.Presentations, st.Nodes, st.Channels, st.Media)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
