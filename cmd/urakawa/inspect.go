package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/urakawa/internal/cli"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Render the node tree of a XUK document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		pr, err := readProject(args[0], false)
		if err != nil {
			return err
		}
		tty := cli.IsTerminal(os.Stdout)

		switch format {
		case "tree":
			return cli.NewTreeRenderer(cmd.OutOrStdout(), tty).Render(pr)
		case "markdown":
			out, err := cli.RenderMarkdown(cli.Markdown(filepath.Base(args[0]), pr), tty)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		default:
			return fmt.Errorf("unknown format %q (want tree or markdown)", format)
		}
	},
}

func init() {
	inspectCmd.Flags().StringP("format", "f", "tree", "Output format: tree or markdown")
	rootCmd.AddCommand(inspectCmd)
}
