package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var channelsCmd = &cobra.Command{
	Use:   "channels <file>",
	Short: "List the channels of a XUK document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pr, err := readProject(args[0], false)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "PRESENTATION\tUID\tNAME\tMEDIA TYPES")
		for i, p := range pr.Presentations() {
			for _, c := range p.ChannelsManager().Channels() {
				types := make([]string, 0, len(c.SupportedMediaTypes()))
				for _, t := range c.SupportedMediaTypes() {
					types = append(types, t.String())
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, c.UID(), c.Name(), strings.Join(types, ","))
			}
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(channelsCmd)
}
