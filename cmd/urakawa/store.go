package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/urakawa"
	"github.com/aretw0/urakawa/pkg/core"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage documents in the configured store",
	Long:  `Put, get, list and remove XUK documents in the store selected by the configuration (memory, file, redis, sqlite or badger).`,
}

var storePutCmd = &cobra.Command{
	Use:   "put <file>",
	Short: "Store a XUK document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")
		if id == "" {
			id = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		}
		pr, err := readProject(args[0], false)
		if err != nil {
			return err
		}
		mgr, closeFn, err := openWorkspace()
		if err != nil {
			return err
		}
		defer closeFn()

		if err := mgr.Save(cmd.Context(), id, pr); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stored %s as '%s'.\n", args[0], id)
		return nil
	},
}

var storeGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Print or export a stored document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")
		mgr, closeFn, err := openWorkspace()
		if err != nil {
			return err
		}
		defer closeFn()

		pr, err := mgr.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		opts, err := xukOptions(false)
		if err != nil {
			return err
		}
		if out != "" {
			return urakawa.WriteFile(out, pr, opts...)
		}
		return urakawa.Encode(cmd.OutOrStdout(), pr, opts...)
	},
}

var storeListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, closeFn, err := openWorkspace()
		if err != nil {
			return err
		}
		defer closeFn()

		ids, err := mgr.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No documents found.")
			return nil
		}
		for _, id := range ids {
			fmt.Fprintln(cmd.OutOrStdout(), "- "+id)
		}
		return nil
	},
}

var storeRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Remove a stored document",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, closeFn, err := openWorkspace()
		if err != nil {
			return err
		}
		defer closeFn()

		if err := mgr.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed '%s'.\n", args[0])
		return nil
	},
}

var storeAddChannelCmd = &cobra.Command{
	Use:   "add-channel <id> <name> <media-type>...",
	Short: "Add a channel to a stored document, creating the document if needed",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		types := make([]core.MediaType, 0, len(args)-2)
		for _, s := range args[2:] {
			t, err := core.ParseMediaType(s)
			if err != nil {
				return err
			}
			types = append(types, t)
		}
		mgr, closeFn, err := openWorkspace()
		if err != nil {
			return err
		}
		defer closeFn()

		var uid string
		err = mgr.Edit(cmd.Context(), args[0], func(pr *core.Project) error {
			p, err := pr.Presentation(0)
			if err != nil {
				return err
			}
			ch := p.NewChannel(args[1], types...)
			if err := p.UndoRedoManager().Execute(core.NewAddChannelCommand(p.ChannelsManager(), ch)); err != nil {
				return err
			}
			uid = ch.UID()
			return nil
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added channel '%s' (%s) to '%s'.\n", args[1], uid, args[0])
		return nil
	},
}

func init() {
	storePutCmd.Flags().String("id", "", "Document ID (defaults to the file name without extension)")
	storeGetCmd.Flags().StringP("output", "o", "", "Write the document to this file instead of stdout")

	storeCmd.AddCommand(storePutCmd, storeGetCmd, storeListCmd, storeRmCmd, storeAddChannelCmd)
	rootCmd.AddCommand(storeCmd)
}
