package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/auth"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/templates"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the page templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSECTIONS")
		for _, bp := range templates.Default().List() {
			types := make([]string, 0, len(bp.Sections))
			for _, section := range bp.Sections {
				types = append(types, string(section.Type))
			}
			fmt.Fprintf(w, "%s\t%s\t%v\n", bp.ID, bp.NameEn, types)
		}
		return w.Flush()
	},
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print a bcrypt hash for an admin password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := auth.HashPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}
