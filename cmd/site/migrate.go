package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/migrations"
)

var migrateReset bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the pages, sections and settings tables",
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateReset, "reset", false, "Drop every table before applying the schema")
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	rt, err := buildRuntime(cmd, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	db, err := rt.RequireDB()
	if err != nil {
		return err
	}
	if migrateReset {
		if err := migrations.Reset(ctx, db, rt.Logger); err != nil {
			return fmt.Errorf("reset schema: %w", err)
		}
	}
	if err := migrations.Apply(ctx, db, rt.Logger); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
	return nil
}
