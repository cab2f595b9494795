package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/cmd/site/internal/bootstrap"
)

var runtimeBuilder = bootstrap.Build

var (
	configPath string
	memoryMode bool
)

var rootCmd = &cobra.Command{
	Use:   "site",
	Short: "Bilingual page composition site",
	Long: `site serves Hindi/English pages composed from ordered sections.

Pages are created from templates through the admin API; the public
routes render published pages in the visitor's language.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolVar(&memoryMode, "memory", false, "Keep all content in memory instead of the configured database")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(hashPasswordCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildRuntime(cmd *cobra.Command, migrate bool) (*bootstrap.Runtime, error) {
	return runtimeBuilder(cmd.Context(), bootstrap.Options{
		ConfigPath: configPath,
		Memory:     memoryMode,
		Migrate:    migrate,
	})
}
