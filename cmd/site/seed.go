package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/importer"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/markdown"
)

var (
	seedContentDir string
	seedDirectory  string
	seedPattern    string
	seedActor      string
	seedDryRun     bool
	seedHomeHi     string
	seedHomeEn     string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the home page and import markdown pages",
	Long: `Create the published home page from the landing template when it is
missing, then import every markdown document under the content directory.
Documents whose slug already exists are skipped.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedContentDir, "content-dir", "", "Markdown content root (defaults to seed.content_dir)")
	seedCmd.Flags().StringVar(&seedDirectory, "directory", ".", "Directory to import, relative to the content root")
	seedCmd.Flags().StringVar(&seedPattern, "pattern", "*.md", "Glob pattern applied to file names")
	seedCmd.Flags().StringVar(&seedActor, "actor", "", "User id recorded as creator of imported pages")
	seedCmd.Flags().BoolVar(&seedDryRun, "dry-run", false, "Report what would be imported without writing")
	seedCmd.Flags().StringVar(&seedHomeHi, "home-title-hi", "", "Hindi title for a newly created home page")
	seedCmd.Flags().StringVar(&seedHomeEn, "home-title-en", "", "English title for a newly created home page")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	actor, err := parseActor(seedActor)
	if err != nil {
		return err
	}

	rt, err := buildRuntime(cmd, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	imp := rt.Module.Importer()
	if !seedDryRun {
		created, err := imp.EnsureHome(ctx, seedHomeHi, seedHomeEn)
		if err != nil {
			return fmt.Errorf("seed home: %w", err)
		}
		if created {
			fmt.Fprintf(out, "created %s\n", importer.HomeSlug)
		}
	}

	root := seedContentDir
	if root == "" {
		root = rt.Config.Seed.ContentDir
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		fmt.Fprintf(out, "no content directory at %s, skipping import\n", root)
		return nil
	}

	loader := markdown.NewLoader(os.DirFS(root), seedPattern)
	result, err := imp.ImportDirectory(ctx, loader, seedDirectory, importer.Options{
		DryRun:  seedDryRun,
		ActorID: actor,
	})
	if err != nil {
		return fmt.Errorf("import %s: %w", root, err)
	}

	verb := "created"
	if seedDryRun {
		verb = "would create"
	}
	for _, slug := range result.Created {
		fmt.Fprintf(out, "%s %s\n", verb, slug)
	}
	for _, slug := range result.Skipped {
		fmt.Fprintf(out, "skipped %s\n", slug)
	}
	for _, failure := range result.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "failed: %v\n", failure)
	}
	if len(result.Errors) > 0 {
		return fmt.Errorf("seed: %d document(s) failed", len(result.Errors))
	}
	return nil
}

func parseActor(value string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(trimmed)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse actor: %w", err)
	}
	return id, nil
}
