package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/tracing"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long: `Apply migrations, make sure the home page exists and serve the public
and admin routes until interrupted.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (defaults to server.addr)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	rt, err := buildRuntime(cmd, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	shutdown, err := tracing.Setup(ctx, rt.Config.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			rt.Logger.Warn("site.tracing.shutdown", "error", err)
		}
	}()

	if _, err := rt.Module.Importer().EnsureHome(ctx, "", ""); err != nil {
		return err
	}

	server, err := rt.Module.HTTPServer()
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = rt.Config.Server.Addr
	}
	return server.Start(ctx, addr)
}
