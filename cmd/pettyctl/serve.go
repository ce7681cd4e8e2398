package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/danmuck/petty/internal/observability"
	"github.com/danmuck/petty/internal/server"
	"github.com/danmuck/petty/internal/store"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the render and admin HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, backend, err := root.openStore(cmd)
			if err != nil {
				return err
			}
			defer backend.Close()
			if addr != "" {
				cfg.Addr = addr
			}
			observability.InitLogger(cfg.Name)
			log.Info().Str("path", root.configPath).Str("driver", cfg.Store.Driver).Msg("loaded service config")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cached := store.NewCached(backend)
			if cfg.Store.SeedDefaultsEnabled() {
				if _, err := store.SeedEmpty(ctx, cached); err != nil {
					return err
				}
			}

			srv := server.Appear(cfg.Name, cfg.Addr, cached, newRenderer(cfg, cached), server.Options{
				CorsOrigins:  cfg.CorsOrigins,
				AdminToken:   cfg.AdminToken,
				MaxBodyBytes: cfg.MaxBodyBytes,
			})

			g, gctx := errgroup.WithContext(ctx)
			if cfg.Store.Watch {
				w, err := store.NewWatcher(cfg.Store.Path, cached.Invalidate)
				if err != nil {
					return err
				}
				g.Go(func() error { return w.Run(gctx) })
				log.Info().Str("path", cfg.Store.Path).Msg("watching terms file")
			}
			g.Go(func() error {
				log.Info().Str("name", srv.Name).Str("addr", srv.Addr).Msg("server started")
				return srv.Serve(gctx)
			})

			err = g.Wait()
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("server stopped")
				return err
			}
			log.Info().Msg("server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
