package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/trial-balance-converter/internal/api"
	"github.com/insightdelivered/trial-balance-converter/internal/config"
	"github.com/insightdelivered/trial-balance-converter/internal/logger"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP conversion API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.FromContext(cmd.Context())
			cfg := a.cfg.Server

			h := &api.Handler{
				StaticDir: cfg.StaticDir,
				Version:   version,
				DatePages: a.cfg.Date.MaxPages,
				Log:       *log,
			}
			srv := api.NewApp(h, cfg.BodyLimitMB)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", cfg.Addr).Str("static", cfg.StaticDir).Msg("listening")
				errCh <- srv.Listen(cfg.Addr)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.ShutdownWithContext(shutdownCtx)
		},
	}

	f := cmd.Flags()
	f.String("addr", ":8080", "Listen address")
	f.String("static", "", "Directory of a web UI to serve at /")
	f.Int("body-limit-mb", 32, "Maximum upload size in MB")
	_ = a.v.BindPFlag(config.KeyServerAddr, f.Lookup("addr"))
	_ = a.v.BindPFlag(config.KeyStaticDir, f.Lookup("static"))
	_ = a.v.BindPFlag(config.KeyBodyLimitMB, f.Lookup("body-limit-mb"))
	return cmd
}
