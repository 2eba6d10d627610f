package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"household-illness-tracker/internal/querycache"
	"household-illness-tracker/internal/router"
	"household-illness-tracker/internal/views"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// devSessionSecret solo se usa con ENV=development y SESSION_SECRET vacío.
const devSessionSecret = "dev-only-session-secret"

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (JSON API + HTML pages)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			st, closeStore, err := openStore(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer closeStore()

			if cfg.SeedFile != "" {
				if err := seedPersons(ctx, st, cfg.SeedFile, log); err != nil {
					return err
				}
			}

			verifier, err := newVerifier(cfg)
			if err != nil {
				return err
			}

			loc, _ := cfg.Location()
			secret := cfg.SessionSecret
			if secret == "" {
				log.Warn("SESSION_SECRET not set, using development secret", nil)
				secret = devSessionSecret
			}

			qc := querycache.New(querycache.Options{
				StaleTime:   cfg.CacheStaleTime,
				GCTime:      cfg.CacheGCTime,
				Retry:       cfg.CacheRetry,
				ShouldRetry: router.ShouldRetry,
				Logger:      log,
				Registerer:  prometheus.DefaultRegisterer,
			})
			defer qc.Close()

			h, err := router.NewRouter(router.Options{
				Store:        st,
				Cache:        qc,
				Logger:       log,
				AuthVerifier: verifier,
				Views: views.Config{
					Location:      loc,
					RenderTimeout: cfg.RenderTimeout,
					SessionSecret: secret,
					SecureCookies: !cfg.IsDev(),
				},
			})
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:         ":" + cfg.Port,
				Handler:      h,
				ReadTimeout:  5 * time.Second,
				WriteTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("starting server", map[string]any{"addr": srv.Addr, "env": cfg.Env})
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					log.Error("server error", map[string]any{"error": err})
					return err
				}
				return nil
			case <-ctx.Done():
			}

			log.Info("shutting down", nil)
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
