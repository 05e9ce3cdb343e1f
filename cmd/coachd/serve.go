package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"runcoach/internal/scheduler"
	"runcoach/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scheduler with health and metrics endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger(cfg)

		db, err := store.Open()
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		sched := &scheduler.Scheduler{
			Engine:     newEngine(cfg, db, log),
			Log:        log,
			DailySpec:  cfg.Schedule.DailySpec,
			WeeklySpec: cfg.Schedule.WeeklySpec,
		}
		if err := sched.Start(ctx); err != nil {
			return fmt.Errorf("starting scheduler: %w", err)
		}
		defer sched.Stop()

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			if err := db.Ping(); err != nil {
				http.Error(w, "database unreachable", http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
			fmt.Fprintln(w, "ok")
		})

		srv := &http.Server{Addr: cfg.Server.ListenAddr, Handler: mux}
		errCh := make(chan error, 1)
		go func() {
			log.Info().Str("addr", cfg.Server.ListenAddr).Msg("http listener started")
			errCh <- srv.ListenAndServe()
		}()

		select {
		case <-ctx.Done():
			log.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		}
	},
}
