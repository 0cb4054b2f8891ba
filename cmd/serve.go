package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"fridjy/internal/api"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(configPath func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and metrics servers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, configPath(), true)
			if err != nil {
				return err
			}
			defer a.Close()

			if a.cfg.LogMode == "production" || a.cfg.LogMode == "prod" {
				gin.SetMode(gin.ReleaseMode)
			}
			fridge := api.NewFridgeAPI(a.inventory, a.nutrition, a.gateway, a.log)
			defer fridge.Hub.Close()

			servers := []*http.Server{{Addr: a.cfg.Server.Addr, Handler: fridge.Router}}
			if a.cfg.Metrics.Enabled {
				metricsRouter := gin.New()
				metricsRouter.GET(a.cfg.Metrics.Path, gin.WrapH(a.monitor.Handler()))
				servers = append(servers, &http.Server{Addr: a.cfg.Metrics.Addr, Handler: metricsRouter})
			}

			g, gctx := errgroup.WithContext(ctx)
			for _, srv := range servers {
				srv := srv
				g.Go(func() error {
					a.log.Info("starting server", "addr", srv.Addr)
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						return err
					}
					return nil
				})
			}
			g.Go(func() error {
				<-gctx.Done()
				a.log.Info("shutting down servers")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				for _, srv := range servers {
					if err := srv.Shutdown(shutdownCtx); err != nil {
						a.log.Warn("server shutdown error", "addr", srv.Addr, "error", err)
					}
				}
				return nil
			})
			return g.Wait()
		},
	}
}
