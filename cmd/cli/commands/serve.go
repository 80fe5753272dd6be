package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/emberesports/crewdesk/internal/metrics"
	"github.com/emberesports/crewdesk/pkg/api"
)

const shutdownTimeout = 30 * time.Second

// ServeCmd creates the serve command
func ServeCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the staffing HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(app.Ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			router := api.NewRouter(app.Logger,
				api.NewEventHandler(app.Logger, app.Database, app.Directory, app.Notifications()),
				api.NewSlotHandler(app.Logger, app.Database, app.Directory),
				api.NewScheduleHandler(app.Logger, app.Database, app.Directory, app.location()),
			)

			servers := []*http.Server{{Addr: app.Cfg.HTTP.Addr, Handler: router}}
			if app.Cfg.HTTP.MetricsAddr != "" {
				servers = append(servers, &http.Server{Addr: app.Cfg.HTTP.MetricsAddr, Handler: api.NewMetricsRouter()})
			} else {
				router.GET("/metrics", metrics.Handler())
			}

			errCh := make(chan error, len(servers))
			for _, srv := range servers {
				go func(srv *http.Server) {
					app.Logger.Info("Starting server", zap.String("addr", srv.Addr))
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						errCh <- err
					}
				}(srv)
			}

			var serveErr error
			select {
			case <-ctx.Done():
				app.Logger.Info("Shutting down the server")
			case serveErr = <-errCh:
				app.Logger.Error("Server failed", zap.Error(serveErr))
			}

			wg := &sync.WaitGroup{}
			for _, srv := range servers {
				wg.Add(1)
				go func(srv *http.Server) {
					defer wg.Done()
					shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
					defer cancel()
					if err := srv.Shutdown(shutdownCtx); err != nil {
						app.Logger.Error("Server was forced to shutdown", zap.String("addr", srv.Addr), zap.Error(err))
					}
				}(srv)
			}
			wg.Wait()

			app.Logger.Info("Server exited")
			return serveErr
		},
	}
}
