package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"wallet_risk_analyzer/internal/infrastructure/restapi"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis session API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.sync()
			return a.serve(cmd.Context())
		},
	}
}

// serve runs the HTTP API until ctx is cancelled by SIGINT or SIGTERM.
func (a *app) serve(ctx context.Context) error {
	if !a.cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	store := restapi.NewSessionStore(a.cfg.Cache.SessionTTL(), a.cfg.Cache.CleanupInterval(), a.newSession, a.logger)
	router := restapi.SetupRouter(restapi.NewSessionHandler(store, a.logger), a.cfg.Swagger, a.zapLogger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", a.cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(a.cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(a.cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(a.cfg.Server.IdleTimeoutSeconds) * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		a.zapLogger.Info("Server starting", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.zapLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	a.zapLogger.Info("Server exiting")
	return nil
}
