package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	qhttp "nutririsk/http"
	"nutririsk/ml"
	"nutririsk/monitoring"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the assessment HTTP and WebSocket API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServe(ctx, cmd)
	},
}

func runServe(ctx context.Context, cmd *cobra.Command) error {
	metrics := monitoring.NewMetrics()
	rt, err := bootstrap(cmd, metrics)
	if err != nil {
		return err
	}
	logger := rt.logger
	defer func() { _ = logger.Sync() }()

	if rt.cfg.Model.Watch && ml.IsFileBacked(rt.cfg.Model.Type) {
		if err := ml.WatchArtifact(ctx, rt.cfg.Model.Path, logger.Named("watch")); err != nil {
			logger.Warn("artifact watch disabled", zap.Error(err))
		}
	}

	api, err := qhttp.NewAPI(rt.predictor, qhttp.APIOptions{
		ModelType:      rt.cfg.Model.Type,
		Logger:         logger.Named("api"),
		MetricsHandler: metrics.Handler(),
		AllowedOrigins: rt.cfg.HTTP.AllowedOrigins,
	})
	if err != nil {
		return err
	}

	server := qhttp.NewServer(qhttp.ServerConfig{
		Port:           rt.cfg.HTTP.Port,
		Timeout:        rt.cfg.HTTP.Timeout,
		AllowedOrigins: rt.cfg.HTTP.AllowedOrigins,
		MaxBodyBytes:   rt.cfg.HTTP.MaxBodyBytes,
	}, api, logger.Named("http"))

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.String("addr", server.Addr()))
	if err := server.Stop(); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return err
	}
	logger.Info("exiting")
	return nil
}
