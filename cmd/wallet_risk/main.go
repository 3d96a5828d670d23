package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"wallet_risk_analyzer/internal/app/port"
	"wallet_risk_analyzer/internal/app/service"
	"wallet_risk_analyzer/internal/infrastructure/configloader"
	"wallet_risk_analyzer/internal/infrastructure/httpclient"
	"wallet_risk_analyzer/internal/pkg/logger"
	"wallet_risk_analyzer/internal/pkg/metrics"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultConfigPath = "config/config.yml"

// app holds the wired dependencies shared by all commands.
type app struct {
	cfg         *configloader.Config
	zapLogger   *zap.Logger
	logger      port.Logger
	client      port.ReportClient
	synthesizer port.ReportSynthesizer
}

var (
	configPath string
	logLevel   string
)

func main() {
	root := &cobra.Command{
		Use:           "wallet_risk",
		Short:         "Analyze the risk profile of Ethereum wallets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", envOr("CONFIG_PATH", defaultConfigPath), "path to the YAML config file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")

	root.AddCommand(newServeCmd(), newAnalyzeCmd(), newDemoCmd(), newBatchCmd())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := root.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and builds the logger, metrics and clients.
func bootstrap() (*app, error) {
	// .env is optional; real environment variables take precedence.
	_ = godotenv.Load()

	cfg, err := configloader.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	zapLogger, err := logger.Init(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	metrics.MustRegisterMetrics()

	logger.Info("Configuration loaded", "path", configPath, "log_level", cfg.Logging.Level)
	if cfg.Analysis.BaseURL == "" {
		logger.Warn("Analysis endpoint is not configured; live analysis will fail, demo mode still works",
			"env", configloader.EnvAnalysisURL)
	}

	client := httpclient.NewAnalysisClient(cfg.Analysis.BaseURL, zapLogger,
		httpclient.WithRateLimit(cfg.Analysis.RateLimitPerSecond, cfg.Analysis.RateLimitBurst))
	client = httpclient.NewCachedReportClient(client, cfg.Cache.ReportTTL(), cfg.Cache.CleanupInterval(), zapLogger)

	var synthesizer port.ReportSynthesizer
	if cfg.Demo.Seed != 0 {
		synthesizer = service.NewSeededSynthesizer(cfg.Demo.Seed, nil)
	} else {
		synthesizer = service.NewMockReportSynthesizer(nil, nil)
	}

	return &app{
		cfg:         cfg,
		zapLogger:   zapLogger,
		logger:      logger.NewSlogAdapter(),
		client:      client,
		synthesizer: synthesizer,
	}, nil
}

func (a *app) newSession() port.AnalysisSession {
	return service.NewAnalysisSession(a.client, a.synthesizer, a.logger,
		service.WithRequestTimeout(a.cfg.Analysis.RequestTimeout()))
}

func (a *app) sync() {
	_ = a.zapLogger.Sync()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
