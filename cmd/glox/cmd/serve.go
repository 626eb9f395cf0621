package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	gloxconfig "github.com/msto63/glox/foundation/core/config"
	gloxlog "github.com/msto63/glox/foundation/core/log"
	"github.com/msto63/glox/internal/server"
)

var (
	serveHost        string
	servePort        int
	serveMetricsPort int
	serveNoMetrics   bool
	serveNoWebSocket bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the parser as a gRPC service",
	Long: `Starts the glox.v1.ParserService gRPC service together with the
gRPC health and reflection services. The HTTP port serves a Prometheus
/metrics endpoint and the /ws WebSocket parse endpoint; --no-metrics and
--no-websocket turn each off.

Examples:
  glox serve
  glox serve --port 9470 --metrics-port 9471
  glox serve --no-metrics
  GLOX_SERVER_PORT=9500 glox serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen host (default from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "gRPC port (default from config)")
	serveCmd.Flags().IntVar(&serveMetricsPort, "metrics-port", 0, "HTTP port for /metrics and /ws (default from config)")
	serveCmd.Flags().BoolVar(&serveNoMetrics, "no-metrics", false, "disable the /metrics endpoint")
	serveCmd.Flags().BoolVar(&serveNoWebSocket, "no-websocket", false, "disable the /ws endpoint")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := server.DefaultServerConfig()
	cfg.Host = settings.Server.Host
	cfg.Port = settings.Server.Port
	cfg.MetricsPort = settings.Server.MetricsPort
	cfg.MaxSourceBytes = settings.Parser.MaxSourceBytes

	if serveHost != "" {
		cfg.Host = serveHost
	}
	if servePort > 0 {
		cfg.Port = servePort
	}
	if serveMetricsPort > 0 {
		cfg.MetricsPort = serveMetricsPort
	}
	cfg.EnableMetrics = !serveNoMetrics
	cfg.EnableWebSocket = !serveNoWebSocket

	srv := server.NewServer(cfg, logger, nil)
	if err := srv.StartAsync(); err != nil {
		return err
	}

	logger.Info("glox service started", gloxlog.Fields{
		"address":      srv.Address(),
		"metrics_port": cfg.MetricsPort,
		"metrics":      cfg.EnableMetrics,
		"websocket":    cfg.EnableWebSocket,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if appConfig != nil && appConfig.FilePath() != "" {
		go watchConfig(ctx, appConfig)
	}

	<-ctx.Done()
	logger.Info("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.StopWithTimeout(shutdownCtx)

	logger.Info("glox service stopped")
	return nil
}

// watchConfig applies log level changes to the command logger while serving.
// Address changes need a restart.
func watchConfig(ctx context.Context, cfg *gloxconfig.Config) {
	cfg.OnChange(func(oldConfig, newConfig *gloxconfig.Config) {
		level := newConfig.GetString("log.level", "info")
		if verbose {
			level = "debug"
		}
		if parsed, err := gloxlog.ParseLevel(level); err == nil {
			logger.SetLevel(parsed)
		}
		if oldConfig.GetInt("server.port") != newConfig.GetInt("server.port") ||
			oldConfig.GetString("server.host") != newConfig.GetString("server.host") {
			logger.Warn("Server address changed in configuration; restart to apply")
		}
		logger.Info("Configuration reloaded", gloxlog.Fields{"path": newConfig.FilePath(), "log_level": level})
	})

	err := cfg.Watch(ctx, func(err error) {
		logger.WarnWithErr("Configuration reload failed", err)
	})
	if err != nil {
		logger.WarnWithErr("Configuration watch stopped", err)
	}
}
