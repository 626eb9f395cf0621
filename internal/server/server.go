// ============================================================================
// glox - Lox expression front end
// ============================================================================
//
// Package:     server
// Description: gRPC server hosting the parser service, health checks,
//              reflection and a Prometheus metrics endpoint
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"

	gloxerror "github.com/msto63/glox/foundation/core/error"
	gloxlog "github.com/msto63/glox/foundation/core/log"
	"github.com/msto63/glox/foundation/lox"
)

// ServerConfig holds gRPC server configuration
type ServerConfig struct {
	Host              string
	Port              int
	MetricsPort       int // HTTP port for /metrics and /ws; 0 disables both
	EnableMetrics     bool
	EnableWebSocket   bool
	MaxRecvMsgSize    int
	MaxSendMsgSize    int
	MaxSourceBytes    int
	EnableReflection  bool
	KeepaliveInterval time.Duration
	KeepaliveTimeout  time.Duration
}

// DefaultServerConfig returns a default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:              "127.0.0.1",
		Port:              9470,
		MetricsPort:       9471,
		MaxRecvMsgSize:    4 * 1024 * 1024, // 4MB
		MaxSendMsgSize:    16 * 1024 * 1024,
		MaxSourceBytes:    lox.DefaultMaxSourceBytes,
		EnableReflection:  true,
		EnableMetrics:     true,
		EnableWebSocket:   true,
		KeepaliveInterval: 30 * time.Second,
		KeepaliveTimeout:  10 * time.Second,
	}
}

// Server wraps a gRPC server with the parser service registered
type Server struct {
	server     *grpc.Server
	config     ServerConfig
	mu         sync.RWMutex
	listener   net.Listener // guarded by mu
	health     *health.Server
	metrics    *Metrics
	metricsSrv *http.Server
	websocket  *WebSocketHandler
	logger     *gloxlog.Logger
}

// NewServer creates the server and registers the parser, health and
// reflection services. registry may be nil.
func NewServer(cfg ServerConfig, logger *gloxlog.Logger, registry *prometheus.Registry, opts ...grpc.ServerOption) *Server {
	if logger == nil {
		logger = gloxlog.GetDefault()
	}
	logger = logger.WithName("grpc-server")
	metrics := NewMetrics(registry)

	serverOpts := []grpc.ServerOption{
		grpc.MaxRecvMsgSize(cfg.MaxRecvMsgSize),
		grpc.MaxSendMsgSize(cfg.MaxSendMsgSize),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    cfg.KeepaliveInterval,
			Timeout: cfg.KeepaliveTimeout,
		}),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             5 * time.Second,
			PermitWithoutStream: true,
		}),
		grpc.ChainUnaryInterceptor(
			RecoveryInterceptor(logger),
			RequestIDInterceptor(),
			LoggingInterceptor(logger),
			MetricsInterceptor(metrics),
		),
	}
	serverOpts = append(serverOpts, opts...)

	server := grpc.NewServer(serverOpts...)

	frontend := lox.New(lox.Options{Logger: logger, MaxSourceBytes: cfg.MaxSourceBytes})
	RegisterParserServer(server, NewService(frontend, metrics, logger))

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, hs)

	if cfg.EnableReflection {
		reflection.Register(server)
	}

	return &Server{
		server:    server,
		config:    cfg,
		health:    hs,
		metrics:   metrics,
		websocket: NewWebSocketHandler(frontend, metrics, logger),
		logger:    logger,
	}
}

// GRPCServer returns the underlying gRPC server
func (s *Server) GRPCServer() *grpc.Server {
	return s.server
}

// Metrics returns the server's collectors
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Serve serves on an existing listener until Stop is called. Address only
// reports listeners opened by Start or StartAsync.
func (s *Server) Serve(listener net.Listener) error {
	s.logger.Info("gRPC server listening", gloxlog.Fields{"address": listener.Addr().String()})
	return s.server.Serve(listener)
}

// Start listens on the configured address and blocks while serving
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return gloxerror.Wrap(err, "failed to listen").
			WithCode(gloxerror.CodeServiceInitialization).
			WithOperation("server.Start").
			WithDetail("address", addr)
	}

	if err := s.startMetrics(); err != nil {
		listener.Close()
		return err
	}

	s.setListener(listener)
	return s.Serve(listener)
}

// StartAsync starts the gRPC server in a goroutine
func (s *Server) StartAsync() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return gloxerror.Wrap(err, "failed to listen").
			WithCode(gloxerror.CodeServiceInitialization).
			WithOperation("server.StartAsync").
			WithDetail("address", addr)
	}

	if err := s.startMetrics(); err != nil {
		listener.Close()
		return err
	}

	s.setListener(listener)
	go func() {
		if err := s.Serve(listener); err != nil {
			s.logger.ErrorWithErr("gRPC server error", err)
		}
	}()

	return nil
}

func (s *Server) startMetrics() error {
	if s.config.MetricsPort == 0 || (!s.config.EnableMetrics && !s.config.EnableWebSocket) {
		return nil
	}

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.MetricsPort)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return gloxerror.Wrap(err, "failed to listen for metrics").
			WithCode(gloxerror.CodeServiceInitialization).
			WithOperation("server.startMetrics").
			WithDetail("address", addr)
	}

	s.metricsSrv = &http.Server{Handler: s.HTTPHandler(), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := s.metricsSrv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.ErrorWithErr("metrics server error", err)
		}
	}()

	s.logger.Info("HTTP endpoint listening", gloxlog.Fields{"address": listener.Addr().String()})
	return nil
}

// HTTPHandler serves /metrics and the /ws parse endpoint, each when enabled
func (s *Server) HTTPHandler() http.Handler {
	mux := http.NewServeMux()
	if s.config.EnableMetrics {
		mux.Handle("/metrics", s.metrics.Handler())
	}
	if s.config.EnableWebSocket {
		mux.Handle("/ws", s.websocket)
	}
	return mux
}

// Stop gracefully stops the servers
func (s *Server) Stop() {
	s.StopWithTimeout(context.Background())
}

// StopWithTimeout stops gracefully, forcing shutdown when ctx expires
func (s *Server) StopWithTimeout(ctx context.Context) {
	s.health.Shutdown()

	if s.metricsSrv != nil {
		s.metricsSrv.Shutdown(ctx)
	}

	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.server.Stop()
	}
}

func (s *Server) setListener(listener net.Listener) {
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()
}

// Address returns the server address
func (s *Server) Address() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
