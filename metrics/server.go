// Package metrics define telemetry primitives to use across components. it uses the prometheus format.
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Config for the metrics endpoint and the optional push gateway.
type Config struct {
	Enabled     bool              `mapstructure:"enabled"`
	Listen      string            `mapstructure:"listen"`
	PushURL     string            `mapstructure:"push-url"`
	PushPeriod  time.Duration     `mapstructure:"push-period"`
	PushHeaders map[string]string `mapstructure:"push-headers"`
}

// DefaultConfig disables metrics and pushing.
func DefaultConfig() Config {
	return Config{
		Listen:     "127.0.0.1:9090",
		PushPeriod: time.Minute,
	}
}

// Server serves /metrics.
type Server struct {
	logger *zap.Logger
	srv    *http.Server
	ln     net.Listener
}

// NewServer creates a server that is not listening yet.
func NewServer(logger *zap.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &Server{
		logger: logger,
		srv: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start begins listening on addr and serves in the background.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.logger.Info("metrics server started", zap.Stringer("address", ln.Addr()))
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Warn("metrics server stopped", zap.Error(err))
		}
	}()
	return nil
}

// Addr returns the listening address, nil before Start.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Stop shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
