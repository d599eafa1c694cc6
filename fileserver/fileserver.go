// Package fileserver publishes the host's mods directory over http so that clients can
// download items directly instead of receiving them as chunks.
package fileserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"
	httpmetrics "github.com/slok/go-http-metrics/metrics/prometheus"
	"github.com/slok/go-http-metrics/middleware"
	"github.com/slok/go-http-metrics/middleware/std"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/rat/modsync/metrics"
)

// Prefix is the url path the mods directory is served under.
const Prefix = "/mods/"

type Config struct {
	Enabled bool   `mapstructure:"enabled"`
	Listen  string `mapstructure:"listen"`
	// PublicURL is advertised to clients instead of the listening address, e.g. behind a proxy.
	PublicURL         string        `mapstructure:"public-url"`
	AllowedOrigins    []string      `mapstructure:"allowed-origins"`
	AllowedExtensions []string      `mapstructure:"allowed-extensions"`
	ReadHeaderTimeout time.Duration `mapstructure:"read-header-timeout"`
}

func DefaultConfig() Config {
	return Config{
		Listen:            "0.0.0.0:25580",
		AllowedOrigins:    []string{"*"},
		AllowedExtensions: []string{".jar", ".zip"},
		ReadHeaderTimeout: 5 * time.Second,
	}
}

type Opt func(*Server)

func WithLogger(logger *zap.Logger) Opt {
	return func(s *Server) {
		s.logger = logger
	}
}

func WithConfig(cfg Config) Opt {
	return func(s *Server) {
		s.cfg = cfg
	}
}

// WithRegisterer registers the http metrics somewhere else than the default registry.
func WithRegisterer(reg prometheus.Registerer) Opt {
	return func(s *Server) {
		s.registerer = reg
	}
}

// Server serves the files of one directory, read only and without listings.
type Server struct {
	logger     *zap.Logger
	cfg        Config
	registerer prometheus.Registerer
	srv        *http.Server
	ln         net.Listener
}

func New(fs afero.Fs, dir string, opts ...Opt) *Server {
	s := &Server{
		logger:     zap.NewNop(),
		cfg:        DefaultConfig(),
		registerer: prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(s)
	}
	files := afero.NewHttpFs(afero.NewReadOnlyFs(afero.NewBasePathFs(fs, dir)))
	handler := http.StripPrefix(strings.TrimSuffix(Prefix, "/"), s.filter(http.FileServer(files)))

	recorder := middleware.New(middleware.Config{
		Recorder: httpmetrics.NewRecorder(httpmetrics.Config{
			Prefix:   metrics.Namespace + "_fileserver",
			Registry: s.registerer,
		}),
	})
	mux := http.NewServeMux()
	mux.Handle(Prefix, std.Handler(Prefix, recorder, handler))
	s.srv = &http.Server{
		Handler: cors.New(cors.Options{
			AllowedOrigins: s.cfg.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodHead},
		}).Handler(mux),
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
	}
	return s
}

// filter rejects listings, hidden files and files without an allowed extension.
func (s *Server) filter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := path.Clean("/" + r.URL.Path)
		base := path.Base(name)
		if name != r.URL.Path || strings.HasPrefix(base, ".") || !s.allowed(base) {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		s.logger.Debug("serving file", zap.String("name", name), zap.String("remote", r.RemoteAddr))
		next.ServeHTTP(w, r)
	})
}

func (s *Server) allowed(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range s.cfg.AllowedExtensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// Start begins listening and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return err
	}
	s.ln = ln
	s.logger.Info("file server started", zap.Stringer("address", ln.Addr()), zap.String("url", s.BaseURL()))
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Warn("file server stopped", zap.Error(err))
		}
	}()
	return nil
}

// BaseURL is the url prefix clients download items from.
func (s *Server) BaseURL() string {
	if s.cfg.PublicURL != "" {
		return strings.TrimSuffix(s.cfg.PublicURL, "/") + strings.TrimSuffix(Prefix, "/")
	}
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String() + strings.TrimSuffix(Prefix, "/")
}

// Addr returns the listening address, nil before Start.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
