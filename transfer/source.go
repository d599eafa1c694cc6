package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/storage"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Source opens the content behind a url. The size is -1 when unknown.
type Source interface {
	Open(ctx context.Context, u *url.URL) (io.ReadCloser, int64, error)
}

// A wrapper around zap.Logger to make it compatible with
// retryablehttp.LeveledLogger interface.
type retryableHttpLogger struct {
	inner *zap.Logger
}

func (r retryableHttpLogger) Error(format string, args ...any) {
	r.inner.Sugar().Errorw(format, args...)
}

func (r retryableHttpLogger) Info(format string, args ...any) {
	r.inner.Sugar().Infow(format, args...)
}

func (r retryableHttpLogger) Warn(format string, args ...any) {
	r.inner.Sugar().Warnw(format, args...)
}

func (r retryableHttpLogger) Debug(format string, args ...any) {
	r.inner.Sugar().Debugw(format, args...)
}

type httpSource struct {
	client      *retryablehttp.Client
	readTimeout time.Duration
	userAgent   string
}

func newHTTPSource(logger *zap.Logger, cfg Config) *httpSource {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{Timeout: cfg.ConnectTimeout}).DialContext
	transport.TLSHandshakeTimeout = cfg.ConnectTimeout
	transport.ResponseHeaderTimeout = cfg.ReadTimeout
	client := &retryablehttp.Client{
		HTTPClient:   &http.Client{Transport: transport},
		Logger:       retryableHttpLogger{inner: logger},
		RetryMax:     cfg.Retries,
		RetryWaitMin: cfg.RetryWaitMin,
		RetryWaitMax: cfg.RetryWaitMax,
		Backoff:      retryablehttp.LinearJitterBackoff,
		CheckRetry:   retryablehttp.DefaultRetryPolicy,
		ErrorHandler: retryablehttp.PassthroughErrorHandler,
	}
	client.ResponseLogHook = func(_ retryablehttp.Logger, resp *http.Response) {
		logger.Debug("response received",
			zap.Stringer("url", resp.Request.URL),
			zap.Int("status", resp.StatusCode),
			zap.Int64("length", resp.ContentLength),
		)
	}
	return &httpSource{client: client, readTimeout: cfg.ReadTimeout, userAgent: cfg.UserAgent}
}

func (s *httpSource) Open(ctx context.Context, u *url.URL) (io.ReadCloser, int64, error) {
	ctx, cancel := context.WithCancel(ctx)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		cancel()
		return nil, 0, fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	resp, err := s.client.Do(req)
	if err != nil {
		cancel()
		return nil, 0, networkError(err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel()
		return nil, 0, &StatusError{URL: u.Redacted(), Code: resp.StatusCode}
	}
	return newIdleTimeoutReader(resp.Body, s.readTimeout, cancel), resp.ContentLength, nil
}

// idleTimeoutReader cancels the request when no read completes within timeout.
type idleTimeoutReader struct {
	body    io.ReadCloser
	timeout time.Duration
	timer   *time.Timer
	cancel  context.CancelFunc
}

func newIdleTimeoutReader(body io.ReadCloser, timeout time.Duration, cancel context.CancelFunc) io.ReadCloser {
	r := &idleTimeoutReader{body: body, timeout: timeout, cancel: cancel}
	if timeout > 0 {
		r.timer = time.AfterFunc(timeout, cancel)
	}
	return r
}

func (r *idleTimeoutReader) Read(p []byte) (int, error) {
	n, err := r.body.Read(p)
	if r.timer != nil && n > 0 {
		r.timer.Reset(r.timeout)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		err = networkError(err)
	}
	return n, err
}

func (r *idleTimeoutReader) Close() error {
	if r.timer != nil {
		r.timer.Stop()
	}
	err := r.body.Close()
	r.cancel()
	return err
}

// gcsSource reads gs://bucket/object urls.
type gcsSource struct {
	mu     sync.Mutex
	client *storage.Client
}

func (s *gcsSource) storage(ctx context.Context) (*storage.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		client, err := storage.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("create storage client: %w", err)
		}
		s.client = client
	}
	return s.client, nil
}

func (s *gcsSource) Open(ctx context.Context, u *url.URL) (io.ReadCloser, int64, error) {
	client, err := s.storage(ctx)
	if err != nil {
		return nil, 0, networkError(err)
	}
	object := strings.TrimPrefix(u.Path, "/")
	rdr, err := client.Bucket(u.Host).Object(object).NewReader(ctx)
	if err != nil {
		return nil, 0, networkError(fmt.Errorf("open gs://%s/%s: %w", u.Host, object, err))
	}
	return rdr, rdr.Attrs.Size, nil
}

func (s *gcsSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// fileSource reads file:// urls from the local filesystem.
type fileSource struct {
	fs afero.Fs
}

func (s fileSource) Open(_ context.Context, u *url.URL) (io.ReadCloser, int64, error) {
	path := filepath.Join(u.Host, filepath.FromSlash(u.Path))
	f, err := s.fs.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("stat %s: %w", path, err)
	}
	return f, info.Size(), nil
}
