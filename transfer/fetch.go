package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"

	"go.uber.org/zap"

	"github.com/rat/modsync/artifact"
)

// fetch downloads rawURL to target through a temporary file. The temporary file is removed
// on any failure and target is only replaced once the content matches expected.
func (m *Manager) fetch(ctx context.Context, rawURL, target, expected string, declared int64) (int64, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 0, fmt.Errorf("parse url %q: %w", rawURL, err)
	}
	src, ok := m.sources[u.Scheme]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
	limit := m.cfg.MaxTransferSize
	if limit > 0 && declared > limit {
		return 0, &artifact.LimitError{Limit: limit, Size: declared}
	}
	body, size, err := src.Open(ctx, u)
	if err != nil {
		return 0, err
	}
	defer body.Close()
	if limit > 0 && size > limit {
		return 0, &artifact.LimitError{Limit: limit, Size: size}
	}

	staged, err := artifact.Stage(m.fs, target, expected, limit)
	if err != nil {
		return 0, err
	}
	progress := &progressWriter{
		logger: m.logger.With(zap.String("url", u.Redacted())),
		total:  size,
	}
	n, err := io.Copy(io.MultiWriter(staged, progress), body)
	receivedBytes.WithLabelValues(u.Scheme).Add(float64(n))
	if err != nil {
		return n, errors.Join(fmt.Errorf("download %s: %w", u.Redacted(), err), staged.Discard())
	}
	if _, err := staged.Commit(); err != nil {
		return n, err
	}
	return n, nil
}

// progressWriter logs the download progress every ten percent of the declared length.
type progressWriter struct {
	logger  *zap.Logger
	total   int64
	written int64
	logged  int64
}

func (p *progressWriter) Write(b []byte) (int, error) {
	p.written += int64(len(b))
	if p.total <= 0 {
		return len(b), nil
	}
	if percent := p.written * 100 / p.total; percent/10 > p.logged/10 {
		p.logged = percent
		p.logger.Debug("download progress", zap.Int64("percent", percent), zap.Int64("bytes", p.written))
	}
	return len(b), nil
}
