package transfer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/rat/modsync/artifact"
	"github.com/rat/modsync/codec"
	"github.com/rat/modsync/common/types"
	"github.com/rat/modsync/inventory"
	"github.com/rat/modsync/log"
	"github.com/rat/modsync/metrics"
	"github.com/rat/modsync/protocol"
	"github.com/rat/modsync/settings"
)

type Opt func(*Manager)

func WithLogger(logger *zap.Logger) Opt {
	return func(m *Manager) {
		m.logger = logger
	}
}

func WithConfig(cfg Config) Opt {
	return func(m *Manager) {
		m.cfg = cfg
	}
}

func WithClock(clock clockwork.Clock) Opt {
	return func(m *Manager) {
		m.clock = clock
	}
}

// WithSource registers a source for a url scheme, replacing the default one.
func WithSource(scheme string, src Source) Opt {
	return func(m *Manager) {
		m.sources[scheme] = src
	}
}

// WithHost enables requesting items from the host the client is connected to.
func WithHost(messenger Messenger, assembler ItemAssembler) Opt {
	return func(m *Manager) {
		m.messenger = messenger
		m.assembler = assembler
	}
}

// WithDownloadSource selects whether items with a url are fetched directly or from the host.
func WithDownloadSource(source settings.Source) Opt {
	return func(m *Manager) {
		m.source = source
	}
}

// Manager runs transfers on a bounded pool of workers shared by every call.
type Manager struct {
	logger *zap.Logger
	cfg    Config
	fs     afero.Fs
	clock  clockwork.Clock

	pool      *semaphore.Weighted
	sources   map[string]Source
	gcs       *gcsSource
	hashes    *artifact.HashCache
	messenger Messenger
	assembler ItemAssembler
	source    settings.Source
}

func New(fs afero.Fs, opts ...Opt) (*Manager, error) {
	m := &Manager{
		logger:  zap.NewNop(),
		cfg:     DefaultConfig(),
		fs:      fs,
		clock:   clockwork.NewRealClock(),
		sources: map[string]Source{},
		gcs:     &gcsSource{},
		source:  settings.SourceHost,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.cfg.Workers <= 0 {
		m.cfg.Workers = DefaultWorkers
	}
	m.pool = semaphore.NewWeighted(int64(m.cfg.Workers))
	httpSrc := newHTTPSource(m.logger.Named("http"), m.cfg)
	defaults := map[string]Source{
		"http":  httpSrc,
		"https": httpSrc,
		"gs":    m.gcs,
		"file":  fileSource{fs: fs},
	}
	for scheme, src := range defaults {
		if _, ok := m.sources[scheme]; !ok {
			m.sources[scheme] = src
		}
	}
	hashes, err := artifact.NewHashCache(fs, max(m.cfg.HashCacheSize, 1))
	if err != nil {
		return nil, err
	}
	m.hashes = hashes
	return m, nil
}

// Close releases clients held by sources.
func (m *Manager) Close() error {
	return m.gcs.Close()
}

// ModsDir is the directory items are installed into.
func (m *Manager) ModsDir() string {
	return m.cfg.ModsDir
}

// Report describes the outcome of TransferItems.
type Report struct {
	Fetched   []string
	Requested []string
	Skipped   []string
	Removed   []string
}

func (m *Manager) acquire(ctx context.Context) (func(), error) {
	if err := m.pool.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	return func() { m.pool.Release(1) }, nil
}

// TransferItems installs missing items and replaces mismatched ones. The local file of a
// mismatched item is removed before its replacement is fetched. Items are processed
// sequentially in one worker slot and the first failure ends the call.
func (m *Manager) TransferItems(
	ctx context.Context,
	missing []types.ModDescriptor,
	mismatched []inventory.Mismatch,
) (report Report, err error) {
	release, err := m.acquire(ctx)
	if err != nil {
		return report, err
	}
	defer release()
	start := m.clock.Now()
	defer func() {
		transfers.WithLabelValues("items", resultLabel(err)).Inc()
		duration.WithLabelValues("items").Observe(m.clock.Since(start).Seconds())
	}()

	for _, desc := range missing {
		if err := m.transferItem(ctx, desc, &report); err != nil {
			return report, err
		}
	}
	for _, mismatch := range mismatched {
		if removed := m.removeLocal(ctx, mismatch.Local); removed != "" {
			report.Removed = append(report.Removed, removed)
		}
		if err := m.transferItem(ctx, mismatch.Remote, &report); err != nil {
			return report, err
		}
	}
	m.logger.Info("items transferred",
		log.ZContext(ctx),
		zap.Int("fetched", len(report.Fetched)),
		zap.Int("requested", len(report.Requested)),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("removed", len(report.Removed)),
	)
	return report, nil
}

func (m *Manager) removeLocal(ctx context.Context, desc types.ModDescriptor) string {
	name, err := artifact.BaseName(desc.FileName)
	if err != nil {
		m.logger.Warn("not removing local item", log.ZContext(ctx), zap.Inline(desc), zap.Error(err))
		return ""
	}
	path := filepath.Join(m.cfg.ModsDir, name)
	if err := m.fs.Remove(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			m.logger.Warn("failed to remove old item", log.ZContext(ctx), zap.String("path", path), zap.Error(err))
		}
		return ""
	}
	m.logger.Info("removed old item", log.ZContext(ctx), zap.String("path", path))
	return path
}

func (m *Manager) transferItem(ctx context.Context, desc types.ModDescriptor, report *Report) error {
	name, err := artifact.BaseName(desc.FileName)
	if err != nil {
		return fmt.Errorf("item %s: %w", desc.ID, err)
	}
	target := filepath.Join(m.cfg.ModsDir, name)
	if ok, err := m.hashes.Matches(target, desc.ContentHash); err != nil {
		return fmt.Errorf("hash %s: %w", target, err)
	} else if ok {
		m.logger.Info("item already present", log.ZContext(ctx), zap.Inline(desc))
		skippedItem.Inc()
		report.Skipped = append(report.Skipped, desc.ID)
		return nil
	}

	if desc.SourceURL != "" && (m.source == settings.SourceDirectURL || m.messenger == nil) {
		m.logger.Info("downloading item", log.ZContext(ctx), zap.Inline(desc), zap.String("url", desc.SourceURL))
		if _, err := m.fetch(ctx, desc.SourceURL, target, desc.ContentHash, desc.Size); err != nil {
			return fmt.Errorf("download %s: %w", desc.Name(), err)
		}
		fetchedItem.Inc()
		report.Fetched = append(report.Fetched, desc.ID)
		return nil
	}
	if m.messenger == nil {
		return fmt.Errorf("%w: %s", ErrNoSource, desc.Name())
	}
	if err := m.requestFromHost(ctx, desc, target); err != nil {
		return fmt.Errorf("request %s from host: %w", desc.Name(), err)
	}
	requestedItem.Inc()
	report.Requested = append(report.Requested, desc.ID)
	return nil
}

// requestFromHost sends a download request and waits until the assembler wrote the item.
func (m *Manager) requestFromHost(ctx context.Context, desc types.ModDescriptor, target string) error {
	done, err := m.assembler.Expect(desc, target)
	if err != nil {
		return err
	}
	data, err := codec.Encode(&protocol.DownloadRequest{ItemID: desc.ID, FileName: desc.FileName})
	if err != nil {
		m.assembler.Cancel(desc.ID)
		return err
	}
	m.logger.Info("requesting item from host", log.ZContext(ctx), zap.Inline(desc))
	if err := m.messenger.SendToRemote(ctx, protocol.ChannelDownloadRequest, data); err != nil {
		m.assembler.Cancel(desc.ID)
		return networkError(err)
	}
	var timeout <-chan time.Time
	if m.cfg.HostTransferTimeout > 0 {
		timer := m.clock.NewTimer(m.cfg.HostTransferTimeout)
		defer timer.Stop()
		timeout = timer.Chan()
	}
	select {
	case err := <-done:
		return err
	case <-timeout:
		m.assembler.Cancel(desc.ID)
		return networkError(fmt.Errorf("no data from host within %v", m.cfg.HostTransferTimeout))
	case <-ctx.Done():
		m.assembler.Cancel(desc.ID)
		return ctx.Err()
	}
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, artifact.ErrIntegrity):
		return "integrity"
	case errors.Is(err, artifact.ErrSizeLimitExceeded):
		return "size_limit"
	case errors.Is(err, ErrNetwork):
		return "network"
	}
	return metrics.ResultLabel(err)
}
