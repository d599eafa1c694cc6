// Package node wires the synchronizer components into a host or a client process.
package node

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/gofrs/flock"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rat/modsync/chunks"
	"github.com/rat/modsync/cmd"
	"github.com/rat/modsync/compat"
	"github.com/rat/modsync/config"
	"github.com/rat/modsync/fileserver"
	"github.com/rat/modsync/filesystem"
	"github.com/rat/modsync/handshake"
	"github.com/rat/modsync/hostbind"
	"github.com/rat/modsync/inventory"
	"github.com/rat/modsync/metrics"
	"github.com/rat/modsync/pending"
	"github.com/rat/modsync/settings"
	"github.com/rat/modsync/transfer"
)

// Logger names.
const (
	AppLogger        = "app"
	HandshakeLogger  = "handshake"
	ResponderLogger  = "responder"
	TransferLogger   = "transfer"
	ChunksLogger     = "chunks"
	TransportLogger  = "transport"
	InventoryLogger  = "inventory"
	SettingsLogger   = "settings"
	PendingLogger    = "pending"
	FileServerLogger = "fileserver"
	MetricsLogger    = "metrics"
)

// lockRetryDelay is the interval between attempts of LockContext.
const lockRetryDelay = 100 * time.Millisecond

// ErrAttemptFailed is returned by Join and Resume when the connection attempt did not complete.
var ErrAttemptFailed = errors.New("connection attempt failed")

// Option to modify an App instance.
type Option func(app *App)

// WithLog sets the root logger. Component loggers are derived from it, so it should be
// created at the lowest level any component may use.
func WithLog(logger *zap.Logger) Option {
	return func(app *App) {
		app.log = logger
	}
}

// WithConfig overwrites default App config.
func WithConfig(conf *config.Config) Option {
	return func(app *App) {
		app.Config = conf
	}
}

// WithFs sets the file system mods are read from and installed into.
func WithFs(fs afero.Fs) Option {
	return func(app *App) {
		app.fs = fs
	}
}

// WithConsole sets where notifications are printed and decisions are read from.
func WithConsole(in io.Reader, out io.Writer) Option {
	return func(app *App) {
		app.in = in
		app.out = out
	}
}

func WithClock(clock clockwork.Clock) Option {
	return func(app *App) {
		app.clock = clock
	}
}

// WithRestartArgs sets the arguments the binary is started with after mods were installed.
func WithRestartArgs(args []string) Option {
	return func(app *App) {
		app.restartArgs = args
	}
}

// New creates an App. Nothing is started until RunHost, Join or Resume.
func New(opts ...Option) *App {
	defaultConfig := config.DefaultConfig()
	app := &App{
		Config:      &defaultConfig,
		log:         zap.NewNop(),
		fs:          afero.NewOsFs(),
		in:          os.Stdin,
		out:         os.Stdout,
		clock:       clockwork.NewRealClock(),
		restartArgs: []string{"resume"},
		loggers:     make(map[string]*zap.AtomicLevel),
		started:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(app)
	}
	app.root = app.log
	app.log = app.addLogger(AppLogger)
	return app
}

// App owns every component of one process.
type App struct {
	Config *config.Config

	// root is the logger every component logger is derived from.
	root        *zap.Logger
	log         *zap.Logger
	fs          afero.Fs
	in          io.Reader
	out         io.Writer
	clock       clockwork.Clock
	restartArgs []string
	fileLock    *flock.Flock
	loggers     map[string]*zap.AtomicLevel

	settings      *settings.Store
	pending       *pending.Store
	metricsServer *metrics.Server
	transport     *hostbind.Transport
	console       *hostbind.Console
	inventory     *hostbind.ManifestInventory
	binding       *hostbind.Binding

	// host role
	fileServer *fileserver.Server
	responder  *handshake.Responder

	// client role
	assembler   *chunks.Assembler
	transfers   *transfer.Manager
	coordinator *handshake.Coordinator

	started chan struct{} // closed once the host accepts clients
	eg      errgroup.Group
}

// Lock locks the data folder for exclusive use. It returns an error if it is already locked.
func (app *App) Lock() error {
	fl, err := app.newLock()
	if err != nil {
		return err
	}
	locked, err := fl.TryLock()
	if err != nil {
		return fmt.Errorf("flock %s: %w", fl.Path(), err)
	} else if !locked {
		return fmt.Errorf("only one modsync instance should be running (locking file %s)", fl.Path())
	}
	app.fileLock = fl
	return nil
}

// LockContext waits for the data folder lock until ctx is done. A restarted process uses it
// while the previous one is still exiting.
func (app *App) LockContext(ctx context.Context) error {
	fl, err := app.newLock()
	if err != nil {
		return err
	}
	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("flock %s: %w", fl.Path(), err)
	} else if !locked {
		return fmt.Errorf("only one modsync instance should be running (locking file %s)", fl.Path())
	}
	app.fileLock = fl
	return nil
}

func (app *App) newLock() (*flock.Flock, error) {
	path := app.Config.LockPath()
	if err := os.MkdirAll(filepath.Dir(path), filesystem.OwnerReadWriteExec); err != nil {
		return nil, fmt.Errorf("creating dir %s for lock %s: %w", filepath.Dir(path), path, err)
	}
	return flock.New(path), nil
}

// Unlock unlocks the data folder. It is a no-op if the app is not locked.
func (app *App) Unlock() {
	if app.fileLock == nil {
		return
	}
	if err := app.fileLock.Unlock(); err != nil {
		app.log.Error("failed to unlock file",
			zap.String("path", app.fileLock.Path()),
			zap.Error(err),
		)
	}
}

// Initialize prepares the data folder and the settings and pending stores.
func (app *App) Initialize() error {
	if _, err := filesystem.GetFullDirectoryPath(app.Config.DataDir()); err != nil {
		return fmt.Errorf("ensure data folder: %w", err)
	}
	if err := app.fs.MkdirAll(app.Config.ModsPath(), filesystem.OwnerReadWriteExec); err != nil {
		return fmt.Errorf("ensure mods folder: %w", err)
	}
	var err error
	app.settings, err = settings.New(app.fs, app.Config.SettingsDir(), settings.WithLogger(app.addLogger(SettingsLogger)))
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}
	app.pending = pending.New(app.fs, app.Config.PendingDir(), pending.WithLogger(app.addLogger(PendingLogger)))
	app.log.Info(app.getAppInfo(),
		zap.String("data", app.Config.DataDir()),
		zap.String("mods", app.Config.ModsPath()),
	)
	return nil
}

func (app *App) getAppInfo() string {
	return fmt.Sprintf(
		"App version: %s. Git: %s - %s . Go Version: %s. OS: %s-%s",
		cmd.Version,
		cmd.Branch,
		cmd.Commit,
		runtime.Version(),
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// Settings returns the settings store, nil before Initialize.
func (app *App) Settings() *settings.Store {
	return app.settings
}

// addLogger derives the named component logger with the level configured for it.
func (app *App) addLogger(name string) *zap.Logger {
	lvl, err := app.Config.LOGGING.Level(name)
	if err != nil {
		app.log.Warn("invalid log level, using default", zap.String("logger", name), zap.Error(err))
		lvl = zap.NewAtomicLevel()
	}
	app.loggers[name] = &lvl
	return app.root.WithOptions(zap.IncreaseLevel(lvl)).Named(name)
}

// SetLogLevel updates the log level of an existing logger.
func (app *App) SetLogLevel(name, loglevel string) error {
	lvl, ok := app.loggers[name]
	if !ok {
		return fmt.Errorf("cannot find logger %v", name)
	}
	if err := lvl.UnmarshalText([]byte(loglevel)); err != nil {
		return fmt.Errorf("unmarshal text: %w", err)
	}
	return nil
}

func (app *App) startMetrics(ctx context.Context, role string) error {
	cfg := app.Config.Metrics
	logger := app.addLogger(MetricsLogger)
	if cfg.Enabled {
		app.metricsServer = metrics.NewServer(logger)
		if err := app.metricsServer.Start(cfg.Listen); err != nil {
			return fmt.Errorf("start metrics server: %w", err)
		}
	}
	if cfg.PushURL != "" {
		app.eg.Go(func() error {
			metrics.PushPeriodically(ctx, logger, cfg.PushURL, cfg.PushHeaders, cfg.PushPeriod, role)
			return nil
		})
	}
	return nil
}

func (app *App) setupBinding(restarter *hostbind.Restarter) {
	app.transport = hostbind.NewTransport(
		hostbind.WithLogger(app.addLogger(TransportLogger)),
		hostbind.WithConfig(app.Config.Host),
	)
	app.console = hostbind.NewConsole(app.in, app.out)
	app.inventory = hostbind.NewManifestInventory(app.addLogger(InventoryLogger), app.fs, app.Config.ModsPath())
	app.binding = hostbind.NewBinding(app.transport, app.console, app.inventory, restarter)
}

// Started is closed once the host accepts clients.
func (app *App) Started() <-chan struct{} {
	return app.started
}

// HostAddr is the address clients connect to, nil until Started.
func (app *App) HostAddr() string {
	if app.transport == nil || app.transport.Addr() == nil {
		return ""
	}
	return app.transport.Addr().String()
}

// RunHost answers clients until ctx is done.
func (app *App) RunHost(ctx context.Context) error {
	hostSettings, err := app.settings.Host()
	if err != nil {
		return fmt.Errorf("load host settings: %w", err)
	}
	if err := app.startMetrics(ctx, "host"); err != nil {
		return err
	}
	app.setupBinding(nil)
	if app.Config.Host.Watch {
		app.eg.Go(func() error {
			if err := app.inventory.Watch(ctx); err != nil {
				app.log.Warn("mods directory is not watched", zap.Error(err))
			}
			return nil
		})
	}

	var baseURL string
	if app.Config.FileServer.Enabled {
		app.fileServer = fileserver.New(app.fs, app.Config.ModsPath(),
			fileserver.WithLogger(app.addLogger(FileServerLogger)),
			fileserver.WithConfig(app.Config.FileServer),
		)
		if err := app.fileServer.Start(); err != nil {
			return fmt.Errorf("start file server: %w", err)
		}
		baseURL = app.fileServer.BaseURL()
	}

	streamer := chunks.NewStreamer(app.fs, app.transport,
		chunks.WithLogger(app.addLogger(ChunksLogger)),
		chunks.WithConfig(app.Config.Chunks),
	)
	app.responder, err = handshake.NewResponder(app.fs, app.Config.ModsPath(), app.binding, streamer,
		handshake.WithResponderLogger(app.addLogger(ResponderLogger)),
		handshake.WithResponderConfig(app.Config.Handshake),
		handshake.WithHostSettings(hostSettings),
		handshake.WithBaseURL(baseURL),
	)
	if err != nil {
		return fmt.Errorf("create responder: %w", err)
	}
	app.responder.Register()
	if err := app.transport.Listen(app.Config.Host.Listen); err != nil {
		return err
	}
	close(app.started)
	<-ctx.Done()
	return nil
}

func (app *App) setupClient() (settings.Client, error) {
	clientSettings, err := app.settings.Client()
	if err != nil {
		return settings.Client{}, fmt.Errorf("load client settings: %w", err)
	}
	restarter := hostbind.NewRestarter(app.log, app.restartArgs, app.handOver)
	app.setupBinding(restarter)

	app.assembler = chunks.NewAssembler(app.fs,
		chunks.WithLogger(app.addLogger(ChunksLogger)),
		chunks.WithConfig(app.Config.Chunks),
	)
	cfg := app.Config.Transfer
	cfg.ModsDir = app.Config.ModsPath()
	if cfg.TempDir == "" {
		cfg.TempDir = filepath.Join(app.Config.DataDir(), "tmp")
	}
	app.transfers, err = transfer.New(app.fs,
		transfer.WithLogger(app.addLogger(TransferLogger)),
		transfer.WithConfig(cfg),
		transfer.WithHost(app.transport, app.assembler),
		transfer.WithDownloadSource(clientSettings.DefaultDownloadSource),
	)
	if err != nil {
		return settings.Client{}, fmt.Errorf("create transfer manager: %w", err)
	}
	app.coordinator = handshake.New(app.binding, app.transfers,
		handshake.WithLogger(app.addLogger(HandshakeLogger)),
		handshake.WithConfig(app.Config.Handshake),
		handshake.WithClock(app.clock),
		handshake.WithCache(compat.New()),
		handshake.WithPending(app.pending),
		handshake.WithSettings(clientSettings),
		handshake.WithChunkHandler(app.assembler.OnMessage),
	)
	app.coordinator.Register()
	return clientSettings, nil
}

// handOver releases the data folder to the restarted process.
func (app *App) handOver() {
	app.log.Info("handing over to the restarted process")
	app.Unlock()
}

// Join connects to the host at address and synchronizes mods with it.
func (app *App) Join(ctx context.Context, address string) (handshake.Outcome, error) {
	if _, err := app.setupClient(); err != nil {
		return handshake.Outcome{}, err
	}
	if err := app.startMetrics(ctx, "client"); err != nil {
		return handshake.Outcome{}, err
	}
	if err := app.binding.ReconnectTo(ctx, address); err != nil {
		return handshake.Outcome{}, err
	}
	return app.attempt(ctx, address)
}

// Resume reconnects to the address saved before a restart. It returns an empty outcome when
// nothing was pending.
func (app *App) Resume(ctx context.Context) (handshake.Outcome, error) {
	if _, err := app.setupClient(); err != nil {
		return handshake.Outcome{}, err
	}
	address, err := app.coordinator.Resume(ctx)
	if err != nil {
		return handshake.Outcome{}, err
	}
	if address == "" {
		app.log.Info("no pending connection")
		return handshake.Outcome{}, nil
	}
	if err := app.startMetrics(ctx, "client"); err != nil {
		return handshake.Outcome{}, err
	}
	return app.attempt(ctx, address)
}

func (app *App) attempt(ctx context.Context, address string) (handshake.Outcome, error) {
	attempt, err := app.coordinator.AttemptConnection(ctx, address)
	if err != nil {
		return handshake.Outcome{}, err
	}
	outcome, err := attempt.Outcome(ctx)
	if err != nil {
		return handshake.Outcome{}, err
	}
	app.log.Info("connection attempt finished",
		zap.String("address", address),
		zap.String("attempt", attempt.ID()),
		zap.Inline(outcome),
	)
	if outcome.State != handshake.StateComplete {
		if outcome.Err != nil {
			return outcome, fmt.Errorf("%w: %s: %w", ErrAttemptFailed, outcome.State, outcome.Err)
		}
		return outcome, fmt.Errorf("%w: %s", ErrAttemptFailed, outcome.State)
	}
	return outcome, nil
}

// Diff compares the mods folder against another mods folder, the other one taken as the host.
func (app *App) Diff(remoteDir string) (inventory.Comparison, error) {
	logger := app.addLogger(InventoryLogger)
	local, err := hostbind.NewManifestInventory(logger, app.fs, app.Config.ModsPath()).ListLocalInventory()
	if err != nil {
		return inventory.Comparison{}, fmt.Errorf("list local mods: %w", err)
	}
	remote, err := hostbind.NewManifestInventory(logger, app.fs, filesystem.GetCanonicalPath(remoteDir)).ListLocalInventory()
	if err != nil {
		return inventory.Comparison{}, fmt.Errorf("list %s: %w", remoteDir, err)
	}
	return inventory.Compare(local, remote), nil
}

// Cleanup stops all app services.
func (app *App) Cleanup(ctx context.Context) {
	app.log.Info("app cleanup starting...")
	if app.coordinator != nil {
		app.coordinator.Close()
	}
	if app.transport != nil {
		if err := app.transport.Close(); err != nil {
			app.log.Warn("failed to close transport", zap.Error(err))
		}
	}
	if app.responder != nil {
		app.responder.Wait()
	}
	if app.transfers != nil {
		if err := app.transfers.Close(); err != nil {
			app.log.Warn("failed to close transfer manager", zap.Error(err))
		}
	}
	if app.fileServer != nil {
		if err := app.fileServer.Stop(ctx); err != nil {
			app.log.Warn("failed to stop file server", zap.Error(err))
		}
	}
	if app.metricsServer != nil {
		if err := app.metricsServer.Stop(ctx); err != nil {
			app.log.Warn("failed to stop metrics server", zap.Error(err))
		}
	}
	app.eg.Wait()
	app.log.Info("app cleanup completed")
}
