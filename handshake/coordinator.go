package handshake

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rat/modsync/artifact"
	"github.com/rat/modsync/codec"
	"github.com/rat/modsync/compat"
	"github.com/rat/modsync/host"
	"github.com/rat/modsync/inventory"
	"github.com/rat/modsync/log"
	"github.com/rat/modsync/protocol"
	"github.com/rat/modsync/settings"
)

type Opt func(*Coordinator)

func WithLogger(logger *zap.Logger) Opt {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

func WithConfig(cfg Config) Opt {
	return func(c *Coordinator) {
		c.cfg = cfg
	}
}

func WithClock(clock clockwork.Clock) Opt {
	return func(c *Coordinator) {
		c.clock = clock
	}
}

// WithCache shares a compatibility cache with other components.
func WithCache(cache *compat.Cache) Opt {
	return func(c *Coordinator) {
		c.cache = cache
	}
}

// WithPending enables saving the address before a restart.
func WithPending(store PendingStore) Opt {
	return func(c *Coordinator) {
		c.pending = store
	}
}

func WithSettings(s settings.Client) Opt {
	return func(c *Coordinator) {
		c.settings = s
	}
}

// WithChunkHandler registers the handler for chunks streamed by the host.
func WithChunkHandler(handler host.Handler) Opt {
	return func(c *Coordinator) {
		c.chunks = handler
	}
}

// Coordinator runs connection attempts on the client side. At most one attempt is in
// flight and every message received from the host is dispatched to it.
type Coordinator struct {
	logger    *zap.Logger
	cfg       Config
	clock     clockwork.Clock
	host      host.Host
	transfers Transferer
	cache     *compat.Cache
	pending   PendingStore
	settings  settings.Client
	chunks    host.Handler

	mu      sync.Mutex
	current *Attempt
	eg      errgroup.Group
}

func New(h host.Host, transfers Transferer, opts ...Opt) *Coordinator {
	c := &Coordinator{
		logger:    zap.NewNop(),
		cfg:       DefaultConfig(),
		clock:     clockwork.NewRealClock(),
		host:      h,
		transfers: transfers,
		settings:  settings.DefaultClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cache == nil {
		c.cache = compat.New()
	}
	return c
}

// Register subscribes to the channels the host answers on.
func (c *Coordinator) Register() {
	c.host.OnMessage(protocol.ChannelPingResponse, c.onPingResponse)
	c.host.OnMessage(protocol.ChannelHandshake, c.onHandshake)
	if c.chunks != nil {
		c.host.OnMessage(protocol.ChannelDownloadChunk, c.chunks)
	}
}

// IsCompatible returns the last known negotiation outcome for address.
func (c *Coordinator) IsCompatible(address string) bool {
	return c.cache.Get(address)
}

// AttemptConnection pings the host at address and runs the attempt in the background.
// The attempt is cancelled with ctx or Close.
func (c *Coordinator) AttemptConnection(ctx context.Context, address string) (*Attempt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil {
		return nil, fmt.Errorf("%w: %s", ErrAttemptInProgress, c.current.address)
	}
	ctx, id := log.WithNewAttemptID(ctx)
	ctx, cancel := context.WithCancel(ctx)
	a := newAttempt(id, address, cancel)
	c.current = a
	c.logger.Info("connection attempt started", log.ZContext(ctx), zap.String("address", address))
	c.eg.Go(func() error {
		defer cancel()
		start := c.clock.Now()
		outcome := c.run(ctx, a)

		c.mu.Lock()
		if c.current == a {
			c.current = nil
		}
		c.mu.Unlock()

		attempts.WithLabelValues(outcome.State.String(), outcome.Reason.String()).Inc()
		attemptDuration.WithLabelValues(outcome.State.String()).Observe(c.clock.Since(start).Seconds())
		c.logger.Info("connection attempt finished",
			log.ZContext(ctx),
			zap.String("address", address),
			zap.Inline(outcome),
		)
		a.finish(outcome)
		return nil
	})
	return a, nil
}

// Close cancels the running attempt and waits for it to finish.
func (c *Coordinator) Close() {
	c.mu.Lock()
	if c.current != nil {
		c.current.cancel()
	}
	c.mu.Unlock()
	c.eg.Wait()
}

func (c *Coordinator) active() *Attempt {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Coordinator) onPingResponse(ctx context.Context, from host.Peer, data []byte) {
	var resp protocol.PingResponse
	if err := protocol.Decode(data, &resp); err != nil {
		droppedMessages.WithLabelValues(string(protocol.ChannelPingResponse), "malformed").Inc()
		c.logger.Warn("dropped malformed ping response", zap.String("from", string(from)), zap.Error(err))
		return
	}
	a := c.active()
	if a == nil {
		droppedMessages.WithLabelValues(string(protocol.ChannelPingResponse), "no_attempt").Inc()
		c.logger.Debug("ping response without attempt", zap.String("from", string(from)))
		return
	}
	c.cache.Put(a.address, resp.Compatible)
	select {
	case a.responses <- &resp:
	default:
		droppedMessages.WithLabelValues(string(protocol.ChannelPingResponse), "duplicate").Inc()
	}
}

func (c *Coordinator) onHandshake(ctx context.Context, from host.Peer, data []byte) {
	var hs protocol.Handshake
	if err := protocol.Decode(data, &hs); err != nil {
		droppedMessages.WithLabelValues(string(protocol.ChannelHandshake), "malformed").Inc()
		c.logger.Warn("dropped malformed handshake", zap.String("from", string(from)), zap.Error(err))
		return
	}
	a := c.active()
	if a == nil {
		droppedMessages.WithLabelValues(string(protocol.ChannelHandshake), "no_attempt").Inc()
		c.logger.Info("handshake without attempt", zap.String("from", string(from)))
		return
	}
	select {
	case a.handshakes <- &hs:
	default:
		droppedMessages.WithLabelValues(string(protocol.ChannelHandshake), "duplicate").Inc()
		c.logger.Warn("dropped duplicate handshake", zap.String("address", a.address))
	}
}

// run drives one attempt from ping to a terminal state. Messages reach it only through
// the attempt's queues, so transitions never run concurrently.
func (c *Coordinator) run(ctx context.Context, a *Attempt) Outcome {
	logger := c.logger.With(log.ZContext(ctx), zap.String("address", a.address))
	ping := codec.MustEncode(&protocol.Ping{ModID: protocol.ModID, Version: protocol.Version})
	if err := c.host.SendToRemote(ctx, protocol.ChannelPing, ping); err != nil {
		c.cache.Put(a.address, false)
		c.host.NotifyUser(titleIncompatible, "Could not reach the server: "+err.Error(), host.SeverityError)
		return failed(ReasonSendFailed, err)
	}
	a.setState(StatePingSent)
	timer := c.clock.NewTimer(c.cfg.Timeout)
	defer timer.Stop()

	var hs *protocol.Handshake
	for hs == nil {
		select {
		case resp := <-a.responses:
			logger.Info("ping response",
				zap.Bool("compatible", resp.Compatible),
				zap.String("version", resp.Version),
				zap.Bool("archive_mode", resp.ArchiveModeEnabled),
			)
			a.setState(StateAwaitingHandshake)
		case hs = <-a.handshakes:
		case <-timer.Chan():
			logger.Warn("no handshake before deadline", zap.Duration("timeout", c.cfg.Timeout))
			c.cache.Put(a.address, false)
			c.host.NotifyUser(titleIncompatible,
				"The server did not answer the mod synchronization request. It may not have ModSync installed.",
				host.SeverityWarning,
			)
			return Outcome{State: StateIncompatible}
		case <-ctx.Done():
			return failed(ReasonCancelled, ctx.Err())
		}
	}
	timer.Stop()
	return c.negotiate(ctx, logger, a, hs)
}

func (c *Coordinator) negotiate(ctx context.Context, logger *zap.Logger, a *Attempt, hs *protocol.Handshake) Outcome {
	a.setState(StateComparing)
	if hs.ProtocolVersion != protocol.Version {
		logger.Warn("protocol version mismatch",
			zap.String("local", protocol.Version),
			zap.String("remote", hs.ProtocolVersion),
		)
		c.host.NotifyUser(titleVersion,
			fmt.Sprintf("The server runs ModSync %s, this client runs %s.", hs.ProtocolVersion, protocol.Version),
			host.SeverityWarning,
		)
	}
	local, err := c.host.ListLocalInventory()
	if err != nil {
		c.complete(ctx, logger, false)
		return failed(ReasonInventory, fmt.Errorf("list local inventory: %w", err))
	}
	cmp := inventory.Compare(local, hs.Inventory())
	logger.Info("inventories compared", zap.Inline(cmp))

	if cmp.IsCompatible() {
		c.cache.Put(a.address, true)
		c.host.NotifyUser(titleSync, "ModSync is active on both sides. "+cmp.Summary()+".", host.SeverityInfo)
		c.complete(ctx, logger, true)
		outcome := Outcome{State: StateComplete, Comparison: cmp}
		if c.cfg.RestartWhenCompatible {
			outcome.Restarting = c.restart(logger, a)
		}
		return outcome
	}

	c.cache.Put(a.address, false)
	c.host.NotifyUser(titleMismatch, "Mod lists do not match: "+cmp.Summary(), host.SeverityWarning)
	choice, err := c.decide(ctx, logger, a, cmp, hs.ArchiveMode)
	if err != nil {
		outcome := failed(ReasonCancelled, err)
		outcome.Comparison = cmp
		return outcome
	}
	if choice != host.ChoiceAccept {
		c.host.NotifyUser(titleCancelled, "Mod download was declined, the connection was cancelled.", host.SeverityInfo)
		c.complete(ctx, logger, false)
		outcome := failed(ReasonUserDeclined, nil)
		outcome.Comparison = cmp
		return outcome
	}

	a.setState(StateTransferring)
	if err := c.transfer(ctx, logger, hs, cmp); err != nil {
		logger.Warn("transfer failed", zap.Error(err))
		c.host.NotifyUser(titleFailed, describeTransferError(err), host.SeverityError)
		c.complete(ctx, logger, false)
		outcome := failed(ReasonTransferError, err)
		outcome.Comparison = cmp
		return outcome
	}
	c.host.NotifyUser(titleDownloaded, "All required mods were downloaded.", host.SeverityInfo)
	return Outcome{State: StateComplete, Comparison: cmp, Restarting: c.restart(logger, a)}
}

// decide returns the user's answer, or accepts without asking when prompts are disabled.
func (c *Coordinator) decide(
	ctx context.Context,
	logger *zap.Logger,
	a *Attempt,
	cmp inventory.Comparison,
	archive bool,
) (host.Choice, error) {
	if c.settings.AutoAcceptDownloads || !c.settings.ShowMismatchPrompts {
		logger.Info("download accepted without prompt")
		decisions.WithLabelValues("auto").Inc()
		return host.ChoiceAccept, nil
	}
	a.setState(StateAwaitingUserDecision)
	answer := c.host.RequestUserDecision(ctx, Prompt(cmp, archive))
	select {
	case choice, ok := <-answer:
		if !ok {
			choice = host.ChoiceCancel
		}
		logger.Info("user decided", zap.Stringer("choice", choice))
		decisions.WithLabelValues(choice.String()).Inc()
		return choice, nil
	case <-ctx.Done():
		return host.ChoiceCancel, ctx.Err()
	}
}

func (c *Coordinator) transfer(ctx context.Context, logger *zap.Logger, hs *protocol.Handshake, cmp inventory.Comparison) error {
	if hs.ArchiveMode {
		report, err := c.transfers.TransferArchive(ctx, hs.ArchiveURL, hs.ArchiveHash)
		if err != nil {
			return err
		}
		logger.Info("archive installed",
			zap.String("backup", report.Backup),
			zap.Strings("extracted", report.Extracted),
			zap.Strings("unsafe", report.Unsafe),
		)
		return nil
	}
	report, err := c.transfers.TransferItems(ctx, cmp.Missing, cmp.Mismatched)
	if err != nil {
		return err
	}
	logger.Info("items installed",
		zap.Strings("fetched", report.Fetched),
		zap.Strings("requested", report.Requested),
		zap.Strings("skipped", report.Skipped),
	)
	return nil
}

// complete tells the host how the negotiation ended.
func (c *Coordinator) complete(ctx context.Context, logger *zap.Logger, success bool) {
	data := codec.MustEncode(&protocol.HandshakeComplete{Success: success})
	if err := c.host.SendToRemote(ctx, protocol.ChannelHandshakeComplete, data); err != nil {
		logger.Warn("failed to send handshake complete", zap.Bool("success", success), zap.Error(err))
	}
}

// restart saves the address to rejoin and asks the runtime to restart. It reports whether
// the restart was requested.
func (c *Coordinator) restart(logger *zap.Logger, a *Attempt) bool {
	if !c.settings.AutoRestart {
		c.host.NotifyUser(titleRestart, "Restart the game to apply the mod changes.", host.SeverityInfo)
		return false
	}
	if c.settings.AutoRejoin && c.pending != nil {
		if err := c.pending.Save(a.address); err != nil {
			logger.Warn("failed to save pending connection", zap.Error(err))
		}
	}
	c.host.NotifyUser(titleSync, "Restarting to apply the mod changes...", host.SeverityInfo)
	if err := c.host.RequestRestart(); err != nil {
		logger.Error("restart failed", zap.Error(err))
		c.host.NotifyUser(titleRestart, "Automatic restart failed. Restart the game to apply the mod changes.",
			host.SeverityWarning)
		return false
	}
	return true
}

func describeTransferError(err error) string {
	switch {
	case errors.Is(err, artifact.ErrIntegrity):
		return "A downloaded file is corrupted: " + err.Error()
	case errors.Is(err, artifact.ErrSizeLimitExceeded):
		return "A download is larger than allowed: " + err.Error()
	}
	return "Failed to download mods: " + err.Error()
}
