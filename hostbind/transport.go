package hostbind

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/libp2p/go-msgio"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rat/modsync/codec"
	"github.com/rat/modsync/host"
	"github.com/rat/modsync/protocol"
)

var (
	// ErrNotConnected is returned when sending to the remote before Connect.
	ErrNotConnected = errors.New("not connected")
	// ErrUnknownPeer is returned when sending to a peer that is not connected.
	ErrUnknownPeer = errors.New("unknown peer")
)

// envelope is the frame exchanged on a connection.
type envelope struct {
	Channel protocol.Channel `cbor:"1,keyasint"`
	Payload []byte           `cbor:"2,keyasint"`
}

type Opt func(*Transport)

func WithLogger(logger *zap.Logger) Opt {
	return func(t *Transport) {
		t.logger = logger
	}
}

func WithConfig(cfg Config) Opt {
	return func(t *Transport) {
		t.cfg = cfg
	}
}

// Transport carries channel messages over TCP. Every frame is a varint length followed by
// an encoded envelope. Messages of one connection are dispatched in the order they arrive.
type Transport struct {
	logger *zap.Logger
	cfg    Config

	ctx    context.Context
	cancel context.CancelFunc
	eg     errgroup.Group

	mu       sync.RWMutex
	handlers map[protocol.Channel]host.Handler
	peers    map[host.Peer]*conn
	remote   *conn
	listener net.Listener
	closed   bool
}

func NewTransport(opts ...Opt) *Transport {
	t := &Transport{
		logger:   zap.NewNop(),
		cfg:      DefaultConfig(),
		handlers: map[protocol.Channel]host.Handler{},
		peers:    map[host.Peer]*conn{},
	}
	for _, opt := range opts {
		opt(t)
	}
	t.ctx, t.cancel = context.WithCancel(context.Background())
	return t
}

func (t *Transport) OnMessage(ch protocol.Channel, handler host.Handler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handlers[ch] = handler
}

// Listen accepts clients on address until Close.
func (t *Transport) Listen(address string) error {
	l, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", address, err)
	}
	t.mu.Lock()
	t.listener = l
	t.mu.Unlock()
	t.logger.Info("accepting clients", zap.Stringer("address", l.Addr()))
	t.eg.Go(func() error {
		for {
			nc, err := l.Accept()
			if err != nil {
				if t.ctx.Err() == nil {
					t.logger.Error("accept failed", zap.Error(err))
				}
				return nil
			}
			c := t.newConn(nc)
			t.mu.Lock()
			t.peers[c.peer] = c
			t.mu.Unlock()
			t.logger.Info("client connected", zap.String("peer", string(c.peer)))
			t.eg.Go(func() error {
				t.serve(c)
				t.mu.Lock()
				delete(t.peers, c.peer)
				t.mu.Unlock()
				t.logger.Info("client disconnected", zap.String("peer", string(c.peer)))
				return nil
			})
		}
	})
	return nil
}

// Addr is the listening address, nil before Listen.
func (t *Transport) Addr() net.Addr {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.listener == nil {
		return nil
	}
	return t.listener.Addr()
}

// Connect dials the host at address, replacing the previous connection.
func (t *Transport) Connect(ctx context.Context, address string) error {
	dialer := net.Dialer{Timeout: t.cfg.DialTimeout}
	nc, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return fmt.Errorf("dial %s: %w", address, err)
	}
	c := t.newConn(nc)
	t.mu.Lock()
	prev := t.remote
	t.remote = c
	t.mu.Unlock()
	if prev != nil {
		prev.close()
	}
	t.logger.Info("connected", zap.String("address", address))
	t.eg.Go(func() error {
		t.serve(c)
		t.mu.Lock()
		if t.remote == c {
			t.remote = nil
		}
		t.mu.Unlock()
		return nil
	})
	return nil
}

// Peers lists connected clients.
func (t *Transport) Peers() []host.Peer {
	t.mu.RLock()
	defer t.mu.RUnlock()
	peers := make([]host.Peer, 0, len(t.peers))
	for peer := range t.peers {
		peers = append(peers, peer)
	}
	return peers
}

func (t *Transport) SendToRemote(ctx context.Context, ch protocol.Channel, data []byte) error {
	t.mu.RLock()
	c := t.remote
	t.mu.RUnlock()
	if c == nil {
		return ErrNotConnected
	}
	return c.send(ctx, ch, data)
}

func (t *Transport) SendToPeer(ctx context.Context, peer host.Peer, ch protocol.Channel, data []byte) error {
	t.mu.RLock()
	c, ok := t.peers[peer]
	t.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPeer, peer)
	}
	return c.send(ctx, ch, data)
}

// Close stops accepting, closes every connection and waits for the readers to exit.
// It may be called more than once.
func (t *Transport) Close() error {
	t.cancel()
	t.mu.Lock()
	var err error
	if t.listener != nil && !t.closed {
		err = t.listener.Close()
	}
	t.closed = true
	for _, c := range t.peers {
		c.close()
	}
	if t.remote != nil {
		t.remote.close()
	}
	t.mu.Unlock()
	t.eg.Wait()
	return err
}

func (t *Transport) newConn(nc net.Conn) *conn {
	return &conn{
		peer:         host.Peer(nc.RemoteAddr().String()),
		nc:           nc,
		r:            msgio.NewVarintReaderSize(nc, t.cfg.MaxMessageSize),
		w:            msgio.NewVarintWriter(nc),
		writeTimeout: t.cfg.WriteTimeout,
	}
}

// serve reads frames until the connection fails and hands each one to its channel handler.
func (t *Transport) serve(c *conn) {
	stop := context.AfterFunc(t.ctx, c.close)
	defer stop()
	defer c.close()
	for {
		msg, err := c.r.ReadMsg()
		if err != nil {
			if t.ctx.Err() == nil {
				t.logger.Debug("connection closed", zap.String("peer", string(c.peer)), zap.Error(err))
			}
			return
		}
		var env envelope
		err = codec.Decode(msg, &env)
		c.r.ReleaseMsg(msg)
		if err != nil {
			t.logger.Warn("dropped malformed frame", zap.String("peer", string(c.peer)), zap.Error(err))
			continue
		}
		t.mu.RLock()
		handler, ok := t.handlers[env.Channel]
		t.mu.RUnlock()
		if !ok {
			t.logger.Debug("no handler for channel", zap.Stringer("channel", env.Channel))
			continue
		}
		handler(t.ctx, c.peer, env.Payload)
	}
}

type conn struct {
	peer         host.Peer
	nc           net.Conn
	r            msgio.ReadCloser
	writeTimeout time.Duration

	wmu sync.Mutex
	w   msgio.WriteCloser

	closeOnce sync.Once
}

func (c *conn) send(ctx context.Context, ch protocol.Channel, data []byte) error {
	frame, err := codec.Encode(&envelope{Channel: ch, Payload: data})
	if err != nil {
		return err
	}
	c.wmu.Lock()
	defer c.wmu.Unlock()
	deadline, ok := ctx.Deadline()
	if !ok && c.writeTimeout > 0 {
		deadline = time.Now().Add(c.writeTimeout)
	}
	if err := c.nc.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if err := c.w.WriteMsg(frame); err != nil {
		return fmt.Errorf("send %s to %s: %w", ch, c.peer, err)
	}
	return nil
}

func (c *conn) close() {
	c.closeOnce.Do(func() { c.nc.Close() })
}
