package chunks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/rat/modsync/codec"
	"github.com/rat/modsync/host"
	"github.com/rat/modsync/protocol"
)

// Sender delivers a payload to one peer.
type Sender interface {
	SendToPeer(ctx context.Context, peer host.Peer, ch protocol.Channel, data []byte) error
}

// maxLimitedPeers bounds the number of per-peer limiters kept by a streamer.
const maxLimitedPeers = 1024

// Streamer sends files to peers on the download-chunk channel.
type Streamer struct {
	logger *zap.Logger
	cfg    Config
	fs     afero.Fs
	sender Sender
	limit  rate.Limit

	mu       sync.Mutex
	limiters *lru.Cache[host.Peer, *rate.Limiter]
}

func NewStreamer(fs afero.Fs, sender Sender, opts ...Opt) *Streamer {
	o := applyOpts(opts)
	limit := rate.Inf
	if o.cfg.RateLimit > 0 {
		limit = rate.Limit(o.cfg.RateLimit)
	}
	limiters, err := lru.New[host.Peer, *rate.Limiter](maxLimitedPeers)
	if err != nil {
		panic(err)
	}
	return &Streamer{
		logger:   o.logger,
		cfg:      o.cfg,
		fs:       fs,
		sender:   sender,
		limit:    limit,
		limiters: limiters,
	}
}

// limiter returns the limiter of peer. Concurrent streams to the same peer share it.
func (s *Streamer) limiter(peer host.Peer) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.limiters.Get(peer); ok {
		return l
	}
	l := rate.NewLimiter(s.limit, max(s.cfg.RateBurst, 1))
	s.limiters.Add(peer, l)
	return l
}

// Stream reads path in fixed-size blocks and sends one chunk per block with sequence numbers
// starting at 0, followed by an empty final chunk whose sequence equals the number of data chunks.
// It returns the number of data chunks sent.
func (s *Streamer) Stream(ctx context.Context, peer host.Peer, itemID, path string) (int, error) {
	f, err := s.fs.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, s.cfg.ChunkSize)
	var seq uint32
	for {
		n, err := io.ReadFull(f, buf)
		if n > 0 {
			if seq == math.MaxUint32 {
				return int(seq), fmt.Errorf("item %s: too many chunks", itemID)
			}
			chunk := protocol.DownloadChunk{ItemID: itemID, Sequence: seq, Payload: buf[:n]}
			if err := s.send(ctx, peer, &chunk); err != nil {
				return int(seq), err
			}
			sentData.Inc()
			seq++
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		} else if err != nil {
			return int(seq), fmt.Errorf("read %s: %w", path, err)
		}
	}
	if err := s.send(ctx, peer, &protocol.DownloadChunk{ItemID: itemID, Sequence: seq, Final: true}); err != nil {
		return int(seq), err
	}
	sentFinal.Inc()
	s.logger.Debug("streamed item",
		zap.String("item", itemID),
		zap.String("peer", string(peer)),
		zap.Uint32("chunks", seq),
	)
	return int(seq), nil
}

func (s *Streamer) send(ctx context.Context, peer host.Peer, chunk *protocol.DownloadChunk) error {
	if err := s.limiter(peer).Wait(ctx); err != nil {
		return err
	}
	data, err := codec.Encode(chunk)
	if err != nil {
		return err
	}
	if err := s.sender.SendToPeer(ctx, peer, protocol.ChannelDownloadChunk, data); err != nil {
		return fmt.Errorf("send chunk %d of %s: %w", chunk.Sequence, chunk.ItemID, err)
	}
	return nil
}
