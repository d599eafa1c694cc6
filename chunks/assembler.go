package chunks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/rat/modsync/artifact"
	"github.com/rat/modsync/common/types"
	"github.com/rat/modsync/host"
	"github.com/rat/modsync/metrics"
	"github.com/rat/modsync/protocol"
)

var (
	// ErrOutOfOrder is returned when a chunk does not carry the next expected sequence number.
	ErrOutOfOrder = errors.New("chunk out of order")
	// ErrUnexpectedItem is returned for chunks of items nobody is waiting for.
	ErrUnexpectedItem = errors.New("chunk for unexpected item")
	// ErrAborted is returned for chunks of items whose assembly already failed.
	ErrAborted = errors.New("item assembly aborted")
	// ErrInProgress is returned when an item is expected twice.
	ErrInProgress = errors.New("item assembly in progress")
)

type assembly struct {
	desc   types.ModDescriptor
	target string
	buf    bytes.Buffer
	next   uint32
	result chan error
}

func (a *assembly) finish(err error) {
	a.result <- err
	close(a.result)
}

// Assembler reassembles items streamed by a host into files.
// Each expected item accumulates its chunks in order; the file is written and
// verified when the final chunk arrives.
type Assembler struct {
	logger *zap.Logger
	cfg    Config
	fs     afero.Fs

	mu      sync.Mutex
	items   map[string]*assembly
	aborted map[string]struct{}
}

func NewAssembler(fs afero.Fs, opts ...Opt) *Assembler {
	o := applyOpts(opts)
	return &Assembler{
		logger:  o.logger,
		cfg:     o.cfg,
		fs:      fs,
		items:   map[string]*assembly{},
		aborted: map[string]struct{}{},
	}
}

// Expect registers an item keyed by the descriptor id. The returned channel receives exactly
// one value: nil once target was written and verified, or the error that ended the assembly.
func (a *Assembler) Expect(desc types.ModDescriptor, target string) (<-chan error, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.items[desc.ID]; ok {
		return nil, fmt.Errorf("%w: %s", ErrInProgress, desc.ID)
	}
	delete(a.aborted, desc.ID)
	item := &assembly{
		desc:   desc,
		target: target,
		result: make(chan error, 1),
	}
	a.items[desc.ID] = item
	inFlight.Inc()
	return item.result, nil
}

// Cancel stops the assembly of an item. Later chunks for it are dropped.
func (a *Assembler) Cancel(itemID string) {
	a.mu.Lock()
	item, ok := a.items[itemID]
	if ok {
		a.abortLocked(itemID)
	}
	a.mu.Unlock()
	if ok {
		item.finish(fmt.Errorf("%w: %s cancelled", ErrAborted, itemID))
	}
}

// Pending is the number of items being assembled.
func (a *Assembler) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.items)
}

func (a *Assembler) abortLocked(itemID string) {
	delete(a.items, itemID)
	inFlight.Dec()
	a.aborted[itemID] = struct{}{}
}

// Handle applies one chunk.
func (a *Assembler) Handle(chunk *protocol.DownloadChunk) error {
	a.mu.Lock()
	item, ok := a.items[chunk.ItemID]
	if !ok {
		_, aborted := a.aborted[chunk.ItemID]
		a.mu.Unlock()
		if aborted {
			droppedChunks.WithLabelValues("aborted").Inc()
			return fmt.Errorf("%w: %s", ErrAborted, chunk.ItemID)
		}
		droppedChunks.WithLabelValues("unexpected").Inc()
		return fmt.Errorf("%w: %s", ErrUnexpectedItem, chunk.ItemID)
	}
	if chunk.Sequence != item.next {
		a.abortLocked(chunk.ItemID)
		a.mu.Unlock()
		err := fmt.Errorf("%w: item %s expected %d got %d", ErrOutOfOrder, chunk.ItemID, item.next, chunk.Sequence)
		assembled.WithLabelValues(metrics.ResultLabel(err)).Inc()
		item.finish(err)
		return err
	}
	if !chunk.Final {
		if size := int64(item.buf.Len() + len(chunk.Payload)); a.cfg.MaxItemSize > 0 && size > a.cfg.MaxItemSize {
			a.abortLocked(chunk.ItemID)
			a.mu.Unlock()
			err := fmt.Errorf("item %s: %w", chunk.ItemID, &artifact.LimitError{Limit: a.cfg.MaxItemSize, Size: size})
			assembled.WithLabelValues(metrics.ResultLabel(err)).Inc()
			item.finish(err)
			return err
		}
		item.buf.Write(chunk.Payload)
		item.next++
		a.mu.Unlock()
		return nil
	}
	delete(a.items, chunk.ItemID)
	inFlight.Dec()
	a.mu.Unlock()

	err := a.commit(item)
	assembled.WithLabelValues(metrics.ResultLabel(err)).Inc()
	item.finish(err)
	return err
}

func (a *Assembler) commit(item *assembly) error {
	staged, err := artifact.Stage(a.fs, item.target, item.desc.ContentHash, a.cfg.MaxItemSize)
	if err != nil {
		return err
	}
	if _, err := staged.Write(item.buf.Bytes()); err != nil {
		return errors.Join(fmt.Errorf("write %s: %w", item.target, err), staged.Discard())
	}
	size := item.buf.Len()
	item.buf = bytes.Buffer{}
	digest, err := staged.Commit()
	if err != nil {
		return fmt.Errorf("item %s: %w", item.desc.ID, err)
	}
	a.logger.Debug("assembled item",
		zap.Inline(item.desc),
		zap.String("target", item.target),
		zap.Int("size", size),
		zap.String("digest", digest),
	)
	return nil
}

// OnMessage decodes a download-chunk payload and applies it. Malformed payloads are dropped.
func (a *Assembler) OnMessage(ctx context.Context, from host.Peer, data []byte) {
	var chunk protocol.DownloadChunk
	if err := protocol.Decode(data, &chunk); err != nil {
		droppedChunks.WithLabelValues("malformed").Inc()
		a.logger.Warn("dropped malformed chunk", zap.String("from", string(from)), zap.Error(err))
		return
	}
	if err := a.Handle(&chunk); err != nil {
		a.logger.Warn("chunk rejected",
			zap.String("item", chunk.ItemID),
			zap.Uint32("sequence", chunk.Sequence),
			zap.Error(err),
		)
	}
}
