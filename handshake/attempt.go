package handshake

import (
	"context"
	"sync/atomic"

	"github.com/rat/modsync/protocol"
)

// Attempt is one connection attempt. Its transitions run on a single goroutine owned by
// the Coordinator.
type Attempt struct {
	id      string
	address string
	cancel  context.CancelFunc
	state   atomic.Int32

	responses  chan *protocol.PingResponse
	handshakes chan *protocol.Handshake

	done    chan struct{}
	outcome Outcome
}

func newAttempt(id, address string, cancel context.CancelFunc) *Attempt {
	return &Attempt{
		id:         id,
		address:    address,
		cancel:     cancel,
		responses:  make(chan *protocol.PingResponse, 1),
		handshakes: make(chan *protocol.Handshake, 1),
		done:       make(chan struct{}),
	}
}

func (a *Attempt) ID() string {
	return a.id
}

func (a *Attempt) Address() string {
	return a.address
}

func (a *Attempt) State() State {
	return State(a.state.Load())
}

func (a *Attempt) setState(s State) {
	a.state.Store(int32(s))
}

// Cancel stops the attempt. An attempt that already finished is not affected.
func (a *Attempt) Cancel() {
	a.cancel()
}

// Done is closed once the attempt reached a terminal state.
func (a *Attempt) Done() <-chan struct{} {
	return a.done
}

// Outcome blocks until the attempt finished or ctx is done.
func (a *Attempt) Outcome(ctx context.Context) (Outcome, error) {
	select {
	case <-a.done:
		return a.outcome, nil
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
}

func (a *Attempt) finish(outcome Outcome) {
	a.outcome = outcome
	a.setState(outcome.State)
	close(a.done)
}
