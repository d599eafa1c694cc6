package handshake

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rat/modsync/artifact"
	"github.com/rat/modsync/codec"
	"github.com/rat/modsync/common/types"
	"github.com/rat/modsync/host"
	"github.com/rat/modsync/host/mocks"
	"github.com/rat/modsync/inventory"
	"github.com/rat/modsync/log/logtest"
	"github.com/rat/modsync/protocol"
	"github.com/rat/modsync/settings"
	"github.com/rat/modsync/transfer"
)

const address = "127.0.0.1:7777"

type notification struct {
	title    string
	message  string
	severity host.Severity
}

type tester struct {
	*Coordinator
	host      *mocks.MockHost
	transfers *MockTransferer
	pending   *MockPendingStore
	clock     clockwork.FakeClock
	handlers  map[protocol.Channel]host.Handler

	mu    sync.Mutex
	notes []notification
}

func newTester(tb testing.TB, client settings.Client, opts ...Opt) *tester {
	ctrl := gomock.NewController(tb)
	t := &tester{
		host:      mocks.NewMockHost(ctrl),
		transfers: NewMockTransferer(ctrl),
		pending:   NewMockPendingStore(ctrl),
		clock:     clockwork.NewFakeClock(),
		handlers:  map[protocol.Channel]host.Handler{},
	}
	t.host.EXPECT().OnMessage(gomock.Any(), gomock.Any()).
		Do(func(ch protocol.Channel, handler host.Handler) { t.handlers[ch] = handler }).
		AnyTimes()
	t.host.EXPECT().NotifyUser(gomock.Any(), gomock.Any(), gomock.Any()).
		Do(func(title, message string, severity host.Severity) {
			t.mu.Lock()
			defer t.mu.Unlock()
			t.notes = append(t.notes, notification{title: title, message: message, severity: severity})
		}).
		AnyTimes()
	opts = append([]Opt{
		WithLogger(logtest.New(tb)),
		WithClock(t.clock),
		WithSettings(client),
		WithPending(t.pending),
	}, opts...)
	t.Coordinator = New(t.host, t.transfers, opts...)
	t.Register()
	tb.Cleanup(t.Close)
	return t
}

func (t *tester) titles() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	var titles []string
	for _, n := range t.notes {
		titles = append(titles, n.title)
	}
	return titles
}

func (t *tester) expectPing() {
	t.host.EXPECT().
		SendToRemote(gomock.Any(), protocol.ChannelPing,
			codec.MustEncode(&protocol.Ping{ModID: protocol.ModID, Version: protocol.Version})).
		Return(nil)
}

func (t *tester) expectComplete(success bool) {
	t.host.EXPECT().
		SendToRemote(gomock.Any(), protocol.ChannelHandshakeComplete,
			codec.MustEncode(&protocol.HandshakeComplete{Success: success})).
		Return(nil)
}

// start begins an attempt and waits until it armed the handshake deadline.
func (t *tester) start(tb testing.TB) *Attempt {
	tb.Helper()
	t.expectPing()
	a, err := t.AttemptConnection(context.Background(), address)
	require.NoError(tb, err)
	t.clock.BlockUntil(1)
	require.Equal(tb, StatePingSent, a.State())
	return a
}

func (t *tester) deliver(ch protocol.Channel, msg any) {
	t.handlers[ch](context.Background(), "host", codec.MustEncode(msg))
}

func waitOutcome(tb testing.TB, a *Attempt) Outcome {
	tb.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	outcome, err := a.Outcome(ctx)
	require.NoError(tb, err)
	return outcome
}

func mod(id, version string) types.ModDescriptor {
	return types.ModDescriptor{ID: id, Version: version, FileName: id + "-" + version + ".jar"}
}

func handshakeOf(mods ...types.ModDescriptor) *protocol.Handshake {
	return &protocol.Handshake{RequiredMods: mods, ProtocolVersion: protocol.Version}
}

func TestCompatible(t *testing.T) {
	tc := newTester(t, settings.DefaultClient())
	a := tc.start(t)
	tc.host.EXPECT().ListLocalInventory().Return(types.Inventory{mod("a", "1.0")}, nil)
	tc.expectComplete(true)

	tc.deliver(protocol.ChannelHandshake, handshakeOf(mod("a", "1.0")))
	outcome := waitOutcome(t, a)
	require.Equal(t, StateComplete, outcome.State)
	require.False(t, outcome.Restarting)
	require.True(t, outcome.Comparison.IsCompatible())
	require.Equal(t, StateComplete, a.State())
	require.True(t, tc.IsCompatible(address))
	require.Equal(t, []string{titleSync}, tc.titles())
}

func TestRestartWhenCompatible(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RestartWhenCompatible = true
	tc := newTester(t, settings.DefaultClient(), WithConfig(cfg))
	a := tc.start(t)
	tc.host.EXPECT().ListLocalInventory().Return(nil, nil)
	tc.expectComplete(true)
	tc.pending.EXPECT().Save(address)
	tc.host.EXPECT().RequestRestart()

	tc.deliver(protocol.ChannelHandshake, handshakeOf())
	outcome := waitOutcome(t, a)
	require.Equal(t, StateComplete, outcome.State)
	require.True(t, outcome.Restarting)
}

func TestTimeout(t *testing.T) {
	tc := newTester(t, settings.DefaultClient())
	a := tc.start(t)
	tc.clock.Advance(DefaultConfig().Timeout)

	outcome := waitOutcome(t, a)
	require.Equal(t, StateIncompatible, outcome.State)
	require.False(t, tc.IsCompatible(address))
	require.Equal(t, []string{titleIncompatible}, tc.titles())

	// a late handshake is discarded, the local inventory is never listed
	tc.deliver(protocol.ChannelHandshake, handshakeOf(mod("a", "1.0")))
	require.Equal(t, StateIncompatible, a.State())
}

func TestTimeoutRacesHandshake(t *testing.T) {
	for i := 0; i < 20; i++ {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			tc := newTester(t, settings.DefaultClient())
			a := tc.start(t)
			tc.host.EXPECT().ListLocalInventory().Return(nil, nil).MaxTimes(1)
			tc.host.EXPECT().SendToRemote(gomock.Any(), protocol.ChannelHandshakeComplete, gomock.Any()).MaxTimes(1)

			if i%2 == 0 {
				tc.deliver(protocol.ChannelHandshake, handshakeOf())
				tc.clock.Advance(DefaultConfig().Timeout)
			} else {
				tc.clock.Advance(DefaultConfig().Timeout)
				tc.deliver(protocol.ChannelHandshake, handshakeOf())
			}
			outcome := waitOutcome(t, a)
			require.Contains(t, []State{StateIncompatible, StateComplete}, outcome.State)
			require.Equal(t, outcome.State == StateComplete, tc.IsCompatible(address))
		})
	}
}

func TestPingResponse(t *testing.T) {
	tc := newTester(t, settings.DefaultClient())
	a := tc.start(t)
	tc.deliver(protocol.ChannelPingResponse, &protocol.PingResponse{
		Compatible: true,
		ModID:      protocol.ModID,
		Version:    protocol.Version,
	})
	require.Eventually(t, func() bool {
		return a.State() == StateAwaitingHandshake
	}, time.Second, time.Millisecond)
	require.True(t, tc.IsCompatible(address))

	tc.clock.Advance(DefaultConfig().Timeout)
	require.Equal(t, StateIncompatible, waitOutcome(t, a).State)
	require.False(t, tc.IsCompatible(address))
}

func TestMalformedHandshakeIgnored(t *testing.T) {
	tc := newTester(t, settings.DefaultClient())
	a := tc.start(t)
	tc.handlers[protocol.ChannelHandshake](context.Background(), "host", []byte{0xff, 0x00})
	tc.deliver(protocol.ChannelHandshake, &protocol.Handshake{ArchiveMode: true})
	require.Equal(t, StatePingSent, a.State())

	tc.clock.Advance(DefaultConfig().Timeout)
	require.Equal(t, StateIncompatible, waitOutcome(t, a).State)
}

func TestProtocolVersionWarning(t *testing.T) {
	tc := newTester(t, settings.DefaultClient())
	a := tc.start(t)
	tc.host.EXPECT().ListLocalInventory().Return(nil, nil)
	tc.expectComplete(true)

	hs := handshakeOf()
	hs.ProtocolVersion = "0.9.0"
	tc.deliver(protocol.ChannelHandshake, hs)
	require.Equal(t, StateComplete, waitOutcome(t, a).State)
	require.Equal(t, []string{titleVersion, titleSync}, tc.titles())
}

func TestPingSendFailure(t *testing.T) {
	tc := newTester(t, settings.DefaultClient())
	tc.host.EXPECT().SendToRemote(gomock.Any(), protocol.ChannelPing, gomock.Any()).Return(fmt.Errorf("not connected"))
	a, err := tc.AttemptConnection(context.Background(), address)
	require.NoError(t, err)

	outcome := waitOutcome(t, a)
	require.Equal(t, StateFailed, outcome.State)
	require.Equal(t, ReasonSendFailed, outcome.Reason)
	require.ErrorContains(t, outcome.Err, "not connected")
	cached, ok := tc.cache.Lookup(address)
	require.True(t, ok)
	require.False(t, cached)
}

func TestInventoryFailure(t *testing.T) {
	tc := newTester(t, settings.DefaultClient())
	a := tc.start(t)
	tc.host.EXPECT().ListLocalInventory().Return(nil, fmt.Errorf("mods dir is gone"))
	tc.expectComplete(false)

	tc.deliver(protocol.ChannelHandshake, handshakeOf(mod("a", "1.0")))
	outcome := waitOutcome(t, a)
	require.Equal(t, StateFailed, outcome.State)
	require.Equal(t, ReasonInventory, outcome.Reason)
}

func TestAttemptInProgress(t *testing.T) {
	tc := newTester(t, settings.DefaultClient())
	a := tc.start(t)
	_, err := tc.AttemptConnection(context.Background(), "other:1")
	require.ErrorIs(t, err, ErrAttemptInProgress)

	a.Cancel()
	outcome := waitOutcome(t, a)
	require.Equal(t, StateFailed, outcome.State)
	require.Equal(t, ReasonCancelled, outcome.Reason)

	// finished attempts free the slot
	b := tc.start(t)
	tc.Close()
	require.Equal(t, ReasonCancelled, waitOutcome(t, b).Reason)
}

func TestDeclined(t *testing.T) {
	for _, choice := range []host.Choice{host.ChoiceDecline, host.ChoiceCancel} {
		t.Run(choice.String(), func(t *testing.T) {
			tc := newTester(t, settings.DefaultClient())
			a := tc.start(t)
			tc.host.EXPECT().ListLocalInventory().Return(types.Inventory{mod("a", "1.0")}, nil)

			answer := make(chan host.Choice)
			var decision host.Decision
			tc.host.EXPECT().RequestUserDecision(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, d host.Decision) <-chan host.Choice {
					decision = d
					return answer
				})
			tc.expectComplete(false)

			tc.deliver(protocol.ChannelHandshake, handshakeOf(mod("a", "2.0"), mod("b", "1.0")))
			require.Eventually(t, func() bool {
				return a.State() == StateAwaitingUserDecision
			}, time.Second, time.Millisecond)
			answer <- choice

			outcome := waitOutcome(t, a)
			require.Equal(t, StateFailed, outcome.State)
			require.Equal(t, ReasonUserDeclined, outcome.Reason)
			require.Equal(t, DecisionTitle, decision.Title)
			require.Equal(t, AcceptLabel, decision.Accept)
			require.Equal(t, DeclineLabel, decision.Decline)
			require.Contains(t, decision.Message, "b v1.0")
			require.Contains(t, decision.Message, "a: 1.0 → 2.0")
			require.Equal(t, []string{titleMismatch, titleCancelled}, tc.titles())
			require.False(t, tc.IsCompatible(address))
		})
	}
}

func TestAcceptTransfersItems(t *testing.T) {
	tc := newTester(t, settings.DefaultClient())
	a := tc.start(t)
	local := mod("a", "1.0")
	remote := []types.ModDescriptor{mod("a", "2.0"), mod("b", "1.0")}
	tc.host.EXPECT().ListLocalInventory().Return(types.Inventory{local}, nil)
	answer := make(chan host.Choice, 1)
	answer <- host.ChoiceAccept
	tc.host.EXPECT().RequestUserDecision(gomock.Any(), gomock.Any()).Return(answer)
	gomock.InOrder(
		tc.transfers.EXPECT().
			TransferItems(gomock.Any(), remote[1:], []inventory.Mismatch{{Local: local, Remote: remote[0]}}).
			Return(transfer.Report{Fetched: []string{"b", "a"}}, nil),
		tc.pending.EXPECT().Save(address),
		tc.host.EXPECT().RequestRestart(),
	)

	tc.deliver(protocol.ChannelHandshake, handshakeOf(remote...))
	outcome := waitOutcome(t, a)
	require.Equal(t, StateComplete, outcome.State)
	require.True(t, outcome.Restarting)
	require.Equal(t, 2, outcome.Comparison.TotalIssues())
	require.Equal(t, []string{titleMismatch, titleDownloaded, titleSync}, tc.titles())
}

func TestAutoAcceptArchive(t *testing.T) {
	client := settings.DefaultClient()
	client.AutoAcceptDownloads = true
	client.AutoRestart = false
	tc := newTester(t, client)
	a := tc.start(t)
	tc.host.EXPECT().ListLocalInventory().Return(nil, nil)
	tc.transfers.EXPECT().TransferArchive(gomock.Any(), "https://example.com/pack.zip", "abc").
		Return(transfer.ArchiveReport{Extracted: []string{"a.jar"}}, nil)

	hs := handshakeOf(mod("a", "1.0"))
	hs.ArchiveMode = true
	hs.ArchiveURL = "https://example.com/pack.zip"
	hs.ArchiveHash = "abc"
	tc.deliver(protocol.ChannelHandshake, hs)
	outcome := waitOutcome(t, a)
	require.Equal(t, StateComplete, outcome.State)
	require.False(t, outcome.Restarting)
	require.Equal(t, []string{titleMismatch, titleDownloaded, titleRestart}, tc.titles())
}

func TestPromptsDisabled(t *testing.T) {
	client := settings.DefaultClient()
	client.ShowMismatchPrompts = false
	client.AutoRejoin = false
	tc := newTester(t, client)
	a := tc.start(t)
	tc.host.EXPECT().ListLocalInventory().Return(nil, nil)
	tc.transfers.EXPECT().TransferItems(gomock.Any(), gomock.Len(1), gomock.Nil())
	tc.host.EXPECT().RequestRestart()

	tc.deliver(protocol.ChannelHandshake, handshakeOf(mod("a", "1.0")))
	outcome := waitOutcome(t, a)
	require.Equal(t, StateComplete, outcome.State)
	require.True(t, outcome.Restarting)
}

func TestTransferError(t *testing.T) {
	client := settings.DefaultClient()
	client.AutoAcceptDownloads = true
	tc := newTester(t, client)
	a := tc.start(t)
	tc.host.EXPECT().ListLocalInventory().Return(nil, nil)
	tc.transfers.EXPECT().TransferItems(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(transfer.Report{}, &artifact.MismatchError{Expected: "abc123", Actual: "def456"})
	tc.expectComplete(false)

	tc.deliver(protocol.ChannelHandshake, handshakeOf(mod("a", "1.0")))
	outcome := waitOutcome(t, a)
	require.Equal(t, StateFailed, outcome.State)
	require.Equal(t, ReasonTransferError, outcome.Reason)
	require.ErrorIs(t, outcome.Err, artifact.ErrIntegrity)

	tc.mu.Lock()
	defer tc.mu.Unlock()
	last := tc.notes[len(tc.notes)-1]
	require.Equal(t, titleFailed, last.title)
	require.Equal(t, host.SeverityError, last.severity)
	require.Contains(t, last.message, "corrupted")
}

func TestRestartFailure(t *testing.T) {
	client := settings.DefaultClient()
	client.AutoAcceptDownloads = true
	tc := newTester(t, client)
	a := tc.start(t)
	tc.host.EXPECT().ListLocalInventory().Return(nil, nil)
	tc.transfers.EXPECT().TransferItems(gomock.Any(), gomock.Any(), gomock.Any())
	tc.pending.EXPECT().Save(address).Return(fmt.Errorf("read-only"))
	tc.host.EXPECT().RequestRestart().Return(fmt.Errorf("unsupported"))

	tc.deliver(protocol.ChannelHandshake, handshakeOf(mod("a", "1.0")))
	outcome := waitOutcome(t, a)
	require.Equal(t, StateComplete, outcome.State)
	require.False(t, outcome.Restarting)
	require.Equal(t, titleRestart, tc.titles()[len(tc.titles())-1])
}

func TestChunkHandlerRegistered(t *testing.T) {
	var received []byte
	tc := newTester(t, settings.DefaultClient(), WithChunkHandler(func(_ context.Context, _ host.Peer, data []byte) {
		received = data
	}))
	tc.handlers[protocol.ChannelDownloadChunk](context.Background(), "host", []byte{1})
	require.Equal(t, []byte{1}, received)
}
