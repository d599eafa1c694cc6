package hostbind

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/rat/modsync/chunks"
	"github.com/rat/modsync/handshake"
	"github.com/rat/modsync/host"
	"github.com/rat/modsync/log/logtest"
	"github.com/rat/modsync/pending"
	"github.com/rat/modsync/protocol"
	"github.com/rat/modsync/settings"
	"github.com/rat/modsync/transfer"
)

type received struct {
	peer host.Peer
	data []byte
}

func newServer(tb testing.TB) *Transport {
	tb.Helper()
	srv := NewTransport(WithLogger(logtest.New(tb).Named("server")))
	require.NoError(tb, srv.Listen("127.0.0.1:0"))
	tb.Cleanup(func() { require.NoError(tb, srv.Close()) })
	return srv
}

func newClient(tb testing.TB) *Transport {
	tb.Helper()
	cli := NewTransport(WithLogger(logtest.New(tb).Named("client")))
	tb.Cleanup(func() { require.NoError(tb, cli.Close()) })
	return cli
}

func collect(tr *Transport, ch protocol.Channel) <-chan received {
	out := make(chan received, 128)
	tr.OnMessage(ch, func(_ context.Context, from host.Peer, data []byte) {
		out <- received{peer: from, data: data}
	})
	return out
}

func TestTransportRoundTrip(t *testing.T) {
	srv := newServer(t)
	pings := collect(srv, protocol.ChannelPing)
	cli := newClient(t)
	chunkCh := collect(cli, protocol.ChannelDownloadChunk)

	require.ErrorIs(t, cli.SendToRemote(context.Background(), protocol.ChannelPing, nil), ErrNotConnected)
	require.NoError(t, cli.Connect(context.Background(), srv.Addr().String()))
	require.NoError(t, cli.SendToRemote(context.Background(), protocol.ChannelPing, []byte("hello")))

	var msg received
	select {
	case msg = <-pings:
	case <-time.After(5 * time.Second):
		t.Fatal("ping not received")
	}
	require.Equal(t, []byte("hello"), msg.data)
	require.Equal(t, []host.Peer{msg.peer}, srv.Peers())

	const count = 100
	for i := 0; i < count; i++ {
		require.NoError(t, srv.SendToPeer(context.Background(), msg.peer, protocol.ChannelDownloadChunk, []byte(fmt.Sprint(i))))
	}
	for i := 0; i < count; i++ {
		select {
		case got := <-chunkCh:
			require.Equal(t, fmt.Sprint(i), string(got.data), "messages keep their order")
		case <-time.After(5 * time.Second):
			t.Fatalf("chunk %d not received", i)
		}
	}

	err := srv.SendToPeer(context.Background(), "10.0.0.1:1", protocol.ChannelDownloadChunk, nil)
	require.ErrorIs(t, err, ErrUnknownPeer)
}

func TestTransportPeerDisconnect(t *testing.T) {
	srv := newServer(t)
	cli := NewTransport()
	require.NoError(t, cli.Connect(context.Background(), srv.Addr().String()))
	require.Eventually(t, func() bool { return len(srv.Peers()) == 1 }, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, cli.Close())
	require.Eventually(t, func() bool { return len(srv.Peers()) == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestTransportDialFailure(t *testing.T) {
	srv := newServer(t)
	addr := srv.Addr().String()
	require.NoError(t, srv.Close())
	require.Error(t, newClient(t).Connect(context.Background(), addr))
}

// memory file systems of both sides in one end to end synchronization.
func TestSynchronizeOverTCP(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	logger := logtest.New(t)

	// host side
	hostFs := afero.NewMemMapFs()
	hostDir := "/server/mods"
	a := bytes.Repeat([]byte("a"), 3*chunks.DefaultChunkSize+100)
	b := []byte("b content")
	require.NoError(t, afero.WriteFile(hostFs, filepath.Join(hostDir, "a-1.1.jar"), a, 0o600))
	require.NoError(t, afero.WriteFile(hostFs, filepath.Join(hostDir, "b-2.0.jar"), b, 0o600))
	srv := newServer(t)
	hostBinding := NewBinding(srv, NewConsole(strings.NewReader(""), io.Discard),
		NewManifestInventory(logger, hostFs, hostDir), nil)
	responder, err := handshake.NewResponder(hostFs, hostDir, hostBinding, chunks.NewStreamer(hostFs, srv),
		handshake.WithResponderLogger(logger.Named("responder")))
	require.NoError(t, err)
	responder.Register()
	t.Cleanup(responder.Wait)

	// client side
	clientFs := afero.NewMemMapFs()
	clientDir := "/client/mods"
	require.NoError(t, afero.WriteFile(clientFs, filepath.Join(clientDir, "a-1.0.jar"), []byte("old"), 0o600))
	cli := newClient(t)
	assembler := chunks.NewAssembler(clientFs, chunks.WithLogger(logger.Named("assembler")))
	cfg := transfer.DefaultConfig()
	cfg.ModsDir = clientDir
	manager, err := transfer.New(clientFs, transfer.WithConfig(cfg), transfer.WithHost(cli, assembler))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, manager.Close()) })

	var once sync.Once
	restarted := make(chan struct{})
	restarter := NewRestarter(logger, []string{"resume"}, func() { once.Do(func() { close(restarted) }) })
	restarter.start = func(*exec.Cmd) error { return nil }
	var out bytes.Buffer
	binding := NewBinding(cli, NewConsole(strings.NewReader("1\n"), &out),
		NewManifestInventory(logger, clientFs, clientDir), restarter)
	store := pending.New(clientFs, "/pending")
	coordinator := handshake.New(binding, manager,
		handshake.WithLogger(logger.Named("coordinator")),
		handshake.WithSettings(settings.DefaultClient()),
		handshake.WithPending(store),
		handshake.WithChunkHandler(assembler.OnMessage),
	)
	coordinator.Register()
	t.Cleanup(coordinator.Close)

	address := srv.Addr().String()
	require.NoError(t, binding.ReconnectTo(ctx, address))
	attempt, err := coordinator.AttemptConnection(ctx, address)
	require.NoError(t, err)
	outcome, err := attempt.Outcome(ctx)
	require.NoError(t, err)
	require.Equal(t, handshake.StateComplete, outcome.State, outcome.Err)
	require.True(t, outcome.Restarting)
	<-restarted

	got, err := afero.ReadFile(clientFs, filepath.Join(clientDir, "a-1.1.jar"))
	require.NoError(t, err)
	require.Equal(t, a, got)
	got, err = afero.ReadFile(clientFs, filepath.Join(clientDir, "b-2.0.jar"))
	require.NoError(t, err)
	require.Equal(t, b, got)
	exists, err := afero.Exists(clientFs, filepath.Join(clientDir, "a-1.0.jar"))
	require.NoError(t, err)
	require.False(t, exists)
	require.Contains(t, out.String(), handshake.DecisionTitle)

	saved, ok, err := store.Take()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, address, saved)
}
