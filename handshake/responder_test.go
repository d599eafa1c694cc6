package handshake

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rat/modsync/codec"
	"github.com/rat/modsync/common/types"
	"github.com/rat/modsync/hash"
	"github.com/rat/modsync/host"
	"github.com/rat/modsync/host/mocks"
	"github.com/rat/modsync/log/logtest"
	"github.com/rat/modsync/protocol"
	"github.com/rat/modsync/settings"
)

const (
	hostModsDir = "/server/mods"
	peer        = host.Peer("client-1")
)

type responderTester struct {
	*Responder
	fs       afero.Fs
	host     *mocks.MockHost
	streamer *MockItemStreamer
	handlers map[protocol.Channel]host.Handler
}

func newResponderTester(tb testing.TB, hostSettings settings.Host, opts ...ResponderOpt) *responderTester {
	ctrl := gomock.NewController(tb)
	t := &responderTester{
		fs:       afero.NewMemMapFs(),
		host:     mocks.NewMockHost(ctrl),
		streamer: NewMockItemStreamer(ctrl),
		handlers: map[protocol.Channel]host.Handler{},
	}
	t.host.EXPECT().OnMessage(gomock.Any(), gomock.Any()).
		Do(func(ch protocol.Channel, handler host.Handler) { t.handlers[ch] = handler }).
		AnyTimes()
	opts = append([]ResponderOpt{
		WithResponderLogger(logtest.New(tb)),
		WithHostSettings(hostSettings),
	}, opts...)
	r, err := NewResponder(t.fs, hostModsDir, t.host, t.streamer, opts...)
	require.NoError(tb, err)
	t.Responder = r
	t.Register()
	tb.Cleanup(t.Wait)
	return t
}

func (t *responderTester) write(tb testing.TB, name string, content []byte) {
	require.NoError(tb, afero.WriteFile(t.fs, filepath.Join(hostModsDir, name), content, 0o600))
}

func (t *responderTester) deliver(ch protocol.Channel, msg any) {
	t.handlers[ch](context.Background(), peer, codec.MustEncode(msg))
}

func TestRespondToPing(t *testing.T) {
	rt := newResponderTester(t, settings.DefaultHost(), WithBaseURL("http://10.0.0.1:8080/mods/"))
	content := []byte("mod a content")
	rt.write(t, "a 1.0.jar", content)
	a := types.ModDescriptor{ID: "a", Version: "1.0", FileName: "a 1.0.jar"}
	missing := types.ModDescriptor{ID: "b", Version: "1.0", FileName: "b.jar"}
	rt.host.EXPECT().ListLocalInventory().Return(types.Inventory{a, missing}, nil)

	var hs protocol.Handshake
	gomock.InOrder(
		rt.host.EXPECT().SendToPeer(gomock.Any(), peer, protocol.ChannelPingResponse,
			codec.MustEncode(&protocol.PingResponse{
				Compatible: true,
				ModID:      protocol.ModID,
				Version:    protocol.Version,
			})),
		rt.host.EXPECT().SendToPeer(gomock.Any(), peer, protocol.ChannelHandshake, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ host.Peer, _ protocol.Channel, data []byte) error {
				return protocol.Decode(data, &hs)
			}),
	)

	rt.deliver(protocol.ChannelPing, &protocol.Ping{ModID: protocol.ModID, Version: protocol.Version})
	require.Equal(t, protocol.Version, hs.ProtocolVersion)
	require.False(t, hs.ArchiveMode)
	require.Equal(t, []types.ModDescriptor{
		a.WithTransferInfo(hash.Sum(hash.SHA256, content), int64(len(content)), "http://10.0.0.1:8080/mods/a%201.0.jar"),
		missing,
	}, hs.RequiredMods)
}

func TestRespondToPingArchiveMode(t *testing.T) {
	hostSettings := settings.DefaultHost()
	hostSettings.ArchiveModeEnabled = true
	hostSettings.ArchiveURL = "https://example.com/pack.zip"
	hostSettings.ArchiveHash = "abc"
	rt := newResponderTester(t, hostSettings)
	rt.host.EXPECT().ListLocalInventory().Return(nil, nil)

	var resp protocol.PingResponse
	var hs protocol.Handshake
	rt.host.EXPECT().SendToPeer(gomock.Any(), peer, protocol.ChannelPingResponse, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ host.Peer, _ protocol.Channel, data []byte) error {
			return protocol.Decode(data, &resp)
		})
	rt.host.EXPECT().SendToPeer(gomock.Any(), peer, protocol.ChannelHandshake, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ host.Peer, _ protocol.Channel, data []byte) error {
			return protocol.Decode(data, &hs)
		})

	rt.deliver(protocol.ChannelPing, &protocol.Ping{ModID: protocol.ModID, Version: "0.1.0"})
	require.False(t, resp.Compatible)
	require.True(t, resp.ArchiveModeEnabled)
	require.True(t, hs.ArchiveMode)
	require.Equal(t, "https://example.com/pack.zip", hs.ArchiveURL)
	require.Equal(t, "abc", hs.ArchiveHash)
}

func TestMalformedPingDropped(t *testing.T) {
	rt := newResponderTester(t, settings.DefaultHost())
	rt.handlers[protocol.ChannelPing](context.Background(), peer, []byte("garbage"))
	rt.deliver(protocol.ChannelPing, &protocol.Ping{})
}

func TestDownloadRequest(t *testing.T) {
	small := settings.DefaultHost()
	small.MaxTransferSizeMB = 1
	disabled := settings.DefaultHost()
	disabled.DirectDownloadEnabled = false

	for _, tc := range []struct {
		desc     string
		settings settings.Host
		file     string
		streamed bool
	}{
		{desc: "streamed", settings: settings.DefaultHost(), file: "a.jar", streamed: true},
		{desc: "disabled", settings: disabled, file: "a.jar"},
		{desc: "missing", settings: settings.DefaultHost(), file: "b.jar"},
		{desc: "unsafe", settings: settings.DefaultHost(), file: "../a.jar"},
		{desc: "too large", settings: small, file: "big.jar"},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			rt := newResponderTester(t, tc.settings)
			rt.write(t, "a.jar", []byte("content"))
			rt.write(t, "big.jar", make([]byte, 1<<20+1))
			if tc.streamed {
				rt.streamer.EXPECT().Stream(gomock.Any(), peer, "a", filepath.Join(hostModsDir, tc.file)).Return(1, nil)
			}
			rt.deliver(protocol.ChannelDownloadRequest, &protocol.DownloadRequest{ItemID: "a", FileName: tc.file})
			rt.Wait()
		})
	}
}

func TestHandshakeCompleteReceived(t *testing.T) {
	rt := newResponderTester(t, settings.DefaultHost())
	rt.deliver(protocol.ChannelHandshakeComplete, &protocol.HandshakeComplete{Success: true})
	rt.handlers[protocol.ChannelHandshakeComplete](context.Background(), peer, []byte{0xff})
}
