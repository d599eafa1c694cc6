package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rat/modsync/codec"
	"github.com/rat/modsync/common/types"
)

func TestHandshakeEncoding(t *testing.T) {
	hs := Handshake{
		RequiredMods: []types.ModDescriptor{
			{ID: "a", Version: "1.0", FileName: "a.jar", ContentHash: "aa", Size: 10},
			{ID: "b", Version: "2.0", FileName: "b.jar", SourceURL: "https://example.com/b.jar"},
		},
		ProtocolVersion: Version,
	}
	data, err := Encode(&hs)
	require.NoError(t, err)

	var decoded Handshake
	require.NoError(t, Decode(data, &decoded))
	require.Equal(t, hs, decoded)
	require.Len(t, decoded.Inventory(), 2)
}

func TestDecodeMalformed(t *testing.T) {
	for _, tc := range []struct {
		desc string
		data []byte
		msg  codec.Decodable
	}{
		{desc: "garbage", data: []byte("{not cbor"), msg: &Handshake{}},
		{desc: "empty", data: nil, msg: &Ping{}},
		{desc: "ping without id", data: codec.MustEncode(&Ping{Version: Version}), msg: &Ping{}},
		{
			desc: "archive mode without url",
			data: codec.MustEncode(&Handshake{ArchiveMode: true, ProtocolVersion: Version}),
			msg:  &Handshake{},
		},
		{
			desc: "mod without id",
			data: codec.MustEncode(&Handshake{RequiredMods: []types.ModDescriptor{{Version: "1"}}}),
			msg:  &Handshake{},
		},
		{
			desc: "final chunk with payload",
			data: codec.MustEncode(&DownloadChunk{ItemID: "a", Final: true, Payload: []byte{1}}),
			msg:  &DownloadChunk{},
		},
		{
			desc: "request without file",
			data: codec.MustEncode(&DownloadRequest{ItemID: "a"}),
			msg:  &DownloadRequest{},
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			require.ErrorIs(t, Decode(tc.data, tc.msg), ErrMalformed)
		})
	}
}

func TestChunkEncoding(t *testing.T) {
	chunk := DownloadChunk{ItemID: "a", Sequence: 7, Payload: []byte{1, 2, 3}}
	var decoded DownloadChunk
	require.NoError(t, Decode(codec.MustEncode(&chunk), &decoded))
	require.Equal(t, chunk, decoded)

	final := DownloadChunk{ItemID: "a", Sequence: 8, Final: true}
	decoded = DownloadChunk{}
	require.NoError(t, Decode(codec.MustEncode(&final), &decoded))
	require.True(t, decoded.Final)
	require.Empty(t, decoded.Payload)
}
