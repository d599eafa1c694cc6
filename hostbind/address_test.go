package hostbind

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	for _, tc := range []struct {
		input    string
		expected string
		err      bool
	}{
		{input: "127.0.0.1:25570", expected: "127.0.0.1:25570"},
		{input: "play.example.com:25565", expected: "play.example.com:25565"},
		{input: "/ip4/10.0.0.1/tcp/25570", expected: "10.0.0.1:25570"},
		{input: "/ip6/::1/tcp/7000", expected: "[::1]:7000"},
		{input: "localhost", err: true},
		{input: "localhost:", err: true},
		{input: "/ip4/10.0.0.1", err: true},
		{input: "/ip6/::1", err: true},
		{input: "/ip4/10.0.0.1/udp/25570", err: true},
		{input: "/bogus/1", err: true},
	} {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseAddress(tc.input)
			if tc.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, got)
		})
	}
}
