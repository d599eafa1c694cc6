package cmd

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/rat/modsync/config"
)

func TestAddFlags(t *testing.T) {
	cfg := config.DefaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	path := AddFlags(fs, &cfg)
	require.NoError(t, fs.Parse([]string{
		"-c", "/etc/modsync.toml",
		"-d", "/srv/modsync",
		"--handshake-timeout", "7s",
		"--workers", "4",
		"--fileserver",
		"--listen", "127.0.0.1:3000",
	}))
	require.Equal(t, "/etc/modsync.toml", *path)
	require.Equal(t, "/srv/modsync", cfg.DataDirParent)
	require.Equal(t, 7*time.Second, cfg.Handshake.Timeout)
	require.Equal(t, 4, cfg.Transfer.Workers)
	require.True(t, cfg.FileServer.Enabled)
	require.Equal(t, "127.0.0.1:3000", cfg.Host.Listen)
	require.Equal(t, config.DefaultConfig().Chunks, cfg.Chunks)
}
