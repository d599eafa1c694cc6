package node

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/rat/modsync/cmd"
	"github.com/rat/modsync/config"
	"github.com/rat/modsync/settings"
)

func execute(tb testing.TB, args ...string) string {
	tb.Helper()
	c := GetCommand()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetArgs(args)
	require.NoError(tb, c.Execute(), out.String())
	return out.String()
}

func TestDiffCommand(t *testing.T) {
	local := t.TempDir()
	remote := t.TempDir()
	for dir, names := range map[string][]string{
		local:  {"alpha-1.0.jar"},
		remote: {"alpha-1.1.jar", "beta-2.0.jar"},
	} {
		for _, name := range names {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
		}
	}
	out := execute(t, "--data-folder", t.TempDir(), "--mods-dir", local, "diff", remote)
	require.Contains(t, out, "1 missing mod(s), 1 version mismatch(es)")
	require.Contains(t, out, "missing   beta 2.0")
	require.Contains(t, out, "mismatch  alpha: 1.0 -> 1.1")
}

func TestSettingsCommand(t *testing.T) {
	dir := t.TempDir()
	out := execute(t, "--data-folder", dir, "settings")
	require.Contains(t, out, filepath.Join(dir, config.SettingsDirName, settings.ClientFileName))
	require.Contains(t, out, `"autoRestart": true`)
	require.Contains(t, out, `"maxTransferSizeMB": 100`)
	require.FileExists(t, filepath.Join(dir, config.SettingsDirName, settings.HostFileName))
}

func TestVersionCommand(t *testing.T) {
	cmd.Version = "v1.2.3"
	t.Cleanup(func() { cmd.Version = "" })
	require.Equal(t, "v1.2.3\n", execute(t, "version"))
}

func TestFlagsWinOverConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modsync.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[handshake]
timeout = "20s"
rejoin-delay = "4s"
`), 0o600))

	conf := config.DefaultConfig()
	c := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	configPath := cmd.AddFlags(c.Flags(), &conf)
	require.NoError(t, c.ParseFlags([]string{"--config", path, "--handshake-timeout", "3s"}))
	require.NoError(t, configure(c, *configPath, &conf))
	require.Equal(t, 3*time.Second, conf.Handshake.Timeout)
	require.Equal(t, 4*time.Second, conf.Handshake.RejoinDelay)
}

func TestRestartArgs(t *testing.T) {
	conf := config.DefaultConfig()
	conf.DataDirParent = "/srv/modsync"
	conf.ModsDir = "mods"
	require.Equal(t,
		[]string{"resume", "--data-folder", "/srv/modsync", "--mods-dir", "/srv/modsync/mods", "--config", "/etc/modsync.toml"},
		restartArgs("/etc/modsync.toml", &conf),
	)
	require.Equal(t,
		[]string{"resume", "--data-folder", "/srv/modsync", "--mods-dir", "/srv/modsync/mods"},
		restartArgs("", &conf),
	)
}
