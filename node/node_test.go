package node

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/rat/modsync/chunks"
	"github.com/rat/modsync/config"
	"github.com/rat/modsync/handshake"
	"github.com/rat/modsync/log/logtest"
)

const modsDir = "/mods"

func testConfig(tb testing.TB) *config.Config {
	tb.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDirParent = tb.TempDir()
	cfg.ModsDir = modsDir
	cfg.Host.Listen = "127.0.0.1:0"
	cfg.Host.Watch = false
	cfg.Handshake.Timeout = 10 * time.Second
	return &cfg
}

func writeMods(tb testing.TB, fs afero.Fs, dir string, files map[string][]byte) {
	tb.Helper()
	for name, data := range files {
		require.NoError(tb, afero.WriteFile(fs, filepath.Join(dir, name), data, 0o600))
	}
}

func startHost(tb testing.TB, fs afero.Fs) *App {
	tb.Helper()
	app := New(WithConfig(testConfig(tb)), WithFs(fs), WithLog(logtest.New(tb).Named("host")))
	require.NoError(tb, app.Initialize())
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- app.RunHost(ctx) }()
	select {
	case <-app.Started():
	case err := <-errc:
		cancel()
		require.NoError(tb, err)
	}
	tb.Cleanup(func() {
		cancel()
		require.NoError(tb, <-errc)
		app.Cleanup(context.Background())
	})
	return app
}

func newClient(tb testing.TB, fs afero.Fs, input string, out *bytes.Buffer) *App {
	tb.Helper()
	app := New(
		WithConfig(testConfig(tb)),
		WithFs(fs),
		WithLog(logtest.New(tb).Named("client")),
		WithConsole(strings.NewReader(input), out),
	)
	require.NoError(tb, app.Initialize())
	tb.Cleanup(func() { app.Cleanup(context.Background()) })
	return app
}

func disableRestart(tb testing.TB, app *App) {
	tb.Helper()
	client, err := app.Settings().Client()
	require.NoError(tb, err)
	client.AutoRestart = false
	require.NoError(tb, app.Settings().SaveClient(client))
}

func TestLock(t *testing.T) {
	cfg := testConfig(t)
	first := New(WithConfig(cfg))
	second := New(WithConfig(cfg))

	require.NoError(t, first.Lock())
	require.ErrorContains(t, second.Lock(), "only one modsync instance")
	first.Unlock()
	require.NoError(t, second.Lock())
	second.Unlock()
	second.Unlock()
}

func TestLockContextWaitsForRelease(t *testing.T) {
	cfg := testConfig(t)
	first := New(WithConfig(cfg))
	second := New(WithConfig(cfg))
	require.NoError(t, first.Lock())

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	require.Error(t, second.LockContext(ctx))

	time.AfterFunc(200*time.Millisecond, first.Unlock)
	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, second.LockContext(ctx))
	second.Unlock()
}

func TestSetLogLevel(t *testing.T) {
	app := New(WithConfig(testConfig(t)))
	require.NoError(t, app.SetLogLevel(AppLogger, "debug"))
	require.ErrorContains(t, app.SetLogLevel(TransferLogger, "debug"), "cannot find logger")
	require.Error(t, app.SetLogLevel(AppLogger, "loud"))
}

func TestJoinInstallsMissingMods(t *testing.T) {
	hostFs := afero.NewMemMapFs()
	large := bytes.Repeat([]byte("x"), 2*chunks.DefaultChunkSize+1)
	writeMods(t, hostFs, modsDir, map[string][]byte{
		"alpha-1.1.jar": large,
		"beta-2.0.jar":  []byte("beta"),
	})
	host := startHost(t, hostFs)

	clientFs := afero.NewMemMapFs()
	writeMods(t, clientFs, modsDir, map[string][]byte{"alpha-1.0.jar": []byte("old alpha")})
	var out bytes.Buffer
	client := newClient(t, clientFs, "1\n", &out)
	disableRestart(t, client)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	outcome, err := client.Join(ctx, host.HostAddr())
	require.NoError(t, err)
	require.Equal(t, handshake.StateComplete, outcome.State)
	require.False(t, outcome.Restarting)
	require.Equal(t, 2, outcome.Comparison.TotalIssues())

	got, err := afero.ReadFile(clientFs, filepath.Join(modsDir, "alpha-1.1.jar"))
	require.NoError(t, err)
	require.Equal(t, large, got)
	got, err = afero.ReadFile(clientFs, filepath.Join(modsDir, "beta-2.0.jar"))
	require.NoError(t, err)
	require.Equal(t, []byte("beta"), got)
	exists, err := afero.Exists(clientFs, filepath.Join(modsDir, "alpha-1.0.jar"))
	require.NoError(t, err)
	require.False(t, exists)
	require.Contains(t, out.String(), handshake.DecisionTitle)

	// nothing is saved for a rejoin without restart
	_, ok, err := client.pending.Take()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestResumeNothingPending(t *testing.T) {
	client := newClient(t, afero.NewMemMapFs(), "", &bytes.Buffer{})
	outcome, err := client.Resume(context.Background())
	require.NoError(t, err)
	require.Equal(t, handshake.StateIdle, outcome.State)
}

func TestResumeRejoinsPendingHost(t *testing.T) {
	mods := map[string][]byte{"alpha-1.1.jar": []byte("alpha")}
	hostFs := afero.NewMemMapFs()
	writeMods(t, hostFs, modsDir, mods)
	host := startHost(t, hostFs)

	clientFs := afero.NewMemMapFs()
	writeMods(t, clientFs, modsDir, mods)
	var out bytes.Buffer
	cfg := testConfig(t)
	cfg.Handshake.RejoinDelay = time.Millisecond
	client := New(WithConfig(cfg), WithFs(clientFs), WithConsole(strings.NewReader(""), &out))
	require.NoError(t, client.Initialize())
	t.Cleanup(func() { client.Cleanup(context.Background()) })
	require.NoError(t, client.pending.Save(host.HostAddr()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	outcome, err := client.Resume(ctx)
	require.NoError(t, err)
	require.Equal(t, handshake.StateComplete, outcome.State)
	require.Contains(t, out.String(), "Reconnecting to server...")

	_, ok, err := client.pending.Take()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestJoinDeclined(t *testing.T) {
	hostFs := afero.NewMemMapFs()
	writeMods(t, hostFs, modsDir, map[string][]byte{"alpha-1.1.jar": []byte("alpha")})
	host := startHost(t, hostFs)

	clientFs := afero.NewMemMapFs()
	client := newClient(t, clientFs, "2\n", &bytes.Buffer{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	outcome, err := client.Join(ctx, host.HostAddr())
	require.ErrorIs(t, err, ErrAttemptFailed)
	require.Equal(t, handshake.StateFailed, outcome.State)
	require.Equal(t, handshake.ReasonUserDeclined, outcome.Reason)
	exists, err := afero.Exists(clientFs, filepath.Join(modsDir, "alpha-1.1.jar"))
	require.NoError(t, err)
	require.False(t, exists)
}

func TestJoinCompatible(t *testing.T) {
	mods := map[string][]byte{"alpha-1.1.jar": []byte("alpha")}
	hostFs := afero.NewMemMapFs()
	writeMods(t, hostFs, modsDir, mods)
	host := startHost(t, hostFs)

	clientFs := afero.NewMemMapFs()
	writeMods(t, clientFs, modsDir, mods)
	var out bytes.Buffer
	client := newClient(t, clientFs, "", &out)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	outcome, err := client.Join(ctx, host.HostAddr())
	require.NoError(t, err)
	require.Equal(t, handshake.StateComplete, outcome.State)
	require.False(t, outcome.Comparison.HasIssues())
	require.NotContains(t, out.String(), handshake.DecisionTitle)
}

func TestJoinUnreachable(t *testing.T) {
	client := newClient(t, afero.NewMemMapFs(), "", &bytes.Buffer{})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := client.Join(ctx, "127.0.0.1:1")
	require.Error(t, err)
}

func TestDiff(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeMods(t, fs, modsDir, map[string][]byte{
		"alpha-1.0.jar": nil,
		"gamma-3.0.jar": nil,
	})
	writeMods(t, fs, "/other", map[string][]byte{
		"alpha-1.1.jar": nil,
		"beta-2.0.jar":  nil,
		"gamma-3.0.jar": nil,
	})
	app := New(WithConfig(testConfig(t)), WithFs(fs))
	comparison, err := app.Diff("/other")
	require.NoError(t, err)
	require.Len(t, comparison.Missing, 1)
	require.Equal(t, "beta", comparison.Missing[0].ID)
	require.Len(t, comparison.Mismatched, 1)
	require.Equal(t, "1.0", comparison.Mismatched[0].Local.Version)
	require.Equal(t, "1.1", comparison.Mismatched[0].Remote.Version)
}
