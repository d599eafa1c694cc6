package hostbind

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/rat/modsync/common/types"
	"github.com/rat/modsync/log/logtest"
)

const manifest = `
[[mod]]
id = "journeymap"
version = "5.9.7"
name = "JourneyMap"
file = "journeymap-5.9.7-forge.jar"

[[mod]]
id = "config-only"
version = "1"
`

func TestManifestInventory(t *testing.T) {
	fs := afero.NewMemMapFs()
	dir := "/game/mods"
	require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, ManifestName), []byte(manifest), 0o600))
	for _, name := range []string{"journeymap-5.9.7-forge.jar", "jei-1.20.1-15.2.jar", "notes.txt", "Sodium.JAR"} {
		require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, name), nil, 0o600))
	}
	require.NoError(t, fs.MkdirAll(filepath.Join(dir, "nested.jar"), 0o700))

	inv := NewManifestInventory(logtest.New(t), fs, dir)
	got, err := inv.ListLocalInventory()
	require.NoError(t, err)
	require.Equal(t, types.Inventory{
		{ID: "journeymap", Version: "5.9.7", DisplayName: "JourneyMap", FileName: "journeymap-5.9.7-forge.jar"},
		{ID: "config-only", Version: "1"},
		{ID: "Sodium", FileName: "Sodium.JAR"},
		{ID: "jei", Version: "1.20.1-15.2", FileName: "jei-1.20.1-15.2.jar"},
	}, got)

	// cached until invalidated
	require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, "new-1.0.jar"), nil, 0o600))
	again, err := inv.ListLocalInventory()
	require.NoError(t, err)
	require.Len(t, again, 4)
	inv.Invalidate()
	again, err = inv.ListLocalInventory()
	require.NoError(t, err)
	require.Len(t, again, 5)
}

func TestManifestInventoryErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	inv := NewManifestInventory(logtest.New(t), fs, "/missing")
	got, err := inv.ListLocalInventory()
	require.NoError(t, err)
	require.Empty(t, got)

	require.NoError(t, afero.WriteFile(fs, "/broken/"+ManifestName, []byte("[[mod"), 0o600))
	_, err = NewManifestInventory(logtest.New(t), fs, "/broken").ListLocalInventory()
	require.ErrorContains(t, err, "parse manifest")

	require.NoError(t, afero.WriteFile(fs, "/noid/"+ManifestName, []byte("[[mod]]\nversion = \"1\"\n"), 0o600))
	_, err = NewManifestInventory(logtest.New(t), fs, "/noid").ListLocalInventory()
	require.ErrorContains(t, err, "without id")
}

func TestDescribeFile(t *testing.T) {
	for _, tc := range []struct {
		name    string
		id      string
		version string
	}{
		{name: "a-1.0.jar", id: "a", version: "1.0"},
		{name: "create-mod-0.5.1f.jar", id: "create-mod", version: "0.5.1f"},
		{name: "plain.jar", id: "plain"},
		{name: "trailing-.jar", id: "trailing-"},
		{name: "-1.jar", id: "-1"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			desc := describeFile(tc.name)
			require.Equal(t, tc.id, desc.ID)
			require.Equal(t, tc.version, desc.Version)
			require.Equal(t, tc.name, desc.FileName)
		})
	}
}

func TestManifestWatch(t *testing.T) {
	dir := t.TempDir()
	inv := NewManifestInventory(logtest.New(t), afero.NewOsFs(), dir)
	got, err := inv.ListLocalInventory()
	require.NoError(t, err)
	require.Empty(t, got)

	ctx, cancel := context.WithCancel(context.Background())
	var eg errgroup.Group
	eg.Go(func() error { return inv.Watch(ctx) })
	t.Cleanup(func() {
		cancel()
		require.NoError(t, eg.Wait())
	})

	require.Eventually(t, func() bool {
		// the watcher may not be registered yet, keep touching the file until it is seen
		if err := os.WriteFile(filepath.Join(dir, "a-1.0.jar"), nil, 0o600); err != nil {
			return false
		}
		got, err := inv.ListLocalInventory()
		return err == nil && len(got) == 1
	}, 5*time.Second, 20*time.Millisecond)
}
