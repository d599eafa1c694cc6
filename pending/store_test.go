package pending

import (
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rat/modsync/log/logtest"
)

const dir = "/data/pending"

func TestTakeEmpty(t *testing.T) {
	s := New(afero.NewMemMapFs(), dir, WithLogger(logtest.New(t)))
	addr, ok, err := s.Take()
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, addr)
}

func TestSaveTakeOnce(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New(fs, dir, WithLogger(logtest.New(t)))
	require.NoError(t, s.Save("play.example.com:25565"))
	require.NoError(t, s.Save("10.0.0.1:7777"))

	// survives a new instance, as after a restart
	s = New(fs, dir)
	addr, ok, err := s.Take()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "10.0.0.1:7777", addr)
	exists, err := afero.Exists(fs, s.Path())
	require.NoError(t, err)
	require.False(t, exists)

	_, ok, err = s.Take()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSaveTakeOnDisk(t *testing.T) {
	d := t.TempDir()
	require.NoError(t, New(afero.NewOsFs(), d).Save("host:1"))
	require.FileExists(t, New(afero.NewOsFs(), d).Path())

	addr, ok, err := New(afero.NewOsFs(), d).Take()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "host:1", addr)
	require.NoFileExists(t, New(afero.NewOsFs(), d).Path())
}

func TestTakeTrimsAndClearsBlank(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New(fs, dir)
	require.NoError(t, afero.WriteFile(fs, s.Path(), []byte("  \n"), 0o600))
	_, ok, err := s.Take()
	require.NoError(t, err)
	require.False(t, ok)
	exists, err := afero.Exists(fs, s.Path())
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, afero.WriteFile(fs, s.Path(), []byte(" host:1 \r\n"), 0o600))
	addr, ok, err := s.Take()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "host:1", addr)
}

func TestTakeOnlyOnce(t *testing.T) {
	s := New(afero.NewMemMapFs(), dir)
	require.NoError(t, s.Save("host:1"))

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		taken int
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := s.Take()
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				taken++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 1, taken)
}

func TestSaveRejectsEmpty(t *testing.T) {
	require.Error(t, New(afero.NewMemMapFs(), dir).Save("  "))
}
