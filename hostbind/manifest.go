package hostbind

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/rat/modsync/common/types"
)

// Manifest is the optional toml file describing the installed mods:
//
//	[[mod]]
//	id = "journeymap"
//	version = "5.9.7"
//	name = "JourneyMap"
//	file = "journeymap-5.9.7.jar"
type Manifest struct {
	Mods []ManifestEntry `toml:"mod"`
}

type ManifestEntry struct {
	ID      string `toml:"id"`
	Version string `toml:"version"`
	Name    string `toml:"name"`
	File    string `toml:"file"`
}

// ManifestInventory lists the mods of a directory. Entries of the manifest are taken as is,
// every other .jar file is described by its name ("<id>-<version>.jar").
// The result is cached until the directory changes.
type ManifestInventory struct {
	logger *zap.Logger
	fs     afero.Fs
	dir    string

	mu     sync.Mutex
	cached types.Inventory
}

func NewManifestInventory(logger *zap.Logger, fsys afero.Fs, dir string) *ManifestInventory {
	return &ManifestInventory{logger: logger, fs: fsys, dir: dir}
}

func (m *ManifestInventory) ListLocalInventory() (types.Inventory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cached != nil {
		return m.cached, nil
	}
	inv, err := m.load()
	if err != nil {
		return nil, err
	}
	m.cached = inv
	return inv, nil
}

// Invalidate drops the cached inventory.
func (m *ManifestInventory) Invalidate() {
	m.mu.Lock()
	m.cached = nil
	m.mu.Unlock()
}

func (m *ManifestInventory) load() (types.Inventory, error) {
	inv := types.Inventory{}
	described := map[string]struct{}{}
	data, err := afero.ReadFile(m.fs, filepath.Join(m.dir, ManifestName))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read manifest: %w", err)
	default:
		var manifest Manifest
		if err := toml.Unmarshal(data, &manifest); err != nil {
			return nil, fmt.Errorf("parse manifest: %w", err)
		}
		for _, entry := range manifest.Mods {
			if entry.ID == "" {
				return nil, fmt.Errorf("parse manifest: entry without id (file %q)", entry.File)
			}
			inv = append(inv, types.ModDescriptor{
				ID:          entry.ID,
				Version:     entry.Version,
				DisplayName: entry.Name,
				FileName:    entry.File,
			})
			described[entry.File] = struct{}{}
		}
	}

	entries, err := afero.ReadDir(m.fs, m.dir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("list %s: %w", m.dir, err)
	}
	var extra types.Inventory
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".jar") {
			continue
		}
		if _, ok := described[e.Name()]; ok {
			continue
		}
		extra = append(extra, describeFile(e.Name()))
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].ID < extra[j].ID })
	inv = append(inv, extra...)
	m.logger.Debug("inventory loaded", zap.Array("mods", inv))
	return inv, nil
}

// describeFile splits "name-1.2.3.jar" at the first dash followed by a digit.
func describeFile(name string) types.ModDescriptor {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	desc := types.ModDescriptor{ID: stem, FileName: name}
	for i := 1; i < len(stem)-1; i++ {
		if stem[i] == '-' && unicode.IsDigit(rune(stem[i+1])) {
			desc.ID = stem[:i]
			desc.Version = stem[i+1:]
			break
		}
	}
	return desc
}

// Watch invalidates the cache whenever the directory changes, until ctx is done.
// It needs the directory on the os file system.
func (m *ManifestInventory) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(m.dir); err != nil {
		return fmt.Errorf("watch %s: %w", m.dir, err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				m.logger.Debug("mods directory changed", zap.String("path", event.Name), zap.Stringer("op", event.Op))
				m.Invalidate()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			m.logger.Warn("watch error", zap.Error(err))
		}
	}
}
