// Package pending persists the address to reconnect to after a restart.
package pending

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/rat/modsync/artifact"
)

// FileName of the single-line file holding the pending address.
const FileName = "pending_connection.txt"

type Opt func(*Store)

func WithLogger(logger *zap.Logger) Opt {
	return func(s *Store) {
		s.logger = logger
	}
}

// Store holds at most one pending address.
// It is written before a restart and read and cleared once on the next startup.
// Processes sharing a data folder are serialized by the data folder lock.
type Store struct {
	logger *zap.Logger
	fs     afero.Fs
	path   string

	mu sync.Mutex
}

// New creates a store keeping its file in dir.
func New(fsys afero.Fs, dir string, opts ...Opt) *Store {
	s := &Store{
		logger: zap.NewNop(),
		fs:     fsys,
		path:   filepath.Join(dir, FileName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path of the pending address file.
func (s *Store) Path() string {
	return s.path
}

// Save replaces the pending address.
func (s *Store) Save(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errors.New("empty pending address")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := artifact.WriteFile(s.fs, s.path, strings.NewReader(address+"\n")); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	s.logger.Debug("saved pending connection", zap.String("address", address))
	return nil
}

// Take returns the pending address and deletes the file.
// A missing or blank file means there is nothing pending.
func (s *Store) Take() (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := afero.ReadFile(s.fs, s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("read %s: %w", s.path, err)
	}
	if err := s.fs.Remove(s.path); err != nil {
		return "", false, fmt.Errorf("remove %s: %w", s.path, err)
	}
	address := strings.TrimSpace(string(data))
	if address == "" {
		return "", false, nil
	}
	s.logger.Debug("took pending connection", zap.String("address", address))
	return address, true, nil
}
