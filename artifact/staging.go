package artifact

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/spf13/afero"

	"github.com/rat/modsync/hash"
)

const dirPerm = 0o700

// Staged is a temporary file next to its target that becomes visible at the target
// path only after a successful Commit.
type Staged struct {
	fs       afero.Fs
	file     afero.File
	tmpName  string
	target   string
	expected string
	limit    int64
	written  int64
	digester *hash.Digester
	closed   bool
}

// Stage creates the temporary file for target. The digest is computed with the algorithm of
// expected, sha256 when expected is empty. A limit of zero disables the size cap.
func Stage(fsys afero.Fs, target, expected string, limit int64) (*Staged, error) {
	dir := filepath.Dir(target)
	if err := fsys.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("create dst dir %v: %w", dir, err)
	}
	f, err := afero.TempFile(fsys, dir, "."+filepath.Base(target)+".part-*")
	if err != nil {
		return nil, fmt.Errorf("create tmp file in %v: %w", dir, err)
	}
	return &Staged{
		fs:       fsys,
		file:     f,
		tmpName:  f.Name(),
		target:   target,
		expected: expected,
		limit:    limit,
		digester: hash.NewDigester(hash.AlgorithmOf(expected)),
	}, nil
}

func (s *Staged) Write(p []byte) (int, error) {
	if s.limit > 0 && s.written+int64(len(p)) > s.limit {
		return 0, &LimitError{Limit: s.limit, Size: s.written + int64(len(p))}
	}
	n, err := s.file.Write(p)
	s.digester.Write(p[:n])
	s.written += int64(n)
	return n, err
}

// Written is the number of bytes staged so far.
func (s *Staged) Written() int64 {
	return s.written
}

// TempName is the path of the temporary file.
func (s *Staged) TempName() string {
	return s.tmpName
}

// Commit verifies the digest and moves the file to its target, replacing any file there.
// The temporary file is removed on any failure and the target is left untouched.
func (s *Staged) Commit() (string, error) {
	digest := s.digester.Digest()
	s.digester.Release()
	if err := s.file.Sync(); err != nil {
		return digest, errors.Join(fmt.Errorf("sync tmp file: %w", err), s.Discard())
	}
	if err := s.close(); err != nil {
		return digest, errors.Join(fmt.Errorf("close tmp file: %w", err), s.Discard())
	}
	if s.expected != "" && !hash.Equal(s.expected, digest) {
		return digest, errors.Join(&MismatchError{Expected: s.expected, Actual: digest}, s.Discard())
	}
	if err := s.fs.Rename(s.tmpName, s.target); err != nil {
		return digest, errors.Join(
			fmt.Errorf("rename tmp file %v to %v: %w", s.tmpName, s.target, err),
			s.Discard(),
		)
	}
	return digest, nil
}

// Discard closes and removes the temporary file. It is safe to call more than once.
func (s *Staged) Discard() error {
	s.digester.Release()
	if err := s.close(); err != nil {
		return err
	}
	if err := s.fs.Remove(s.tmpName); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove tmp file %v: %w", s.tmpName, err)
	}
	return nil
}

func (s *Staged) close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.file.Close()
}

// WriteFile replaces path with the contents of r so that readers see either the old or the
// new file. On the OS file system the replacement is also durable.
func WriteFile(fsys afero.Fs, path string, r io.Reader) error {
	if _, ok := fsys.(*afero.OsFs); ok {
		if err := fsys.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
			return fmt.Errorf("create dst dir %v: %w", filepath.Dir(path), err)
		}
		return atomic.WriteFile(path, r)
	}
	staged, err := Stage(fsys, path, "", 0)
	if err != nil {
		return err
	}
	if _, err := io.Copy(staged, r); err != nil {
		return errors.Join(fmt.Errorf("write %v: %w", path, err), staged.Discard())
	}
	_, err = staged.Commit()
	return err
}
