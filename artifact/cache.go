package artifact

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/afero"

	"github.com/rat/modsync/hash"
)

type cacheKey struct {
	path    string
	size    int64
	modTime int64
	algo    hash.Algorithm
}

// HashCache memoizes digests of local files. An entry is reused only while the
// file keeps its size and modification time.
type HashCache struct {
	fs    afero.Fs
	cache *lru.Cache[cacheKey, string]
}

func NewHashCache(fsys afero.Fs, size int) (*HashCache, error) {
	cache, err := lru.New[cacheKey, string](size)
	if err != nil {
		return nil, fmt.Errorf("create hash cache: %w", err)
	}
	return &HashCache{fs: fsys, cache: cache}, nil
}

// Digest returns the digest of the file at path.
func (c *HashCache) Digest(path string, algo hash.Algorithm) (string, error) {
	info, err := c.fs.Stat(path)
	if err != nil {
		return "", err
	}
	key := cacheKey{path: path, size: info.Size(), modTime: info.ModTime().UnixNano(), algo: algo}
	if digest, ok := c.cache.Get(key); ok {
		return digest, nil
	}
	digest, err := DigestFile(c.fs, path, algo)
	if err != nil {
		return "", err
	}
	c.cache.Add(key, digest)
	return digest, nil
}

// Matches reports whether the file at path exists and has the expected digest.
// An empty expected digest never matches.
func (c *HashCache) Matches(path, expected string) (bool, error) {
	if expected == "" {
		return false, nil
	}
	digest, err := c.Digest(path, hash.AlgorithmOf(expected))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return hash.Equal(digest, expected), nil
}

// DigestFile computes the digest of a file without caching.
func DigestFile(fsys afero.Fs, path string, algo hash.Algorithm) (string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	d := hash.NewDigester(algo)
	defer d.Release()
	if _, err := io.Copy(d, f); err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return d.Digest(), nil
}

// Verify checks the file at path against expected.
func Verify(fsys afero.Fs, path, expected string) error {
	digest, err := DigestFile(fsys, path, hash.AlgorithmOf(expected))
	if err != nil {
		return err
	}
	if !hash.Equal(digest, expected) {
		return &MismatchError{Expected: expected, Actual: digest}
	}
	return nil
}
