// Package hash provides the content digests used to verify transferred files.
//
// A bare hex digest is sha256. A digest prefixed with "blake3:" is blake3.
package hash

import (
	"encoding/hex"
	stdhash "hash"
	"strings"

	"github.com/minio/sha256-simd"
	"github.com/zeebo/blake3"
)

// BLAKE3Prefix marks blake3 digests.
const BLAKE3Prefix = "blake3:"

type Algorithm int

const (
	SHA256 Algorithm = iota
	BLAKE3
)

func (a Algorithm) String() string {
	if a == BLAKE3 {
		return "blake3"
	}
	return "sha256"
}

// AlgorithmOf returns the algorithm a digest was produced with.
func AlgorithmOf(digest string) Algorithm {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(digest)), BLAKE3Prefix) {
		return BLAKE3
	}
	return SHA256
}

// Normalize trims and lower-cases a digest.
func Normalize(digest string) string {
	return strings.ToLower(strings.TrimSpace(digest))
}

// Equal reports whether two digests are the same, ignoring case and surrounding space.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// Digester accumulates written bytes into a digest.
type Digester struct {
	algo Algorithm
	sha  stdhash.Hash
	b3   *blake3.Hasher
}

func NewDigester(algo Algorithm) *Digester {
	d := &Digester{algo: algo}
	if algo == BLAKE3 {
		d.b3 = GetHasher()
		d.b3.Reset()
	} else {
		d.sha = sha256.New()
	}
	return d
}

func (d *Digester) Algorithm() Algorithm {
	return d.algo
}

func (d *Digester) Write(p []byte) (int, error) {
	if d.b3 != nil {
		return d.b3.Write(p)
	}
	return d.sha.Write(p)
}

// Digest of everything written so far.
func (d *Digester) Digest() string {
	if d.b3 != nil {
		return BLAKE3Prefix + hex.EncodeToString(d.b3.Sum(nil))
	}
	return hex.EncodeToString(d.sha.Sum(nil))
}

// Release returns pooled state. The digester must not be used afterwards.
func (d *Digester) Release() {
	if d.b3 != nil {
		d.b3.Reset()
		PutHasher(d.b3)
		d.b3 = nil
	}
}

// Sum returns the digest of data.
func Sum(algo Algorithm, data []byte) string {
	d := NewDigester(algo)
	defer d.Release()
	d.Write(data)
	return d.Digest()
}
