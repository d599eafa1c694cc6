// Package artifact verifies and stages files fetched from a remote source.
package artifact

import (
	"errors"
	"fmt"
)

var (
	// ErrIntegrity is returned when the content of a file does not match the expected digest.
	ErrIntegrity = errors.New("integrity check failed")
	// ErrSizeLimitExceeded is returned when a transfer grows past the configured cap.
	ErrSizeLimitExceeded = errors.New("size limit exceeded")
	// ErrUnsafePath is returned for names that would resolve outside of the target directory.
	ErrUnsafePath = errors.New("unsafe path")
)

// MismatchError carries both digests of a failed integrity check.
type MismatchError struct {
	Expected string
	Actual   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", ErrIntegrity, e.Expected, e.Actual)
}

func (e *MismatchError) Is(target error) bool {
	return target == ErrIntegrity
}

// LimitError carries the limit that was exceeded.
type LimitError struct {
	Limit int64
	Size  int64
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s: %d bytes over limit of %d", ErrSizeLimitExceeded, e.Size, e.Limit)
}

func (e *LimitError) Is(target error) bool {
	return target == ErrSizeLimitExceeded
}
