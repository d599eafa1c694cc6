package transfer

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork covers timeouts, refused connections and unsuccessful responses.
	ErrNetwork = errors.New("network error")
	// ErrNoSource is returned when an item has neither a usable url nor a host to request it from.
	ErrNoSource = errors.New("no download source")
	// ErrUnsupportedScheme is returned for urls no source can open.
	ErrUnsupportedScheme = errors.New("unsupported url scheme")
)

// StatusError is returned for responses other than 200 OK.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: http %d when downloading %s", ErrNetwork, e.Code, e.URL)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNetwork
}

func networkError(err error) error {
	if err == nil || errors.Is(err, ErrNetwork) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrNetwork, err)
}
