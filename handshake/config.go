// Package handshake negotiates the add-on set with a remote host before a session starts.
//
// The client side runs one Attempt per connection: it pings the host, waits for the
// host's handshake until a deadline, compares inventories, asks the user and transfers
// whatever is missing. The host side answers with a Responder.
package handshake

import (
	"time"
)

type Config struct {
	// Timeout bounds the wait for the host's handshake after the ping was sent.
	Timeout time.Duration `mapstructure:"timeout"`
	// RestartWhenCompatible requests a restart even if nothing had to be downloaded.
	RestartWhenCompatible bool `mapstructure:"restart-when-compatible"`
	// RejoinDelay is waited on startup before reconnecting to a pending address.
	RejoinDelay time.Duration `mapstructure:"rejoin-delay"`
	// Streams is the number of items the host streams at the same time.
	Streams int `mapstructure:"streams"`
}

func DefaultConfig() Config {
	return Config{
		Timeout:     5 * time.Second,
		RejoinDelay: 2 * time.Second,
		Streams:     3,
	}
}
