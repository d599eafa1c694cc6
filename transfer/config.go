// Package transfer fetches the items a host requires, one by one or as a single archive.
package transfer

import (
	"time"
)

const (
	// DefaultMaxTransferSize caps every download and every extracted archive entry.
	DefaultMaxTransferSize = 500 << 20
	// DefaultWorkers is the number of transfers allowed to run at the same time.
	DefaultWorkers = 3
)

type Config struct {
	// ModsDir is the directory items are installed into.
	ModsDir string `mapstructure:"mods-dir"`
	// TempDir keeps downloaded archives until they are extracted.
	TempDir         string        `mapstructure:"temp-dir"`
	Workers         int           `mapstructure:"workers"`
	MaxTransferSize int64         `mapstructure:"max-transfer-size"`
	ConnectTimeout  time.Duration `mapstructure:"connect-timeout"`
	// ReadTimeout bounds the time without progress while reading a response.
	ReadTimeout time.Duration `mapstructure:"read-timeout"`
	// Retries of a failed direct download, zero fails on the first error.
	Retries      int           `mapstructure:"retries"`
	RetryWaitMin time.Duration `mapstructure:"retry-wait-min"`
	RetryWaitMax time.Duration `mapstructure:"retry-wait-max"`
	// HostTransferTimeout bounds the wait for an item streamed by the host.
	HostTransferTimeout time.Duration `mapstructure:"host-transfer-timeout"`
	// AllowedExtensions of archive entries that are extracted.
	AllowedExtensions []string `mapstructure:"allowed-extensions"`
	HashCacheSize     int      `mapstructure:"hash-cache-size"`
	UserAgent         string   `mapstructure:"user-agent"`
}

func DefaultConfig() Config {
	return Config{
		ModsDir:             "mods",
		Workers:             DefaultWorkers,
		MaxTransferSize:     DefaultMaxTransferSize,
		ConnectTimeout:      10 * time.Second,
		ReadTimeout:         30 * time.Second,
		RetryWaitMin:        time.Second,
		RetryWaitMax:        5 * time.Second,
		HostTransferTimeout: 5 * time.Minute,
		AllowedExtensions:   []string{".jar"},
		HashCacheSize:       1024,
		UserAgent:           "modsync",
	}
}
