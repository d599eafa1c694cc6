// Package chunks streams files as sequenced chunks and reassembles them on the receiving side.
package chunks

import (
	"go.uber.org/zap"
)

// DefaultChunkSize is the payload size of every data chunk but the last one.
const DefaultChunkSize = 8 << 10

type Config struct {
	ChunkSize int `mapstructure:"chunk-size"`
	// RateLimit is the number of chunks per second sent to a single peer, zero disables the limit.
	RateLimit float64 `mapstructure:"rate-limit"`
	RateBurst int     `mapstructure:"rate-burst"`
	// MaxItemSize caps the bytes buffered for one item on the receiving side.
	MaxItemSize int64 `mapstructure:"max-item-size"`
}

func DefaultConfig() Config {
	return Config{
		ChunkSize:   DefaultChunkSize,
		RateBurst:   64,
		MaxItemSize: 500 << 20,
	}
}

type options struct {
	logger *zap.Logger
	cfg    Config
}

type Opt func(*options)

func WithLogger(logger *zap.Logger) Opt {
	return func(o *options) {
		o.logger = logger
	}
}

func WithConfig(cfg Config) Opt {
	return func(o *options) {
		o.cfg = cfg
	}
}

func applyOpts(opts []Opt) options {
	o := options{
		logger: zap.NewNop(),
		cfg:    DefaultConfig(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cfg.ChunkSize <= 0 {
		o.cfg.ChunkSize = DefaultChunkSize
	}
	return o
}
