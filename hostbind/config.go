// Package hostbind is a standalone host binding: it delivers channel messages over TCP,
// reads the local inventory from a manifest and talks to the user on a console.
package hostbind

import (
	"time"
)

// ManifestName is the file listing the installed mods, relative to the mods directory.
const ManifestName = "modsync.toml"

type Config struct {
	// Listen is the address the host accepts clients on.
	Listen         string        `mapstructure:"listen"`
	DialTimeout    time.Duration `mapstructure:"dial-timeout"`
	WriteTimeout   time.Duration `mapstructure:"write-timeout"`
	MaxMessageSize int           `mapstructure:"max-message-size"`
	// Watch reloads the inventory when the mods directory changes.
	Watch bool `mapstructure:"watch"`
}

func DefaultConfig() Config {
	return Config{
		Listen:         "0.0.0.0:25570",
		DialTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxMessageSize: 16 << 20,
		Watch:          true,
	}
}
