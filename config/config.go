// Package config contains the modsync configuration definitions.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/rat/modsync/chunks"
	"github.com/rat/modsync/fileserver"
	"github.com/rat/modsync/filesystem"
	"github.com/rat/modsync/handshake"
	"github.com/rat/modsync/hostbind"
	"github.com/rat/modsync/metrics"
	"github.com/rat/modsync/transfer"
)

const (
	defaultDataDirName = ".modsync"
	// LockFileName is created in the data directory while a process uses it.
	LockFileName = "modsync.lock"
	// PendingDirName keeps the pending connection record.
	PendingDirName = "pending"
	// SettingsDirName keeps the client and host settings documents.
	SettingsDirName = "settings"
)

var defaultDataDir = filepath.Join(filesystem.GetUserHomeDirectory(), defaultDataDirName)

// Config defines the top level configuration of a modsync process.
type Config struct {
	BaseConfig `mapstructure:"main"`
	LOGGING    LoggerConfig      `mapstructure:"logging"`
	Metrics    metrics.Config    `mapstructure:"metrics"`
	Handshake  handshake.Config  `mapstructure:"handshake"`
	Transfer   transfer.Config   `mapstructure:"transfer"`
	Chunks     chunks.Config     `mapstructure:"chunks"`
	Host       hostbind.Config   `mapstructure:"host"`
	FileServer fileserver.Config `mapstructure:"fileserver"`
}

// BaseConfig holds the paths shared by every component.
type BaseConfig struct {
	DataDirParent string `mapstructure:"data-folder"`
	// ModsDir is the directory mods are installed into and served from. A relative path is
	// resolved against the data folder.
	ModsDir string `mapstructure:"mods-dir"`
	// FileLock guards the data folder, empty places it inside the data folder.
	FileLock string `mapstructure:"filelock"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		BaseConfig: BaseConfig{
			DataDirParent: defaultDataDir,
			ModsDir:       "mods",
		},
		LOGGING:    DefaultLoggingConfig(),
		Metrics:    metrics.DefaultConfig(),
		Handshake:  handshake.DefaultConfig(),
		Transfer:   transfer.DefaultConfig(),
		Chunks:     chunks.DefaultConfig(),
		Host:       hostbind.DefaultConfig(),
		FileServer: fileserver.DefaultConfig(),
	}
}

// DataDir returns the absolute path to use for the process data. This is the tilde-expanded
// path given in the config.
func (cfg *Config) DataDir() string {
	return filesystem.GetCanonicalPath(cfg.DataDirParent)
}

// ModsPath returns the mods directory, resolved against the data folder when relative.
func (cfg *Config) ModsPath() string {
	return filesystem.ResolveIn(cfg.DataDir(), cfg.ModsDir)
}

// LockPath returns the lock file path.
func (cfg *Config) LockPath() string {
	if cfg.FileLock != "" {
		return filesystem.GetCanonicalPath(cfg.FileLock)
	}
	return filepath.Join(cfg.DataDir(), LockFileName)
}

// SettingsDir returns the directory of the settings documents.
func (cfg *Config) SettingsDir() string {
	return filepath.Join(cfg.DataDir(), SettingsDirName)
}

// PendingDir returns the directory of the pending connection record.
func (cfg *Config) PendingDir() string {
	return filepath.Join(cfg.DataDir(), PendingDirName)
}

// LoadConfig reads the config file at fileLocation into vip. An empty location reads nothing.
func LoadConfig(fileLocation string, vip *viper.Viper) error {
	if fileLocation == "" {
		return nil
	}
	vip.SetConfigFile(filesystem.GetCanonicalPath(fileLocation))
	if err := vip.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config file %s: %w", fileLocation, fs.ErrNotExist)
		}
		return fmt.Errorf("failed to read config file %s: %w", fileLocation, err)
	}
	return nil
}

// Load reads the file at path over cfg. Keys missing from the file keep the values of cfg.
func Load(cfg *Config, path string) error {
	v := viper.New()
	if err := LoadConfig(path, v); err != nil {
		return err
	}

	hook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.TextUnmarshallerHookFunc(),
	)
	opts := []viper.DecoderConfigOption{
		viper.DecodeHook(hook),
		WithZeroFields(),
		WithIgnoreUntagged(),
		WithErrorUnused(),
	}
	if err := v.Unmarshal(cfg, opts...); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

func WithZeroFields() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.ZeroFields = true
	}
}

func WithIgnoreUntagged() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.IgnoreUntaggedFields = true
	}
}

func WithErrorUnused() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.ErrorUnused = true
	}
}
