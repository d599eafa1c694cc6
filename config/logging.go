package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/rat/modsync/log"
)

// LogEncoder defines a log encoder kind.
type LogEncoder = string

const (
	// ConsoleLogEncoder represents logging with plain text.
	ConsoleLogEncoder LogEncoder = log.ConsoleEncoder
	// JSONLogEncoder represents logging with JSON.
	JSONLogEncoder LogEncoder = log.JSONEncoder
)

// LoggerConfig holds the logging level for each component.
type LoggerConfig struct {
	Encoder               LogEncoder `mapstructure:"log-encoder"`
	AppLoggerLevel        string     `mapstructure:"app"`
	HandshakeLoggerLevel  string     `mapstructure:"handshake"`
	ResponderLoggerLevel  string     `mapstructure:"responder"`
	TransferLoggerLevel   string     `mapstructure:"transfer"`
	ChunksLoggerLevel     string     `mapstructure:"chunks"`
	TransportLoggerLevel  string     `mapstructure:"transport"`
	InventoryLoggerLevel  string     `mapstructure:"inventory"`
	SettingsLoggerLevel   string     `mapstructure:"settings"`
	PendingLoggerLevel    string     `mapstructure:"pending"`
	FileServerLoggerLevel string     `mapstructure:"fileserver"`
	MetricsLoggerLevel    string     `mapstructure:"metrics"`
}

func DefaultLoggingConfig() LoggerConfig {
	lvl := log.DefaultLevel().String()
	return LoggerConfig{
		Encoder:               ConsoleLogEncoder,
		AppLoggerLevel:        lvl,
		HandshakeLoggerLevel:  lvl,
		ResponderLoggerLevel:  lvl,
		TransferLoggerLevel:   lvl,
		ChunksLoggerLevel:     lvl,
		TransportLoggerLevel:  lvl,
		InventoryLoggerLevel:  lvl,
		SettingsLoggerLevel:   lvl,
		PendingLoggerLevel:    lvl,
		FileServerLoggerLevel: lvl,
		MetricsLoggerLevel:    lvl,
	}
}

// Level decodes the level configured for the named component. Components without an entry
// get the default level.
func (c LoggerConfig) Level(name string) (zap.AtomicLevel, error) {
	loggers := map[string]string{}
	if err := mapstructure.Decode(c, &loggers); err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("error decoding mapstructure: %w", err)
	}
	lvl, err := log.ParseLevel(loggers[name])
	if err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("cannot parse logging for %v: %w", name, err)
	}
	return lvl, nil
}
