package cmd

import (
	"github.com/spf13/pflag"

	"github.com/rat/modsync/config"
)

// AddFlags adds the configuration flags to flagSet. Every flag writes directly into cfg.
// It returns the path of the config file flag.
func AddFlags(flagSet *pflag.FlagSet, cfg *config.Config) (configPath *string) {
	configPath = flagSet.StringP("config", "c", "", "load configuration from file (toml, yaml or json)")

	/** ======================== BaseConfig Flags ========================== **/
	flagSet.StringVarP(&cfg.DataDirParent, "data-folder", "d",
		cfg.DataDirParent, "directory for settings, pending connection and lock file")
	flagSet.StringVar(&cfg.ModsDir, "mods-dir",
		cfg.ModsDir, "mods directory, relative paths are resolved against the data folder")
	flagSet.StringVar(&cfg.FileLock, "filelock",
		cfg.FileLock, "lock file guarding the data folder")
	flagSet.StringVar(&cfg.LOGGING.Encoder, "log-encoder",
		cfg.LOGGING.Encoder, "log as JSON instead of plain text")
	flagSet.StringVar(&cfg.LOGGING.AppLoggerLevel, "log-level",
		cfg.LOGGING.AppLoggerLevel, "level of the application logger")

	/** ======================== Metrics Flags ========================== **/
	flagSet.BoolVar(&cfg.Metrics.Enabled, "metrics",
		cfg.Metrics.Enabled, "serve prometheus metrics")
	flagSet.StringVar(&cfg.Metrics.Listen, "metrics-listen",
		cfg.Metrics.Listen, "metrics server address")
	flagSet.StringVar(&cfg.Metrics.PushURL, "metrics-push",
		cfg.Metrics.PushURL, "push metrics to url")
	flagSet.DurationVar(&cfg.Metrics.PushPeriod, "metrics-push-period",
		cfg.Metrics.PushPeriod, "push period")

	/** ======================== Handshake Flags ========================== **/
	flagSet.DurationVar(&cfg.Handshake.Timeout, "handshake-timeout",
		cfg.Handshake.Timeout, "how long to wait for the host's handshake after the ping")
	flagSet.BoolVar(&cfg.Handshake.RestartWhenCompatible, "restart-when-compatible",
		cfg.Handshake.RestartWhenCompatible, "restart even if nothing had to be downloaded")
	flagSet.DurationVar(&cfg.Handshake.RejoinDelay, "rejoin-delay",
		cfg.Handshake.RejoinDelay, "delay before reconnecting to the pending host on resume")

	/** ======================== Transfer Flags ========================== **/
	flagSet.IntVar(&cfg.Transfer.Workers, "workers",
		cfg.Transfer.Workers, "number of items downloaded at the same time")
	flagSet.Int64Var(&cfg.Transfer.MaxTransferSize, "max-transfer-size",
		cfg.Transfer.MaxTransferSize, "largest item or archive in bytes")
	flagSet.IntVar(&cfg.Transfer.Retries, "retries",
		cfg.Transfer.Retries, "retries of a failed direct download")
	flagSet.DurationVar(&cfg.Transfer.ConnectTimeout, "connect-timeout",
		cfg.Transfer.ConnectTimeout, "timeout for establishing a download connection")
	flagSet.DurationVar(&cfg.Transfer.ReadTimeout, "read-timeout",
		cfg.Transfer.ReadTimeout, "timeout without progress while downloading")

	/** ======================== Chunk Flags ========================== **/
	flagSet.Float64Var(&cfg.Chunks.RateLimit, "chunk-rate-limit",
		cfg.Chunks.RateLimit, "chunks per second streamed to one client, zero disables the limit")

	/** ======================== Host Flags ========================== **/
	flagSet.StringVar(&cfg.Host.Listen, "listen",
		cfg.Host.Listen, "address the host accepts clients on")
	flagSet.BoolVar(&cfg.Host.Watch, "watch",
		cfg.Host.Watch, "reload the inventory when the mods directory changes")

	/** ======================== File Server Flags ========================== **/
	flagSet.BoolVar(&cfg.FileServer.Enabled, "fileserver",
		cfg.FileServer.Enabled, "publish the mods directory over http")
	flagSet.StringVar(&cfg.FileServer.Listen, "fileserver-listen",
		cfg.FileServer.Listen, "file server address")
	flagSet.StringVar(&cfg.FileServer.PublicURL, "fileserver-public-url",
		cfg.FileServer.PublicURL, "url advertised to clients instead of the file server address")

	return configPath
}
