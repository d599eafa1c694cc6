package node

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/rat/modsync/cmd"
	"github.com/rat/modsync/config"
	"github.com/rat/modsync/handshake"
	"github.com/rat/modsync/inventory"
	"github.com/rat/modsync/log"
	"github.com/rat/modsync/settings"
)

const (
	cleanupTimeout = 30 * time.Second
	// resumeLockTimeout bounds the wait for the process that requested the restart to exit.
	resumeLockTimeout = 10 * time.Second
)

// GetCommand returns the modsync command with its subcommands.
func GetCommand() *cobra.Command {
	conf := config.DefaultConfig()
	var configPath *string
	c := &cobra.Command{
		Use:          "modsync",
		Short:        "keep the mods of a client in sync with a host",
		SilenceUsage: true,
	}
	configPath = cmd.AddFlags(c.PersistentFlags(), &conf)

	c.AddCommand(&cobra.Command{
		Use:   "host",
		Short: "answer clients and serve the mods directory",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return run(c, *configPath, &conf, 0, func(ctx context.Context, app *App) error {
				return app.RunHost(ctx)
			})
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "join <address>",
		Short: "synchronize mods with a host and connect to it",
		Long: "synchronize mods with a host and connect to it.\n" +
			"The address is host:port or a multiaddr like /ip4/10.0.0.1/tcp/25570.",
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return run(c, *configPath, &conf, 0, func(ctx context.Context, app *App) error {
				outcome, err := app.Join(ctx, args[0])
				printOutcome(c.OutOrStdout(), outcome)
				return err
			})
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "resume",
		Short: "reconnect to the host saved before the last restart",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return run(c, *configPath, &conf, resumeLockTimeout, func(ctx context.Context, app *App) error {
				outcome, err := app.Resume(ctx)
				if outcome.State != handshake.StateIdle {
					printOutcome(c.OutOrStdout(), outcome)
				}
				return err
			})
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "diff <mods-dir>",
		Short: "compare the mods directory with another one taken as the host",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if err := configure(c, *configPath, &conf); err != nil {
				return err
			}
			app := New(WithConfig(&conf), WithLog(rootLogger(&conf)))
			comparison, err := app.Diff(args[0])
			if err != nil {
				return err
			}
			printComparison(c.OutOrStdout(), comparison)
			return nil
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "settings",
		Short: "print the client and host settings, writing defaults for missing documents",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			if err := configure(c, *configPath, &conf); err != nil {
				return err
			}
			store, err := settings.New(afero.NewOsFs(), conf.SettingsDir(), settings.WithLogger(rootLogger(&conf)))
			if err != nil {
				return err
			}
			return printSettings(c.OutOrStdout(), store)
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version info",
		Run: func(c *cobra.Command, args []string) {
			fmt.Fprintln(c.OutOrStdout(), cmd.Version)
		},
	})
	return c
}

// configure loads the config file into conf. Flags given on the command line win over the file.
func configure(c *cobra.Command, configPath string, conf *config.Config) error {
	changed := map[string]string{}
	c.Flags().Visit(func(f *pflag.Flag) {
		changed[f.Name] = f.Value.String()
	})
	if err := config.Load(conf, configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	for name, value := range changed {
		if err := c.Flags().Set(name, value); err != nil {
			return fmt.Errorf("apply flag %s: %w", name, err)
		}
	}
	return nil
}

// rootLogger is created at debug level so that every component logger can lower its level.
func rootLogger(conf *config.Config) *zap.Logger {
	return log.NewWithLevel("modsync", zap.NewAtomicLevelAt(zap.DebugLevel), log.NewEncoder(conf.LOGGING.Encoder))
}

func restartArgs(configPath string, conf *config.Config) []string {
	args := []string{"resume", "--data-folder", conf.DataDir(), "--mods-dir", conf.ModsPath()}
	if configPath != "" {
		args = append(args, "--config", configPath)
	}
	return args
}

func run(
	c *cobra.Command,
	configPath string,
	conf *config.Config,
	lockTimeout time.Duration,
	fn func(context.Context, *App) error,
) error {
	if err := configure(c, configPath, conf); err != nil {
		return err
	}
	app := New(
		WithConfig(conf),
		WithLog(rootLogger(conf)),
		WithConsole(c.InOrStdin(), c.OutOrStdout()),
		WithRestartArgs(restartArgs(configPath, conf)),
	)

	// os.Interrupt for all systems, syscall.SIGTERM is mainly for docker.
	ctx, cancel := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if lockTimeout > 0 {
		lockCtx, lockCancel := context.WithTimeout(ctx, lockTimeout)
		err := app.LockContext(lockCtx)
		lockCancel()
		if err != nil {
			return fmt.Errorf("getting exclusive file lock: %w", err)
		}
	} else if err := app.Lock(); err != nil {
		return fmt.Errorf("getting exclusive file lock: %w", err)
	}
	defer app.Unlock()

	if err := app.Initialize(); err != nil {
		return fmt.Errorf("initializing app: %w", err)
	}

	err := fn(ctx, app)
	cancel()
	cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cleanupCancel()
	done := make(chan struct{})
	go func() {
		app.Cleanup(cleanupCtx)
		close(done)
	}()
	select {
	case <-done:
	case <-cleanupCtx.Done():
		app.log.Error("app failed to clean up in time")
	}
	return err
}

func printOutcome(w io.Writer, outcome handshake.Outcome) {
	fmt.Fprintf(w, "result: %s", outcome.State)
	if outcome.State == handshake.StateFailed {
		fmt.Fprintf(w, " (%s)", outcome.Reason)
	}
	fmt.Fprintln(w)
	if outcome.Restarting {
		fmt.Fprintln(w, "restarting to load the new mods")
	}
}

func printComparison(w io.Writer, comparison inventory.Comparison) {
	fmt.Fprintln(w, comparison.Summary())
	for _, desc := range comparison.Missing {
		fmt.Fprintf(w, "  missing   %s %s\n", desc.Name(), desc.Version)
	}
	for _, m := range comparison.Mismatched {
		fmt.Fprintf(w, "  mismatch  %s\n", m)
	}
}

func printSettings(w io.Writer, store *settings.Store) error {
	client, err := store.Client()
	if err != nil {
		return err
	}
	hostSettings, err := store.Host()
	if err != nil {
		return err
	}
	for _, doc := range []struct {
		name  string
		value any
	}{
		{settings.ClientFileName, client},
		{settings.HostFileName, hostSettings},
	} {
		data, err := json.MarshalIndent(doc.value, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "# %s\n%s\n", store.Path(doc.name), data)
	}
	return nil
}
