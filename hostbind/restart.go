package hostbind

import (
	"fmt"
	"os"
	"os/exec"

	"go.uber.org/zap"
)

// Restarter starts a new instance of the running binary and then shuts the current one down.
type Restarter struct {
	logger   *zap.Logger
	args     []string
	shutdown func()
	start    func(*exec.Cmd) error
}

// NewRestarter restarts with args. shutdown is called once the new process started.
func NewRestarter(logger *zap.Logger, args []string, shutdown func()) *Restarter {
	return &Restarter{
		logger:   logger,
		args:     args,
		shutdown: shutdown,
		start:    (*exec.Cmd).Start,
	}
}

func (r *Restarter) RequestRestart() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}
	cmd := exec.Command(exe, r.args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := r.start(cmd); err != nil {
		return fmt.Errorf("start %s: %w", exe, err)
	}
	r.logger.Info("restarted", zap.String("executable", exe), zap.Strings("args", r.args))
	r.shutdown()
	return nil
}
