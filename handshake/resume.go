package handshake

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rat/modsync/host"
)

// Resume reconnects to the address saved before the last restart. The saved address is
// cleared even if auto rejoin is disabled. It returns the address it reconnected to.
func (c *Coordinator) Resume(ctx context.Context) (string, error) {
	if c.pending == nil {
		return "", nil
	}
	address, ok, err := c.pending.Take()
	if err != nil {
		return "", fmt.Errorf("take pending connection: %w", err)
	}
	if !ok {
		return "", nil
	}
	if !c.settings.AutoRejoin {
		c.logger.Info("pending connection discarded, auto rejoin is disabled", zap.String("address", address))
		return "", nil
	}
	c.logger.Info("rejoining after restart", zap.String("address", address), zap.Duration("delay", c.cfg.RejoinDelay))
	select {
	case <-c.clock.After(c.cfg.RejoinDelay):
	case <-ctx.Done():
		return "", ctx.Err()
	}
	c.host.NotifyUser(titleReconnect, "Reconnecting to server...", host.SeverityInfo)
	if err := c.host.ReconnectTo(ctx, address); err != nil {
		return "", fmt.Errorf("reconnect to %s: %w", address, err)
	}
	return address, nil
}
