package hostbind

import (
	"context"
	"errors"

	"github.com/rat/modsync/common/types"
	"github.com/rat/modsync/host"
)

// ErrRestartUnsupported is returned by a binding created without a restarter.
var ErrRestartUnsupported = errors.New("restart is not supported")

// Binding combines the transport, inventory, console and restarter into a host.Host.
type Binding struct {
	*Transport
	*Console
	inventory *ManifestInventory
	restarter *Restarter
}

var _ host.Host = (*Binding)(nil)

func NewBinding(transport *Transport, console *Console, inventory *ManifestInventory, restarter *Restarter) *Binding {
	return &Binding{
		Transport: transport,
		Console:   console,
		inventory: inventory,
		restarter: restarter,
	}
}

func (b *Binding) ListLocalInventory() (types.Inventory, error) {
	return b.inventory.ListLocalInventory()
}

func (b *Binding) RequestRestart() error {
	if b.restarter == nil {
		return ErrRestartUnsupported
	}
	return b.restarter.RequestRestart()
}

// ReconnectTo accepts the same address forms as ParseAddress.
func (b *Binding) ReconnectTo(ctx context.Context, address string) error {
	addr, err := ParseAddress(address)
	if err != nil {
		return err
	}
	return b.Connect(ctx, addr)
}
