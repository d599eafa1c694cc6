package handshake

import (
	"context"

	"github.com/rat/modsync/common/types"
	"github.com/rat/modsync/host"
	"github.com/rat/modsync/inventory"
	"github.com/rat/modsync/transfer"
)

//go:generate mockgen -typed -package=handshake -destination=./mocks.go -source=./interface.go

// Transferer fetches what the host requires.
type Transferer interface {
	TransferItems(
		ctx context.Context,
		missing []types.ModDescriptor,
		mismatched []inventory.Mismatch,
	) (transfer.Report, error)
	TransferArchive(ctx context.Context, url, expected string) (transfer.ArchiveReport, error)
}

// PendingStore keeps the address to reconnect to after a restart.
type PendingStore interface {
	Save(address string) error
	Take() (string, bool, error)
}

// ItemStreamer sends a local file to a peer as chunks.
type ItemStreamer interface {
	Stream(ctx context.Context, peer host.Peer, itemID, path string) (int, error)
}
