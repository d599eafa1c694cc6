package transfer

import (
	"context"

	"github.com/rat/modsync/common/types"
	"github.com/rat/modsync/protocol"
)

//go:generate mockgen -typed -package=transfer -destination=./mocks.go -source=./interface.go

// Messenger sends requests to the host.
type Messenger interface {
	SendToRemote(ctx context.Context, ch protocol.Channel, data []byte) error
}

// ItemAssembler materializes items streamed by the host.
type ItemAssembler interface {
	Expect(desc types.ModDescriptor, target string) (<-chan error, error)
	Cancel(itemID string)
}
