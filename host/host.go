// Package host defines the capabilities a host runtime provides to the synchronizer.
//
// Each host binding supplies one implementation of Host; the synchronizer never
// branches on which binding it runs under.
package host

import (
	"context"

	"github.com/rat/modsync/common/types"
	"github.com/rat/modsync/protocol"
)

//go:generate mockgen -typed -package=mocks -destination=./mocks/mocks.go -source=./host.go

// Peer is an opaque handle of a connected remote party.
type Peer string

// Handler is called for every message received on a channel.
type Handler func(ctx context.Context, from Peer, data []byte)

// Severity of a user notification.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return "unknown"
}

// Choice is the answer to a Decision.
type Choice int

const (
	// ChoiceCancel is delivered when the dialog was dismissed without an answer.
	ChoiceCancel Choice = iota
	// ChoiceAccept selects the first option.
	ChoiceAccept
	// ChoiceDecline selects the second option.
	ChoiceDecline
)

func (c Choice) String() string {
	switch c {
	case ChoiceAccept:
		return "accept"
	case ChoiceDecline:
		return "decline"
	}
	return "cancel"
}

// Decision is a question presented to the user.
type Decision struct {
	Title   string
	Message string
	// Accept and Decline are the labels of the two options.
	Accept  string
	Decline string
}

// Messenger delivers payloads on named channels.
type Messenger interface {
	// SendToRemote sends to the host the client is connected to.
	SendToRemote(ctx context.Context, ch protocol.Channel, data []byte) error
	// SendToPeer sends to one connected client.
	SendToPeer(ctx context.Context, peer Peer, ch protocol.Channel, data []byte) error
	OnMessage(ch protocol.Channel, handler Handler)
}

// UI renders notifications and questions to the user.
type UI interface {
	NotifyUser(title, message string, severity Severity)
	// RequestUserDecision returns a channel that receives exactly one Choice.
	RequestUserDecision(ctx context.Context, decision Decision) <-chan Choice
}

// Runtime exposes the host process itself.
type Runtime interface {
	ListLocalInventory() (types.Inventory, error)
	RequestRestart() error
	ReconnectTo(ctx context.Context, address string) error
}

// Host is the full capability set consumed by the synchronizer.
type Host interface {
	Messenger
	UI
	Runtime
}
