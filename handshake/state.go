package handshake

import (
	"errors"

	"go.uber.org/zap/zapcore"

	"github.com/rat/modsync/inventory"
)

// ErrAttemptInProgress is returned when a connection attempt is started while another one runs.
var ErrAttemptInProgress = errors.New("connection attempt in progress")

// State of a connection attempt.
type State int32

const (
	StateIdle State = iota
	StatePingSent
	StateAwaitingHandshake
	StateComparing
	StateAwaitingUserDecision
	StateTransferring
	StateComplete
	StateIncompatible
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePingSent:
		return "ping_sent"
	case StateAwaitingHandshake:
		return "awaiting_handshake"
	case StateComparing:
		return "comparing"
	case StateAwaitingUserDecision:
		return "awaiting_user_decision"
	case StateTransferring:
		return "transferring"
	case StateComplete:
		return "complete"
	case StateIncompatible:
		return "incompatible"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Terminal is true for states an attempt never leaves.
func (s State) Terminal() bool {
	return s == StateComplete || s == StateIncompatible || s == StateFailed
}

// Reason explains a failed attempt.
type Reason int

const (
	ReasonNone Reason = iota
	// ReasonUserDeclined is set when the user declined or dismissed the download prompt.
	ReasonUserDeclined
	// ReasonTransferError is set when any transfer failed.
	ReasonTransferError
	// ReasonSendFailed is set when the ping could not be sent.
	ReasonSendFailed
	// ReasonInventory is set when the local inventory could not be listed.
	ReasonInventory
	// ReasonCancelled is set when the attempt was cancelled by its owner.
	ReasonCancelled
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonUserDeclined:
		return "user_declined"
	case ReasonTransferError:
		return "transfer_error"
	case ReasonSendFailed:
		return "send_failed"
	case ReasonInventory:
		return "inventory"
	case ReasonCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Outcome is the terminal result of an attempt.
type Outcome struct {
	State  State
	Reason Reason
	Err    error
	// Comparison is empty unless the host's handshake was received.
	Comparison inventory.Comparison
	// Restarting is true if a restart was requested from the host runtime.
	Restarting bool
}

// MarshalLogObject implements logging encoder for Outcome.
func (o Outcome) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("state", o.State.String())
	if o.State == StateFailed {
		encoder.AddString("reason", o.Reason.String())
	}
	if o.Err != nil {
		encoder.AddString("error", o.Err.Error())
	}
	encoder.AddBool("restarting", o.Restarting)
	return encoder.AddObject("comparison", o.Comparison)
}

func failed(reason Reason, err error) Outcome {
	return Outcome{State: StateFailed, Reason: reason, Err: err}
}
