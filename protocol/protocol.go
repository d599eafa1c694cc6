// Package protocol defines the channels and payloads exchanged between a client and a host.
package protocol

import (
	"errors"
	"fmt"

	"github.com/rat/modsync/codec"
	"github.com/rat/modsync/common/types"
)

const (
	// ModID identifies this synchronizer on both sides of the connection.
	ModID = "modsync"
	// Version is the protocol version announced in pings and handshakes.
	Version = "1.0.0"
)

// Channel is a named logical message channel.
type Channel string

const (
	ChannelPing              Channel = "modsync:ping"
	ChannelPingResponse      Channel = "modsync:ping_response"
	ChannelHandshake         Channel = "modsync:handshake"
	ChannelHandshakeComplete Channel = "modsync:handshake_complete"
	ChannelDownloadRequest   Channel = "modsync:download_request"
	ChannelDownloadChunk     Channel = "modsync:download_chunk"
)

// Channels lists every channel in use.
var Channels = []Channel{
	ChannelPing,
	ChannelPingResponse,
	ChannelHandshake,
	ChannelHandshakeComplete,
	ChannelDownloadRequest,
	ChannelDownloadChunk,
}

func (c Channel) String() string {
	return string(c)
}

// ErrMalformed is returned for payloads that cannot be decoded or violate message invariants.
var ErrMalformed = errors.New("malformed message")

// Ping is sent by the client to the host.
type Ping struct {
	ModID   string `cbor:"1,keyasint"`
	Version string `cbor:"2,keyasint"`
}

// PingResponse is the host's compatibility summary.
type PingResponse struct {
	Compatible         bool   `cbor:"1,keyasint"`
	ModID              string `cbor:"2,keyasint"`
	Version            string `cbor:"3,keyasint"`
	ArchiveModeEnabled bool   `cbor:"4,keyasint"`
}

// Handshake announces the inventory required by the host and the transfer mode.
type Handshake struct {
	RequiredMods    []types.ModDescriptor `cbor:"1,keyasint"`
	ArchiveMode     bool                  `cbor:"2,keyasint"`
	ArchiveURL      string                `cbor:"3,keyasint,omitempty"`
	ArchiveHash     string                `cbor:"4,keyasint,omitempty"`
	ProtocolVersion string                `cbor:"5,keyasint"`
}

// Inventory returns required mods as an inventory.
func (h *Handshake) Inventory() types.Inventory {
	return types.Inventory(h.RequiredMods)
}

// HandshakeComplete is sent by the client when the negotiation is over.
type HandshakeComplete struct {
	Success bool `cbor:"1,keyasint"`
}

// DownloadRequest asks the host to stream one item.
type DownloadRequest struct {
	ItemID   string `cbor:"1,keyasint"`
	FileName string `cbor:"2,keyasint"`
}

// DownloadChunk is one fragment of a streamed item.
//
// Sequence numbers of an item are contiguous starting at 0. The last chunk of an item
// has Final set, an empty payload and a sequence equal to the number of data chunks.
type DownloadChunk struct {
	ItemID   string `cbor:"1,keyasint"`
	Sequence uint32 `cbor:"2,keyasint"`
	Payload  []byte `cbor:"3,keyasint,omitempty"`
	Final    bool   `cbor:"4,keyasint,omitempty"`
}

type validator interface {
	Validate() error
}

func (p *Ping) Validate() error {
	if p.ModID == "" {
		return errors.New("empty mod id")
	}
	return nil
}

func (h *Handshake) Validate() error {
	for i, mod := range h.RequiredMods {
		if mod.ID == "" {
			return fmt.Errorf("required mod %d: empty id", i)
		}
	}
	if h.ArchiveMode && h.ArchiveURL == "" {
		return errors.New("archive mode without archive url")
	}
	return nil
}

func (r *DownloadRequest) Validate() error {
	if r.ItemID == "" {
		return errors.New("empty item id")
	}
	if r.FileName == "" {
		return errors.New("empty file name")
	}
	return nil
}

func (c *DownloadChunk) Validate() error {
	if c.ItemID == "" {
		return errors.New("empty item id")
	}
	if c.Final && len(c.Payload) != 0 {
		return errors.New("final chunk with payload")
	}
	return nil
}

// Decode decodes payload into msg. Any failure wraps ErrMalformed.
func Decode(data []byte, msg codec.Decodable) error {
	if err := codec.Decode(data, msg); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if v, ok := msg.(validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformed, err)
		}
	}
	return nil
}

// Encode encodes msg for sending on a channel.
func Encode(msg codec.Encodable) ([]byte, error) {
	return codec.Encode(msg)
}
