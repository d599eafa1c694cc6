package types

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// ModDescriptor identifies one installable add-on item.
//
// Descriptors are values: they are never mutated after construction, WithTransferInfo
// returns a copy carrying the transfer metadata.
type ModDescriptor struct {
	ID          string `cbor:"1,keyasint" json:"id"`
	Version     string `cbor:"2,keyasint" json:"version"`
	DisplayName string `cbor:"3,keyasint" json:"displayName"`
	FileName    string `cbor:"4,keyasint" json:"fileName"`
	// ContentHash is empty when unknown.
	ContentHash string `cbor:"5,keyasint,omitempty" json:"contentHash,omitempty"`
	// Size is zero when unknown.
	Size int64 `cbor:"6,keyasint,omitempty" json:"size,omitempty"`
	// SourceURL is empty when the item can only be fetched from the host.
	SourceURL string `cbor:"7,keyasint,omitempty" json:"sourceURL,omitempty"`
}

// Matches is true if both descriptors have the same id and version.
func (d ModDescriptor) Matches(other ModDescriptor) bool {
	return d.ID == other.ID && d.Version == other.Version
}

// IsVersionMismatch is true if both descriptors have the same id but a different version.
func (d ModDescriptor) IsVersionMismatch(other ModDescriptor) bool {
	return d.ID == other.ID && d.Version != other.Version
}

// WithTransferInfo returns a copy of the descriptor with hash, size and source url set.
func (d ModDescriptor) WithTransferInfo(hash string, size int64, url string) ModDescriptor {
	d.ContentHash = hash
	d.Size = size
	d.SourceURL = url
	return d
}

// Name returns the display name, falling back to the id.
func (d ModDescriptor) Name() string {
	if d.DisplayName != "" {
		return d.DisplayName
	}
	return d.ID
}

func (d ModDescriptor) String() string {
	return fmt.Sprintf("%s@%s (%s)", d.ID, d.Version, d.FileName)
}

// MarshalLogObject implements logging encoder for ModDescriptor.
func (d ModDescriptor) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("id", d.ID)
	encoder.AddString("version", d.Version)
	encoder.AddString("file", d.FileName)
	if d.ContentHash != "" {
		encoder.AddString("hash", d.ContentHash)
	}
	if d.Size > 0 {
		encoder.AddInt64("size", d.Size)
	}
	if d.SourceURL != "" {
		encoder.AddString("url", d.SourceURL)
	}
	return nil
}
