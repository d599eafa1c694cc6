// Package codec encodes every payload exchanged between client and host.
package codec

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// Encodable is an interface that must be implemented by a struct to be encoded.
type Encodable interface{}

// Decodable is an interface that must be implemented by a struct to be decoded.
type Decodable interface{}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	// canonical mode keeps encodings deterministic, peers may hash them
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("codec: create cbor enc mode: %v", err))
	}
	encMode = em
	dm, err := cbor.DecOptions{
		MaxNestedLevels:  16,
		MaxArrayElements: 1 << 16,
		MaxMapPairs:      1 << 16,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("codec: create cbor dec mode: %v", err))
	}
	decMode = dm
}

var encoderPool = sync.Pool{
	New: func() any {
		b := new(bytes.Buffer)
		b.Grow(64)
		return b
	},
}

func getEncoderBuffer() *bytes.Buffer {
	return encoderPool.Get().(*bytes.Buffer)
}

func putEncoderBuffer(b *bytes.Buffer) {
	b.Reset()
	encoderPool.Put(b)
}

// EncodeTo encodes value to a writer stream.
func EncodeTo(w io.Writer, value Encodable) (int, error) {
	b := getEncoderBuffer()
	defer putEncoderBuffer(b)
	if err := encMode.NewEncoder(b).Encode(value); err != nil {
		return 0, fmt.Errorf("marshal cbor: %w", err)
	}
	return w.Write(b.Bytes())
}

// DecodeFrom decodes a single value using data from a reader stream.
func DecodeFrom(r io.Reader, value Decodable) error {
	if err := decMode.NewDecoder(r).Decode(value); err != nil {
		return fmt.Errorf("unmarshal cbor: %w", err)
	}
	return nil
}

// Encode value to a byte buffer.
func Encode(value Encodable) ([]byte, error) {
	buf, err := encMode.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal cbor: %w", err)
	}
	return buf, nil
}

// MustEncode calls Encode and panics on error.
func MustEncode(value Encodable) []byte {
	buf, err := Encode(value)
	if err != nil {
		panic(err)
	}
	return buf
}

// Decode value from a byte buffer.
func Decode(buf []byte, value Decodable) error {
	if err := decMode.Unmarshal(buf, value); err != nil {
		return fmt.Errorf("decode from buffer: %w", err)
	}
	return nil
}
