package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// UUID is the protocol's 128-bit identifier, carried on the wire as two
// big-endian Int64 halves.
type UUID uuid.UUID

func (u UUID) Encode(b *Buffer) error {
	b.AddBytes(u[:])
	return nil
}

func DecodeUUID(b *Buffer) (UUID, error) {
	data, err := b.NextBytes(16)
	if err != nil {
		return UUID{}, fmt.Errorf("wire: decode uuid: %w", err)
	}
	var u UUID
	copy(u[:], data)
	return u, nil
}

// Hi returns the most-significant 64 bits, as used by some packets that
// split a UUID into two explicit Longs instead of 16 raw bytes.
func (u UUID) Hi() int64 { return int64(binary.BigEndian.Uint64(u[0:8])) }

// Lo returns the least-significant 64 bits.
func (u UUID) Lo() int64 { return int64(binary.BigEndian.Uint64(u[8:16])) }

// String renders the UUID in canonical dashed form.
func (u UUID) String() string {
	return uuid.UUID(u).String()
}

// New generates a random (v4) UUID.
func New() UUID {
	return UUID(uuid.New())
}
