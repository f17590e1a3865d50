package wire

import (
	"errors"
	"fmt"
)

// ErrVarIntTooBig is returned when a VarInt/VarLong continuation run exceeds
// the type's maximum encoded length without terminating.
var ErrVarIntTooBig = errors.New("wire: varint too big")

// VarInt is a variable-length encoded signed 32-bit integer: 7 bits of data
// per byte, MSB set on every byte but the last, little-endian 7-bit groups.
type VarInt int32

// MaxVarIntLen is the largest number of bytes a VarInt can occupy.
const MaxVarIntLen = 5

// MaxVarLongLen is the largest number of bytes a VarLong can occupy.
const MaxVarLongLen = 10

// Encode appends the VarInt's wire form to b.
func (v VarInt) Encode(b *Buffer) error {
	value := uint32(v)
	for {
		if value&^0x7F == 0 {
			b.AddByte(byte(value))
			return nil
		}
		b.AddByte(byte(value&0x7F) | 0x80)
		value >>= 7
	}
}

// DecodeVarInt consumes a VarInt from the front of b.
func DecodeVarInt(b *Buffer) (VarInt, error) {
	var value uint32
	var position uint
	for {
		c, err := b.NextByte()
		if err != nil {
			return 0, fmt.Errorf("wire: decode varint: %w", err)
		}
		value |= uint32(c&0x7F) << position
		if c&0x80 == 0 {
			return VarInt(value), nil
		}
		position += 7
		if position >= 35 {
			return 0, fmt.Errorf("wire: decode varint: %w", ErrVarIntTooBig)
		}
	}
}

// Len reports how many bytes v would occupy on the wire.
func (v VarInt) Len() int {
	value := uint32(v)
	n := 1
	for value&^0x7F != 0 {
		n++
		value >>= 7
	}
	return n
}

// VarLong is the 64-bit counterpart of VarInt.
type VarLong int64

// Encode appends the VarLong's wire form to b.
func (v VarLong) Encode(b *Buffer) error {
	value := uint64(v)
	for {
		if value&^0x7F == 0 {
			b.AddByte(byte(value))
			return nil
		}
		b.AddByte(byte(value&0x7F) | 0x80)
		value >>= 7
	}
}

// DecodeVarLong consumes a VarLong from the front of b.
func DecodeVarLong(b *Buffer) (VarLong, error) {
	var value uint64
	var position uint
	for {
		c, err := b.NextByte()
		if err != nil {
			return 0, fmt.Errorf("wire: decode varlong: %w", err)
		}
		value |= uint64(c&0x7F) << position
		if c&0x80 == 0 {
			return VarLong(value), nil
		}
		position += 7
		if position >= 70 {
			return 0, fmt.Errorf("wire: decode varlong: %w", ErrVarIntTooBig)
		}
	}
}

// Len reports how many bytes v would occupy on the wire.
func (v VarLong) Len() int {
	value := uint64(v)
	n := 1
	for value&^0x7F != 0 {
		n++
		value >>= 7
	}
	return n
}
