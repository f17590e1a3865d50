package wire

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Bool is encoded as a single 0x00/0x01 byte.
type Bool bool

func (v Bool) Encode(b *Buffer) error {
	if v {
		b.AddByte(0x01)
	} else {
		b.AddByte(0x00)
	}
	return nil
}

func DecodeBool(b *Buffer) (Bool, error) {
	c, err := b.NextByte()
	if err != nil {
		return false, fmt.Errorf("wire: decode bool: %w", err)
	}
	return Bool(c != 0), nil
}

// Int8 is a signed byte.
type Int8 int8

func (v Int8) Encode(b *Buffer) error {
	b.AddByte(byte(v))
	return nil
}

func DecodeInt8(b *Buffer) (Int8, error) {
	c, err := b.NextByte()
	if err != nil {
		return 0, fmt.Errorf("wire: decode int8: %w", err)
	}
	return Int8(int8(c)), nil
}

// Uint8 is an unsigned byte.
type Uint8 uint8

func (v Uint8) Encode(b *Buffer) error {
	b.AddByte(byte(v))
	return nil
}

func DecodeUint8(b *Buffer) (Uint8, error) {
	c, err := b.NextByte()
	if err != nil {
		return 0, fmt.Errorf("wire: decode uint8: %w", err)
	}
	return Uint8(c), nil
}

// Int16 is a big-endian signed 16-bit integer.
type Int16 int16

func (v Int16) Encode(b *Buffer) error {
	data := make([]byte, 2)
	binary.BigEndian.PutUint16(data, uint16(v))
	b.AddBytes(data)
	return nil
}

func DecodeInt16(b *Buffer) (Int16, error) {
	data, err := b.NextBytes(2)
	if err != nil {
		return 0, fmt.Errorf("wire: decode int16: %w", err)
	}
	return Int16(int16(binary.BigEndian.Uint16(data))), nil
}

// Uint16 is a big-endian unsigned 16-bit integer.
type Uint16 uint16

func (v Uint16) Encode(b *Buffer) error {
	data := make([]byte, 2)
	binary.BigEndian.PutUint16(data, uint16(v))
	b.AddBytes(data)
	return nil
}

func DecodeUint16(b *Buffer) (Uint16, error) {
	data, err := b.NextBytes(2)
	if err != nil {
		return 0, fmt.Errorf("wire: decode uint16: %w", err)
	}
	return Uint16(binary.BigEndian.Uint16(data)), nil
}

// Int32 is a big-endian signed 32-bit integer.
type Int32 int32

func (v Int32) Encode(b *Buffer) error {
	data := make([]byte, 4)
	binary.BigEndian.PutUint32(data, uint32(v))
	b.AddBytes(data)
	return nil
}

func DecodeInt32(b *Buffer) (Int32, error) {
	data, err := b.NextBytes(4)
	if err != nil {
		return 0, fmt.Errorf("wire: decode int32: %w", err)
	}
	return Int32(int32(binary.BigEndian.Uint32(data))), nil
}

// Int64 is a big-endian signed 64-bit integer.
type Int64 int64

func (v Int64) Encode(b *Buffer) error {
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, uint64(v))
	b.AddBytes(data)
	return nil
}

func DecodeInt64(b *Buffer) (Int64, error) {
	data, err := b.NextBytes(8)
	if err != nil {
		return 0, fmt.Errorf("wire: decode int64: %w", err)
	}
	return Int64(int64(binary.BigEndian.Uint64(data))), nil
}

// Float32 is a big-endian IEEE-754 single-precision float.
type Float32 float32

func (v Float32) Encode(b *Buffer) error {
	data := make([]byte, 4)
	binary.BigEndian.PutUint32(data, math.Float32bits(float32(v)))
	b.AddBytes(data)
	return nil
}

func DecodeFloat32(b *Buffer) (Float32, error) {
	data, err := b.NextBytes(4)
	if err != nil {
		return 0, fmt.Errorf("wire: decode float32: %w", err)
	}
	return Float32(math.Float32frombits(binary.BigEndian.Uint32(data))), nil
}

// Float64 is a big-endian IEEE-754 double-precision float.
type Float64 float64

func (v Float64) Encode(b *Buffer) error {
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, math.Float64bits(float64(v)))
	b.AddBytes(data)
	return nil
}

func DecodeFloat64(b *Buffer) (Float64, error) {
	data, err := b.NextBytes(8)
	if err != nil {
		return 0, fmt.Errorf("wire: decode float64: %w", err)
	}
	return Float64(math.Float64frombits(binary.BigEndian.Uint64(data))), nil
}
