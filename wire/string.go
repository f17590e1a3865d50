package wire

import "fmt"

// MaxStringLen is the protocol's maximum string length in UTF-16 code
// units. DecodeString rejects an encoded byte length above four times this
// value; the decoded string's length in code units is not checked.
const MaxStringLen = 32767

// String is a VarInt-length-prefixed UTF-8 string.
type String string

func (v String) Encode(b *Buffer) error {
	data := []byte(v)
	if err := VarInt(len(data)).Encode(b); err != nil {
		return err
	}
	b.AddBytes(data)
	return nil
}

func DecodeString(b *Buffer) (String, error) {
	return decodeString(b, MaxStringLen)
}

func decodeString(b *Buffer, maxLen int) (String, error) {
	n, err := DecodeVarInt(b)
	if err != nil {
		return "", fmt.Errorf("wire: decode string length: %w", err)
	}
	if int(n) < 0 || int(n) > maxLen*4 {
		return "", fmt.Errorf("wire: decode string: length %d exceeds cap", n)
	}
	data, err := b.NextBytes(int(n))
	if err != nil {
		return "", fmt.Errorf("wire: decode string: %w", err)
	}
	return String(data), nil
}

// ReadOptional decodes a leading presence Bool, then decodes T only if
// present.
func ReadOptional[T any](b *Buffer, decode func(*Buffer) (T, error)) (*T, error) {
	present, err := DecodeBool(b)
	if err != nil {
		return nil, fmt.Errorf("wire: decode optional presence: %w", err)
	}
	if !present {
		return nil, nil
	}
	v, err := decode(b)
	if err != nil {
		return nil, fmt.Errorf("wire: decode optional value: %w", err)
	}
	return &v, nil
}

// WriteOptional encodes a presence Bool followed by the value when v is
// non-nil.
func WriteOptional[T any](b *Buffer, v *T, encode func(*Buffer, T) error) error {
	if v == nil {
		return Bool(false).Encode(b)
	}
	if err := Bool(true).Encode(b); err != nil {
		return err
	}
	return encode(b, *v)
}
