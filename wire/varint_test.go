package wire

import "testing"

func TestVarIntRoundTrip(t *testing.T) {
	cases := []struct {
		value VarInt
		bytes []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{255, []byte{0xff, 0x01}},
		{2097151, []byte{0xff, 0xff, 0x7f}},
		{-1, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
		{-2147483648, []byte{0x80, 0x80, 0x80, 0x80, 0x08}},
	}
	for _, c := range cases {
		b := &Buffer{}
		if err := c.value.Encode(b); err != nil {
			t.Fatalf("encode %d: %v", c.value, err)
		}
		if got := b.Bytes(); !bytesEqual(got, c.bytes) {
			t.Fatalf("encode %d: got %x want %x", c.value, got, c.bytes)
		}
		decoded, err := DecodeVarInt(b)
		if err != nil {
			t.Fatalf("decode %d: %v", c.value, err)
		}
		if decoded != c.value {
			t.Fatalf("decode: got %d want %d", decoded, c.value)
		}
		if !b.Empty() {
			t.Fatalf("decode %d: left %d unread bytes", c.value, b.Length())
		}
	}
}

func TestVarIntTooBig(t *testing.T) {
	b := &Buffer{}
	b.AddBytes([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	if _, err := DecodeVarInt(b); err == nil {
		t.Fatalf("expected overflow error")
	}
}

func TestVarIntBufferUnderrun(t *testing.T) {
	b := &Buffer{}
	b.AddBytes([]byte{0x80})
	if _, err := DecodeVarInt(b); err == nil {
		t.Fatalf("expected underrun error")
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
