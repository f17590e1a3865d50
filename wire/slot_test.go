package wire

import "testing"

func TestSlotEmptyRoundTrip(t *testing.T) {
	s := Slot{Present: false}
	b := &Buffer{}
	if err := s.Encode(b); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeSlot(b, RestOfBufferNBTLen)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Present {
		t.Fatalf("expected empty slot")
	}
}

func TestSlotPresentRoundTrip(t *testing.T) {
	s := Slot{Present: true, ItemID: 42, Count: 5, NBT: []byte{0x00}}
	b := &Buffer{}
	if err := s.Encode(b); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeSlot(b, RestOfBufferNBTLen)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Present || got.ItemID != 42 || got.Count != 5 {
		t.Fatalf("got %+v", got)
	}
}
