package wire

import "fmt"

// Slot is the 1.15.2 inventory slot encoding: a presence flag, and when
// present a VarInt item id, a signed byte count, and an opaque NBT tail.
// The NBT tail is never parsed or rebuilt by this module; it is carried
// through as raw bytes so a slot round-trips byte-for-byte.
type Slot struct {
	Present bool
	ItemID  VarInt
	Count   Int8
	// NBT holds the tag's raw bytes, including the leading TAG_End (0x00)
	// byte when the slot carries no tag.
	NBT []byte
}

func (s Slot) Encode(b *Buffer) error {
	if err := Bool(s.Present).Encode(b); err != nil {
		return err
	}
	if !s.Present {
		return nil
	}
	if err := s.ItemID.Encode(b); err != nil {
		return err
	}
	if err := s.Count.Encode(b); err != nil {
		return err
	}
	b.AddBytes(s.NBT)
	return nil
}

// DecodeSlot consumes a Slot from the front of b. Since the NBT tail has no
// length prefix on the wire, the caller must supply the number of
// trailing bytes that belong to this slot's tag (readNBTLen), derived from
// walking the tag structure; this module treats that tail as opaque and
// copies it verbatim, so callers that only relay packets may pass
// RestOfBufferNBTLen when no tag-aware boundary is known and the slot is
// the last field in its packet.
func DecodeSlot(b *Buffer, readNBTLen func(*Buffer) (int, error)) (Slot, error) {
	present, err := DecodeBool(b)
	if err != nil {
		return Slot{}, fmt.Errorf("wire: decode slot presence: %w", err)
	}
	if !present {
		return Slot{Present: false}, nil
	}
	itemID, err := DecodeVarInt(b)
	if err != nil {
		return Slot{}, fmt.Errorf("wire: decode slot item id: %w", err)
	}
	count, err := DecodeInt8(b)
	if err != nil {
		return Slot{}, fmt.Errorf("wire: decode slot count: %w", err)
	}
	n, err := readNBTLen(b)
	if err != nil {
		return Slot{}, fmt.Errorf("wire: decode slot nbt: %w", err)
	}
	nbt, err := b.NextBytes(n)
	if err != nil {
		return Slot{}, fmt.Errorf("wire: decode slot nbt: %w", err)
	}
	return Slot{Present: true, ItemID: itemID, Count: count, NBT: nbt}, nil
}

// RestOfBufferNBTLen is a readNBTLen implementation for the common case
// where the slot is the final field in its packet, so its NBT tail is
// simply whatever remains in the buffer.
func RestOfBufferNBTLen(b *Buffer) (int, error) {
	return b.Length(), nil
}
