package wire

import "fmt"

// MetadataType is the VarInt discriminator preceding each entity metadata
// entry's value. The table is fixed by the protocol version; indices 14
// and 15 are reserved and never appear on the wire.
type MetadataType int

const (
	MetaByte MetadataType = iota
	MetaVarInt
	MetaFloat
	MetaString
	MetaChat
	MetaOptChat
	MetaSlot
	MetaBoolean
	MetaRotation
	MetaPosition
	MetaOptPosition
	MetaDirection
	MetaOptString
	MetaBlockID
	metaReserved14
	metaReserved15
	MetaVillagerData
	MetaOptVarInt
	MetaPose
)

// MetadataTypeNames names every slot of the fixed type table; reserved
// slots are the empty string.
var MetadataTypeNames = [19]string{
	MetaByte:         "Byte",
	MetaVarInt:       "VarInt",
	MetaFloat:        "Float",
	MetaString:       "String",
	MetaChat:         "Chat",
	MetaOptChat:      "OptChat",
	MetaSlot:         "Slot",
	MetaBoolean:      "Boolean",
	MetaRotation:     "Rotation",
	MetaPosition:     "Position",
	MetaOptPosition:  "OptPosition",
	MetaDirection:    "Direction",
	MetaOptString:    "OptString",
	MetaBlockID:      "BlockID",
	metaReserved14:   "",
	metaReserved15:   "",
	MetaVillagerData: "VillagerData",
	MetaOptVarInt:    "OptVarInt",
	MetaPose:         "Pose",
}

// MetadataEnd is the index byte that terminates an entity metadata list.
const MetadataEnd = 0xFF

// MetadataEntry is one (index, type, raw-value) triple from an entity
// metadata list. The value is kept as its exact wire bytes rather than a
// decoded Go value: handlers that care about a specific entry's semantics
// (for example the glowing-effect bit packed into index 0's Byte) parse
// those bytes themselves, and every other entry round-trips unmodified.
type MetadataEntry struct {
	Index uint8
	Type  MetadataType
	Raw   []byte
}

// EntityMetadata is the decoded form of an Entity Metadata packet's
// trailing value list. This proxy understands only indices 0-6; the first
// byte at index 7 or above (including the 0xFF terminator, which is itself
// >= 7) ends decoding immediately, and that byte plus every remaining byte
// in the buffer is preserved verbatim in Leftover so the packet still
// round-trips byte-for-byte without this module ever having to know the
// higher-indexed entries' encodings.
type EntityMetadata struct {
	Entries  [7]*MetadataEntry
	Leftover []byte
}

func metadataValueLen(b *Buffer, t MetadataType) (int, error) {
	start := b.Length()
	switch t {
	case MetaByte, MetaBoolean:
		if _, err := b.NextByte(); err != nil {
			return 0, err
		}
	case MetaVarInt, MetaDirection, MetaPose:
		if _, err := DecodeVarInt(b); err != nil {
			return 0, err
		}
	case MetaOptVarInt, MetaBlockID:
		present, err := DecodeBool(b)
		if err != nil {
			return 0, err
		}
		if present {
			if _, err := DecodeVarInt(b); err != nil {
				return 0, err
			}
		}
	case MetaFloat:
		if _, err := b.NextBytes(4); err != nil {
			return 0, err
		}
	case MetaString, MetaChat:
		if _, err := DecodeString(b); err != nil {
			return 0, err
		}
	case MetaOptChat, MetaOptString:
		present, err := DecodeBool(b)
		if err != nil {
			return 0, err
		}
		if present {
			if _, err := DecodeString(b); err != nil {
				return 0, err
			}
		}
	case MetaSlot:
		if _, err := DecodeSlot(b, RestOfBufferNBTLen); err != nil {
			return 0, err
		}
	case MetaRotation:
		if _, err := b.NextBytes(12); err != nil {
			return 0, err
		}
	case MetaPosition:
		if _, err := b.NextBytes(8); err != nil {
			return 0, err
		}
	case MetaOptPosition:
		present, err := DecodeBool(b)
		if err != nil {
			return 0, err
		}
		if present {
			if _, err := b.NextBytes(8); err != nil {
				return 0, err
			}
		}
	case MetaVillagerData:
		for i := 0; i < 3; i++ {
			if _, err := DecodeVarInt(b); err != nil {
				return 0, err
			}
		}
	default:
		return 0, fmt.Errorf("wire: entity metadata: unsupported type %d", t)
	}
	return start - b.Length(), nil
}

// DecodeEntityMetadata consumes an entity metadata list from the front of
// b. Indices 0-6 are decoded as ordinary typed entries; the first index
// byte of 7 or higher (the 0xFF terminator included) stops decoding on the
// spot, and that byte together with every byte still left in b is copied
// into Leftover untouched.
func DecodeEntityMetadata(b *Buffer) (EntityMetadata, error) {
	var m EntityMetadata
	for {
		index, err := b.NextByte()
		if err != nil {
			return EntityMetadata{}, fmt.Errorf("wire: decode entity metadata index: %w", err)
		}
		if index >= 7 {
			rest, err := b.NextBytes(b.Length())
			if err != nil {
				return EntityMetadata{}, fmt.Errorf("wire: decode entity metadata leftover: %w", err)
			}
			m.Leftover = append([]byte{index}, rest...)
			return m, nil
		}
		typ, err := DecodeVarInt(b)
		if err != nil {
			return EntityMetadata{}, fmt.Errorf("wire: decode entity metadata type: %w", err)
		}
		before := b.Copy()
		n, err := metadataValueLen(b, MetadataType(typ))
		if err != nil {
			return EntityMetadata{}, fmt.Errorf("wire: decode entity metadata value (index %d, type %d): %w", index, typ, err)
		}
		raw, _ := before.NextBytes(n)
		m.Entries[index] = &MetadataEntry{Index: index, Type: MetadataType(typ), Raw: raw}
	}
}

// Encode serializes the metadata list back to the wire: Entries 0-6 in
// ascending order, then Leftover. Leftover already carries its own
// terminator byte when it was captured by DecodeEntityMetadata, so the
// 0xFF terminator is only written here when this value was built without
// ever decoding a leftover tail (a handler synthesizing metadata from
// scratch).
func (m EntityMetadata) Encode(b *Buffer) error {
	for _, e := range m.Entries {
		if e == nil {
			continue
		}
		b.AddByte(e.Index)
		if err := VarInt(e.Type).Encode(b); err != nil {
			return err
		}
		b.AddBytes(e.Raw)
	}
	if len(m.Leftover) > 0 {
		b.AddBytes(m.Leftover)
	} else {
		b.AddByte(MetadataEnd)
	}
	return nil
}
