package wire

import "testing"

func TestEntityMetadataRoundTrip(t *testing.T) {
	var m EntityMetadata
	m.Entries[0] = &MetadataEntry{Index: 0, Type: MetaByte, Raw: []byte{0x20}}
	m.Entries[6] = &MetadataEntry{Index: 6, Type: MetaFloat, Raw: []byte{0x3f, 0x80, 0x00, 0x00}}

	b := &Buffer{}
	if err := m.Encode(b); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeEntityMetadata(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Entries[0] == nil || got.Entries[0].Raw[0] != 0x20 {
		t.Fatalf("index 0 mismatch: %+v", got.Entries[0])
	}
	if got.Entries[6] == nil || len(got.Entries[6].Raw) != 4 {
		t.Fatalf("index 6 mismatch: %+v", got.Entries[6])
	}
}

func TestEntityMetadataLeftoverPreserved(t *testing.T) {
	// Index 9 is >= 7: decoding must stop immediately and preserve this
	// byte plus everything after it verbatim, without attempting to parse
	// it as a typed entry.
	b := &Buffer{}
	b.AddByte(9) // index 9
	VarInt(MetaBoolean).Encode(b)
	b.AddByte(0x01)
	b.AddByte(MetadataEnd)

	m, err := DecodeEntityMetadata(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []byte{9, byte(MetaBoolean), 0x01, MetadataEnd}
	if !bytesEqual(m.Leftover, want) {
		t.Fatalf("leftover: got %x want %x", m.Leftover, want)
	}
	out := &Buffer{}
	if err := m.Encode(out); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytesEqual(out.Bytes(), want) {
		t.Fatalf("round trip mismatch: %x", out.Bytes())
	}
}

func TestEntityMetadataTerminatorIsLeftover(t *testing.T) {
	// A bare terminator (no entries at all) is itself index 0xFF >= 7, so
	// it is captured as a one-byte Leftover rather than specially cased.
	b := &Buffer{}
	b.AddByte(MetadataEnd)

	m, err := DecodeEntityMetadata(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytesEqual(m.Leftover, []byte{MetadataEnd}) {
		t.Fatalf("got %x", m.Leftover)
	}
	out := &Buffer{}
	if err := m.Encode(out); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytesEqual(out.Bytes(), []byte{MetadataEnd}) {
		t.Fatalf("got %x", out.Bytes())
	}
}
