package packet

import (
	"bytes"
	"testing"

	"github.com/mcproxy/core/proto"
	"github.com/mcproxy/core/wire"
)

// frameOf returns the uncompressed frame encoding of an id+payload byte
// string, the same envelope Pack applies internally, for building expected
// test output.
func frameOf(t *testing.T, raw []byte) []byte {
	t.Helper()
	buf := &wire.Buffer{}
	if err := wire.VarInt(len(raw)).Encode(buf); err != nil {
		t.Fatalf("encode length: %v", err)
	}
	buf.AddBytes(raw)
	return buf.Bytes()
}

func TestPackSimple(t *testing.T) {
	p, err := New(proto.ServerToClient, []byte{0x05, 0xAA, 0xBB})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	own, opposite, err := p.Pack(false, 0)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if len(opposite) != 0 {
		t.Fatalf("expected no opposite packets")
	}
	want := frameOf(t, []byte{0x05, 0xAA, 0xBB})
	if !bytes.Equal(own, want) {
		t.Fatalf("got %x want %x", own, want)
	}
}

func TestPackDropped(t *testing.T) {
	p, _ := New(proto.ServerToClient, []byte{0x05, 0xAA})
	p.DropPacket()
	own, _, err := p.Pack(false, 0)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if len(own) != 0 {
		t.Fatalf("expected dropped packet to emit no bytes, got %x", own)
	}
}

func TestPackSameDirectionChildOrdering(t *testing.T) {
	p, _ := New(proto.ServerToClient, []byte{0x01})
	child := NewSynthetic(proto.ServerToClient, 0x02, &wire.Buffer{})
	p.AddChildPacket(child)
	own, opposite, err := p.Pack(false, 0)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if len(opposite) != 0 {
		t.Fatalf("expected no opposite packets")
	}
	want := append(frameOf(t, []byte{0x01}), frameOf(t, []byte{0x02})...)
	if !bytes.Equal(own, want) {
		t.Fatalf("got %x want %x", own, want)
	}
}

func TestPackOppositeDirectionChildSurfaced(t *testing.T) {
	p, _ := New(proto.ClientToServer, []byte{0x0E})
	child := NewSynthetic(proto.ServerToClient, 0x0F, &wire.Buffer{})
	p.AddChildPacket(child)
	own, opposite, err := p.Pack(false, 0)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if !bytes.Equal(own, frameOf(t, []byte{0x0E})) {
		t.Fatalf("got %x", own)
	}
	if len(opposite) != 1 || opposite[0] != child {
		t.Fatalf("expected child surfaced in opposite, got %+v", opposite)
	}
}

func TestQueuePackAllStopSignal(t *testing.T) {
	q := NewQueue()
	a, _ := New(proto.ServerToClient, []byte{0x01})
	b, _ := New(proto.ServerToClient, []byte{0x02})
	q.AppendAll([]any{a, StopSignal{}, b})

	packed, rest, stop, err := q.PackAll(proto.ServerToClient, false, 0)
	if err != nil {
		t.Fatalf("pack all: %v", err)
	}
	if !stop {
		t.Fatalf("expected stop flag")
	}
	want := append(frameOf(t, []byte{0x01}), frameOf(t, []byte{0x02})...)
	if !bytes.Equal(packed, want) {
		t.Fatalf("got %x want %x", packed, want)
	}
	if len(rest) != 0 {
		t.Fatalf("expected no rest, got %+v", rest)
	}
}

func TestQueuePackAllPassesThroughOtherDirection(t *testing.T) {
	q := NewQueue()
	a, _ := New(proto.ServerToClient, []byte{0x01})
	b, _ := New(proto.ClientToServer, []byte{0x02})
	q.AppendAll([]any{a, b})

	packed, rest, _, err := q.PackAll(proto.ServerToClient, false, 0)
	if err != nil {
		t.Fatalf("pack all: %v", err)
	}
	if !bytes.Equal(packed, frameOf(t, []byte{0x01})) {
		t.Fatalf("got %x", packed)
	}
	if len(rest) != 1 || rest[0].(*Packet) != b {
		t.Fatalf("expected b passed through unpacked, got %+v", rest)
	}
}
