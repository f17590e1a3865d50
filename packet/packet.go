// Package packet implements the decoded Packet object that flows through
// the proxy's inspection pipeline, and the Queue two cooperating goroutines
// use to hand batches of them to each other.
package packet

import (
	"fmt"

	"github.com/mcproxy/core/frame"
	"github.com/mcproxy/core/proto"
	"github.com/mcproxy/core/wire"
)

// Packet is one decoded protocol packet: its id, the undecoded remainder of
// its body (handlers read fields off this buffer and, if they mutate the
// packet, replace it with a newly built one), and any synthetic packets a
// handler chose to inject alongside it.
type Packet struct {
	Direction proto.Direction

	ID      wire.VarInt
	Payload *wire.Buffer

	// SendSelf controls whether this packet's own bytes are emitted when
	// packed; handlers call Drop/Pickup to toggle it. Children are
	// unaffected by their parent being dropped.
	SendSelf bool

	Children []*Packet
}

// New decodes a packet id off the front of data and wraps the remainder as
// the packet's payload.
func New(direction proto.Direction, data []byte) (*Packet, error) {
	buf := wire.NewBuffer(data)
	id, err := wire.DecodeVarInt(buf)
	if err != nil {
		return nil, fmt.Errorf("packet: decode id: %w", err)
	}
	return &Packet{Direction: direction, ID: id, Payload: buf, SendSelf: true}, nil
}

// NewSynthetic builds a packet from an already-decoded id and a payload
// buffer, for handlers constructing an injected packet from scratch.
func NewSynthetic(direction proto.Direction, id wire.VarInt, payload *wire.Buffer) *Packet {
	return &Packet{Direction: direction, ID: id, Payload: payload, SendSelf: true}
}

// AddChildPacket appends a synthetic packet to be emitted alongside this
// one. Children in the same direction as the parent are packed
// immediately after it, in insertion order; children in the opposite
// direction are surfaced to the caller of Pack for delivery to the other
// side's queue.
func (p *Packet) AddChildPacket(child *Packet) {
	p.Children = append(p.Children, child)
}

// DropPacket suppresses this packet's own bytes from the packed output.
// Any children still emit.
func (p *Packet) DropPacket() {
	p.SendSelf = false
}

// PickupPacket re-enables emitting this packet's own bytes.
func (p *Packet) PickupPacket() {
	p.SendSelf = true
}

func (p *Packet) rawBytes() []byte {
	buf := &wire.Buffer{}
	_ = p.ID.Encode(buf)
	buf.AddBytes(p.Payload.Bytes())
	return buf.Bytes()
}

// Pack serializes this packet (if SendSelf), each through its own complete
// frame envelope, followed by its same-direction children's frames in
// insertion order, into one byte string ready to write straight to the
// socket. Children in the opposite direction are returned separately,
// unpacked, for the caller to route to that direction's queue.
func (p *Packet) Pack(compressionEnabled bool, threshold int) (own []byte, opposite []*Packet, err error) {
	if p.SendSelf {
		framed, err := frame.EncodeFrame(p.rawBytes(), compressionEnabled, threshold)
		if err != nil {
			return nil, nil, fmt.Errorf("packet: pack: %w", err)
		}
		own = append(own, framed...)
	}
	for _, c := range p.Children {
		if c.Direction == p.Direction {
			childOwn, childOpposite, err := c.Pack(compressionEnabled, threshold)
			if err != nil {
				return nil, nil, err
			}
			own = append(own, childOwn...)
			opposite = append(opposite, childOpposite...)
		} else {
			opposite = append(opposite, c)
		}
	}
	return own, opposite, nil
}
