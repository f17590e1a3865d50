// Package handlers implements the global (phase, direction, packet id)
// dispatch table: the one place that inspects and, for a specific
// illustrative set of packets, mutates or reacts to protocol traffic. Every
// packet id without a registered handler passes through unchanged.
package handlers

import (
	"github.com/mcproxy/core/packet"
	"github.com/mcproxy/core/proto"
	"github.com/mcproxy/core/session"
)

// Func is a handler's signature. It may read and rewrite p's payload,
// call p.DropPacket/PickupPacket, attach child packets, and read or
// mutate s. Returning an error aborts the packet and the connection, per
// the same fail-fast rule as a malformed decode.
type Func func(p *packet.Packet, s *session.Session) error

type key struct {
	phase     proto.Phase
	direction proto.Direction
	id        int
}

var table = make(map[key]Func)

func register(phase proto.Phase, direction proto.Direction, id int, fn Func) {
	table[key{phase, direction, id}] = fn
}

// Dispatch looks up and invokes the handler registered for p's
// (phase, direction, id), if any. A packet with no registered handler is
// left untouched.
func Dispatch(phase proto.Phase, p *packet.Packet, s *session.Session) error {
	fn, ok := table[key{phase, p.Direction, int(p.ID)}]
	if !ok {
		return nil
	}
	return fn(p, s)
}
