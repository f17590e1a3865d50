package handlers

import (
	"fmt"

	"github.com/mcproxy/core/packet"
	"github.com/mcproxy/core/proto"
	"github.com/mcproxy/core/session"
	"github.com/mcproxy/core/wire"
)

func init() {
	register(proto.PhaseHandshake, proto.ClientToServer, 0x00, handleHandshake)
}

// handleHandshake reads the Handshake packet's next-state field and
// advances the session's phase accordingly. Every later frame on this
// connection is parsed according to whatever phase is current when it
// arrives, so this has to happen before the next frame is read.
func handleHandshake(p *packet.Packet, s *session.Session) error {
	payload := p.Payload.Copy()
	if _, err := wire.DecodeVarInt(payload); err != nil { // protocol version
		return fmt.Errorf("handshake: protocol version: %w", err)
	}
	if _, err := wire.DecodeString(payload); err != nil { // server address
		return fmt.Errorf("handshake: server address: %w", err)
	}
	if _, err := wire.DecodeUint16(payload); err != nil { // server port
		return fmt.Errorf("handshake: server port: %w", err)
	}
	nextState, err := wire.DecodeVarInt(payload)
	if err != nil {
		return fmt.Errorf("handshake: next state: %w", err)
	}
	switch nextState {
	case 1:
		s.SetPhase(proto.PhaseStatus)
	case 2:
		s.SetPhase(proto.PhaseLogin)
	default:
		return fmt.Errorf("handshake: unknown next state %d", nextState)
	}
	return nil
}
