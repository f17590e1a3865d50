package handlers

import (
	"fmt"

	"github.com/mcproxy/core/packet"
	"github.com/mcproxy/core/proto"
	"github.com/mcproxy/core/session"
	"github.com/mcproxy/core/wire"
)

func init() {
	register(proto.PhaseLogin, proto.ServerToClient, 0x03, handleSetCompression)
	register(proto.PhaseLogin, proto.ClientToServer, 0x00, handleLoginStart)
	register(proto.PhaseLogin, proto.ServerToClient, 0x02, handleLoginSuccess)
}

// handleSetCompression applies the server's chosen compression threshold
// to the session so both directions start framing compressed packets from
// the next frame onward.
func handleSetCompression(p *packet.Packet, s *session.Session) error {
	threshold, err := wire.DecodeVarInt(p.Payload.Copy())
	if err != nil {
		return fmt.Errorf("set compression: %w", err)
	}
	return s.SetCompressionThreshold(int(threshold))
}

// handleLoginStart records the username the client actually logged in
// with, then substitutes the FakenameInput preference's value when
// EnableFakename is set to true, so the upstream server only ever sees the
// substituted name.
func handleLoginStart(p *packet.Packet, s *session.Session) error {
	username, err := wire.DecodeString(p.Payload.Copy())
	if err != nil {
		return fmt.Errorf("login start: %w", err)
	}
	s.SetLoginUsername(string(username))

	enabled, err := s.GetPreference("EnableFakename")
	if err != nil || enabled != "true" {
		return nil
	}
	fakename, err := s.GetPreference("FakenameInput")
	if err != nil {
		return nil
	}

	newPayload := &wire.Buffer{}
	if err := wire.String(fakename).Encode(newPayload); err != nil {
		return fmt.Errorf("login start: encode: %w", err)
	}
	p.Payload = newPayload
	return nil
}

// handleLoginSuccess advances the session into the play phase once the
// server confirms the login.
func handleLoginSuccess(p *packet.Packet, s *session.Session) error {
	payload := p.Payload.Copy()
	if _, err := wire.DecodeString(payload); err != nil { // uuid (as string, 1.15.2 format)
		return fmt.Errorf("login success: uuid: %w", err)
	}
	if _, err := wire.DecodeString(payload); err != nil { // username
		return fmt.Errorf("login success: username: %w", err)
	}
	s.SetPhase(proto.PhasePlay)
	return nil
}
