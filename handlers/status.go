package handlers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mcproxy/core/packet"
	"github.com/mcproxy/core/proto"
	"github.com/mcproxy/core/session"
	"github.com/mcproxy/core/wire"
)

func init() {
	register(proto.PhaseStatus, proto.ServerToClient, 0x00, handleStatusResponse)
}

// handleStatusResponse rewrites the server list response's description with
// the current local time, styled green/bold/underlined, whenever CustomMOTD
// is enabled. After the response is sent the connection drops back to the
// handshake phase: a status ping and a subsequent login attempt both start
// with a fresh Handshake packet on the same socket.
func handleStatusResponse(p *packet.Packet, s *session.Session) error {
	defer s.SetPhase(proto.PhaseHandshake)

	motd, err := s.GetPreference("CustomMOTD")
	if err != nil || motd != "true" {
		return nil
	}

	raw, err := wire.DecodeString(p.Payload.Copy())
	if err != nil {
		return fmt.Errorf("status response: decode json: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return fmt.Errorf("status response: unmarshal json: %w", err)
	}
	doc["description"] = wire.TextChat("§2§l§n" + time.Now().Format("15:04:05") + "§r")

	rewritten, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("status response: marshal json: %w", err)
	}

	newPayload := &wire.Buffer{}
	if err := wire.String(rewritten).Encode(newPayload); err != nil {
		return fmt.Errorf("status response: encode: %w", err)
	}
	p.Payload = newPayload
	return nil
}
