package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mcproxy/core/packet"
	"github.com/mcproxy/core/proto"
	"github.com/mcproxy/core/session"
	"github.com/mcproxy/core/wire"
)

// clientboundChatMessageID is the Chat Message packet's id in the
// clientbound play state.
const clientboundChatMessageID = 0x0E

// Packet ids the chat command interceptor injects directly.
const (
	s2cCamera          = 0x3F
	s2cSystemChatError = 0x50
	s2cChangeGameState = 0x1F
)

func init() {
	register(proto.PhasePlay, proto.ClientToServer, c2sChatMessageID, handleChatCommand)
}

// handleChatCommand intercepts /camera, /state, and /giants before they
// ever reach the server.
func handleChatCommand(p *packet.Packet, s *session.Session) error {
	message, err := wire.DecodeString(p.Payload.Copy())
	if err != nil {
		return fmt.Errorf("chat command: %w", err)
	}
	text := string(message)
	if !strings.HasPrefix(text, "/") {
		return nil
	}

	switch {
	case text == "/camera":
		handleCameraCommand(p, s)
	case strings.HasPrefix(text, "/state"):
		handleStateCommand(p, s, text)
	case text == "/giants":
		handleGiantsCommand(p, s)
	}
	return nil
}

// handleCameraCommand injects a Camera packet aimed at the most recently
// interacted-with entity, toggling back to the player's own entity id on
// every other invocation; with no interacted entity known yet, it injects
// a system chat error instead. The original chat message never reaches the
// server either way.
func handleCameraCommand(p *packet.Packet, s *session.Session) {
	p.DropPacket()

	target, ok := s.Target("camera")
	if !ok {
		p.AddChildPacket(buildCameraUnavailableError())
		return
	}

	entityID := target
	if active, ok := s.Target("activeCamera"); ok && active != s.PlayerEntityID() {
		entityID = s.PlayerEntityID()
	}
	s.SetTarget("activeCamera", entityID)
	p.AddChildPacket(buildCameraPacket(entityID))
}

func buildCameraPacket(entityID int32) *packet.Packet {
	payload := &wire.Buffer{}
	_ = wire.VarInt(entityID).Encode(payload)
	return packet.NewSynthetic(proto.ServerToClient, s2cCamera, payload)
}

// cameraUnavailableError is the fixed system chat error shown when
// /camera has no interacted entity to switch to yet.
type cameraUnavailableError struct {
	Italic bool   `json:"italic"`
	Color  string `json:"color"`
	Text   string `json:"text"`
}

func buildCameraUnavailableError() *packet.Packet {
	payload := &wire.Buffer{}
	_ = wire.WriteChat(payload, cameraUnavailableError{
		Italic: true,
		Color:  "red",
		Text:   "Unable to switch camera. First, select an entity.",
	})
	return packet.NewSynthetic(proto.ServerToClient, s2cSystemChatError, payload)
}

// handleStateCommand parses "/state N F" (a ubyte game-state reason and a
// float value) and injects a Change Game State packet with that body. With
// too few arguments the chat message passes through to the server
// untouched, matching the original's silent no-op.
func handleStateCommand(p *packet.Packet, s *session.Session, text string) {
	fields := strings.Fields(text)
	if len(fields) < 3 {
		return
	}
	n, err := strconv.ParseUint(fields[1], 10, 8)
	if err != nil {
		return
	}
	f, err := strconv.ParseFloat(fields[2], 32)
	if err != nil {
		return
	}

	payload := &wire.Buffer{}
	_ = wire.Uint8(uint8(n)).Encode(payload)
	_ = wire.Float32(f).Encode(payload)
	p.DropPacket()
	p.AddChildPacket(packet.NewSynthetic(proto.ServerToClient, s2cChangeGameState, payload))
}

// handleGiantsCommand toggles the giants preference and always drops the
// command from reaching the server.
func handleGiantsCommand(p *packet.Packet, s *session.Session) {
	current, err := s.GetPreference("giants")
	enabled := err == nil && current == "true"
	_ = s.SetPreference("giants", strconv.FormatBool(!enabled))
	p.DropPacket()
	p.AddChildPacket(buildChatReply(fmt.Sprintf("giants: %v", !enabled)))
}

func buildChatReply(text string) *packet.Packet {
	payload := &wire.Buffer{}
	_ = wire.WriteChat(payload, wire.TextChat(text))
	_ = wire.Int8(0).Encode(payload) // position: chat box
	return packet.NewSynthetic(proto.ServerToClient, clientboundChatMessageID, payload)
}
