package handlers

import (
	"fmt"

	"github.com/mcproxy/core/packet"
	"github.com/mcproxy/core/proto"
	"github.com/mcproxy/core/session"
	"github.com/mcproxy/core/wire"
)

// Packet ids in the play state this proxy inspects. Anything else passes
// through the dispatch table untouched.
const (
	s2cJoinGame         = 0x26
	s2cPlayerListHeader = 0x54
	c2sUseItem          = 0x2D
	c2sBlockPlacement   = 0x2C
	s2cPlayerAbilities  = 0x32
	s2cEntityProperties = 0x59
	c2sInteractEntity   = 0x0E
	s2cEntityMetadata   = 0x44
	c2sVehicleMove      = 0x15
	s2cSpawnEntity      = 0x03
	s2cEntityPosition   = 0x29
	s2cEntityPosRot     = 0x2A
)

const giantEntityType = 30

func init() {
	register(proto.PhasePlay, proto.ServerToClient, s2cJoinGame, handleJoinGame)
	register(proto.PhasePlay, proto.ClientToServer, c2sUseItem, handleUseItem)
	register(proto.PhasePlay, proto.ClientToServer, c2sBlockPlacement, handleBlockPlacement)
	register(proto.PhasePlay, proto.ServerToClient, s2cPlayerAbilities, handlePlayerAbilities)
	register(proto.PhasePlay, proto.ServerToClient, s2cEntityProperties, handleEntityProperties)
	register(proto.PhasePlay, proto.ClientToServer, c2sInteractEntity, handleInteractEntity)
	register(proto.PhasePlay, proto.ServerToClient, s2cEntityMetadata, handleEntityMetadata)
	register(proto.PhasePlay, proto.ClientToServer, c2sVehicleMove, handleVehicleMove)
	register(proto.PhasePlay, proto.ServerToClient, s2cSpawnEntity, handleSpawnEntity)
	register(proto.PhasePlay, proto.ServerToClient, s2cEntityPosition, handleEntityMovement)
	register(proto.PhasePlay, proto.ServerToClient, s2cEntityPosRot, handleEntityMovement)
}

// handleJoinGame records the player's own entity id and follows the Join
// Game packet with a Player List Header And Footer: the branded header when
// CustomHeader is enabled, an empty one otherwise.
func handleJoinGame(p *packet.Packet, s *session.Session) error {
	payload := p.Payload.Copy()
	entityID, err := wire.DecodeInt32(payload)
	if err != nil {
		return fmt.Errorf("join game: entity id: %w", err)
	}
	if err := s.SetPlayerEntityID(int32(entityID)); err != nil {
		return fmt.Errorf("join game: %w", err)
	}
	p.AddChildPacket(buildTabHeaderPacket(s))
	return nil
}

// tabHeaderComponent is the chat component shape the tab list header and
// footer use: an empty translate record, on its own or as a compound with a
// styled Extra list.
type tabHeaderComponent struct {
	Translate string              `json:"translate"`
	Text      string              `json:"text,omitempty"`
	Extra     []tabHeaderFragment `json:"extra,omitempty"`
}

type tabHeaderFragment struct {
	Bold       bool   `json:"bold,omitempty"`
	Italic     bool   `json:"italic,omitempty"`
	Obfuscated bool   `json:"obfuscated,omitempty"`
	Color      string `json:"color,omitempty"`
	Text       string `json:"text"`
}

// buildTabHeaderPacket builds the Player List Header And Footer packet:
// a branded, styled header when CustomHeader is enabled, or an empty
// translate record when it is not.
func buildTabHeaderPacket(s *session.Session) *packet.Packet {
	enabled, err := s.GetPreference("CustomHeader")
	var header tabHeaderComponent
	if err == nil && enabled == "true" {
		header = tabHeaderComponent{Extra: []tabHeaderFragment{
			{Bold: true, Obfuscated: true, Color: "gold", Text: "o "},
			{Bold: true, Italic: true, Color: "dark_green", Text: "MC "},
			{Bold: true, Italic: true, Color: "red", Text: "Proxy"},
			{Bold: true, Obfuscated: true, Color: "gold", Text: " o\n"},
		}}
	} else {
		header = tabHeaderComponent{Translate: ""}
	}
	footer := tabHeaderComponent{Translate: ""}

	payload := &wire.Buffer{}
	_ = wire.WriteChat(payload, header)
	_ = wire.WriteChat(payload, footer)
	return packet.NewSynthetic(proto.ServerToClient, s2cPlayerListHeader, payload)
}

// c2sChatMessageID is the Chat Message packet's id in the serverbound play
// state.
const c2sChatMessageID = 0x03

// handleUseItem unconditionally reports a right click to the server with a
// synthetic chat message, regardless of any preference.
func handleUseItem(p *packet.Packet, s *session.Session) error {
	p.AddChildPacket(buildRightClickChatMessage())
	return nil
}

func buildRightClickChatMessage() *packet.Packet {
	payload := &wire.Buffer{}
	_ = wire.String("I right clicked!").Encode(payload)
	return packet.NewSynthetic(proto.ClientToServer, c2sChatMessageID, payload)
}

// handleBlockPlacement implements BuildingRadio level 2: one placed block
// becomes a 3-wide, 3-high wall in the X-Y plane (x offsets -1..1, y
// offsets 0..2, same Z), emitted as 8 extra placements that skip the
// client's own (0, 0) offset, in y-major order (every x offset of a given
// Y before moving to the next Y) so the server always sees a deterministic
// placement order. Any other BuildingRadio value, 1 included, leaves the
// packet unchanged.
func handleBlockPlacement(p *packet.Packet, s *session.Session) error {
	mode, err := s.GetPreference("BuildingRadio")
	if err != nil || mode != "2" {
		return nil
	}

	payload := p.Payload.Copy()
	hand, err := wire.DecodeVarInt(payload)
	if err != nil {
		return fmt.Errorf("block placement: hand: %w", err)
	}
	location, err := wire.DecodePosition(payload)
	if err != nil {
		return fmt.Errorf("block placement: location: %w", err)
	}
	rest := payload.Copy() // face, cursor x/y/z, inside-block: carried through unchanged

	for y := 0; y <= 2; y++ {
		for x := -1; x <= 1; x++ {
			if y == 0 && x == 0 {
				continue // the client's own placement already covers this offset
			}
			offset := wire.Position{X: location.X + x, Y: location.Y + y, Z: location.Z}
			child := buildBlockPlacement(hand, offset, rest)
			p.AddChildPacket(child)
		}
	}
	return nil
}

func buildBlockPlacement(hand wire.VarInt, location wire.Position, rest *wire.Buffer) *packet.Packet {
	payload := &wire.Buffer{}
	_ = hand.Encode(payload)
	_ = location.Encode(payload)
	payload.AddBytes(rest.Copy().Bytes())
	return packet.NewSynthetic(proto.ClientToServer, c2sBlockPlacement, payload)
}

// playerAbilityFlyingAllowed is bits 1 (invulnerable) and 2 (flying) of the
// Player Abilities flags byte, matching "flags | 6" in the reference
// implementation.
const playerAbilityFlyingAllowed = 0x06

// handlePlayerAbilities caches the server's Player Abilities triple (for
// ResolvePreferenceUpdate to rebuild later) and forces the flying-allowed
// bits and a flying speed of 1 whenever the EnableFlying preference is set.
func handlePlayerAbilities(p *packet.Packet, s *session.Session) error {
	payload := p.Payload.Copy()
	flags, err := wire.DecodeInt8(payload)
	if err != nil {
		return fmt.Errorf("player abilities: flags: %w", err)
	}
	flyingSpeed, err := wire.DecodeFloat32(payload)
	if err != nil {
		return fmt.Errorf("player abilities: flying speed: %w", err)
	}
	fov, err := wire.DecodeFloat32(payload)
	if err != nil {
		return fmt.Errorf("player abilities: fov: %w", err)
	}
	s.SetAbilities(int8(flags), float32(flyingSpeed), float32(fov))

	enabled, err := s.GetPreference("EnableFlying")
	if err != nil || enabled != "true" {
		return nil
	}

	newPayload := &wire.Buffer{}
	_ = wire.Int8(flags | playerAbilityFlyingAllowed).Encode(newPayload)
	_ = wire.Float32(1).Encode(newPayload)
	_ = fov.Encode(newPayload)
	p.Payload = newPayload
	return nil
}

// handleEntityProperties overrides the generic.movementSpeed property,
// scoped to the player's own entity id so other entities' speeds are
// never touched.
func handleEntityProperties(p *packet.Packet, s *session.Session) error {
	speedStr, err := s.GetPreference("movementSpeed")
	if err != nil {
		return nil
	}
	var speed float64
	if _, err := fmt.Sscanf(speedStr, "%g", &speed); err != nil {
		return fmt.Errorf("entity properties: parse movementSpeed preference: %w", err)
	}

	payload := p.Payload.Copy()
	entityID, err := wire.DecodeVarInt(payload)
	if err != nil {
		return fmt.Errorf("entity properties: entity id: %w", err)
	}
	if int32(entityID) != s.PlayerEntityID() {
		return nil
	}

	count, err := wire.DecodeInt32(payload)
	if err != nil {
		return fmt.Errorf("entity properties: count: %w", err)
	}

	newPayload := &wire.Buffer{}
	_ = entityID.Encode(newPayload)
	_ = count.Encode(newPayload)
	for i := int32(0); i < int32(count); i++ {
		key, err := wire.DecodeString(payload)
		if err != nil {
			return fmt.Errorf("entity properties: key: %w", err)
		}
		value, err := wire.DecodeFloat64(payload)
		if err != nil {
			return fmt.Errorf("entity properties: value: %w", err)
		}
		if key == "generic.movementSpeed" {
			value = wire.Float64(speed)
		}
		modifierCount, err := wire.DecodeVarInt(payload)
		if err != nil {
			return fmt.Errorf("entity properties: modifier count: %w", err)
		}
		// Each modifier is a fixed-width UUID + Double amount + Byte
		// operation; this proxy never rewrites modifiers, so it copies
		// them through untouched.
		modifiers, err := payload.NextBytes(int(modifierCount) * entityPropertyModifierSize)
		if err != nil {
			return fmt.Errorf("entity properties: modifiers: %w", err)
		}

		_ = key.Encode(newPayload)
		_ = value.Encode(newPayload)
		_ = modifierCount.Encode(newPayload)
		newPayload.AddBytes(modifiers)
	}
	p.Payload = newPayload
	return nil
}

// entityPropertyModifierSize is the wire size of one Entity Property
// Modifier: a 16-byte UUID, an 8-byte Double amount, and a 1-byte
// operation.
const entityPropertyModifierSize = 16 + 8 + 1

// handleInteractEntity tracks the most recently interacted-with entity
// under the "camera" target name, and, when the glowForce preference is
// set, immediately re-sends that entity's cached metadata with the
// glowing bit forced on.
func handleInteractEntity(p *packet.Packet, s *session.Session) error {
	payload := p.Payload.Copy()
	entityID, err := wire.DecodeVarInt(payload)
	if err != nil {
		return fmt.Errorf("interact entity: entity id: %w", err)
	}
	s.SetTarget("camera", int32(entityID))

	glow, err := s.GetPreference("glowForce")
	if err != nil || glow != "true" {
		return nil
	}
	cached, ok := s.LastEffectMetadata(int32(entityID))
	if !ok {
		return nil
	}
	forced := forceGlowing(cached)
	s.SetLastEffectMetadata(int32(entityID), forced)

	child := buildEntityMetadataPacket(int32(entityID), forced)
	p.AddChildPacket(child)
	return nil
}

const glowingBit = 0x40

func forceGlowing(m wire.EntityMetadata) wire.EntityMetadata {
	entry := m.Entries[0]
	var current byte
	if entry != nil && len(entry.Raw) == 1 {
		current = entry.Raw[0]
	}
	m.Entries[0] = &wire.MetadataEntry{Index: 0, Type: wire.MetaByte, Raw: []byte{current | glowingBit}}
	return m
}

func buildEntityMetadataPacket(entityID int32, m wire.EntityMetadata) *packet.Packet {
	payload := &wire.Buffer{}
	_ = wire.VarInt(entityID).Encode(payload)
	_ = m.Encode(payload)
	return packet.NewSynthetic(proto.ServerToClient, s2cEntityMetadata, payload)
}

// handleEntityMetadata caches every entity's metadata so a later Interact
// Entity can re-derive a glow flag without having kept the whole packet,
// and forces glowing on immediately for whichever entity is currently
// targeted when glowForce is set.
func handleEntityMetadata(p *packet.Packet, s *session.Session) error {
	payload := p.Payload.Copy()
	entityID, err := wire.DecodeVarInt(payload)
	if err != nil {
		return fmt.Errorf("entity metadata: entity id: %w", err)
	}
	metadata, err := wire.DecodeEntityMetadata(payload)
	if err != nil {
		return fmt.Errorf("entity metadata: %w", err)
	}
	s.SetLastEffectMetadata(int32(entityID), metadata)

	glow, err := s.GetPreference("glowForce")
	if err != nil || glow != "true" {
		return nil
	}
	target, ok := s.Target("camera")
	if !ok || target != int32(entityID) {
		return nil
	}
	forced := forceGlowing(metadata)
	s.SetLastEffectMetadata(int32(entityID), forced)

	newPayload := &wire.Buffer{}
	_ = wire.VarInt(entityID).Encode(newPayload)
	_ = forced.Encode(newPayload)
	p.Payload = newPayload
	return nil
}

// handleVehicleMove drops the packet entirely when DropSteering is set,
// preventing the client's vehicle steering input from ever reaching the
// server.
func handleVehicleMove(p *packet.Packet, s *session.Session) error {
	enabled, err := s.GetPreference("DropSteering")
	if err != nil || enabled != "true" {
		return nil
	}
	p.DropPacket()
	return nil
}

// handleSpawnEntity overrides every spawned entity's type to Giant when
// the giants preference is enabled.
func handleSpawnEntity(p *packet.Packet, s *session.Session) error {
	enabled, err := s.GetPreference("giants")
	if err != nil || enabled != "true" {
		return nil
	}

	payload := p.Payload.Copy()
	entityID, err := wire.DecodeVarInt(payload)
	if err != nil {
		return fmt.Errorf("spawn entity: entity id: %w", err)
	}
	objectUUID, err := wire.DecodeUUID(payload)
	if err != nil {
		return fmt.Errorf("spawn entity: uuid: %w", err)
	}
	if _, err := wire.DecodeVarInt(payload); err != nil { // type, overridden below
		return fmt.Errorf("spawn entity: type: %w", err)
	}
	rest := payload

	newPayload := &wire.Buffer{}
	_ = entityID.Encode(newPayload)
	_ = objectUUID.Encode(newPayload)
	_ = wire.VarInt(giantEntityType).Encode(newPayload)
	newPayload.AddBytes(rest.Bytes())
	p.Payload = newPayload
	return nil
}

// handleEntityMovement drops Entity Position / Entity Position And
// Rotation packets for whichever entity is currently the "camera" target
// when DropEntityMovement is set, freezing it from the client's point of
// view.
func handleEntityMovement(p *packet.Packet, s *session.Session) error {
	enabled, err := s.GetPreference("DropEntityMovement")
	if err != nil || enabled != "true" {
		return nil
	}
	entityID, err := wire.DecodeVarInt(p.Payload.Copy())
	if err != nil {
		return fmt.Errorf("entity movement: entity id: %w", err)
	}
	target, ok := s.Target("camera")
	if !ok || target != int32(entityID) {
		return nil
	}
	p.DropPacket()
	return nil
}
