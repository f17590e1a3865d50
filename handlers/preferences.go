package handlers

import (
	"fmt"

	"github.com/mcproxy/core/packet"
	"github.com/mcproxy/core/proto"
	"github.com/mcproxy/core/session"
	"github.com/mcproxy/core/wire"
)

// ResolvePreferenceUpdate turns a PreferenceUpdate control message into the
// zero or more synthetic packets that preference's change requires, so the
// client sees the effect immediately instead of waiting for the next packet
// of the relevant kind to pass through on its own.
func ResolvePreferenceUpdate(u packet.PreferenceUpdate, s *session.Session) []*packet.Packet {
	switch u.Name {
	case "CustomHeader":
		return []*packet.Packet{buildTabHeaderPacket(s)}
	case "EnableFlying":
		return resolveEnableFlying(s)
	case "movementSpeed":
		return resolveMovementSpeed(s)
	default:
		return nil
	}
}

func resolveEnableFlying(s *session.Session) []*packet.Packet {
	flags, flyingSpeed, fov, ok := s.Abilities()
	if !ok {
		return nil
	}
	enabled, err := s.GetPreference("EnableFlying")
	if err == nil && enabled == "true" {
		flags |= playerAbilityFlyingAllowed
		flyingSpeed = 1
	}
	payload := &wire.Buffer{}
	_ = wire.Int8(flags).Encode(payload)
	_ = wire.Float32(flyingSpeed).Encode(payload)
	_ = wire.Float32(fov).Encode(payload)
	return []*packet.Packet{packet.NewSynthetic(proto.ServerToClient, s2cPlayerAbilities, payload)}
}

func resolveMovementSpeed(s *session.Session) []*packet.Packet {
	speedStr, err := s.GetPreference("movementSpeed")
	if err != nil {
		return nil
	}
	var speed float64
	if _, err := fmt.Sscanf(speedStr, "%g", &speed); err != nil {
		return nil
	}

	payload := &wire.Buffer{}
	_ = wire.VarInt(s.PlayerEntityID()).Encode(payload)
	_ = wire.Int32(1).Encode(payload)
	_ = wire.String("generic.movementSpeed").Encode(payload)
	_ = wire.Float64(speed).Encode(payload)
	_ = wire.VarInt(0).Encode(payload) // modifier count
	return []*packet.Packet{packet.NewSynthetic(proto.ServerToClient, s2cEntityProperties, payload)}
}
