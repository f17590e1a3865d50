package handlers

import (
	"testing"

	"github.com/mcproxy/core/packet"
	"github.com/mcproxy/core/proto"
	"github.com/mcproxy/core/session"
	"github.com/mcproxy/core/wire"
)

func loginStartPacket(username string) *packet.Packet {
	payload := &wire.Buffer{}
	_ = wire.String(username).Encode(payload)
	return packet.NewSynthetic(proto.ClientToServer, 0x00, payload)
}

func TestHandleLoginStartSubstitutesFakenameWhenEnabled(t *testing.T) {
	s := session.New()
	_ = s.SetPreference("EnableFakename", "true")
	if err := s.SetFakenameInput("Notch"); err != nil {
		t.Fatalf("set fakename: %v", err)
	}
	p := loginStartPacket("RealPlayer")

	if err := handleLoginStart(p, s); err != nil {
		t.Fatalf("handle: %v", err)
	}
	got, err := wire.DecodeString(p.Payload.Copy())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(got) != "Notch" {
		t.Fatalf("got %q want Notch", got)
	}
	if s.LoginUsername() != "RealPlayer" {
		t.Fatalf("got stored username %q want RealPlayer", s.LoginUsername())
	}
}

func TestHandleLoginStartLeavesUsernameWhenFakenameDisabled(t *testing.T) {
	s := session.New()
	if err := s.SetFakenameInput("Notch"); err != nil {
		t.Fatalf("set fakename: %v", err)
	}
	p := loginStartPacket("RealPlayer")

	if err := handleLoginStart(p, s); err != nil {
		t.Fatalf("handle: %v", err)
	}
	got, err := wire.DecodeString(p.Payload.Copy())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(got) != "RealPlayer" {
		t.Fatalf("got %q want RealPlayer (EnableFakename not set)", got)
	}
}
