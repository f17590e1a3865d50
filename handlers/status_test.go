package handlers

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/mcproxy/core/packet"
	"github.com/mcproxy/core/proto"
	"github.com/mcproxy/core/session"
	"github.com/mcproxy/core/wire"
)

func statusResponsePacket(t *testing.T, doc map[string]any) *packet.Packet {
	t.Helper()
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	payload := &wire.Buffer{}
	if err := wire.String(raw).Encode(payload); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return packet.NewSynthetic(proto.ServerToClient, 0x00, payload)
}

func TestHandleStatusResponseRewritesDescriptionWhenEnabled(t *testing.T) {
	s := session.New()
	_ = s.SetPreference("CustomMOTD", "true")
	p := statusResponsePacket(t, map[string]any{"description": map[string]any{"text": "a server"}})

	if err := handleStatusResponse(p, s); err != nil {
		t.Fatalf("handle: %v", err)
	}

	raw, err := wire.DecodeString(p.Payload.Copy())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	desc, ok := doc["description"].(map[string]any)
	if !ok {
		t.Fatalf("description not an object: %v", doc["description"])
	}
	text, _ := desc["text"].(string)
	if !strings.HasPrefix(text, "§2§l§n") || !strings.HasSuffix(text, "§r") {
		t.Fatalf("got %q, want formatting markers around a timestamp", text)
	}
}

func TestHandleStatusResponseLeavesDescriptionWhenNotExactlyTrue(t *testing.T) {
	s := session.New()
	_ = s.SetPreference("CustomMOTD", "yes")
	p := statusResponsePacket(t, map[string]any{"description": map[string]any{"text": "a server"}})

	if err := handleStatusResponse(p, s); err != nil {
		t.Fatalf("handle: %v", err)
	}

	raw, err := wire.DecodeString(p.Payload.Copy())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	desc, _ := doc["description"].(map[string]any)
	if desc["text"] != "a server" {
		t.Fatalf("expected description untouched, got %v", doc["description"])
	}
}
