package wire

import (
	"encoding/json"
	"fmt"
)

// ChatComponent is the generic JSON chat component shape. This proxy only
// ever constructs simple text components itself; anything read off the
// wire is kept as the raw decoded value so unusual structures survive a
// read-modify-write cycle even if this struct doesn't name every field.
type ChatComponent struct {
	Text  string          `json:"text,omitempty"`
	Color string          `json:"color,omitempty"`
	Bold  bool            `json:"bold,omitempty"`
	Extra []ChatComponent `json:"extra,omitempty"`
}

// ReadChat decodes a Chat value (a JSON-encoded string) into a generic
// value. Canonicalization differences between the original bytes and a
// later re-encode are expected and accepted.
func ReadChat(b *Buffer) (any, error) {
	s, err := DecodeString(b)
	if err != nil {
		return nil, fmt.Errorf("wire: decode chat: %w", err)
	}
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, fmt.Errorf("wire: decode chat json: %w", err)
	}
	return v, nil
}

// WriteChat encodes a Go value as a Chat value (a JSON string).
func WriteChat(b *Buffer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("wire: encode chat json: %w", err)
	}
	return String(data).Encode(b)
}

// TextChat builds a plain-text chat component, ready for WriteChat or
// for embedding in a larger JSON document.
func TextChat(text string) ChatComponent {
	return ChatComponent{Text: text}
}
