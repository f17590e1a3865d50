// Package session holds the single piece of mutable state shared by both
// directions of one client-server connection: protocol phase, compression
// settings, login identity, user preferences, and the bits of per-entity
// state a handler needs to remember between packets.
package session

import (
	"fmt"
	"sync"

	"github.com/mcproxy/core/proto"
	"github.com/mcproxy/core/wire"
)

// Session is safe for concurrent use by every goroutine of both
// Forwarders serving one connection.
type Session struct {
	mu sync.Mutex

	phase proto.Phase

	compressionThreshold int
	compressionEnabled   bool

	playerEntityID int32
	loginUsername  string

	preferences map[string]string

	// lastEffectMetadata remembers the most recently observed Entity
	// Metadata for an entity id, so a later Interact Entity packet can
	// re-derive and re-apply a glow flag without having cached the whole
	// packet.
	lastEffectMetadata map[int32]wire.EntityMetadata

	// target tracks entity ids by name: "camera" is the entity most
	// recently targeted by an Interact Entity packet, "activeCamera" the
	// one the /camera command last switched the view to.
	target map[string]int32

	// abilities caches the last Player Abilities triple the server sent,
	// so a later preference change can rebuild a fresh Player Abilities
	// packet without having to wait for the server to resend one.
	abilitiesSet    bool
	abilitiesFlags  int8
	abilitiesFlying float32
	abilitiesFov    float32

	shutdownCond *sync.Cond
	shutdown     bool
}

// New returns a Session with compression disabled and no preferences set;
// callers seed preference defaults with SetPreference before handlers can
// rely on GetPreference succeeding.
func New() *Session {
	s := &Session{
		compressionThreshold: -1,
		preferences:          make(map[string]string),
		lastEffectMetadata:   make(map[int32]wire.EntityMetadata),
		target:               make(map[string]int32),
	}
	s.shutdownCond = sync.NewCond(&s.mu)
	return s
}

// Phase returns the current protocol phase.
func (s *Session) Phase() proto.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// SetPhase advances (or resets) the protocol phase.
func (s *Session) SetPhase(p proto.Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = p
}

// CompressionEnabled reports whether a compression threshold has been set.
func (s *Session) CompressionEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.compressionEnabled
}

// CompressionThreshold returns the current threshold; meaningless when
// CompressionEnabled is false.
func (s *Session) CompressionThreshold() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.compressionThreshold
}

// SetCompressionThreshold sets the compression threshold and derives
// CompressionEnabled from it. A negative threshold is a programmer error:
// the Set Compression packet's field is never negative on the wire.
func (s *Session) SetCompressionThreshold(threshold int) error {
	if threshold < 0 {
		return fmt.Errorf("session: compression threshold must be non-negative, got %d", threshold)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compressionThreshold = threshold
	s.compressionEnabled = true
	return nil
}

// PlayerEntityID returns the player's own entity id, set once Join Game is
// observed.
func (s *Session) PlayerEntityID() int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playerEntityID
}

// SetPlayerEntityID records the player's own entity id.
func (s *Session) SetPlayerEntityID(id int32) error {
	if id < 0 {
		return fmt.Errorf("session: player entity id must be non-negative, got %d", id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playerEntityID = id
	return nil
}

// LoginUsername returns the username captured from the Login Start
// packet, before any fakename rewrite is applied.
func (s *Session) LoginUsername() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loginUsername
}

// SetLoginUsername records the username captured from the Login Start
// packet.
func (s *Session) SetLoginUsername(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loginUsername = name
}

// SetFakenameInput validates and stores the "FakenameInput" preference.
// The GUI requires more than a single character so an accidental empty
// or one-key input never gets sent to the server as a username.
func (s *Session) SetFakenameInput(name string) error {
	if len(name) <= 1 {
		return fmt.Errorf("session: FakenameInput must be longer than one character")
	}
	return s.SetPreference("FakenameInput", name)
}

// GetPreference returns the named preference's value. It fails, rather
// than returning a zero value, when the name was never set: a missing
// preference means the GUI and proxy have drifted out of sync, which
// should surface immediately rather than silently apply a default.
func (s *Session) GetPreference(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.preferences[name]
	if !ok {
		return "", fmt.Errorf("session: preference %q not set", name)
	}
	return v, nil
}

// SetPreference stores a preference's value.
func (s *Session) SetPreference(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preferences[name] = value
	return nil
}

// PreferenceNames returns every preference name currently set, for
// iterating at startup or when persisting to disk.
func (s *Session) PreferenceNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.preferences))
	for k := range s.preferences {
		names = append(names, k)
	}
	return names
}

// LastEffectMetadata returns the cached metadata for entityID, if any.
func (s *Session) LastEffectMetadata(entityID int32) (wire.EntityMetadata, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.lastEffectMetadata[entityID]
	return m, ok
}

// SetLastEffectMetadata caches the most recently observed metadata for
// entityID.
func (s *Session) SetLastEffectMetadata(entityID int32, m wire.EntityMetadata) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastEffectMetadata[entityID] = m
}

// Target returns the entity id most recently targeted under name.
func (s *Session) Target(name string) (int32, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.target[name]
	return id, ok
}

// SetTarget records the entity id most recently targeted under name.
func (s *Session) SetTarget(name string, entityID int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target[name] = entityID
}

// SetAbilities caches the most recently observed Player Abilities triple.
func (s *Session) SetAbilities(flags int8, flyingSpeed, fov float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.abilitiesSet = true
	s.abilitiesFlags = flags
	s.abilitiesFlying = flyingSpeed
	s.abilitiesFov = fov
}

// Abilities returns the most recently cached Player Abilities triple. ok is
// false until the first real Player Abilities packet has been observed.
func (s *Session) Abilities() (flags int8, flyingSpeed, fov float32, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.abilitiesFlags, s.abilitiesFlying, s.abilitiesFov, s.abilitiesSet
}

// Shutdown marks the session as shutting down and wakes everyone waiting
// on WaitShutdown.
func (s *Session) Shutdown() {
	s.mu.Lock()
	s.shutdown = true
	s.mu.Unlock()
	s.shutdownCond.Broadcast()
}

// WaitShutdown blocks until Shutdown has been called.
func (s *Session) WaitShutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for !s.shutdown {
		s.shutdownCond.Wait()
	}
}

// IsShutdown reports whether Shutdown has been called.
func (s *Session) IsShutdown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shutdown
}
