// Package world holds the process-wide player set and entity-id allocator
// spec.md §3/§5 name as the only shared mutable state a connection handler
// touches outside its own Connection: everything else (palette, registries)
// is read-only after startup. Grounded on ChickenIQ-VibeShitCraft's
// Server.players/nextEID pair (server.go), generalized from a
// monotonic counter to a reusable minimum-free-slot allocator per spec.md
// §8 property 10.
package world

import (
	"sort"
	"sync"

	ns "github.com/go-mclib/mcserver/net_structures"
)

// PaintState is the demo world's per-player opaque state, modeled as an
// explicit optional record rather than a dynamic attribute bag, per §9: the
// last integer cell and the last painted cell. It holds no bounce flag.
type PaintState struct {
	HasCell         bool
	CellX, CellZ    int32
	LastPaintedX, LastPaintedZ int32
}

// Player is the live per-connection record the world set owns; a
// connection reaches it only through its own entry, never iterates anyone
// else's fields concurrently with that player's own handler.
type Player struct {
	Username string
	UUID     ns.UUID
	Protocol int32
	EntityID int32

	X, Y, Z float64

	Paint PaintState
}

// Set is the mutex-guarded global player collection plus entity-id
// allocator described in spec.md §5: "the global player set is mutated
// under a single mutual-exclusion guard; the entity-id allocator ... is
// guarded by the same."
type Set struct {
	mu      sync.Mutex
	players map[int32]*Player
}

// NewSet returns an empty player set.
func NewSet() *Set {
	return &Set{players: make(map[int32]*Player)}
}

// Join allocates the smallest unused non-negative entity id, registers p
// under it, and returns that id.
func (s *Set) Join(p *Player) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextFreeIDLocked()
	p.EntityID = id
	s.players[id] = p
	return id
}

// Leave removes the player at id, making that id eligible for reuse.
func (s *Set) Leave(id int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
}

// Get returns the player at id, if present.
func (s *Set) Get(id int32) (*Player, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.players[id]
	return p, ok
}

// Each calls fn for every currently-joined player, in entity-id order, under
// the set's lock held only long enough to snapshot the slice — fn itself
// runs outside the lock so it may block without stalling Join/Leave.
func (s *Set) Each(fn func(*Player)) {
	s.mu.Lock()
	ids := make([]int32, 0, len(s.players))
	for id := range s.players {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	snapshot := make([]*Player, len(ids))
	for i, id := range ids {
		snapshot[i] = s.players[id]
	}
	s.mu.Unlock()

	for _, p := range snapshot {
		fn(p)
	}
}

// Len reports the current number of joined players.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.players)
}

// nextFreeIDLocked returns the minimum non-negative integer not currently a
// key of s.players. Called with s.mu held.
func (s *Set) nextFreeIDLocked() int32 {
	var id int32
	for {
		if _, taken := s.players[id]; !taken {
			return id
		}
		id++
	}
}
