package core

import (
	"slices"
	"strings"
	"sync"

	"github.com/dkeye/relay/internal/domain"
)

type PresenceEntry struct {
	UserID    domain.UserID `json:"userId"`
	Latitude  float64       `json:"latitude"`
	Longitude float64       `json:"longitude"`
}

type presenceKey struct {
	room domain.RoomName
	user domain.UserID
}

// Presence tracks the latest location per (room, user).
// Each entry is owned by the connection that last wrote it.
type Presence struct {
	mu      sync.Mutex
	rooms   map[domain.RoomName]map[domain.UserID]domain.Location
	owners  map[domain.ConnID]map[presenceKey]struct{}
	holders map[presenceKey]domain.ConnID
}

func NewPresence() *Presence {
	return &Presence{
		rooms:   make(map[domain.RoomName]map[domain.UserID]domain.Location),
		owners:  make(map[domain.ConnID]map[presenceKey]struct{}),
		holders: make(map[presenceKey]domain.ConnID),
	}
}

// Update upserts (last write wins) and returns the room's full snapshot.
func (p *Presence) Update(room domain.RoomName, user domain.UserID, owner domain.ConnID, loc domain.Location) []PresenceEntry {
	p.mu.Lock()
	defer p.mu.Unlock()

	entries, ok := p.rooms[room]
	if !ok {
		entries = make(map[domain.UserID]domain.Location)
		p.rooms[room] = entries
	}
	entries[user] = loc

	key := presenceKey{room: room, user: user}
	if prev, ok := p.holders[key]; ok && prev != owner {
		p.disown(prev, key)
	}
	p.holders[key] = owner
	owned, ok := p.owners[owner]
	if !ok {
		owned = make(map[presenceKey]struct{})
		p.owners[owner] = owned
	}
	owned[key] = struct{}{}

	return p.snapshotLocked(room)
}

// RemoveOwner drops every entry owned by the connection and returns the affected rooms.
func (p *Presence) RemoveOwner(owner domain.ConnID) []domain.RoomName {
	p.mu.Lock()
	defer p.mu.Unlock()

	var rooms []domain.RoomName
	for key := range p.owners[owner] {
		p.removeLocked(key)
		if !slices.Contains(rooms, key.room) {
			rooms = append(rooms, key.room)
		}
	}
	delete(p.owners, owner)
	slices.Sort(rooms)
	return rooms
}

// RemoveOwnerFromRoom drops the connection's entries for one room.
func (p *Presence) RemoveOwnerFromRoom(owner domain.ConnID, room domain.RoomName) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	removed := false
	for key := range p.owners[owner] {
		if key.room != room {
			continue
		}
		p.removeLocked(key)
		p.disown(owner, key)
		removed = true
	}
	return removed
}

func (p *Presence) Snapshot(room domain.RoomName) []PresenceEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked(room)
}

// Rooms reports how many rooms currently hold presence state.
func (p *Presence) Rooms() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.rooms)
}

func (p *Presence) removeLocked(key presenceKey) {
	delete(p.holders, key)
	entries, ok := p.rooms[key.room]
	if !ok {
		return
	}
	delete(entries, key.user)
	if len(entries) == 0 {
		delete(p.rooms, key.room)
	}
}

func (p *Presence) disown(owner domain.ConnID, key presenceKey) {
	owned, ok := p.owners[owner]
	if !ok {
		return
	}
	delete(owned, key)
	if len(owned) == 0 {
		delete(p.owners, owner)
	}
}

func (p *Presence) snapshotLocked(room domain.RoomName) []PresenceEntry {
	entries := p.rooms[room]
	out := make([]PresenceEntry, 0, len(entries))
	for user, loc := range entries {
		out = append(out, PresenceEntry{UserID: user, Latitude: loc.Latitude, Longitude: loc.Longitude})
	}
	slices.SortFunc(out, func(a, b PresenceEntry) int { return strings.Compare(string(a.UserID), string(b.UserID)) })
	return out
}
