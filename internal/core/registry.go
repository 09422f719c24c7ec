package core

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/dkeye/relay/internal/domain"
	"github.com/rs/zerolog/log"
)

type RoomInfo struct {
	Name        domain.RoomName `json:"name"`
	MemberCount int             `json:"client_count"`
}

// JoinResult describes what a join changed.
type JoinResult struct {
	Created bool
	Already bool
	// Left is the room the session was moved out of, if any.
	Left        domain.RoomName
	LeftDeleted bool
}

// LeaveResult describes what a leave changed.
type LeaveResult struct {
	Room    domain.RoomName
	Deleted bool
}

// Registry maps room names to member sets.
// A room with zero members is never present.
type Registry struct {
	mu    sync.RWMutex
	rooms map[domain.RoomName]map[domain.ConnID]*Session
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[domain.RoomName]map[domain.ConnID]*Session)}
}

// EnsureAndJoin creates the room if needed and adds s to it.
func (r *Registry) EnsureAndJoin(name domain.RoomName, s *Session) (JoinResult, error) {
	return r.join(name, s, true)
}

// Join adds s to an existing room and fails with domain.ErrRoomNotFound otherwise.
func (r *Registry) Join(name domain.RoomName, s *Session) (JoinResult, error) {
	return r.join(name, s, false)
}

func (r *Registry) join(name domain.RoomName, s *Session, create bool) (JoinResult, error) {
	var res JoinResult
	if name == "" {
		return res, domain.ErrInvalidRoomName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[name]
	if ok {
		if _, in := members[s.ID()]; in {
			s.SetRoom(name)
			res.Already = true
			return res, nil
		}
	} else if !create {
		return res, fmt.Errorf("join %q: %w", name, domain.ErrRoomNotFound)
	}

	if prev, in := s.Room(); in && prev != name {
		if removed, deleted := r.removeLocked(prev, s.ID()); removed {
			res.Left, res.LeftDeleted = prev, deleted
		}
	}

	if !ok {
		members = make(map[domain.ConnID]*Session)
		r.rooms[name] = members
		res.Created = true
		log.Info().Str("module", "core.registry").Str("room", string(name)).Msg("room created")
	}
	members[s.ID()] = s
	s.SetRoom(name)
	log.Info().Str("module", "core.registry").Str("sid", string(s.ID())).Str("room", string(name)).Int("members", len(members)).Msg("member added")
	return res, nil
}

// Leave removes s from the room its back-reference points at.
// A stale back-reference is cleared and reported as not a member.
func (r *Registry) Leave(s *Session) (LeaveResult, bool) {
	name, ok := s.Room()
	if !ok {
		return LeaveResult{}, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	removed, deleted := r.removeLocked(name, s.ID())
	s.ClearRoom()
	if !removed {
		log.Debug().Str("module", "core.registry").Str("sid", string(s.ID())).Str("room", string(name)).Msg("stale room reference")
		return LeaveResult{}, false
	}
	return LeaveResult{Room: name, Deleted: deleted}, true
}

// removeLocked deletes the room in the same critical section once it empties.
func (r *Registry) removeLocked(name domain.RoomName, id domain.ConnID) (removed, deleted bool) {
	members, ok := r.rooms[name]
	if !ok {
		return false, false
	}
	if _, in := members[id]; !in {
		return false, false
	}
	delete(members, id)
	log.Info().Str("module", "core.registry").Str("sid", string(id)).Str("room", string(name)).Int("members", len(members)).Msg("member removed")
	if len(members) == 0 {
		delete(r.rooms, name)
		log.Info().Str("module", "core.registry").Str("room", string(name)).Msg("room deleted")
		return true, true
	}
	return true, false
}

// Members returns a copy of the current member set, empty if the room is absent.
func (r *Registry) Members(name domain.RoomName) []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	members := r.rooms[name]
	out := make([]*Session, 0, len(members))
	for _, s := range members {
		out = append(out, s)
	}
	return out
}

func (r *Registry) Exists(name domain.RoomName) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rooms[name]
	return ok
}

func (r *Registry) IsMember(name domain.RoomName, id domain.ConnID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rooms[name][id]
	return ok
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

func (r *Registry) List() []RoomInfo {
	r.mu.RLock()
	out := make([]RoomInfo, 0, len(r.rooms))
	for name, members := range r.rooms {
		out = append(out, RoomInfo{Name: name, MemberCount: len(members)})
	}
	r.mu.RUnlock()
	slices.SortFunc(out, func(a, b RoomInfo) int { return strings.Compare(string(a.Name), string(b.Name)) })
	return out
}
