package core

import (
	"sync"
	"sync/atomic"

	"github.com/dkeye/relay/internal/domain"
)

// Session is the typed per-connection state record.
// It holds only a back-reference to its room; the Registry owns membership.
type Session struct {
	id        domain.ConnID
	transport Transport

	mu       sync.Mutex
	userID   domain.UserID
	room     domain.RoomName
	pending  *domain.PendingBinary
	location *domain.Location

	disconnected atomic.Bool
}

func NewSession(id domain.ConnID, user domain.UserID, t Transport) *Session {
	if user == "" {
		user = domain.UserID(id)
	}
	return &Session{id: id, userID: user, transport: t}
}

func (s *Session) ID() domain.ConnID { return s.id }

func (s *Session) UserID() domain.UserID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

func (s *Session) SetUserID(u domain.UserID) {
	if u == "" {
		return
	}
	s.mu.Lock()
	s.userID = u
	s.mu.Unlock()
}

// Room returns the back-reference; false when the session is in no room.
func (s *Session) Room() (domain.RoomName, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.room, s.room != ""
}

func (s *Session) SetRoom(name domain.RoomName) {
	s.mu.Lock()
	s.room = name
	s.mu.Unlock()
}

func (s *Session) ClearRoom() { s.SetRoom("") }

func (s *Session) SetPendingBinary(kind domain.BinaryKind, room domain.RoomName) {
	s.mu.Lock()
	s.pending = &domain.PendingBinary{Kind: kind, Room: room}
	s.mu.Unlock()
}

// TakePendingBinary returns the armed marker and disarms it in one step.
func (s *Session) TakePendingBinary() (domain.PendingBinary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return domain.PendingBinary{}, false
	}
	p := *s.pending
	s.pending = nil
	return p, true
}

func (s *Session) SetLocation(loc domain.Location) {
	s.mu.Lock()
	s.location = &loc
	s.mu.Unlock()
}

func (s *Session) Location() (domain.Location, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.location == nil {
		return domain.Location{}, false
	}
	return *s.location, true
}

// Reset discards all transient state.
func (s *Session) Reset() {
	s.mu.Lock()
	s.pending = nil
	s.location = nil
	s.mu.Unlock()
}

func (s *Session) Send(f Frame) error {
	if s.transport == nil {
		return ErrClosed
	}
	return s.transport.TrySend(f)
}

func (s *Session) Close() {
	if s.transport != nil {
		s.transport.Close()
	}
}

// MarkDisconnected reports true only for the first caller.
func (s *Session) MarkDisconnected() bool {
	return s.disconnected.CompareAndSwap(false, true)
}

func (s *Session) Disconnected() bool { return s.disconnected.Load() }
