package orch

import (
	"github.com/dkeye/relay/internal/app"
	"github.com/dkeye/relay/internal/core"
	"github.com/dkeye/relay/internal/domain"
	"github.com/dkeye/relay/internal/protocol"
	"github.com/rs/zerolog/log"
)

// Create ensures the room exists and puts s in it. It never fails for a valid name.
func (o *Orchestrator) Create(s *core.Session, name domain.RoomName) (core.JoinResult, error) {
	res, err := o.Registry.EnsureAndJoin(name, s)
	if err != nil {
		return res, err
	}
	o.joined(s, name, res)
	return res, nil
}

// Join follows the configured join policy; strict joins of a missing room return domain.ErrRoomNotFound.
func (o *Orchestrator) Join(s *core.Session, name domain.RoomName, user domain.UserID) (core.JoinResult, error) {
	var (
		res core.JoinResult
		err error
	)
	if o.Joins == app.JoinLenient {
		res, err = o.Registry.EnsureAndJoin(name, s)
	} else {
		res, err = o.Registry.Join(name, s)
	}
	if err != nil {
		log.Info().Err(err).Str("module", "orch").Str("sid", string(s.ID())).Str("room", string(name)).Msg("join rejected")
		return res, err
	}
	s.SetUserID(user)
	o.joined(s, name, res)
	return res, nil
}

// Leave takes s out of its current room, if any.
func (o *Orchestrator) Leave(s *core.Session) (core.LeaveResult, bool) {
	res, ok := o.Registry.Leave(s)
	if ok {
		o.departed(s, res.Room)
	}
	return res, ok
}

func (o *Orchestrator) joined(s *core.Session, name domain.RoomName, res core.JoinResult) {
	if res.Left != "" {
		o.departed(s, res.Left)
	}
	if res.Already {
		return
	}
	o.publishJSON(name, protocol.Client{Type: protocol.TypeNewClient, ID: s.ID()}, s.ID())
}

// departed tells the remaining members and drops the session's presence in that room.
func (o *Orchestrator) departed(s *core.Session, room domain.RoomName) {
	if o.Presence.RemoveOwnerFromRoom(s.ID(), room) {
		o.publishLocations(room)
	}
	o.publishJSON(room, protocol.Client{Type: protocol.TypeClientLeft, ID: s.ID()}, s.ID())
}
