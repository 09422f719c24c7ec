package orch

import (
	"fmt"

	"github.com/dkeye/relay/internal/core"
	"github.com/dkeye/relay/internal/domain"
	"github.com/dkeye/relay/internal/protocol"
	"github.com/rs/zerolog/log"
)

// UpdateLocation upserts presence and sends the room's full snapshot to every member.
// With relayGPS the single point is also relayed to the other members as a gps frame.
// Non-members are rejected so every entry is pruned when its owner leaves the room.
func (o *Orchestrator) UpdateLocation(s *core.Session, room domain.RoomName, user domain.UserID, loc domain.Location, relayGPS bool) error {
	if err := o.member(s, room); err != nil {
		return fmt.Errorf("location for %q: %w", room, err)
	}
	s.SetLocation(loc)
	snapshot := o.Presence.Update(room, user, s.ID(), loc)
	log.Debug().Str("module", "orch").Str("sid", string(s.ID())).Str("room", string(room)).Int("entries", len(snapshot)).Msg("location updated")

	o.publishJSON(room, protocol.Locations{Type: protocol.TypeLocations, RoomName: room, Locations: snapshot}, "")
	if relayGPS {
		o.publishJSON(room, protocol.GPS{
			Type:      protocol.TypeGPS,
			UserID:    user,
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
		}, s.ID())
	}
	return nil
}

// Locations returns the room's current presence snapshot.
func (o *Orchestrator) Locations(room domain.RoomName) []core.PresenceEntry {
	return o.Presence.Snapshot(room)
}

func (o *Orchestrator) publishLocations(room domain.RoomName) {
	if !o.Registry.Exists(room) {
		return
	}
	o.publishJSON(room, protocol.Locations{Type: protocol.TypeLocations, RoomName: room, Locations: o.Presence.Snapshot(room)}, "")
}
