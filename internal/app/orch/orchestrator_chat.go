package orch

import (
	"encoding/json"
	"fmt"

	"github.com/dkeye/relay/internal/core"
	"github.com/dkeye/relay/internal/domain"
	"github.com/dkeye/relay/internal/protocol"
)

// member reports domain.ErrRoomNotFound for an absent room (including the empty name)
// and domain.ErrNotMember when s is not in it.
func (o *Orchestrator) member(s *core.Session, room domain.RoomName) error {
	if o.Registry.IsMember(room, s.ID()) {
		return nil
	}
	if !o.Registry.Exists(room) {
		return domain.ErrRoomNotFound
	}
	return domain.ErrNotMember
}

// SendMessage relays text to the room's other members. Only members may send.
func (o *Orchestrator) SendMessage(s *core.Session, room domain.RoomName, text string) error {
	if err := o.member(s, room); err != nil {
		return fmt.Errorf("message to %q: %w", room, err)
	}
	o.publishJSON(room, protocol.Message{Type: protocol.TypeMessage, Text: text, From: s.ID()}, s.ID())
	return nil
}

// SendImage relays an inline (base64) image to the room's other members.
func (o *Orchestrator) SendImage(s *core.Session, room domain.RoomName, data string) error {
	if err := o.member(s, room); err != nil {
		return fmt.Errorf("image to %q: %w", room, err)
	}
	o.publishJSON(room, protocol.Image{Type: protocol.TypeImage, Data: data, From: s.ID()}, s.ID())
	return nil
}

// RelaySignal forwards an offer, answer or ice payload unchanged to the room's other members.
func (o *Orchestrator) RelaySignal(s *core.Session, kind string, room domain.RoomName, payload json.RawMessage) error {
	if err := o.member(s, room); err != nil {
		return fmt.Errorf("%s to %q: %w", kind, room, err)
	}
	o.publishJSON(room, protocol.Signal{Type: kind, From: s.ID(), Payload: payload}, s.ID())
	return nil
}
