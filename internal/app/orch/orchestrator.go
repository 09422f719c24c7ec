package orch

import (
	"context"

	"github.com/dkeye/relay/internal/app"
	"github.com/dkeye/relay/internal/app/capture"
	"github.com/dkeye/relay/internal/core"
	"github.com/dkeye/relay/internal/domain"
	"github.com/dkeye/relay/internal/protocol"
	"github.com/rs/zerolog/log"
)

// Capturer persists binary frames that arrive without an armed marker.
type Capturer interface {
	Capture(ctx context.Context, data []byte) (capture.Artifact, error)
}

type Orchestrator struct {
	Registry  *core.Registry
	Presence  *core.Presence
	Broadcast *core.Broadcaster
	Policy    app.Policy
	Joins     app.JoinPolicy
	// Capture is nil unless the capture variant is enabled.
	Capture Capturer
}

func New(policy app.Policy, joins app.JoinPolicy) *Orchestrator {
	reg := core.NewRegistry()
	return &Orchestrator{
		Registry:  reg,
		Presence:  core.NewPresence(),
		Broadcast: core.NewBroadcaster(reg),
		Policy:    policy,
		Joins:     joins,
	}
}

// Connect greets a new session with its id.
func (o *Orchestrator) Connect(s *core.Session) {
	log.Info().Str("module", "orch").Str("sid", string(s.ID())).Msg("connected")
	o.Send(s, protocol.Client{Type: protocol.TypeClientID, ID: s.ID()})
}

// Disconnect runs membership, presence and marker cleanup once per session.
func (o *Orchestrator) Disconnect(s *core.Session) {
	if !s.MarkDisconnected() {
		return
	}
	if res, ok := o.Registry.Leave(s); ok {
		o.departed(s, res.Room)
	}
	for _, room := range o.Presence.RemoveOwner(s.ID()) {
		o.publishLocations(room)
	}
	s.Reset()
	log.Info().Str("module", "orch").Str("sid", string(s.ID())).Msg("disconnected")
}

// Send encodes v and delivers it to one session, best effort.
func (o *Orchestrator) Send(s *core.Session, v any) {
	f, err := protocol.Encode(v)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("encode reply")
		return
	}
	if err := s.Send(f); err != nil {
		log.Debug().Err(err).Str("module", "orch").Str("sid", string(s.ID())).Msg("reply not delivered")
	}
}

// Publish fans f out to room and applies the backpressure policy to slow members.
func (o *Orchestrator) Publish(room domain.RoomName, f core.Frame, exclude domain.ConnID) core.PublishResult {
	res := o.Broadcast.Broadcast(room, f, exclude)
	if o.Policy == nil {
		return res
	}
	for _, slow := range res.Dropped {
		switch o.Policy.OnBackPressure(room, slow) {
		case app.KickMember:
			log.Warn().Str("module", "orch").Str("sid", string(slow.ID())).Str("room", string(room)).Msg("kicking slow member")
			slow.Close()
		case app.DropFrame, app.NoAction:
		}
	}
	return res
}

func (o *Orchestrator) publishJSON(room domain.RoomName, v any, exclude domain.ConnID) {
	f, err := protocol.Encode(v)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("encode broadcast")
		return
	}
	o.Publish(room, f, exclude)
}
