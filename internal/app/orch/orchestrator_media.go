package orch

import (
	"context"
	"fmt"

	"github.com/dkeye/relay/internal/core"
	"github.com/dkeye/relay/internal/domain"
	"github.com/rs/zerolog/log"
)

// ArmBinary tells the router how to route the session's next binary frame.
// Only a member of room can arm it.
func (o *Orchestrator) ArmBinary(s *core.Session, kind domain.BinaryKind, room domain.RoomName) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: binary kind %q", domain.ErrInvalidFieldValue, kind)
	}
	if err := o.member(s, room); err != nil {
		return fmt.Errorf("%s for %q: %w", kind, room, err)
	}
	s.SetPendingBinary(kind, room)
	log.Debug().Str("module", "orch").Str("sid", string(s.ID())).Str("kind", string(kind)).Str("room", string(room)).Msg("binary armed")
	return nil
}

// OnBinary consumes the armed marker exactly once. Unarmed frames are captured or dropped.
func (o *Orchestrator) OnBinary(ctx context.Context, s *core.Session, data []byte) {
	logger := log.With().Str("module", "orch").Str("sid", string(s.ID())).Int("bytes", len(data)).Logger()

	p, ok := s.TakePendingBinary()
	if ok {
		if err := o.member(s, p.Room); err != nil {
			logger.Warn().Err(err).Str("room", string(p.Room)).Msg("binary target no longer reachable, dropping")
			return
		}
		res := o.Publish(p.Room, core.Binary(data), s.ID())
		logger.Debug().Str("room", string(p.Room)).Str("kind", string(p.Kind)).Int("sent_to", res.SentTo).Msg("binary forwarded")
		return
	}

	if o.Capture == nil {
		logger.Debug().Msg("unarmed binary frame dropped")
		return
	}
	art, err := o.Capture.Capture(ctx, data)
	if err != nil {
		logger.Error().Err(err).Msg("capture failed")
		return
	}
	logger.Info().Str("bucket", string(art.Bucket)).Str("key", art.Key).Msg("binary captured")
}
