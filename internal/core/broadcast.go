package core

import (
	"errors"

	"github.com/dkeye/relay/internal/domain"
	"github.com/rs/zerolog/log"
)

// PublishResult reports delivery stats/backpressure to orchestrator.
type PublishResult struct {
	SentTo  int
	Skipped int
	Dropped []*Session
}

// Broadcaster fans frames out to a room's current members.
type Broadcaster struct {
	reg *Registry
}

func NewBroadcaster(reg *Registry) *Broadcaster {
	return &Broadcaster{reg: reg}
}

// Broadcast sends f to every member of room except exclude ("" excludes nobody).
// A failed send to one member never stops delivery to the rest.
func (b *Broadcaster) Broadcast(room domain.RoomName, f Frame, exclude domain.ConnID) PublishResult {
	res := PublishResult{}
	for _, m := range b.reg.Members(room) {
		if m.ID() == exclude {
			continue
		}
		if m.Disconnected() {
			res.Skipped++
			continue
		}
		err := m.Send(f)
		switch {
		case err == nil:
			res.SentTo++
		case errors.Is(err, ErrBackpressure):
			res.Dropped = append(res.Dropped, m)
		default:
			res.Skipped++
		}
	}
	log.Debug().
		Str("module", "core.broadcast").
		Str("room", string(room)).
		Str("kind", f.Kind.String()).
		Str("exclude", string(exclude)).
		Int("sent_to", res.SentTo).
		Int("skipped", res.Skipped).
		Int("dropped", len(res.Dropped)).
		Msg("broadcast result")
	return res
}
