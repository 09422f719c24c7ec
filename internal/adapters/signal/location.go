package signal

import (
	"github.com/dkeye/relay/internal/core"
	"github.com/dkeye/relay/internal/domain"
	"github.com/dkeye/relay/internal/protocol"
	"github.com/rs/zerolog/log"
)

// handleLocation drops updates with unusable coordinates; nothing is sent back.
func (rt *Router) handleLocation(sess *core.Session, typ string, data []byte) {
	var p protocol.LocationPayload
	if !rt.decode(sess, typ, data, &p) {
		return
	}
	name, ok := rt.roomName(sess, typ, p.RoomName)
	if !ok {
		return
	}
	loc, err := p.Location()
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sess.ID())).Str("room", string(name)).Msg("bad coordinates")
		return
	}
	if err := rt.Orch.UpdateLocation(sess, name, domain.NormalizeUserID(p.UserID), loc, typ == protocol.TypeGPS); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sess.ID())).Str("room", string(name)).Msg("location dropped")
	}
}
