package signal

import (
	"github.com/dkeye/relay/internal/core"
	"github.com/dkeye/relay/internal/protocol"
	"github.com/rs/zerolog/log"
)

// handleRTCSignal relays offer/answer/ice to the rest of the room. The server is not a peer,
// so the payload goes out exactly as received.
func (rt *Router) handleRTCSignal(sess *core.Session, typ string, data []byte) {
	var p protocol.SignalPayload
	if !rt.decode(sess, typ, data, &p) {
		return
	}
	if !p.Present() {
		log.Warn().Str("module", "signal").Str("sid", string(sess.ID())).Str("type", typ).Msg("signaling without payload")
		return
	}
	name, ok := rt.roomName(sess, typ, p.RoomName)
	if !ok {
		return
	}
	if err := p.CheckSignal(typ); err != nil {
		log.Debug().Err(err).Str("module", "signal").Str("sid", string(sess.ID())).Str("type", typ).Msg("untyped signaling payload, relaying as is")
	}
	if err := rt.Orch.RelaySignal(sess, typ, name, p.Payload); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sess.ID())).Str("room", string(name)).Msg("signaling dropped")
	}
}
