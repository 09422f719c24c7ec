package signal

import (
	"github.com/dkeye/relay/internal/core"
	"github.com/dkeye/relay/internal/domain"
	"github.com/dkeye/relay/internal/protocol"
	"github.com/rs/zerolog/log"
)

func (rt *Router) handleArmBinary(sess *core.Session, kind domain.BinaryKind, data []byte) {
	var p protocol.RoomPayload
	if !rt.decode(sess, string(kind), data, &p) {
		return
	}
	name, ok := rt.roomName(sess, string(kind), p.RoomName)
	if !ok {
		return
	}
	if err := rt.Orch.ArmBinary(sess, kind, name); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sess.ID())).Str("room", string(name)).Msg("binary not armed")
	}
}
