package signal

import (
	"fmt"

	"github.com/dkeye/relay/internal/core"
	"github.com/dkeye/relay/internal/domain"
	"github.com/dkeye/relay/internal/protocol"
	"github.com/rs/zerolog/log"
)

func (rt *Router) handleCreate(sess *core.Session, data []byte) {
	var p protocol.RoomPayload
	if !rt.decode(sess, protocol.TypeCreate, data, &p) {
		return
	}
	name, ok := rt.roomName(sess, protocol.TypeCreate, p.RoomName)
	if !ok {
		return
	}
	res, err := rt.Orch.Create(sess, name)
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sess.ID())).Msg("create")
		return
	}
	log.Info().Str("module", "signal").Str("sid", string(sess.ID())).Str("room", string(name)).Bool("created", res.Created).Msg("create")
	rt.Orch.Send(sess, protocol.InfoNotice(fmt.Sprintf("Room %q created", name)))
}

func (rt *Router) handleJoin(sess *core.Session, data []byte) {
	var p protocol.JoinPayload
	if !rt.decode(sess, protocol.TypeJoin, data, &p) {
		return
	}
	name, ok := rt.roomName(sess, protocol.TypeJoin, p.RoomName)
	if !ok {
		return
	}
	if _, err := rt.Orch.Join(sess, name, domain.NormalizeUserID(p.UserID)); err != nil {
		rt.replyError(sess, scoped(name, err))
		return
	}
	log.Info().Str("module", "signal").Str("sid", string(sess.ID())).Str("room", string(name)).Msg("join")
	rt.Orch.Send(sess, protocol.InfoNotice(fmt.Sprintf("Joined room %q", name)))
}

// handleLeave exits the current room; the connection stays open.
func (rt *Router) handleLeave(sess *core.Session) {
	res, ok := rt.Orch.Leave(sess)
	if !ok {
		rt.Orch.Send(sess, protocol.InfoNotice("Not in a room"))
		return
	}
	log.Info().Str("module", "signal").Str("sid", string(sess.ID())).Str("room", string(res.Room)).Msg("leave")
	rt.Orch.Send(sess, protocol.InfoNotice(fmt.Sprintf("Left room %q", res.Room)))
}
