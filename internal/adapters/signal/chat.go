package signal

import (
	"github.com/dkeye/relay/internal/core"
	"github.com/dkeye/relay/internal/domain"
	"github.com/dkeye/relay/internal/protocol"
)

// handleMessage answers a missing, unknown or foreign room with an error to the sender.
func (rt *Router) handleMessage(sess *core.Session, data []byte) {
	var p protocol.MessagePayload
	if !rt.decode(sess, protocol.TypeMessage, data, &p) {
		return
	}
	name := domain.RoomName(p.RoomName)
	if err := rt.Orch.SendMessage(sess, name, p.Text); err != nil {
		rt.replyError(sess, scoped(name, err))
	}
}

func (rt *Router) handleImage(sess *core.Session, data []byte) {
	var p protocol.ImagePayload
	if !rt.decode(sess, protocol.TypeImage, data, &p) {
		return
	}
	name := domain.RoomName(p.RoomName)
	if err := rt.Orch.SendImage(sess, name, p.Data); err != nil {
		rt.replyError(sess, scoped(name, err))
	}
}
