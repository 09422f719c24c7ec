package signal

import (
	"github.com/dkeye/relay/internal/core"
	"github.com/dkeye/relay/internal/protocol"
)

func (rt *Router) handlePing(sess *core.Session) {
	rt.Orch.Send(sess, protocol.Pong{Type: protocol.TypePong})
}
