package signal

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/dkeye/relay/internal/app/orch"
	"github.com/dkeye/relay/internal/config"
	"github.com/dkeye/relay/internal/core"
	"github.com/dkeye/relay/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
)

const writeWait = 5 * time.Second

type SignalWSController struct {
	Orch   *orch.Orchestrator
	Router *Router

	readLimit  int64
	pingPeriod time.Duration
	sendBuffer int
	rate       config.RateConfig
}

const defaultPingPeriod = 54 * time.Second

func NewSignalWSController(o *orch.Orchestrator, cfg *config.Config) *SignalWSController {
	ping := cfg.PingPeriod
	if ping <= 0 {
		ping = defaultPingPeriod
	}
	buf := cfg.SendBuffer
	if buf < 1 {
		buf = 1
	}
	return &SignalWSController{
		Orch:       o,
		Router:     NewRouter(o),
		readLimit:  cfg.ReadLimit,
		pingPeriod: ping,
		sendBuffer: buf,
		rate:       cfg.Rate,
	}
}

// WsSignalConn is the core.Transport over one websocket.
type WsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return core.ErrClosed
	}
	select {
	case c.send <- f:
	default:
		return core.ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleSignal upgrades the request and serves the connection until it closes.
func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}

	conn := &WsSignalConn{
		conn: ws,
		send: make(chan core.Frame, ctl.sendBuffer),
	}
	sess := core.NewSession(domain.NewConnID(), domain.NormalizeUserID(c.GetString("client_token")), conn)
	log.Info().Str("module", "signal").Str("sid", string(sess.ID())).Str("remote", ws.RemoteAddr().String()).Msg("new WS connection")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ctl.Orch.Connect(sess)

	var wg conc.WaitGroup
	wg.Go(func() { ctl.writePump(ctx, conn) })
	wg.Go(func() {
		defer cancel()
		ctl.readPump(ctx, sess, conn)
	})
	if r := wg.WaitAndRecover(); r != nil {
		log.Error().Str("module", "signal").Str("sid", string(sess.ID())).Str("panic", r.String()).Msg("connection handler panicked")
	}
}
