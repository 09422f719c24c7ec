package signal

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkeye/relay/internal/app/orch"
	"github.com/dkeye/relay/internal/core"
	"github.com/dkeye/relay/internal/domain"
	"github.com/dkeye/relay/internal/protocol"
	"github.com/rs/zerolog/log"
)

// Router classifies inbound frames by opcode and dispatches text frames on their type.
type Router struct {
	Orch *orch.Orchestrator
}

func NewRouter(o *orch.Orchestrator) *Router {
	return &Router{Orch: o}
}

func (rt *Router) Dispatch(ctx context.Context, sess *core.Session, kind core.FrameKind, data []byte) {
	if kind == core.BinaryFrame {
		rt.Orch.OnBinary(ctx, sess, data)
		return
	}
	rt.handleSignal(sess, data)
}

func (rt *Router) handleSignal(sess *core.Session, data []byte) {
	typ, err := protocol.PeekType(data)
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sess.ID())).Msg("bad json")
		return
	}

	switch typ {
	case protocol.TypeCreate:
		rt.handleCreate(sess, data)
	case protocol.TypeJoin:
		rt.handleJoin(sess, data)
	case protocol.TypeLeave:
		rt.handleLeave(sess)
	case protocol.TypeMessage:
		rt.handleMessage(sess, data)
	case protocol.TypeImage:
		rt.handleImage(sess, data)
	case protocol.TypeLocation, protocol.TypeGPS:
		rt.handleLocation(sess, typ, data)
	case protocol.TypeBinaryImage, protocol.TypeBinaryVideo, protocol.TypeBinaryAudio:
		rt.handleArmBinary(sess, domain.BinaryKind(typ), data)
	case protocol.TypeOffer, protocol.TypeAnswer, protocol.TypeICE:
		rt.handleRTCSignal(sess, typ, data)
	case protocol.TypePing:
		rt.handlePing(sess)
	default:
		log.Warn().Str("module", "signal").Str("sid", string(sess.ID())).Str("type", typ).Msg("unknown signal")
		rt.replyError(sess, fmt.Errorf("%w: %s", domain.ErrUnknownMessageType, typ))
	}
}

// decode logs and reports false for malformed or incomplete payloads; they are never answered.
func (rt *Router) decode(sess *core.Session, typ string, data []byte, v any) bool {
	if err := protocol.Decode(data, v); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sess.ID())).Str("type", typ).Msg("bad payload")
		return false
	}
	return true
}

func (rt *Router) roomName(sess *core.Session, typ, raw string) (domain.RoomName, bool) {
	name, err := domain.ParseRoomName(raw)
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sess.ID())).Str("type", typ).Msg("bad room name")
		return "", false
	}
	return name, true
}

func (rt *Router) replyError(sess *core.Session, err error) {
	rt.Orch.Send(sess, protocol.ErrorNotice(errorText(err)))
}

func errorText(err error) string {
	var re *roomError
	if errors.As(err, &re) {
		if errors.Is(re.err, domain.ErrNotMember) {
			return fmt.Sprintf("Not a member of room %q", re.room)
		}
		return fmt.Sprintf("Room %q does not exist", re.room)
	}
	return err.Error()
}

// roomError carries the room name for client-facing room errors.
type roomError struct {
	room domain.RoomName
	err  error
}

func (e *roomError) Error() string { return fmt.Sprintf("%s: %v", e.room, e.err) }
func (e *roomError) Unwrap() error { return e.err }

func scoped(room domain.RoomName, err error) error {
	if errors.Is(err, domain.ErrRoomNotFound) || errors.Is(err, domain.ErrNotMember) {
		return &roomError{room: room, err: err}
	}
	return err
}
