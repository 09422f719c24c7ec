package signal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/relay/internal/app"
	"github.com/dkeye/relay/internal/app/orch"
	"github.com/dkeye/relay/internal/core"
	"github.com/dkeye/relay/internal/core/coretest"
)

func newTestRouter(joins app.JoinPolicy) *Router {
	return NewRouter(orch.New(app.DropPolicy{}, joins))
}

func text(rt *Router, s *core.Session, raw string) {
	rt.Dispatch(context.Background(), s, core.TextFrame, []byte(raw))
}

func TestRouter_CreateJoinMessage(t *testing.T) {
	rt := newTestRouter(app.JoinStrict)
	a, ta := coretest.NewSession("a")
	b, tb := coretest.NewSession("b")

	text(rt, a, `{"type":"create","roomName":"lobby"}`)
	text(rt, b, `{"type":"join","roomName":"lobby","userId":"bob"}`)
	text(rt, a, `{"type":"message","roomName":"lobby","text":"hi"}`)

	infos := ta.OfType("info")
	require.Len(t, infos, 1)
	assert.Equal(t, `Room "lobby" created`, infos[0]["message"])
	assert.Len(t, tb.OfType("info"), 1)

	msgs := tb.OfType("message")
	require.Len(t, msgs, 1)
	assert.Equal(t, "hi", msgs[0]["text"])
	assert.Empty(t, ta.OfType("message"))
	assert.Equal(t, "bob", string(b.UserID()))
}

func TestRouter_JoinMissingRoom(t *testing.T) {
	rt := newTestRouter(app.JoinStrict)
	a, ta := coretest.NewSession("a")

	text(rt, a, `{"type":"join","roomName":"ghost"}`)

	errs := ta.OfType("error")
	require.Len(t, errs, 1)
	assert.Equal(t, `Room "ghost" does not exist`, errs[0]["message"])
	assert.False(t, rt.Orch.Registry.Exists("ghost"))
}

func TestRouter_MessageToMissingRoom(t *testing.T) {
	rt := newTestRouter(app.JoinStrict)
	a, ta := coretest.NewSession("a")

	text(rt, a, `{"type":"message","roomName":"ghost","text":"hi"}`)
	assert.Len(t, ta.OfType("error"), 1)
}

func TestRouter_DroppedWithoutReply(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"malformed json", `{"type":`},
		{"non numeric latitude", `{"type":"location","roomName":"lobby","userId":"u","latitude":"north","longitude":1}`},
		{"latitude out of range", `{"type":"location","roomName":"lobby","userId":"u","latitude":91,"longitude":1}`},
		{"offer without payload", `{"type":"offer","roomName":"lobby"}`},
		{"ice with null payload", `{"type":"ice","roomName":"lobby","payload":null}`},
		{"image without data", `{"type":"image","roomName":"lobby"}`},
		{"empty room name", `{"type":"create","roomName":""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := newTestRouter(app.JoinStrict)
			a, ta := coretest.NewSession("a")
			b, tb := coretest.NewSession("b")
			_, err := rt.Orch.Create(a, "lobby")
			require.NoError(t, err)
			_, err = rt.Orch.Join(b, "lobby", "")
			require.NoError(t, err)
			ta.Reset()
			tb.Reset()

			text(rt, a, tt.raw)

			assert.Empty(t, ta.Frames())
			assert.Empty(t, tb.Frames())
			assert.Empty(t, rt.Orch.Locations("lobby"))
		})
	}
}

func TestRouter_UnknownType(t *testing.T) {
	rt := newTestRouter(app.JoinStrict)
	a, ta := coretest.NewSession("a")

	text(rt, a, `{"type":"dance"}`)

	errs := ta.OfType("error")
	require.Len(t, errs, 1)
	assert.Equal(t, "unknown message type: dance", errs[0]["message"])
}

func TestRouter_LocationStringCoordinates(t *testing.T) {
	rt := newTestRouter(app.JoinStrict)
	a, ta := coretest.NewSession("a")
	text(rt, a, `{"type":"create","roomName":"trip"}`)

	text(rt, a, `{"type":"location","roomName":"trip","userId":"alice","latitude":"48.85","longitude":2.35}`)

	snaps := ta.OfType("locations")
	require.Len(t, snaps, 1)
	entries := snaps[0]["locations"].([]any)
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]any)
	assert.Equal(t, "alice", entry["userId"])
	assert.InDelta(t, 48.85, entry["latitude"], 1e-9)
}

func TestRouter_ArmedBinaryForwardedOnce(t *testing.T) {
	rt := newTestRouter(app.JoinStrict)
	a, ta := coretest.NewSession("a")
	b, tb := coretest.NewSession("b")
	text(rt, a, `{"type":"create","roomName":"lobby"}`)
	text(rt, b, `{"type":"join","roomName":"lobby"}`)

	text(rt, a, `{"type":"binary-audio","roomName":"lobby"}`)
	rt.Dispatch(context.Background(), a, core.BinaryFrame, []byte("RIFF0000WAVE"))
	rt.Dispatch(context.Background(), a, core.BinaryFrame, []byte("RIFF1111WAVE"))

	bins := tb.Binaries()
	require.Len(t, bins, 1)
	assert.Equal(t, []byte("RIFF0000WAVE"), bins[0])
	assert.Empty(t, ta.Binaries())
}

func TestRouter_SignalingRelay(t *testing.T) {
	rt := newTestRouter(app.JoinStrict)
	a, ta := coretest.NewSession("a")
	b, tb := coretest.NewSession("b")
	text(rt, a, `{"type":"create","roomName":"call"}`)
	text(rt, b, `{"type":"join","roomName":"call"}`)

	text(rt, a, `{"type":"offer","roomName":"call","payload":{"type":"offer","sdp":"v=0\r\no=- 1 2 IN IP4 127.0.0.1\r\ns=-\r\nt=0 0\r\n"}}`)
	text(rt, b, `{"type":"ice","roomName":"call","payload":{"candidate":"candidate:1 1 UDP 1 10.0.0.1 5000 typ host","sdpMid":"0"}}`)

	offers := tb.OfType("offer")
	require.Len(t, offers, 1)
	assert.Equal(t, "a", offers[0]["from"])
	payload := offers[0]["payload"].(map[string]any)
	assert.Equal(t, "offer", payload["type"])

	ice := ta.OfType("ice")
	require.Len(t, ice, 1)
	assert.Equal(t, "b", ice[0]["from"])
	assert.Empty(t, ta.OfType("offer"))
	assert.Empty(t, tb.OfType("ice"))
}

func TestRouter_LeaveAndPing(t *testing.T) {
	rt := newTestRouter(app.JoinStrict)
	a, ta := coretest.NewSession("a")

	text(rt, a, `{"type":"leave"}`)
	infos := ta.OfType("info")
	require.Len(t, infos, 1)
	assert.Equal(t, "Not in a room", infos[0]["message"])

	text(rt, a, `{"type":"create","roomName":"solo"}`)
	text(rt, a, `{"type":"leave"}`)
	assert.False(t, rt.Orch.Registry.Exists("solo"))

	text(rt, a, `{"type":"ping"}`)
	assert.Len(t, ta.OfType("pong"), 1)
}

func TestRouter_MessageWithoutRoomAnswered(t *testing.T) {
	rt := newTestRouter(app.JoinStrict)
	a, ta := coretest.NewSession("a")
	b, tb := coretest.NewSession("b")
	text(rt, a, `{"type":"create","roomName":"lobby"}`)
	text(rt, b, `{"type":"join","roomName":"lobby"}`)
	ta.Reset()
	tb.Reset()

	text(rt, a, `{"type":"message","text":"hi"}`)
	text(rt, a, `{"type":"image","data":"aGk="}`)

	errs := ta.OfType("error")
	require.Len(t, errs, 2)
	assert.Equal(t, `Room "" does not exist`, errs[0]["message"])
	assert.Empty(t, tb.Frames())
}

func TestRouter_EmptyTextRelayed(t *testing.T) {
	rt := newTestRouter(app.JoinStrict)
	a, _ := coretest.NewSession("a")
	b, tb := coretest.NewSession("b")
	text(rt, a, `{"type":"create","roomName":"lobby"}`)
	text(rt, b, `{"type":"join","roomName":"lobby"}`)

	text(rt, a, `{"type":"message","roomName":"lobby","text":""}`)

	msgs := tb.OfType("message")
	require.Len(t, msgs, 1)
	assert.Equal(t, "", msgs[0]["text"])
}

func TestRouter_OpaqueSignalingRelayed(t *testing.T) {
	rt := newTestRouter(app.JoinStrict)
	a, _ := coretest.NewSession("a")
	b, tb := coretest.NewSession("b")
	text(rt, a, `{"type":"create","roomName":"r"}`)
	text(rt, b, `{"type":"join","roomName":"r"}`)

	text(rt, a, `{"type":"offer","roomName":"r","payload":"v=0 opaque"}`)
	text(rt, a, `{"type":"ice","roomName":"r","payload":"candidate:1 1 UDP 1 10.0.0.1 5000 typ host"}`)
	text(rt, a, `{"type":"answer","roomName":"r","payload":{"type":"answer","sdp":"nope"}}`)

	offers := tb.OfType("offer")
	require.Len(t, offers, 1)
	assert.Equal(t, "v=0 opaque", offers[0]["payload"])
	ice := tb.OfType("ice")
	require.Len(t, ice, 1)
	assert.Equal(t, "candidate:1 1 UDP 1 10.0.0.1 5000 typ host", ice[0]["payload"])
	answers := tb.OfType("answer")
	require.Len(t, answers, 1)
	assert.Equal(t, "nope", answers[0]["payload"].(map[string]any)["sdp"])
}

func TestRouter_NonMemberCannotReachOtherRoom(t *testing.T) {
	rt := newTestRouter(app.JoinStrict)
	a, ta := coretest.NewSession("a")
	c, tc := coretest.NewSession("c")
	text(rt, a, `{"type":"create","roomName":"x"}`)
	text(rt, c, `{"type":"create","roomName":"y"}`)
	ta.Reset()
	tc.Reset()

	text(rt, a, `{"type":"message","roomName":"y","text":"hi"}`)
	text(rt, a, `{"type":"location","roomName":"y","userId":"ghost","latitude":1,"longitude":2}`)
	text(rt, a, `{"type":"location","roomName":"nowhere","userId":"ghost","latitude":1,"longitude":2}`)
	text(rt, a, `{"type":"offer","roomName":"y","payload":"v=0"}`)
	text(rt, a, `{"type":"binary-image","roomName":"y"}`)
	rt.Dispatch(context.Background(), a, core.BinaryFrame, []byte{0xFF, 0xD8})

	errs := ta.OfType("error")
	require.Len(t, errs, 1)
	assert.Equal(t, `Not a member of room "y"`, errs[0]["message"])
	assert.Empty(t, tc.Frames())
	assert.Empty(t, rt.Orch.Locations("y"))
	assert.Equal(t, 0, rt.Orch.Presence.Rooms())

	text(rt, a, `{"type":"leave"}`)
	assert.Equal(t, 1, rt.Orch.Registry.Count())
	assert.Equal(t, 0, rt.Orch.Presence.Rooms())
}
