package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/relay/internal/domain"
)

const testSDP = "v=0\r\no=- 4215775240449105457 2 IN IP4 127.0.0.1\r\ns=-\r\nt=0 0\r\n"

func TestPeekType(t *testing.T) {
	typ, err := PeekType([]byte(`{"type":"create","roomName":"lobby"}`))
	require.NoError(t, err)
	assert.Equal(t, TypeCreate, typ)

	_, err = PeekType([]byte(`not json`))
	assert.ErrorIs(t, err, domain.ErrMalformedFrame)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		v       any
		wantErr error
	}{
		{"room ok", `{"type":"create","roomName":"lobby"}`, &RoomPayload{}, nil},
		{"room missing", `{"type":"create"}`, &RoomPayload{}, domain.ErrInvalidFieldValue},
		{"message empty text", `{"type":"message","roomName":"lobby","text":""}`, &MessagePayload{}, nil},
		{"message without room", `{"type":"message","text":"hi"}`, &MessagePayload{}, nil},
		{"image missing data", `{"type":"image","roomName":"lobby"}`, &ImagePayload{}, domain.ErrInvalidFieldValue},
		{"join optional user", `{"type":"join","roomName":"lobby"}`, &JoinPayload{}, nil},
		{"location missing user", `{"type":"location","roomName":"r","latitude":1,"longitude":2}`, &LocationPayload{}, domain.ErrInvalidFieldValue},
		{"signal missing payload", `{"type":"ice","roomName":"r"}`, &SignalPayload{}, domain.ErrInvalidFieldValue},
		{"wrong field type", `{"type":"create","roomName":5}`, &RoomPayload{}, domain.ErrMalformedFrame},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Decode([]byte(tt.data), tt.v)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLocationPayload_Location(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantLat float64
		wantErr bool
	}{
		{"numbers", `{"latitude":48.85,"longitude":2.35}`, 48.85, false},
		{"numeric strings", `{"latitude":"48.85","longitude":"2.35"}`, 48.85, false},
		{"zero is valid", `{"latitude":0,"longitude":0}`, 0, false},
		{"missing", `{"longitude":2}`, 0, true},
		{"not numeric", `{"latitude":"north","longitude":2}`, 0, true},
		{"bool", `{"latitude":true,"longitude":2}`, 0, true},
		{"out of range", `{"latitude":120,"longitude":2}`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p LocationPayload
			require.NoError(t, json.Unmarshal([]byte(tt.data), &p))
			l, err := p.Location()
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidFieldValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLat, l.Latitude)
		})
	}
}

func TestSignalPayload_CheckSignal(t *testing.T) {
	offer, err := json.Marshal(map[string]string{"type": "offer", "sdp": testSDP})
	require.NoError(t, err)
	bare, err := json.Marshal(map[string]string{"sdp": testSDP})
	require.NoError(t, err)

	tests := []struct {
		name    string
		kind    string
		payload string
		wantErr bool
	}{
		{"offer", TypeOffer, string(offer), false},
		{"sdp without type", TypeAnswer, string(bare), false},
		{"answer carrying offer", TypeAnswer, string(offer), true},
		{"not an object", TypeOffer, `"hello"`, true},
		{"garbage sdp", TypeOffer, `{"type":"offer","sdp":"nope"}`, true},
		{"ice", TypeICE, `{"candidate":"candidate:1 1 udp 2122260223 10.0.0.1 54321 typ host","sdpMid":"0","sdpMLineIndex":0}`, false},
		{"ice wrong shape", TypeICE, `[1,2]`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := SignalPayload{RoomName: "r", Payload: json.RawMessage(tt.payload)}
			err := p.CheckSignal(tt.kind)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidFieldValue)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestEncode(t *testing.T) {
	f, err := Encode(Message{Type: TypeMessage, Text: "hi", From: "a"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"message","text":"hi","from":"a"}`, string(f.Data))

	f, err = Encode(ErrorNotice("boom"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"error","message":"boom"}`, string(f.Data))
}

func TestSignalPayload_Present(t *testing.T) {
	assert.True(t, SignalPayload{Payload: json.RawMessage(`"v=0 opaque"`)}.Present())
	assert.True(t, SignalPayload{Payload: json.RawMessage(`{}`)}.Present())
	assert.False(t, SignalPayload{Payload: json.RawMessage(` null `)}.Present())
	assert.False(t, SignalPayload{}.Present())
}
