package protocol

import (
	"encoding/json"

	"github.com/dkeye/relay/internal/core"
	"github.com/dkeye/relay/internal/domain"
)

type Message struct {
	Type string        `json:"type"`
	Text string        `json:"text"`
	From domain.ConnID `json:"from,omitempty"`
}

type Image struct {
	Type string        `json:"type"`
	Data string        `json:"data"`
	From domain.ConnID `json:"from,omitempty"`
}

// Notice covers error and info replies.
type Notice struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type Locations struct {
	Type      string               `json:"type"`
	RoomName  domain.RoomName      `json:"roomName"`
	Locations []core.PresenceEntry `json:"locations"`
}

type GPS struct {
	Type      string        `json:"type"`
	UserID    domain.UserID `json:"userId"`
	Latitude  float64       `json:"latitude"`
	Longitude float64       `json:"longitude"`
}

type Signal struct {
	Type    string          `json:"type"`
	From    domain.ConnID   `json:"from"`
	Payload json.RawMessage `json:"payload"`
}

// Client covers clientId, newClient and clientLeft.
type Client struct {
	Type string        `json:"type"`
	ID   domain.ConnID `json:"id"`
}

type Pong struct {
	Type string `json:"type"`
}

// Encode marshals v into a text frame.
func Encode(v any) (core.Frame, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return core.Frame{}, err
	}
	return core.Text(b), nil
}

func ErrorNotice(msg string) Notice { return Notice{Type: TypeError, Message: msg} }
func InfoNotice(msg string) Notice  { return Notice{Type: TypeInfo, Message: msg} }
