package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pion/webrtc/v4"
	"github.com/spf13/cast"

	"github.com/dkeye/relay/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Envelope struct {
	Type string `json:"type"`
}

type RoomPayload struct {
	RoomName string `json:"roomName" validate:"required"`
}

type JoinPayload struct {
	RoomName string `json:"roomName" validate:"required"`
	UserID   string `json:"userId,omitempty"`
}

// MessagePayload leaves roomName optional: a missing room is answered, not dropped.
type MessagePayload struct {
	RoomName string `json:"roomName"`
	Text     string `json:"text"`
}

type ImagePayload struct {
	RoomName string `json:"roomName"`
	Data     string `json:"data" validate:"required"`
}

// LocationPayload accepts coordinates as JSON numbers or numeric strings.
type LocationPayload struct {
	RoomName  string `json:"roomName" validate:"required"`
	UserID    string `json:"userId" validate:"required"`
	Latitude  any    `json:"latitude"`
	Longitude any    `json:"longitude"`
}

type SignalPayload struct {
	RoomName string          `json:"roomName" validate:"required"`
	Payload  json.RawMessage `json:"payload" validate:"required"`
}

// PeekType reads only the discriminator.
func PeekType(data []byte) (string, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrMalformedFrame, err)
	}
	return env.Type, nil
}

// Decode unmarshals data into v and checks its required fields.
func Decode(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedFrame, err)
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidFieldValue, err)
	}
	return nil
}

func (p LocationPayload) Location() (domain.Location, error) {
	lat, err := coordinate(p.Latitude)
	if err != nil {
		return domain.Location{}, fmt.Errorf("latitude: %w", err)
	}
	lng, err := coordinate(p.Longitude)
	if err != nil {
		return domain.Location{}, fmt.Errorf("longitude: %w", err)
	}
	return domain.NewLocation(lat, lng)
}

func coordinate(v any) (float64, error) {
	switch v.(type) {
	case nil, bool:
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalidFieldValue, v)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalidFieldValue, err)
	}
	return f, nil
}

// Present reports whether a payload was sent at all. JSON null counts as absent.
func (p SignalPayload) Present() bool {
	trimmed := bytes.TrimSpace(p.Payload)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// CheckSignal reports whether the payload decodes as the WebRTC object its kind implies.
// Payloads are relayed opaquely either way; the result only annotates logs.
func (p SignalPayload) CheckSignal(kind string) error {
	switch kind {
	case TypeOffer, TypeAnswer:
		var sd webrtc.SessionDescription
		if err := json.Unmarshal(p.Payload, &sd); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidFieldValue, err)
		}
		want := webrtc.NewSDPType(kind)
		if sd.Type != webrtc.SDPTypeUnknown && sd.Type != want {
			return fmt.Errorf("%w: %s payload carries %s", domain.ErrInvalidFieldValue, kind, sd.Type)
		}
		if _, err := sd.Unmarshal(); err != nil {
			return fmt.Errorf("%w: sdp: %v", domain.ErrInvalidFieldValue, err)
		}
	case TypeICE:
		var ci webrtc.ICECandidateInit
		if err := json.Unmarshal(p.Payload, &ci); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidFieldValue, err)
		}
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnknownMessageType, kind)
	}
	return nil
}
