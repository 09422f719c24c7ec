package domain

import "errors"

var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrNotMember          = errors.New("not a member of room")
	ErrInvalidRoomName    = errors.New("room name empty")
	ErrRoomNameTooLong    = errors.New("room name too long")
	ErrUnknownMessageType = errors.New("unknown message type")
	ErrMalformedFrame     = errors.New("malformed frame")
	ErrInvalidFieldValue  = errors.New("invalid field value")
)
