package domain

const MaxRoomNameLen = 128

type RoomName string

// ParseRoomName validates a caller-supplied room name.
func ParseRoomName(raw string) (RoomName, error) {
	if raw == "" {
		return "", ErrInvalidRoomName
	}
	if len(raw) > MaxRoomNameLen {
		return "", ErrRoomNameTooLong
	}
	return RoomName(raw), nil
}
