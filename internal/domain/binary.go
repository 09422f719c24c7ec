package domain

// BinaryKind says how the next raw binary frame from a connection is meant.
type BinaryKind string

const (
	BinaryImage BinaryKind = "binary-image"
	BinaryVideo BinaryKind = "binary-video"
	BinaryAudio BinaryKind = "binary-audio"
)

func (k BinaryKind) Valid() bool {
	switch k {
	case BinaryImage, BinaryVideo, BinaryAudio:
		return true
	}
	return false
}

// PendingBinary is the single-slot marker armed by a binary-* message.
type PendingBinary struct {
	Kind BinaryKind
	Room RoomName
}
