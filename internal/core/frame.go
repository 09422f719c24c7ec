package core

import "errors"

var (
	ErrClosed       = errors.New("connection closed")
	ErrBackpressure = errors.New("backpressure")
)

type FrameKind uint8

const (
	TextFrame FrameKind = iota
	BinaryFrame
)

func (k FrameKind) String() string {
	if k == BinaryFrame {
		return "binary"
	}
	return "text"
}

// Frame is one outbound message. Binary data is passed through untouched.
type Frame struct {
	Kind FrameKind
	Data []byte
}

func Text(data []byte) Frame   { return Frame{Kind: TextFrame, Data: data} }
func Binary(data []byte) Frame { return Frame{Kind: BinaryFrame, Data: data} }

// Transport abstracts for a client messaging channel.
// Owned by the adapter; the adapter must Close() it.
type Transport interface {
	// TrySend must not block: ErrClosed once closed, ErrBackpressure when the buffer is full.
	TrySend(Frame) error
	Close()
}
