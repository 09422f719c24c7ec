// Package coretest provides a recording core.Transport for tests.
package coretest

import (
	"encoding/json"
	"sync"

	"github.com/dkeye/relay/internal/core"
	"github.com/dkeye/relay/internal/domain"
)

type Transport struct {
	mu     sync.Mutex
	frames []core.Frame
	closed bool
	full   bool
}

func NewTransport() *Transport { return &Transport{} }

// NewSession returns a session with the given id backed by a fresh recorder.
func NewSession(id string) (*core.Session, *Transport) {
	t := NewTransport()
	return core.NewSession(domain.ConnID(id), "", t), t
}

func (t *Transport) TrySend(f core.Frame) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return core.ErrClosed
	}
	if t.full {
		return core.ErrBackpressure
	}
	t.frames = append(t.frames, f)
	return nil
}

func (t *Transport) Close() {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
}

// SetFull makes every further send fail with core.ErrBackpressure.
func (t *Transport) SetFull(full bool) {
	t.mu.Lock()
	t.full = full
	t.mu.Unlock()
}

func (t *Transport) Closed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

func (t *Transport) Frames() []core.Frame {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]core.Frame(nil), t.frames...)
}

func (t *Transport) Reset() {
	t.mu.Lock()
	t.frames = nil
	t.mu.Unlock()
}

// Messages decodes every text frame; undecodable frames are skipped.
func (t *Transport) Messages() []map[string]any {
	var out []map[string]any
	for _, f := range t.Frames() {
		if f.Kind != core.TextFrame {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal(f.Data, &m); err == nil {
			out = append(out, m)
		}
	}
	return out
}

// OfType returns the decoded text frames whose "type" equals typ.
func (t *Transport) OfType(typ string) []map[string]any {
	var out []map[string]any
	for _, m := range t.Messages() {
		if m["type"] == typ {
			out = append(out, m)
		}
	}
	return out
}

func (t *Transport) Binaries() [][]byte {
	var out [][]byte
	for _, f := range t.Frames() {
		if f.Kind == core.BinaryFrame {
			out = append(out, f.Data)
		}
	}
	return out
}
