package capture

import (
	"context"
	"fmt"
	"path"
	"sync/atomic"
	"time"
)

// Store writes one artifact under key.
type Store interface {
	Save(ctx context.Context, key, contentType string, data []byte) error
}

type Artifact struct {
	Bucket      Bucket
	Seq         uint64
	Key         string
	ContentType string
	Size        int
}

// Service classifies frames and names them with per-bucket counters.
// Counters are process-local and start again at 1 after a restart.
type Service struct {
	store   Store
	timeout time.Duration

	image   atomic.Uint64
	audio   atomic.Uint64
	unknown atomic.Uint64
}

func NewService(store Store, timeout time.Duration) *Service {
	return &Service{store: store, timeout: timeout}
}

func (s *Service) counter(b Bucket) *atomic.Uint64 {
	switch b {
	case BucketImage:
		return &s.image
	case BucketAudio:
		return &s.audio
	}
	return &s.unknown
}

func (s *Service) Capture(ctx context.Context, data []byte) (Artifact, error) {
	b := Classify(data)
	seq := s.counter(b).Add(1)
	art := Artifact{
		Bucket:      b,
		Seq:         seq,
		Key:         path.Join(string(b), fmt.Sprintf("%s_%d%s", b, seq, b.Ext())),
		ContentType: b.ContentType(),
		Size:        len(data),
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	if err := s.store.Save(ctx, art.Key, art.ContentType, data); err != nil {
		return art, fmt.Errorf("save %s: %w", art.Key, err)
	}
	return art, nil
}
