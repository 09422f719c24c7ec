package capture

import (
	"context"
	"fmt"

	"github.com/dkeye/relay/internal/config"
)

// NewStore builds the backend named in the capture config.
func NewStore(ctx context.Context, cfg config.CaptureConfig) (Store, error) {
	switch cfg.Backend {
	case "", "fs":
		return NewFSStore(cfg.Dir), nil
	case "s3":
		if cfg.S3.Bucket == "" {
			return nil, fmt.Errorf("capture: s3 backend needs a bucket")
		}
		return NewS3Store(ctx, cfg.S3.Region, cfg.S3.Bucket, cfg.S3.Endpoint, cfg.S3.Prefix)
	}
	return nil, fmt.Errorf("capture: unknown backend %q", cfg.Backend)
}
