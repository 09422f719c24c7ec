package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dkeye/relay/internal/config"
)

func TestFrameRateLimiter(t *testing.T) {
	off := NewFrameRateLimiter(config.RateConfig{})
	assert.Nil(t, off)
	for range 1000 {
		assert.True(t, off.Allow())
	}

	l := NewFrameRateLimiter(config.RateConfig{Limit: 0.001, Burst: 2})
	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())
}
