package domain

import (
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocation(t *testing.T) {
	tests := []struct {
		name     string
		lat, lng float64
		wantErr  bool
	}{
		{"origin", 0, 0, false},
		{"bounds", -90, 180, false},
		{"lat too high", 90.1, 0, true},
		{"lng too low", 0, -180.5, true},
		{"nan", math.NaN(), 0, true},
		{"inf", 0, math.Inf(1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLocation(tt.lat, tt.lng)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFieldValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.lat, l.Latitude)
		})
	}
}

func TestParseRoomName(t *testing.T) {
	_, err := ParseRoomName("")
	assert.ErrorIs(t, err, ErrInvalidRoomName)

	long := make([]byte, MaxRoomNameLen+1)
	for i := range long {
		long[i] = 'x'
	}
	_, err = ParseRoomName(string(long))
	assert.ErrorIs(t, err, ErrRoomNameTooLong)

	name, err := ParseRoomName("lobby")
	require.NoError(t, err)
	assert.Equal(t, RoomName("lobby"), name)
}

func TestBinaryKindValid(t *testing.T) {
	assert.True(t, BinaryImage.Valid())
	assert.True(t, BinaryAudio.Valid())
	assert.False(t, BinaryKind("binary-pdf").Valid())
}

func TestNormalizeUserID(t *testing.T) {
	long := make([]byte, MaxUserIDLen+10)
	for i := range long {
		long[i] = 'u'
	}
	assert.Len(t, string(NormalizeUserID(string(long))), MaxUserIDLen)
	assert.Equal(t, UserID("bob"), NormalizeUserID("bob"))
	assert.NotEqual(t, NewConnID(), NewConnID())
}

func TestNormalizeUserID_RuneBoundary(t *testing.T) {
	// 63 ASCII bytes then a 3-byte rune straddling the limit.
	raw := strings.Repeat("a", MaxUserIDLen-1) + "€" + "tail"
	got := string(NormalizeUserID(raw))
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("a", MaxUserIDLen-1), got)

	emoji := strings.Repeat("😀", 20)
	got = string(NormalizeUserID(emoji))
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("😀", MaxUserIDLen/4), got)
}
