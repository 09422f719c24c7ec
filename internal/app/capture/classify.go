// Package capture persists binary frames that arrive without an armed marker.
package capture

import "bytes"

type Bucket string

const (
	BucketImage   Bucket = "image"
	BucketAudio   Bucket = "audio"
	BucketUnknown Bucket = "unknown"
)

var (
	jpegMagic = []byte{0xFF, 0xD8}
	riffMagic = []byte("RIFF")
)

// Classify picks a bucket from the leading bytes. Unknown always accepts.
func Classify(data []byte) Bucket {
	switch {
	case bytes.HasPrefix(data, jpegMagic):
		return BucketImage
	case bytes.HasPrefix(data, riffMagic):
		return BucketAudio
	}
	return BucketUnknown
}

func (b Bucket) Ext() string {
	switch b {
	case BucketImage:
		return ".jpg"
	case BucketAudio:
		return ".wav"
	}
	return ".bin"
}

func (b Bucket) ContentType() string {
	switch b {
	case BucketImage:
		return "image/jpeg"
	case BucketAudio:
		return "audio/wav"
	}
	return "application/octet-stream"
}
