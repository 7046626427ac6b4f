// Package capture implements the camera-source discriminated union the
// gesture pipeline binary drives: a Source interface with MJPEG, FFmpeg,
// HTTP-poll, and native-camera variants, plus a FallbackSource that tries
// each in turn. The CAMERA_SRC environment variable supplies the address
// each variant is opened against; it does not choose the variant.
//
// Grounded on original_source/hand-gesture-app/src/{mjpeg_client,
// ffmpeg_pipe,http_poller}.py. Frame decoding for MJPEG/JPEG payloads is
// backed by the standard library's image/jpeg, since no third-party image
// codec is present anywhere in the example corpus.
package capture

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"time"
)

// RawFrame is a decoded camera frame ready for hand-landmark inference.
type RawFrame struct {
	Image     image.Image
	Timestamp time.Time
}

// Source is the capture-transport contract every camera variant satisfies.
type Source interface {
	// Read blocks until the next frame is available, returns ok=false on a
	// recoverable miss (e.g. a dropped MJPEG boundary), and returns err for
	// an unrecoverable failure.
	Read() (RawFrame, bool, error)
	Opened() bool
	Release()
}

// Kind names one Source variant, as passed to New.
type Kind string

const (
	KindMJPEG    Kind = "mjpeg"
	KindFFmpeg   Kind = "ffmpeg"
	KindHTTPPoll Kind = "httppoll"
	KindNative   Kind = "native"
)

// New constructs the Source named by kind against addr (a URL for the
// mjpeg/ffmpeg/httppoll variants, a device index string for native).
func New(kind Kind, addr string) (Source, error) {
	switch kind {
	case KindMJPEG:
		return newMJPEGSource(addr)
	case KindFFmpeg:
		return newFFmpegSource(addr)
	case KindHTTPPoll:
		return newHTTPPollSource(addr)
	case KindNative:
		return newNativeSource(addr)
	default:
		return nil, fmt.Errorf("capture: unknown source kind %q", kind)
	}
}

func decodeJPEG(data []byte) (image.Image, error) {
	return jpeg.Decode(bytes.NewReader(data))
}
