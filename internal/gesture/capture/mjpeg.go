package capture

import (
	"bufio"
	"bytes"
	"fmt"
	"net/http"
	"time"
)

// mjpegSource is a persistent multipart/x-mixed-replace reader that scans
// for JPEG SOI/EOI markers in the byte stream, following mjpeg_client.py's
// MJPEGClient.
type mjpegSource struct {
	url     string
	resp    *http.Response
	reader  *bufio.Reader
	buf     []byte
	closed  bool
}

const mjpegMaxBuffer = 2_000_000

var soiMarker = []byte{0xFF, 0xD8}
var eoiMarker = []byte{0xFF, 0xD9}

func newMJPEGSource(url string) (Source, error) {
	client := &http.Client{Timeout: 0}
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("capture: mjpeg connect: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("capture: mjpeg endpoint returned HTTP %d", resp.StatusCode)
	}
	return &mjpegSource{url: url, resp: resp, reader: bufio.NewReader(resp.Body)}, nil
}

func (s *mjpegSource) Read() (RawFrame, bool, error) {
	if s.closed {
		return RawFrame{}, false, nil
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if start := bytes.Index(s.buf, soiMarker); start != -1 {
			if end := bytes.Index(s.buf[start+2:], eoiMarker); end != -1 {
				end += start + 2
				jpegBytes := s.buf[start : end+2]
				img, decodeErr := decodeJPEG(jpegBytes)
				s.buf = s.buf[end+2:]
				if decodeErr == nil {
					return RawFrame{Image: img, Timestamp: time.Now()}, true, nil
				}
				continue
			}
		}

		chunk := make([]byte, 8192)
		n, err := s.reader.Read(chunk)
		if n > 0 {
			s.buf = append(s.buf, chunk[:n]...)
			if len(s.buf) > mjpegMaxBuffer {
				s.buf = s.buf[len(s.buf)-mjpegMaxBuffer:]
			}
		}
		if err != nil {
			return RawFrame{}, false, nil
		}
	}
	return RawFrame{}, false, nil
}

func (s *mjpegSource) Opened() bool {
	return !s.closed
}

func (s *mjpegSource) Release() {
	if s.closed {
		return
	}
	s.closed = true
	if s.resp != nil {
		s.resp.Body.Close()
	}
}
