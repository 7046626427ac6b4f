package capture

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// httpPollSource polls a URL that returns one JPEG image per request,
// following http_poller.py's HTTPPoller.
type httpPollSource struct {
	url    string
	client *http.Client
	closed bool
}

func newHTTPPollSource(url string) (Source, error) {
	return &httpPollSource{
		url:    url,
		client: &http.Client{Timeout: 2 * time.Second},
	}, nil
}

func (s *httpPollSource) Read() (RawFrame, bool, error) {
	if s.closed {
		return RawFrame{}, false, nil
	}
	resp, err := s.client.Get(s.url)
	if err != nil {
		return RawFrame{}, false, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return RawFrame{}, false, nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil || len(data) == 0 {
		return RawFrame{}, false, nil
	}

	img, err := decodeJPEG(data)
	if err != nil {
		return RawFrame{}, false, nil
	}
	return RawFrame{Image: img, Timestamp: time.Now()}, true, nil
}

func (s *httpPollSource) Opened() bool {
	return !s.closed
}

func (s *httpPollSource) Release() {
	s.closed = true
}

// nativeSource stands in for direct OS camera access (e.g. V4L2/AVFoundation
// through cgo bindings). No such binding exists anywhere in the example
// corpus, and this pipeline targets headless capture boxes that already
// expose a network stream, so nativeSource reports itself unopened rather
// than guessing at a cgo camera API; FallbackSource skips straight to the
// network-backed variants.
type nativeSource struct{}

func newNativeSource(_ string) (Source, error) {
	return &nativeSource{}, nil
}

func (s *nativeSource) Read() (RawFrame, bool, error) {
	return RawFrame{}, false, fmt.Errorf("capture: native camera source is not available in this build")
}

func (s *nativeSource) Opened() bool {
	return false
}

func (s *nativeSource) Release() {}
