package gesture

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	"net/http"
)

// LandmarkClient calls an external hand-landmark inference service (the
// MediaPipe Hands model this pipeline does not reimplement in Go — see
// DESIGN.md) with one camera frame and decodes its response into a Frame
// this package's Buffer/Classifier can consume.
type LandmarkClient struct {
	url    string
	client *http.Client
}

// NewLandmarkClient builds a client posting JPEG frames to url, which must
// respond with a JSON array of 21 [x, y, z] landmark triples in MediaPipe
// Hands' normalized coordinate space, or a 204 when no hand is detected.
func NewLandmarkClient(url string, httpClient *http.Client) *LandmarkClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &LandmarkClient{url: url, client: httpClient}
}

// Infer sends img as JPEG to the landmark service and returns the detected
// Frame, or ok=false if no hand was detected in this frame.
func (c *LandmarkClient) Infer(ctx context.Context, img image.Image) (Frame, bool, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		return Frame{}, false, fmt.Errorf("gesture: encode frame: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &buf)
	if err != nil {
		return Frame{}, false, fmt.Errorf("gesture: build landmark request: %w", err)
	}
	req.Header.Set("Content-Type", "image/jpeg")

	resp, err := c.client.Do(req)
	if err != nil {
		return Frame{}, false, fmt.Errorf("gesture: landmark request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return Frame{}, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return Frame{}, false, fmt.Errorf("gesture: landmark service returned status %d", resp.StatusCode)
	}

	var points [NumLandmarks][3]float64
	if err := json.NewDecoder(resp.Body).Decode(&points); err != nil {
		return Frame{}, false, fmt.Errorf("gesture: decode landmarks: %w", err)
	}

	var frame Frame
	for i, p := range points {
		frame[i] = Point{p[0], p[1], p[2]}
	}
	return frame, true, nil
}
