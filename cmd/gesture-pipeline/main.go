// Command gesture-pipeline captures camera frames, infers hand landmarks,
// classifies gestures, and POSTs each recognized gesture to the
// coordination server's /gestures endpoint.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Hon139/MuseAid/internal/config"
	"github.com/Hon139/MuseAid/internal/gesture"
	"github.com/Hon139/MuseAid/internal/gesture/capture"
	"golang.org/x/sync/errgroup"
)

const (
	// gesturePostTimeout bounds a single fire-and-forget POST to
	// /gestures, per spec.md §5.
	gesturePostTimeout = 500 * time.Millisecond
	// maxInFlightPosts caps the number of concurrent /gestures POSTs so a
	// slow coordination server cannot pile up unbounded goroutines.
	maxInFlightPosts = 4
)

func main() {
	cfg := config.Load()

	if cfg.LandmarkServiceURL == "" {
		log.Fatal("LANDMARK_SERVICE_URL must be set (external hand-landmark inference service)")
	}

	source := capture.NewFallbackSource(
		[]capture.Kind{capture.KindNative, capture.KindMJPEG, capture.KindFFmpeg, capture.KindHTTPPoll},
		[]string{cfg.CameraSrc, cfg.CameraSrc, cfg.CameraSrc, cfg.CameraSrc},
	)
	defer source.Release()

	landmarks := gesture.NewLandmarkClient(cfg.LandmarkServiceURL, &http.Client{Timeout: 2 * time.Second})
	buffer := gesture.NewBuffer(gesture.BufferSize)
	classifier := gesture.NewClassifier()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sem := make(chan struct{}, maxInFlightPosts)
	var inFlight errgroup.Group

	log.Printf("gesture-pipeline: starting, posting to %s/gestures", cfg.ServerURL)

	for ctx.Err() == nil {
		frame, ok, err := source.Read()
		if err != nil {
			log.Printf("gesture-pipeline: capture error: %v", err)
			time.Sleep(100 * time.Millisecond)
			continue
		}
		if !ok {
			continue
		}

		landmarkFrame, detected, err := landmarks.Infer(ctx, frame.Image)
		if err != nil {
			log.Printf("gesture-pipeline: landmark inference failed: %v", err)
			continue
		}
		if !detected {
			buffer.Clear()
			continue
		}

		fingers := gesture.DeriveFingers(landmarkFrame)
		now := time.Now()
		buffer.Push(landmarkFrame, fingers, now)

		event, ok := classifier.Detect(buffer, fingers, now)
		if !ok {
			continue
		}

		sem <- struct{}{}
		inFlight.Go(func() error {
			defer func() { <-sem }()
			// Not bound to ctx, so a shutdown signal lets in-flight POSTs
			// finish; each is still capped by gesturePostTimeout.
			postGesture(context.Background(), cfg.ServerURL, event)
			return nil
		})
	}

	_ = inFlight.Wait()
	log.Println("gesture-pipeline: shutting down")
}

type gesturePayload struct {
	Gesture    string  `json:"gesture"`
	Confidence float64 `json:"confidence"`
	Timestamp  float64 `json:"timestamp"`
}

// postGesture fire-and-forgets one gesture event to the coordination
// server. Failures are logged, never retried: a dropped gesture is
// recoverable by the next frame, per spec.md §5.
func postGesture(ctx context.Context, serverURL string, event gesture.Event) {
	ctx, cancel := context.WithTimeout(ctx, gesturePostTimeout)
	defer cancel()

	body, err := json.Marshal(gesturePayload{
		Gesture:    event.Gesture,
		Confidence: event.Confidence,
		Timestamp:  float64(event.Timestamp.UnixNano()) / 1e9,
	})
	if err != nil {
		log.Printf("gesture-pipeline: marshal gesture event: %v", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serverURL+"/gestures", bytes.NewReader(body))
	if err != nil {
		log.Printf("gesture-pipeline: build request: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Printf("gesture-pipeline: POST /gestures failed: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("gesture-pipeline: POST /gestures returned status %d", resp.StatusCode)
	}
}
