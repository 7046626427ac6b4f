package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Hon139/MuseAid/internal/gesture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostGestureSendsExpectedPayload(t *testing.T) {
	var received gesturePayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gestures", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	event := gesture.Event{Gesture: "PITCH_UP", Confidence: 0.9, Timestamp: time.Unix(1700000000, 0)}
	postGesture(context.Background(), srv.URL, event)

	assert.Equal(t, "PITCH_UP", received.Gesture)
	assert.Equal(t, 0.9, received.Confidence)
}

func TestPostGestureLogsNonOKStatusWithoutPanic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	event := gesture.Event{Gesture: "PITCH_DOWN", Timestamp: time.Now()}
	assert.NotPanics(t, func() {
		postGesture(context.Background(), srv.URL, event)
	})
}

func TestPostGestureTimeoutDoesNotPanic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * gesturePostTimeout)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	event := gesture.Event{Gesture: "PITCH_UP", Timestamp: time.Now()}
	assert.NotPanics(t, func() {
		postGesture(context.Background(), srv.URL, event)
	})
}
