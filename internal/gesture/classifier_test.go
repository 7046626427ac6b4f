package gesture_test

import (
	"testing"
	"time"

	"github.com/Hon139/MuseAid/internal/gesture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handFrame(indexY, thumbX, thumbY float64) gesture.Frame {
	var f gesture.Frame
	f[gesture.Wrist] = gesture.Point{0.5, 0.9, 0}
	f[gesture.MiddleMCP] = gesture.Point{0.5, 0.6, 0}
	// Extended index: tip farther from wrist than PIP.
	f[gesture.IndexMCP] = gesture.Point{0.5, 0.6, 0}
	f[gesture.IndexPIP] = gesture.Point{0.5, 0.5, 0}
	f[gesture.IndexDIP] = gesture.Point{0.5, 0.4, 0}
	f[gesture.IndexTip] = gesture.Point{0.5, indexY, 0}
	// Curled middle/ring/pinky: tip closer to wrist than PIP.
	for _, set := range [][4]int{
		{gesture.MiddleMCP, gesture.MiddlePIP, gesture.MiddleDIP, gesture.MiddleTip},
		{gesture.RingMCP, gesture.RingPIP, gesture.RingDIP, gesture.RingTip},
		{gesture.PinkyMCP, gesture.PinkyPIP, gesture.PinkyDIP, gesture.PinkyTip},
	} {
		mcp, pip, dip, tip := set[0], set[1], set[2], set[3]
		f[mcp] = gesture.Point{0.5, 0.6, 0}
		f[pip] = gesture.Point{0.5, 0.55, 0}
		f[dip] = gesture.Point{0.5, 0.58, 0}
		f[tip] = gesture.Point{0.5, 0.62, 0}
	}
	f[gesture.ThumbMCP] = gesture.Point{0.4, 0.7, 0}
	f[gesture.ThumbIP] = gesture.Point{0.38, 0.65, 0}
	f[gesture.ThumbTip] = gesture.Point{thumbX, thumbY, 0}
	f[gesture.ThumbCMC] = gesture.Point{0.42, 0.75, 0}
	return f
}

func TestDetectSwipePitchUp(t *testing.T) {
	buf := gesture.NewBuffer(gesture.BufferSize)
	base := time.Now()
	// Index tip moves from y=0.9 to y=0.1 (upward) over the swipe window.
	for i := 0; i < gesture.SwipeFrameWindow; i++ {
		y := 0.9 - float64(i)*(0.8/float64(gesture.SwipeFrameWindow-1))
		frame := handFrame(y, 0.2, 0.2)
		fingers := gesture.DeriveFingers(frame)
		buf.Push(frame, fingers, base.Add(time.Duration(i)*33*time.Millisecond))
	}

	c := gesture.NewClassifier()
	latest, ok := buf.Latest()
	require.True(t, ok)
	ev, found := c.Detect(buf, latest.FingerState, base.Add(time.Second))
	require.True(t, found)
	assert.Equal(t, gesture.PitchUp, ev.Gesture)
}

func TestDetectPinchFiresOnceOnTransition(t *testing.T) {
	buf := gesture.NewBuffer(gesture.BufferSize)
	base := time.Now()

	// Start apart, then close in on the index tip at (0.5, 0.6). Each step
	// stays under LandmarkMaxJump so the buffer's outlier rejection keeps
	// the thumb's motion instead of replacing it with a prediction.
	thumbXs := []float64{0.2, 0.2, 0.28, 0.36, 0.44, 0.5, 0.5, 0.5, 0.5}
	var fingers gesture.FingerState
	for i, thumbX := range thumbXs {
		frame := handFrame(0.6, thumbX, 0.6)
		fingers = gesture.DeriveFingers(frame)
		buf.Push(frame, fingers, base.Add(time.Duration(i)*33*time.Millisecond))
	}

	c := gesture.NewClassifier()
	ev, found := c.Detect(buf, fingers, base.Add(time.Second))
	require.True(t, found)
	assert.Equal(t, gesture.TogglePlayback, ev.Gesture)

	// Immediately re-detecting without reopening should not refire.
	_, found = c.Detect(buf, fingers, base.Add(time.Second))
	assert.False(t, found)
}

func TestDetectRequiresMinimumFrames(t *testing.T) {
	buf := gesture.NewBuffer(gesture.BufferSize)
	c := gesture.NewClassifier()
	_, found := c.Detect(buf, gesture.FingerState{}, time.Now())
	assert.False(t, found)
}

