package gesture

import (
	"math"
	"time"
)

// Event is a single recognized gesture.
type Event struct {
	Gesture    string
	Confidence float64
	Timestamp  time.Time
}

type detectorFunc func(*Classifier, *Buffer, FingerState) (Event, bool)

// Classifier is a stateful ordered gesture detector operating on a Buffer.
// Detectors run in priority order (palm swipe, pinch, peace sign, index
// swipe) exactly as gesture_detector.py's GestureDetector.detect, with
// per-gesture cooldowns and edge-triggered latches for pinch and peace
// sign.
type Classifier struct {
	cooldowns        map[string]time.Time
	pinchWasOpen     bool
	peaceWasInactive bool
}

// NewClassifier returns a Classifier ready to detect gestures. The peace
// sign latch starts inactive (armed) so the first stable peace sign fires.
func NewClassifier() *Classifier {
	return &Classifier{
		cooldowns:        make(map[string]time.Time),
		peaceWasInactive: true,
	}
}

var detectorOrder = []detectorFunc{
	(*Classifier).detectPalmSwipe,
	(*Classifier).detectPinch,
	(*Classifier).detectPeaceSign,
	(*Classifier).detectSwipe,
}

// Detect analyzes the buffer and finger state and returns at most one
// gesture event. Detectors are tried most-specific-first; the first one
// that fires and is not on cooldown wins.
func (c *Classifier) Detect(buf *Buffer, fingers FingerState, now time.Time) (Event, bool) {
	if buf.Len() < MinFramesForDetection {
		return Event{}, false
	}
	for _, detector := range detectorOrder {
		ev, ok := detector(c, buf, fingers)
		if !ok {
			continue
		}
		if c.onCooldown(ev.Gesture, now) {
			continue
		}
		c.fire(ev.Gesture, now)
		ev.Timestamp = now
		return ev, true
	}
	return Event{}, false
}

func (c *Classifier) onCooldown(gesture string, now time.Time) bool {
	last, ok := c.cooldowns[gesture]
	if !ok {
		return false
	}
	return now.Sub(last) < GestureCooldown
}

func (c *Classifier) fire(gesture string, now time.Time) {
	c.cooldowns[gesture] = now
}

// detectSwipe detects a directional index-finger vertical swipe
// (PITCH_UP/PITCH_DOWN), requiring only the index finger to be extended and
// the motion to be predominantly vertical.
func (c *Classifier) detectSwipe(buf *Buffer, fingers FingerState) (Event, bool) {
	if !fingers.OnlyIndex() {
		return Event{}, false
	}
	positions, ok := buf.LandmarkPositions(IndexTip, SwipeFrameWindow)
	if !ok {
		return Event{}, false
	}

	start, end := positions[0], positions[len(positions)-1]
	dx := end[0] - start[0]
	dy := end[1] - start[1]
	absDx, absDy := math.Abs(dx), math.Abs(dy)

	if absDy < SwipeMinDisplacement {
		return Event{}, false
	}
	if absDx > 1e-6 && absDy/absDx < SwipeDirectionalityRatio {
		return Event{}, false
	}

	confidence := math.Min(1.0, absDy/(SwipeMinDisplacement*2))
	if dy < 0 {
		return Event{Gesture: PitchUp, Confidence: confidence}, true
	}
	return Event{Gesture: PitchDown, Confidence: confidence}, true
}

// detectPalmSwipe detects an open-palm horizontal swipe
// (SCROLL_FORWARD/SCROLL_BACKWARD) using the palm-centre trajectory, which
// is more stable than a single fingertip for an open hand.
func (c *Classifier) detectPalmSwipe(buf *Buffer, fingers FingerState) (Event, bool) {
	if !fingers.OpenPalm() {
		return Event{}, false
	}
	positions, ok := buf.PalmCentrePositions(PalmSwipeFrameWindow)
	if !ok {
		return Event{}, false
	}

	start, end := positions[0], positions[len(positions)-1]
	dx := end[0] - start[0]
	dy := end[1] - start[1]
	absDx, absDy := math.Abs(dx), math.Abs(dy)

	if absDx < PalmSwipeMinDisplacement {
		return Event{}, false
	}
	if absDy > 1e-6 && absDx/absDy < PalmSwipeDirectionality {
		return Event{}, false
	}

	confidence := math.Min(1.0, absDx/(PalmSwipeMinDisplacement*2))

	// Frame is mirrored: dx < 0 (normalized coords) means the user swiped
	// left, which scrolls forward through the track.
	if dx < 0 {
		return Event{Gesture: ScrollForward, Confidence: confidence}, true
	}
	return Event{Gesture: ScrollBackward, Confidence: confidence}, true
}

// detectPeaceSign fires SWITCH_STAFF on the transition from a non-peace-sign
// hand to a stable peace-sign pose held for PeaceSignMinHoldFrames within
// the last PeaceSignFrameWindow frames.
func (c *Classifier) detectPeaceSign(buf *Buffer, fingers FingerState) (Event, bool) {
	if !fingers.PeaceSign() {
		c.peaceWasInactive = true
		return Event{}, false
	}
	if !c.peaceWasInactive {
		return Event{}, false
	}

	frames := buf.Recent(PeaceSignFrameWindow)
	if len(frames) < PeaceSignMinHoldFrames {
		return Event{}, false
	}
	recent := frames[len(frames)-PeaceSignMinHoldFrames:]
	peaceCount := 0
	for _, f := range recent {
		if f.FingerState.PeaceSign() {
			peaceCount++
		}
	}
	if peaceCount < PeaceSignMinHoldFrames {
		return Event{}, false
	}

	c.peaceWasInactive = false
	confidence := math.Min(1.0, float64(peaceCount)/float64(len(recent)))
	return Event{Gesture: SwitchStaff, Confidence: confidence}, true
}

// detectPinch fires TOGGLE_PLAYBACK on the transition from thumb and index
// apart to thumb and index touching.
func (c *Classifier) detectPinch(buf *Buffer, _ FingerState) (Event, bool) {
	thumbPositions, ok1 := buf.LandmarkPositions(ThumbTip, PinchFrameWindow)
	indexPositions, ok2 := buf.LandmarkPositions(IndexTip, PinchFrameWindow)
	if !ok1 || !ok2 {
		return Event{}, false
	}

	distances := make([]float64, len(thumbPositions))
	maxDist := 0.0
	for i := range thumbPositions {
		d := planarDist(thumbPositions[i], indexPositions[i])
		distances[i] = d
		if d > maxDist {
			maxDist = d
		}
	}
	currentDist := distances[len(distances)-1]

	if maxDist >= PinchOpenThreshold {
		c.pinchWasOpen = true
	}

	if currentDist < PinchDistanceThreshold && c.pinchWasOpen {
		c.pinchWasOpen = false
		confidence := math.Min(1.0, (PinchDistanceThreshold-currentDist)/PinchDistanceThreshold+0.5)
		confidence = math.Min(1.0, confidence)
		return Event{Gesture: TogglePlayback, Confidence: confidence}, true
	}
	return Event{}, false
}
