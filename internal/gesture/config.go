// Package gesture implements the hand-gesture recognition pipeline: landmark
// smoothing and outlier rejection, finger-state derivation, and an ordered
// gesture classifier. It is a direct Go port of the tunables and algorithms
// in original_source/hand-gesture-app/src/{config,finger_state,
// motion_buffer,gesture_detector}.py.
package gesture

import "time"

// Gesture names MuseAid's classifier emits, carried over verbatim from
// config.py's ALL_GESTURES.
const (
	PitchUp         = "PITCH_UP"
	PitchDown       = "PITCH_DOWN"
	TogglePlayback  = "TOGGLE_PLAYBACK"
	ScrollForward   = "SCROLL_FORWARD"
	ScrollBackward  = "SCROLL_BACKWARD"
	SwitchStaff     = "SWITCH_STAFF"
)

// AllGestures lists every gesture the classifier can emit.
var AllGestures = []string{PitchUp, PitchDown, TogglePlayback, ScrollForward, ScrollBackward, SwitchStaff}

// Landmark indices within a 21-point MediaPipe Hands frame.
const (
	Wrist = iota
	ThumbCMC
	ThumbMCP
	ThumbIP
	ThumbTip
	IndexMCP
	IndexPIP
	IndexDIP
	IndexTip
	MiddleMCP
	MiddlePIP
	MiddleDIP
	MiddleTip
	RingMCP
	RingPIP
	RingDIP
	RingTip
	PinkyMCP
	PinkyPIP
	PinkyDIP
	PinkyTip
)

// NumLandmarks is the fixed landmark count per hand frame.
const NumLandmarks = 21

const (
	// BufferSize is the ring buffer's frame capacity (~0.5-0.7s at ~30fps).
	BufferSize = 20
	// MinFramesForDetection is the minimum buffer occupancy before the
	// classifier attempts detection, avoiding false positives on startup.
	MinFramesForDetection = 8

	// GestureCooldown suppresses repeated firing of the same gesture class.
	GestureCooldown = 600 * time.Millisecond

	// FingerExtendedRatio and ThumbExtendedAngleDeg are retained from the
	// Python config for documentation parity; DeriveFingers implements the
	// distance/angle heuristics directly rather than consuming these as
	// runtime ratios (see finger_state.py's _is_extended/thumb heuristic).
	FingerExtendedRatio   = 0.55
	ThumbExtendedAngleDeg = 40.0

	SwipeMinDisplacement      = 0.12
	SwipeDirectionalityRatio  = 1.8
	SwipeFrameWindow          = 12
	PalmSwipeMinDisplacement  = 0.10
	PalmSwipeDirectionality   = 1.8
	PalmSwipeFrameWindow      = 12
	PalmSwipeMinFingers       = 4
	PeaceSignFrameWindow      = 8
	PeaceSignMinHoldFrames    = 4
	PinchDistanceThreshold    = 0.045
	PinchOpenThreshold        = 0.07
	PinchFrameWindow          = 8

	// LandmarkSmoothAlpha is the EMA smoothing factor: lower = heavier
	// smoothing. LandmarkMaxJump is the per-frame jump (normalized
	// Euclidean distance) beyond which a landmark is treated as a tracking
	// glitch and replaced with a constant-velocity prediction.
	LandmarkSmoothAlpha = 0.55
	LandmarkMaxJump     = 0.18
)
