package gesture

import "math"

// Point is a normalized (x, y, z) landmark coordinate, 0-1 in image space.
type Point [3]float64

// Frame is one hand frame: 21 normalized landmarks.
type Frame [NumLandmarks]Point

func planarDist(a, b Point) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	return math.Hypot(dx, dy)
}

func angleAt(a, b, c Point) float64 {
	bax, bay, baz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	bcx, bcy, bcz := c[0]-b[0], c[1]-b[1], c[2]-b[2]
	dot := bax*bcx + bay*bcy + baz*bcz
	magBA := math.Sqrt(bax*bax + bay*bay + baz*baz)
	magBC := math.Sqrt(bcx*bcx + bcy*bcy + bcz*bcz)
	cos := dot / (magBA*magBC + 1e-9)
	if cos > 1.0 {
		cos = 1.0
	}
	if cos < -1.0 {
		cos = -1.0
	}
	return math.Acos(cos) * 180.0 / math.Pi
}

// FingerState reports which of the five fingers are currently extended.
type FingerState struct {
	Thumb, Index, Middle, Ring, Pinky bool
}

// CountExtended returns how many of the five fingers are extended.
func (f FingerState) CountExtended() int {
	count := 0
	for _, v := range []bool{f.Thumb, f.Index, f.Middle, f.Ring, f.Pinky} {
		if v {
			count++
		}
	}
	return count
}

// OnlyIndex reports whether the index finger alone is extended (thumb may
// vary), required for the vertical swipe detector.
func (f FingerState) OnlyIndex() bool {
	return f.Index && !f.Middle && !f.Ring && !f.Pinky
}

// OpenPalm reports whether 4+ fingers are extended (flat open hand).
func (f FingerState) OpenPalm() bool {
	return f.CountExtended() >= PalmSwipeMinFingers
}

// PeaceSign reports a classic V pose: index and middle extended, ring and
// pinky curled. This predicate is not present in the retrieved
// finger_state.py (gesture_detector.py references it but its source was
// never included in the original_source retrieval), so it is inferred here
// from the gesture's name and its two-fingers-extended description in
// spec.md §4.2.
func (f FingerState) PeaceSign() bool {
	return f.Index && f.Middle && !f.Ring && !f.Pinky
}

func isExtended(lm Frame, tip, pip, dip, mcp int) bool {
	wrist := lm[Wrist]
	tipDist := planarDist(lm[tip], wrist)
	pipDist := planarDist(lm[pip], wrist)
	dipDist := planarDist(lm[dip], wrist)
	mcpDist := planarDist(lm[mcp], wrist)

	if tipDist > pipDist {
		return true
	}
	if tipDist > dipDist && tipDist > mcpDist*1.1 {
		return true
	}
	return false
}

// DeriveFingers computes FingerState from a single hand frame, following
// finger_state.py's get_finger_state: tip/pip/dip/mcp distance heuristics
// for the four fingers, and a thumb-IP-angle plus palm-centre-distance
// heuristic for the thumb.
func DeriveFingers(lm Frame) FingerState {
	index := isExtended(lm, IndexTip, IndexPIP, IndexDIP, IndexMCP)
	middle := isExtended(lm, MiddleTip, MiddlePIP, MiddleDIP, MiddleMCP)
	ring := isExtended(lm, RingTip, RingPIP, RingDIP, RingMCP)
	pinky := isExtended(lm, PinkyTip, PinkyPIP, PinkyDIP, PinkyMCP)

	thumbAngle := angleAt(lm[ThumbMCP], lm[ThumbIP], lm[ThumbTip])
	palmCentre := Point{
		(lm[Wrist][0] + lm[MiddleMCP][0]) / 2.0,
		(lm[Wrist][1] + lm[MiddleMCP][1]) / 2.0,
		0,
	}
	thumbTipDist := planarDist(lm[ThumbTip], palmCentre)
	thumbMCPDist := planarDist(lm[ThumbMCP], palmCentre)
	thumb := thumbAngle > 150.0 && thumbTipDist > thumbMCPDist

	return FingerState{Thumb: thumb, Index: index, Middle: middle, Ring: ring, Pinky: pinky}
}
