package gesture

import "time"

// Snapshot is a single frame's worth of data stored in the Buffer, after
// outlier rejection and EMA smoothing have already been applied.
type Snapshot struct {
	Timestamp   time.Time
	Landmarks   Frame
	FingerState FingerState
}

// Buffer is a fixed-size ring buffer of Snapshots. Push applies outlier
// rejection (replacing any landmark that jumped farther than
// LandmarkMaxJump with a constant-velocity prediction) and EMA smoothing
// before storing, following motion_buffer.py's MotionBuffer.
type Buffer struct {
	frames   []Snapshot
	maxSize  int
	smooth   *Frame
	hasPrior bool
}

// NewBuffer returns an empty Buffer with the given capacity.
func NewBuffer(maxSize int) *Buffer {
	if maxSize <= 0 {
		maxSize = BufferSize
	}
	return &Buffer{maxSize: maxSize}
}

// Push appends a new snapshot, smoothing raw landmarks against buffered
// history first.
func (b *Buffer) Push(landmarks Frame, fingers FingerState, timestamp time.Time) {
	raw := landmarks
	var smoothed Frame

	if b.hasPrior {
		raw = b.rejectOutliers(raw)
		for i := 0; i < NumLandmarks; i++ {
			for a := 0; a < 3; a++ {
				smoothed[i][a] = LandmarkSmoothAlpha*raw[i][a] + (1.0-LandmarkSmoothAlpha)*b.smooth[i][a]
			}
		}
	} else {
		smoothed = raw
	}

	s := smoothed
	b.smooth = &s
	b.hasPrior = true

	b.frames = append(b.frames, Snapshot{Timestamp: timestamp, Landmarks: smoothed, FingerState: fingers})
	if len(b.frames) > b.maxSize {
		b.frames = b.frames[len(b.frames)-b.maxSize:]
	}
}

// Clear empties the buffer and resets EMA state.
func (b *Buffer) Clear() {
	b.frames = nil
	b.smooth = nil
	b.hasPrior = false
}

// rejectOutliers replaces any landmark whose (x,y) jump from the previous
// smoothed frame exceeds LandmarkMaxJump with a constant-velocity
// prediction extrapolated from the last two buffered frames (or the
// previous smoothed position if only one prior frame exists).
func (b *Buffer) rejectOutliers(raw Frame) Frame {
	prev := *b.smooth
	result := raw

	var predicted Frame
	haveTwo := len(b.frames) >= 2
	if haveTwo {
		prev2 := b.frames[len(b.frames)-2].Landmarks
		prev1 := b.frames[len(b.frames)-1].Landmarks
		for i := 0; i < NumLandmarks; i++ {
			for a := 0; a < 3; a++ {
				predicted[i][a] = prev1[i][a] + (prev1[i][a] - prev2[i][a])
			}
		}
	} else {
		predicted = prev
	}

	for i := 0; i < NumLandmarks; i++ {
		if planarDist(raw[i], prev[i]) > LandmarkMaxJump {
			result[i] = predicted[i]
		}
	}
	return result
}

// Len returns the number of frames currently buffered.
func (b *Buffer) Len() int {
	return len(b.frames)
}

// Latest returns the most recently pushed snapshot, or ok=false if empty.
func (b *Buffer) Latest() (Snapshot, bool) {
	if len(b.frames) == 0 {
		return Snapshot{}, false
	}
	return b.frames[len(b.frames)-1], true
}

// Recent returns the n most recent snapshots, oldest first. It returns
// fewer than n if the buffer holds fewer frames.
func (b *Buffer) Recent(n int) []Snapshot {
	if n > len(b.frames) {
		n = len(b.frames)
	}
	return b.frames[len(b.frames)-n:]
}

// LandmarkPositions returns the n most recent positions of a single
// landmark, oldest first, or ok=false if fewer than n frames are buffered.
func (b *Buffer) LandmarkPositions(landmarkID, n int) ([]Point, bool) {
	if len(b.frames) < n {
		return nil, false
	}
	frames := b.Recent(n)
	out := make([]Point, len(frames))
	for i, f := range frames {
		out[i] = f.Landmarks[landmarkID]
	}
	return out, true
}

// PalmCentrePositions returns the n most recent (wrist, middle-MCP)
// midpoints, oldest first, or ok=false if fewer than n frames are buffered.
func (b *Buffer) PalmCentrePositions(n int) ([]Point, bool) {
	if len(b.frames) < n {
		return nil, false
	}
	frames := b.Recent(n)
	out := make([]Point, len(frames))
	for i, f := range frames {
		wrist := f.Landmarks[Wrist]
		mid := f.Landmarks[MiddleMCP]
		out[i] = Point{(wrist[0] + mid[0]) / 2.0, (wrist[1] + mid[1]) / 2.0, 0}
	}
	return out, true
}
