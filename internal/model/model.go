// Package model defines the note/sequence value objects MuseAid edits and
// transmits over the wire. The shapes mirror the original Python
// dataclasses (Note, Sequence) so the JSON contract stays compatible with
// the rest of the MuseAid toolchain.
package model

import "sort"

// RestPitch marks a Note as a rest rather than a sounding pitch.
const RestPitch = "REST"

// PitchOrder is the closed 24-pitch chromatic lattice MuseAid edits within,
// two octaves (C4..B5), sharps only.
var PitchOrder = []string{
	"C4", "C#4", "D4", "D#4", "E4", "F4", "F#4", "G4", "G#4", "A4", "A#4", "B4",
	"C5", "C#5", "D5", "D#5", "E5", "F5", "F#5", "G5", "G#5", "A5", "A#5", "B5",
}

var pitchIndex = func() map[string]int {
	m := make(map[string]int, len(PitchOrder))
	for i, p := range PitchOrder {
		m[p] = i
	}
	return m
}()

// PitchIndex returns the position of p in PitchOrder, or -1 if p is not a
// recognized pitch (including the rest marker).
func PitchIndex(p string) int {
	if idx, ok := pitchIndex[p]; ok {
		return idx
	}
	return -1
}

// NoteType names the canonical duration buckets used for display and for
// split/merge bookkeeping.
type NoteType string

const (
	NoteWhole     NoteType = "whole"
	NoteHalf      NoteType = "half"
	NoteQuarter   NoteType = "quarter"
	NoteEighth    NoteType = "eighth"
	NoteSixteenth NoteType = "sixteenth"
)

// noteTypeDurations maps each canonical note type to its duration in beats.
var noteTypeDurations = map[NoteType]float64{
	NoteWhole:     4.0,
	NoteHalf:      2.0,
	NoteQuarter:   1.0,
	NoteEighth:    0.5,
	NoteSixteenth: 0.25,
}

const durationEpsilon = 1e-6

// NoteTypeForDuration returns the canonical note type name for a duration in
// beats, or ok=false if the duration does not match one of the known
// buckets within durationEpsilon.
func NoteTypeForDuration(duration float64) (NoteType, bool) {
	for _, nt := range []NoteType{NoteWhole, NoteHalf, NoteQuarter, NoteEighth, NoteSixteenth} {
		if abs(duration-noteTypeDurations[nt]) < durationEpsilon {
			return nt, true
		}
	}
	return "", false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Note is a single sounding pitch or rest within a Sequence.
type Note struct {
	Pitch      string   `json:"pitch"`
	Duration   float64  `json:"duration"`
	Beat       float64  `json:"beat"`
	NoteType   NoteType `json:"note_type"`
	Instrument int      `json:"instrument"`
	// SampleBank names an audio-rendering profile. It is opaque to the
	// core — nothing here interprets it beyond carrying it through edits.
	SampleBank string `json:"sample_bank,omitempty"`
}

// IsRest reports whether the note is a rest rather than a sounding pitch.
func (n Note) IsRest() bool {
	return n.Pitch == RestPitch
}

// PitchIndex returns the note's position in PitchOrder, or -1 for a rest or
// an unrecognized pitch.
func (n Note) PitchIndex() int {
	if n.IsRest() {
		return -1
	}
	return PitchIndex(n.Pitch)
}

// End returns the beat at which the note ends.
func (n Note) End() float64 {
	return n.Beat + n.Duration
}

// Sequence is an ordered collection of notes with tempo, time signature, and
// key metadata.
type Sequence struct {
	Name       string  `json:"name"`
	BPM        int     `json:"bpm"`
	TimeSigNum int     `json:"time_sig_num"`
	TimeSigDen int     `json:"time_sig_den"`
	Key        string  `json:"key"`
	Notes      []*Note `json:"notes"`
}

// NewSequence returns a Sequence populated with the same defaults as the
// Python reference (120 bpm, 4/4, key of C, no notes).
func NewSequence() *Sequence {
	return &Sequence{
		Name:       "Untitled",
		BPM:        120,
		TimeSigNum: 4,
		TimeSigDen: 4,
		Key:        "C",
		Notes:      []*Note{},
	}
}

// TotalBeats returns the beat at which the sequence's last note ends, or 0
// for an empty sequence.
func (s *Sequence) TotalBeats() float64 {
	if len(s.Notes) == 0 {
		return 0
	}
	max := s.Notes[0].End()
	for _, n := range s.Notes[1:] {
		if end := n.End(); end > max {
			max = end
		}
	}
	return max
}

// Normalize re-sorts notes by (beat, instrument, pitch) so ordering is
// deterministic after import or after an LLM replaces the sequence wholesale.
func (s *Sequence) Normalize() {
	sort.SliceStable(s.Notes, func(i, j int) bool {
		a, b := s.Notes[i], s.Notes[j]
		if a.Beat != b.Beat {
			return a.Beat < b.Beat
		}
		if a.Instrument != b.Instrument {
			return a.Instrument < b.Instrument
		}
		return a.Pitch < b.Pitch
	})
}

// Clone returns a deep copy of the sequence, used to snapshot state for
// broadcast and to restore state when an LLM edit fails validation.
func (s *Sequence) Clone() *Sequence {
	notes := make([]*Note, len(s.Notes))
	for i, n := range s.Notes {
		cp := *n
		notes[i] = &cp
	}
	return &Sequence{
		Name:       s.Name,
		BPM:        s.BPM,
		TimeSigNum: s.TimeSigNum,
		TimeSigDen: s.TimeSigDen,
		Key:        s.Key,
		Notes:      notes,
	}
}
