package model

// Key names the 24 major/minor key signatures MuseAid supports. Key carries
// (NumAccidentals, IsSharps) and a semitone offset used to transpose notes
// when cycling between keys.
type Key string

// KeySignature is the (num_accidentals, is_sharps) pair for a Key, mirroring
// the Python KEY_SIGNATURES table.
type KeySignature struct {
	NumAccidentals int
	IsSharps       bool
}

// KeyTable is the closed 24-key set MuseAid's key-signature cycle walks,
// carried over verbatim from the Composition_App KEY_SIGNATURES table.
var KeyTable = map[Key]KeySignature{
	"C": {0, true}, "Am": {0, true},
	"G": {1, true}, "Em": {1, true},
	"D": {2, true}, "Bm": {2, true},
	"A": {3, true}, "F#m": {3, true},
	"E": {4, true}, "C#m": {4, true},
	"B": {5, true}, "G#m": {5, true},
	"F#": {6, true}, "D#m": {6, true},
	"F": {1, false}, "Dm": {1, false},
	"Bb": {2, false}, "Gm": {2, false},
	"Eb": {3, false}, "Cm": {3, false},
	"Ab": {4, false}, "Fm": {4, false},
	"Db": {5, false}, "Bbm": {5, false},
	"Gb": {6, false}, "Ebm": {6, false},
}

// Info returns the key signature for k, defaulting to C major's (0, true)
// for an unrecognized key, matching Sequence.key_info's dict.get fallback.
func (k Key) Info() KeySignature {
	if sig, ok := KeyTable[k]; ok {
		return sig
	}
	return KeySignature{0, true}
}

// tonicSemitone maps each key's tonic letter (major or minor) to its
// position in the chromatic scale, using sharp spellings for flat keys so
// the semitone lattice stays consistent with PitchOrder.
var tonicSemitone = map[Key]int{
	"C": 0, "Am": 9,
	"G": 7, "Em": 4,
	"D": 2, "Bm": 11,
	"A": 9, "F#m": 6,
	"E": 4, "C#m": 1,
	"B": 11, "G#m": 8,
	"F#": 6, "D#m": 3,
	"F": 5, "Dm": 2,
	"Bb": 10, "Gm": 7,
	"Eb": 3, "Cm": 0,
	"Ab": 8, "Fm": 5,
	"Db": 1, "Bbm": 10,
	"Gb": 6, "Ebm": 3,
}

// TransposeDelta returns the semitone shift from key `from` to key `to`,
// normalized to the range [-6, 6) so the editor never transposes a full
// octave when a simpler shift reaches the same pitch class.
func TransposeDelta(from, to Key) int {
	fromSemi, ok := tonicSemitone[from]
	if !ok {
		fromSemi = 0
	}
	toSemi, ok := tonicSemitone[to]
	if !ok {
		toSemi = 0
	}
	delta := toSemi - fromSemi
	for delta < -6 {
		delta += 12
	}
	for delta >= 6 {
		delta -= 12
	}
	return delta
}

// Shift moves pitch p by steps semitones along PitchOrder, clamping at the
// lattice boundary rather than wrapping (pitch-up/down never wraps octaves
// past the supported range).
func Shift(p string, steps int) string {
	idx := PitchIndex(p)
	if idx < 0 {
		return p
	}
	idx += steps
	if idx < 0 {
		idx = 0
	}
	if idx >= len(PitchOrder) {
		idx = len(PitchOrder) - 1
	}
	return PitchOrder[idx]
}
