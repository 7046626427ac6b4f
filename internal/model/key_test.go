package model_test

import (
	"testing"

	"github.com/Hon139/MuseAid/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestKeyInfoKnownAndUnknown(t *testing.T) {
	sig := model.Key("G").Info()
	assert.Equal(t, 1, sig.NumAccidentals)
	assert.True(t, sig.IsSharps)

	sig = model.Key("Eb").Info()
	assert.Equal(t, 3, sig.NumAccidentals)
	assert.False(t, sig.IsSharps)

	// Unknown key falls back to C major, matching the Python dict.get default.
	sig = model.Key("Zb").Info()
	assert.Equal(t, 0, sig.NumAccidentals)
	assert.True(t, sig.IsSharps)
}

func TestTransposeDeltaSamePitchClass(t *testing.T) {
	assert.Equal(t, 0, model.TransposeDelta("C", "C"))
	// G major tonic is 7 semitones above C; normalized into [-6, 6).
	assert.Equal(t, -5, model.TransposeDelta("C", "G"))
	assert.Equal(t, 5, model.TransposeDelta("G", "C"))
}

func TestShiftClampsAtLatticeBoundary(t *testing.T) {
	assert.Equal(t, "C#4", model.Shift("C4", 1))
	assert.Equal(t, "C4", model.Shift("C4", -1))
	assert.Equal(t, "B5", model.Shift("B5", 1))
}
