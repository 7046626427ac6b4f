package model_test

import (
	"testing"

	"github.com/Hon139/MuseAid/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPitchIndex(t *testing.T) {
	require.Equal(t, 0, model.PitchIndex("C4"))
	require.Equal(t, 23, model.PitchIndex("B5"))
	require.Equal(t, -1, model.PitchIndex("REST"))
	require.Equal(t, -1, model.PitchIndex("nonsense"))
}

func TestNoteTypeForDuration(t *testing.T) {
	cases := []struct {
		duration float64
		want     model.NoteType
		ok       bool
	}{
		{4.0, model.NoteWhole, true},
		{2.0, model.NoteHalf, true},
		{1.0, model.NoteQuarter, true},
		{0.5, model.NoteEighth, true},
		{0.25, model.NoteSixteenth, true},
		{0.3, "", false},
	}
	for _, c := range cases {
		got, ok := model.NoteTypeForDuration(c.duration)
		assert.Equal(t, c.ok, ok)
		if c.ok {
			assert.Equal(t, c.want, got)
		}
	}
}

func TestSequenceTotalBeats(t *testing.T) {
	seq := model.NewSequence()
	assert.Equal(t, 0.0, seq.TotalBeats())

	seq.Notes = append(seq.Notes,
		&model.Note{Pitch: "C4", Duration: 1, Beat: 0},
		&model.Note{Pitch: "D4", Duration: 2, Beat: 1},
	)
	assert.Equal(t, 3.0, seq.TotalBeats())
}

func TestSequenceNormalizeOrdersByBeatInstrumentPitch(t *testing.T) {
	seq := model.NewSequence()
	seq.Notes = []*model.Note{
		{Pitch: "D4", Duration: 1, Beat: 1, Instrument: 0},
		{Pitch: "C4", Duration: 1, Beat: 0, Instrument: 1},
		{Pitch: "B4", Duration: 1, Beat: 0, Instrument: 0},
	}
	seq.Normalize()

	require.Len(t, seq.Notes, 3)
	assert.Equal(t, "B4", seq.Notes[0].Pitch)
	assert.Equal(t, "C4", seq.Notes[1].Pitch)
	assert.Equal(t, "D4", seq.Notes[2].Pitch)
}

func TestSequenceCloneIsIndependent(t *testing.T) {
	seq := model.NewSequence()
	seq.Notes = append(seq.Notes, &model.Note{Pitch: "C4", Duration: 1})

	clone := seq.Clone()
	clone.Notes[0].Pitch = "D4"

	assert.Equal(t, "C4", seq.Notes[0].Pitch)
	assert.Equal(t, "D4", clone.Notes[0].Pitch)
}

func TestRestPitchIndex(t *testing.T) {
	n := model.Note{Pitch: model.RestPitch}
	assert.True(t, n.IsRest())
	assert.Equal(t, -1, n.PitchIndex())
}
