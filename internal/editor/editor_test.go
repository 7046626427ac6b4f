package editor_test

import (
	"testing"

	"github.com/Hon139/MuseAid/internal/editor"
	"github.com/Hon139/MuseAid/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seqWithNotes(notes ...*model.Note) *model.Sequence {
	s := model.NewSequence()
	s.Notes = notes
	return s
}

func TestMoveLeftRightClamps(t *testing.T) {
	seq := seqWithNotes(&model.Note{Pitch: "C4"}, &model.Note{Pitch: "D4"})
	e := editor.New(seq)

	n, err := e.Dispatch("move_left")
	require.NoError(t, err)
	assert.Equal(t, 0, n.Cursor)

	_, err = e.Dispatch("move_right")
	require.NoError(t, err)
	_, err = e.Dispatch("move_right")
	require.NoError(t, err)
	assert.Equal(t, 1, e.Cursor())
}

func TestPitchUpDown(t *testing.T) {
	seq := seqWithNotes(&model.Note{Pitch: "C4"})
	e := editor.New(seq)

	_, err := e.Dispatch("pitch_up")
	require.NoError(t, err)
	assert.Equal(t, "C#4", e.CurrentNote().Pitch)

	_, err = e.Dispatch("pitch_down")
	require.NoError(t, err)
	assert.Equal(t, "C4", e.CurrentNote().Pitch)
}

func TestPitchUpDownAtBoundaryIsNoOp(t *testing.T) {
	seq := seqWithNotes(&model.Note{Pitch: "B5"})
	e := editor.New(seq)
	_, err := e.Dispatch("pitch_up")
	require.NoError(t, err)
	assert.Equal(t, "B5", e.CurrentNote().Pitch)
}

func TestPitchUpOnRestSeedsFromPreviousContext(t *testing.T) {
	seq := seqWithNotes(
		&model.Note{Pitch: "D4"},
		&model.Note{Pitch: model.RestPitch},
	)
	e := editor.New(seq)
	_, err := e.Dispatch("move_right")
	require.NoError(t, err)
	_, err = e.Dispatch("pitch_up")
	require.NoError(t, err)
	assert.Equal(t, "D#4", e.CurrentNote().Pitch)
}

func TestDeleteNoteAdjustsCursor(t *testing.T) {
	seq := seqWithNotes(&model.Note{Pitch: "C4"}, &model.Note{Pitch: "D4"})
	e := editor.New(seq)
	_, err := e.Dispatch("move_right")
	require.NoError(t, err)
	n, err := e.Dispatch("delete_note")
	require.NoError(t, err)
	assert.Equal(t, 0, n.Cursor)
	assert.Len(t, seq.Notes, 1)
}

func TestAddNoteInsertsAfterCursor(t *testing.T) {
	seq := seqWithNotes(&model.Note{Pitch: "C4", Duration: 1, Beat: 0})
	e := editor.New(seq)
	n, err := e.Dispatch("add_note")
	require.NoError(t, err)
	require.Len(t, seq.Notes, 2)
	assert.Equal(t, 1, n.Cursor)
	assert.Equal(t, 1.0, seq.Notes[1].Beat)
}

func TestToggleInstrument(t *testing.T) {
	seq := seqWithNotes(&model.Note{Pitch: "C4", Instrument: 0})
	e := editor.New(seq)
	_, err := e.Dispatch("toggle_instrument")
	require.NoError(t, err)
	assert.Equal(t, 1, e.CurrentNote().Instrument)
}

func TestSplitNoteHalvesDuration(t *testing.T) {
	seq := seqWithNotes(&model.Note{Pitch: "C4", Duration: 1, Beat: 0, NoteType: model.NoteQuarter})
	e := editor.New(seq)
	_, err := e.Dispatch("split_note")
	require.NoError(t, err)
	require.Len(t, seq.Notes, 2)
	assert.Equal(t, 0.5, seq.Notes[0].Duration)
	assert.Equal(t, model.NoteEighth, seq.Notes[0].NoteType)
	assert.Equal(t, 0.5, seq.Notes[1].Beat)
}

func TestSplitNoteRefusesBelowMinimum(t *testing.T) {
	seq := seqWithNotes(&model.Note{Pitch: "C4", Duration: 0.25, Beat: 0})
	e := editor.New(seq)
	_, err := e.Dispatch("split_note")
	require.NoError(t, err)
	assert.Len(t, seq.Notes, 1)
}

func TestMergeNoteRequiresAdjacencyAndSameInstrument(t *testing.T) {
	seq := seqWithNotes(
		&model.Note{Pitch: "C4", Duration: 0.5, Beat: 0, Instrument: 0, NoteType: model.NoteEighth},
		&model.Note{Pitch: "C4", Duration: 0.5, Beat: 0.5, Instrument: 0, NoteType: model.NoteEighth},
	)
	e := editor.New(seq)
	_, err := e.Dispatch("merge_note")
	require.NoError(t, err)
	require.Len(t, seq.Notes, 1)
	assert.Equal(t, 1.0, seq.Notes[0].Duration)
	assert.Equal(t, model.NoteQuarter, seq.Notes[0].NoteType)
}

func TestMergeNoteRejectsDifferentInstrument(t *testing.T) {
	seq := seqWithNotes(
		&model.Note{Pitch: "C4", Duration: 0.5, Beat: 0, Instrument: 0},
		&model.Note{Pitch: "C4", Duration: 0.5, Beat: 0.5, Instrument: 1},
	)
	e := editor.New(seq)
	_, err := e.Dispatch("merge_note")
	require.NoError(t, err)
	assert.Len(t, seq.Notes, 2)
}

func TestMakeRestPreservesTiming(t *testing.T) {
	seq := seqWithNotes(&model.Note{Pitch: "C4", Duration: 2, Beat: 1, Instrument: 1})
	e := editor.New(seq)
	_, err := e.Dispatch("make_rest")
	require.NoError(t, err)
	note := e.CurrentNote()
	assert.True(t, note.IsRest())
	assert.Equal(t, 2.0, note.Duration)
	assert.Equal(t, 1.0, note.Beat)
	assert.Equal(t, 1, note.Instrument)
}

func TestSetKeyTransposesNonRestNotesOnce(t *testing.T) {
	seq := seqWithNotes(&model.Note{Pitch: "C4"}, &model.Note{Pitch: model.RestPitch})
	seq.Key = "C"
	e := editor.New(seq)

	n := e.SetKey("D")
	assert.Equal(t, editor.SequenceChanged, n.Kind)
	assert.Equal(t, "D4", seq.Notes[0].Pitch)
	assert.True(t, seq.Notes[1].IsRest())
	assert.Equal(t, "D", seq.Key)
}

func TestDispatchUnknownCommandErrors(t *testing.T) {
	e := editor.New(model.NewSequence())
	_, err := e.Dispatch("not_a_command")
	assert.Error(t, err)
}
