// Package editor implements the sequence editor's command vocabulary: a
// cursor over a model.Sequence and a string-dispatched command table,
// mirroring the teacher's action-table idiom in
// internal/services/magda_dsl_parser.go and ported from the authoritative
// PyQt6 SequenceEditor in Composition_App/src/music_app/commands.py.
package editor

import (
	"fmt"

	"github.com/Hon139/MuseAid/internal/model"
)

// NotificationKind names which observable signal a command produced, so a
// caller (the coordination hub) knows whether to broadcast a cursor update,
// a sequence update, both, or neither.
type NotificationKind int

const (
	NoChange NotificationKind = iota
	CursorChanged
	SequenceChanged
	CursorAndSequenceChanged
)

// Notification reports what changed after a Dispatch call.
type Notification struct {
	Kind   NotificationKind
	Cursor int
}

func (n Notification) cursorChanged() bool {
	return n.Kind == CursorChanged || n.Kind == CursorAndSequenceChanged
}

func (n Notification) sequenceChanged() bool {
	return n.Kind == SequenceChanged || n.Kind == CursorAndSequenceChanged
}

// Editor wraps a model.Sequence with a cursor and a command dispatch table.
// It is not safe for concurrent use; callers serialize access (the
// coordination hub does this with a mutex).
type Editor struct {
	seq    *model.Sequence
	cursor int

	// re-entering guards SetKey's batched mutation against nested calls,
	// mirroring the re-entrancy flag spec.md calls for around cycling.
	reentering bool
}

// New wraps seq with a fresh editor positioned at cursor 0.
func New(seq *model.Sequence) *Editor {
	return &Editor{seq: seq}
}

// Sequence returns the wrapped sequence.
func (e *Editor) Sequence() *model.Sequence {
	return e.seq
}

// Cursor returns the current cursor index.
func (e *Editor) Cursor() int {
	return e.cursor
}

// setCursor clamps value to [0, len(notes)-1], matching the Python
// cursor.setter.
func (e *Editor) setCursor(value int) {
	if len(e.seq.Notes) == 0 {
		e.cursor = 0
		return
	}
	if value < 0 {
		value = 0
	}
	if max := len(e.seq.Notes) - 1; value > max {
		value = max
	}
	e.cursor = value
}

// CurrentNote returns the note at the cursor, or nil for an empty sequence.
func (e *Editor) CurrentNote() *model.Note {
	if len(e.seq.Notes) > 0 && e.cursor >= 0 && e.cursor < len(e.seq.Notes) {
		return e.seq.Notes[e.cursor]
	}
	return nil
}

type commandFunc func(*Editor) Notification

// commands is the dispatch table backing Dispatch, mirroring
// SequenceEditor.execute's `actions` dict in commands.py.
var commands = map[string]commandFunc{
	"move_left":         (*Editor).moveLeft,
	"move_right":        (*Editor).moveRight,
	"pitch_up":          (*Editor).pitchUp,
	"pitch_down":        (*Editor).pitchDown,
	"delete_note":       (*Editor).deleteNote,
	"add_note":          (*Editor).addNote,
	"toggle_instrument": (*Editor).toggleInstrument,
	"split_note":        (*Editor).splitNote,
	"merge_note":        (*Editor).mergeNote,
	"make_rest":         (*Editor).makeRest,
}

// Dispatch routes a command name to its handler. An unknown command
// returns an error and leaves the sequence and cursor untouched.
func (e *Editor) Dispatch(command string) (Notification, error) {
	fn, ok := commands[command]
	if !ok {
		return Notification{}, fmt.Errorf("editor: unknown command %q", command)
	}
	return fn(e), nil
}

// ── Navigation ──────────────────────────────────────────────────────────

func (e *Editor) moveLeft() Notification {
	e.setCursor(e.cursor - 1)
	return Notification{Kind: CursorChanged, Cursor: e.cursor}
}

func (e *Editor) moveRight() Notification {
	e.setCursor(e.cursor + 1)
	return Notification{Kind: CursorChanged, Cursor: e.cursor}
}

// ── Pitch editing ───────────────────────────────────────────────────────

func (e *Editor) pitchUp() Notification {
	note := e.CurrentNote()
	if note == nil {
		return Notification{}
	}
	if note.IsRest() {
		seed := e.restSeedPitchIndex()
		note.Pitch = model.PitchOrder[min(len(model.PitchOrder)-1, seed+1)]
		return Notification{Kind: SequenceChanged}
	}
	idx := note.PitchIndex()
	if idx < len(model.PitchOrder)-1 {
		note.Pitch = model.PitchOrder[idx+1]
		return Notification{Kind: SequenceChanged}
	}
	return Notification{}
}

func (e *Editor) pitchDown() Notification {
	note := e.CurrentNote()
	if note == nil {
		return Notification{}
	}
	if note.IsRest() {
		seed := e.restSeedPitchIndex()
		idx := seed - 1
		if idx < 0 {
			idx = 0
		}
		note.Pitch = model.PitchOrder[idx]
		return Notification{Kind: SequenceChanged}
	}
	idx := note.PitchIndex()
	if idx > 0 {
		note.Pitch = model.PitchOrder[idx-1]
		return Notification{Kind: SequenceChanged}
	}
	return Notification{}
}

// restSeedPitchIndex finds a nearby non-rest pitch to seed rest->note
// conversion, preferring melodic context behind the cursor and falling back
// to context ahead of it, exactly as commands.py's _rest_seed_pitch_index.
func (e *Editor) restSeedPitchIndex() int {
	if len(e.seq.Notes) == 0 {
		return 0
	}
	for i := e.cursor - 1; i >= 0; i-- {
		n := e.seq.Notes[i]
		if !n.IsRest() {
			if idx := model.PitchIndex(n.Pitch); idx >= 0 {
				return idx
			}
		}
	}
	for i := e.cursor + 1; i < len(e.seq.Notes); i++ {
		n := e.seq.Notes[i]
		if !n.IsRest() {
			if idx := model.PitchIndex(n.Pitch); idx >= 0 {
				return idx
			}
		}
	}
	return 0
}

// ── Add / remove ────────────────────────────────────────────────────────

func (e *Editor) deleteNote() Notification {
	if len(e.seq.Notes) == 0 {
		return Notification{}
	}
	e.seq.Notes = append(e.seq.Notes[:e.cursor], e.seq.Notes[e.cursor+1:]...)
	if e.cursor >= len(e.seq.Notes) && len(e.seq.Notes) > 0 {
		e.cursor = len(e.seq.Notes) - 1
	}
	return Notification{Kind: CursorAndSequenceChanged, Cursor: e.cursor}
}

func (e *Editor) addNote() Notification {
	var newBeat float64
	insertIdx := 0
	if len(e.seq.Notes) > 0 {
		current := e.seq.Notes[e.cursor]
		newBeat = current.End()
		insertIdx = e.cursor + 1
	}

	newNote := &model.Note{Pitch: "C4", Duration: 1.0, Beat: newBeat, NoteType: model.NoteQuarter, Instrument: 0}
	e.seq.Notes = append(e.seq.Notes, nil)
	copy(e.seq.Notes[insertIdx+1:], e.seq.Notes[insertIdx:])
	e.seq.Notes[insertIdx] = newNote
	e.cursor = insertIdx
	return Notification{Kind: CursorAndSequenceChanged, Cursor: e.cursor}
}

// toggleInstrument flips the current note between instrument lanes 0 and 1.
// No gesture label reaches it: TOGGLE_INSTRUMENT and SWITCH_STAFF both map
// to the UI-only switch_edit_staff (internal/hub/gesturemap.go), so it runs
// only when "toggle_instrument" is dispatched by name.
func (e *Editor) toggleInstrument() Notification {
	note := e.CurrentNote()
	if note == nil {
		return Notification{}
	}
	if note.Instrument == 0 {
		note.Instrument = 1
	} else {
		note.Instrument = 0
	}
	return Notification{Kind: SequenceChanged}
}

func (e *Editor) splitNote() Notification {
	note := e.CurrentNote()
	if note == nil {
		return Notification{}
	}
	if note.Duration <= 0.25 {
		return Notification{}
	}

	half := note.Duration / 2.0
	note.Duration = half
	if nt, ok := model.NoteTypeForDuration(half); ok {
		note.NoteType = nt
	}

	newNote := &model.Note{
		Pitch:      note.Pitch,
		Duration:   half,
		Beat:       note.Beat + half,
		NoteType:   note.NoteType,
		Instrument: note.Instrument,
	}
	insertIdx := e.cursor + 1
	e.seq.Notes = append(e.seq.Notes, nil)
	copy(e.seq.Notes[insertIdx+1:], e.seq.Notes[insertIdx:])
	e.seq.Notes[insertIdx] = newNote
	return Notification{Kind: CursorAndSequenceChanged, Cursor: e.cursor}
}

const beatEpsilon = 1e-6

func (e *Editor) mergeNote() Notification {
	if len(e.seq.Notes) == 0 || e.cursor >= len(e.seq.Notes)-1 {
		return Notification{}
	}
	cur := e.seq.Notes[e.cursor]
	next := e.seq.Notes[e.cursor+1]

	if cur.Instrument != next.Instrument {
		return Notification{}
	}
	if diff := cur.End() - next.Beat; diff < -beatEpsilon || diff > beatEpsilon {
		return Notification{}
	}

	cur.Duration += next.Duration
	if nt, ok := model.NoteTypeForDuration(cur.Duration); ok {
		cur.NoteType = nt
	}
	e.seq.Notes = append(e.seq.Notes[:e.cursor+1], e.seq.Notes[e.cursor+2:]...)
	return Notification{Kind: CursorAndSequenceChanged, Cursor: e.cursor}
}

// makeRest converts the selected note into a rest, preserving its
// duration, beat, and instrument.
func (e *Editor) makeRest() Notification {
	note := e.CurrentNote()
	if note == nil {
		return Notification{}
	}
	note.Pitch = model.RestPitch
	return Notification{Kind: SequenceChanged}
}

// ── Key-signature transpose ─────────────────────────────────────────────

// SetKey re-pitches every non-rest note by the semitone delta between the
// sequence's current key and newKey, then commits newKey as the sequence's
// key. It is a batched mutation guarded by a re-entrancy flag: a single
// Notification is produced regardless of how many notes moved, and nested
// calls triggered from within a notification handler are dropped rather
// than compounding the shift, per spec.md's notification-reentrancy rule.
// The delta is always computed against the sequence's current key; no
// note's pre-transpose pitch index is remembered. Repeating a call with the
// same key changes nothing, but model.Shift clamps at the ends of
// PitchOrder, so a note clamped by one transpose keeps its clamped pitch
// when the key is changed back.
func (e *Editor) SetKey(newKey model.Key) Notification {
	if e.reentering {
		return Notification{}
	}
	e.reentering = true
	defer func() { e.reentering = false }()

	delta := model.TransposeDelta(model.Key(e.seq.Key), newKey)
	if delta != 0 {
		for _, n := range e.seq.Notes {
			if n.IsRest() {
				continue
			}
			n.Pitch = model.Shift(n.Pitch, delta)
		}
	}
	e.seq.Key = string(newKey)
	return Notification{Kind: SequenceChanged}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
