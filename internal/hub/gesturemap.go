// Package hub implements the coordination server's single-writer
// aggregate: the canonical Sequence, its editor, and the set of
// WebSocket subscribers that get every mutation broadcast to them.
package hub

import "strings"

// gestureToCommand is the authoritative gesture-name-to-editor-command
// table, ported verbatim from gesture_map.py's GESTURE_TO_COMMAND. Both
// TOGGLE_INSTRUMENT and SWITCH_STAFF map to the UI-only
// switch_edit_staff notification rather than the editor's
// toggle_instrument command, per spec.md §9's documented intentional
// choice.
var gestureToCommand = map[string]string{
	"PITCH_UP":          "pitch_up",
	"PITCH_DOWN":        "pitch_down",
	"TOGGLE_PLAYBACK":   "toggle_playback",
	"SCROLL_FORWARD":    "move_right",
	"SCROLL_BACKWARD":   "move_left",
	"SWITCH_STAFF":      "switch_edit_staff",
	"ADD_NOTE":          "add_note",
	"DELETE_NOTE":       "delete_note",
	"TOGGLE_INSTRUMENT": "switch_edit_staff",
	"SPLIT_NOTE":        "split_note",
	"MERGE_NOTE":        "merge_note",
	"MAKE_REST":         "make_rest",
}

// knownCommands is the editor/UI command vocabulary gesture labels may
// pass through as directly (already snake_case, or SCREAMING_SNAKE that
// lowercases to a known command).
var knownCommands = map[string]bool{
	"move_left":          true,
	"move_right":         true,
	"pitch_up":           true,
	"pitch_down":         true,
	"delete_note":        true,
	"add_note":           true,
	"toggle_instrument":  true,
	"split_note":         true,
	"merge_note":         true,
	"make_rest":          true,
	"toggle_playback":    true,
	"switch_edit_staff":  true,
}

// MapGesture returns the command for gesture, or ok=false if the label is
// unrecognized. It checks the explicit table first, then allows
// passthrough of an already-known command name (snake_case or
// SCREAMING_SNAKE).
func MapGesture(gesture string) (string, bool) {
	if gesture == "" {
		return "", false
	}
	if command, ok := gestureToCommand[gesture]; ok {
		return command, true
	}
	if knownCommands[gesture] {
		return gesture, true
	}
	if lower := strings.ToLower(gesture); knownCommands[lower] {
		return lower, true
	}
	return "", false
}

// IsPlaybackOnly reports whether command is the UI-only toggle_playback
// action, which the hub broadcasts without mutating the editor.
func IsPlaybackOnly(command string) bool {
	return command == "toggle_playback"
}
