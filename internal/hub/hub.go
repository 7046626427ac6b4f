package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/Hon139/MuseAid/internal/editor"
	"github.com/Hon139/MuseAid/internal/llm"
	"github.com/Hon139/MuseAid/internal/metrics"
	"github.com/Hon139/MuseAid/internal/model"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Frame is a single JSON message broadcast to every subscriber.
type Frame struct {
	Type      string          `json:"type"`
	Command   string          `json:"command,omitempty"`
	Cursor    *int            `json:"cursor,omitempty"`
	Sequence  *model.Sequence `json:"sequence,omitempty"`
}

// subscriber wraps one connected WebSocket client.
type subscriber struct {
	id   uuid.UUID
	conn *websocket.Conn
}

// Hub owns the canonical Sequence, the Editor wrapping it, and the
// registry of WebSocket subscribers, all guarded by one mutex — the
// single-writer aggregate spec.md §5 requires. Route handlers call
// ApplyGesture/ReplaceSequence/ApplySpeech, each of which performs
// apply -> snapshot -> broadcast -> return atomically.
type Hub struct {
	mu          sync.Mutex
	sequence    *model.Sequence
	editor      *editor.Editor
	subscribers map[uuid.UUID]*subscriber
	llmEditor   *llm.Editor
	metrics     *metrics.SentryMetrics
}

// New creates a Hub seeded with an empty "Untitled" sequence, matching
// AppState's default in state.py.
func New(llmEditor *llm.Editor) *Hub {
	seq := model.NewSequence()
	return &Hub{
		sequence:    seq,
		editor:      editor.New(seq),
		subscribers: make(map[uuid.UUID]*subscriber),
		llmEditor:   llmEditor,
		metrics:     metrics.NewSentryMetrics(),
	}
}

// SubscriberCount returns the number of currently connected WebSocket
// clients, for the status page.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Snapshot returns the current sequence and cursor under the lock, for
// GET /sequence.
func (h *Hub) Snapshot() (*model.Sequence, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sequence.Clone(), h.editor.Cursor()
}

// Register adds conn as a new WebSocket subscriber and writes its
// sequence_update frame to it, both under h.mu, so the write is
// serialized against broadcastLocked — no concurrent /gestures,
// /speech, or PUT /sequence handler can interleave a broadcast write on
// the same Conn between registration and this initial send. This
// guarantees spec.md §5's ordering promise that the initial
// sequence_update arrives before any subsequent broadcast. If the
// initial write fails, conn is not registered.
func (h *Hub) Register(conn *websocket.Conn) (uuid.UUID, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := uuid.New()
	h.subscribers[id] = &subscriber{id: id, conn: conn}

	payload, err := json.Marshal(Frame{Type: "sequence_update", Sequence: h.sequence.Clone()})
	if err != nil {
		delete(h.subscribers, id)
		return uuid.Nil, fmt.Errorf("hub: marshal initial frame: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		delete(h.subscribers, id)
		return uuid.Nil, err
	}

	log.Printf("hub: websocket client connected (%d total)", len(h.subscribers))
	return id, nil
}

// Unregister removes a subscriber, e.g. after its connection closes.
func (h *Hub) Unregister(id uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unregisterLocked(id)
}

func (h *Hub) unregisterLocked(id uuid.UUID) {
	if _, ok := h.subscribers[id]; ok {
		delete(h.subscribers, id)
		log.Printf("hub: websocket client disconnected (%d total)", len(h.subscribers))
	}
}

// broadcastLocked sends frame to every subscriber, collecting and removing
// dead ones after the sweep completes — state.py's AppState.broadcast
// pattern, so one slow/disconnected subscriber cannot block or fail the
// others. Must be called with h.mu held.
func (h *Hub) broadcastLocked(frame Frame) {
	payload, err := json.Marshal(frame)
	if err != nil {
		log.Printf("hub: failed to marshal broadcast frame: %v", err)
		return
	}

	subscriberCount := len(h.subscribers)
	var stale []uuid.UUID
	for id, sub := range h.subscribers {
		if err := sub.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			stale = append(stale, id)
		}
	}
	for _, id := range stale {
		h.unregisterLocked(id)
	}
	h.metrics.RecordBroadcastFanout(context.Background(), frame.Type, subscriberCount, len(stale))
}

// ReplaceSequence replaces the canonical sequence wholesale (PUT
// /sequence), re-sorts its notes with Normalize, resets the editor over
// it, and broadcasts sequence_update.
func (h *Hub) ReplaceSequence(newSeq *model.Sequence) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	newSeq.Normalize()
	h.sequence = newSeq
	h.editor = editor.New(newSeq)
	h.broadcastLocked(Frame{Type: "sequence_update", Sequence: h.sequence.Clone()})
	return len(h.sequence.Notes)
}

// GestureResult reports the outcome of ApplyGesture for the handler to
// translate into an HTTP response.
type GestureResult struct {
	Status  string
	Command string
	Cursor  int
	Reason  string
}

// ApplyGesture maps a gesture label to an editor command, applies it (or
// broadcasts a UI-only command without mutating state), and returns the
// outcome. Implements spec.md §4.3's POST /gestures contract.
func (h *Hub) ApplyGesture(gesture string) GestureResult {
	result := h.applyGesture(gesture)
	command, _ := MapGesture(gesture)
	h.metrics.RecordGestureEvent(context.Background(), gesture, command, result.Status)
	return result
}

func (h *Hub) applyGesture(gesture string) GestureResult {
	command, ok := MapGesture(gesture)
	if !ok {
		log.Printf("hub: unknown gesture %q", gesture)
		return GestureResult{Status: "ignored", Reason: fmt.Sprintf("unknown gesture: %s", gesture)}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if IsPlaybackOnly(command) {
		h.broadcastLocked(Frame{Type: "command", Command: command})
		return GestureResult{Status: "ok", Command: command}
	}

	if command == "switch_edit_staff" {
		h.broadcastLocked(Frame{Type: "command", Command: command})
		return GestureResult{Status: "ok", Command: command}
	}

	if _, err := h.editor.Dispatch(command); err != nil {
		return GestureResult{Status: "ignored", Reason: fmt.Sprintf("unknown command: %s", command)}
	}

	cursor := h.editor.Cursor()
	h.broadcastLocked(Frame{Type: "command", Command: command, Cursor: &cursor})
	return GestureResult{Status: "ok", Command: command, Cursor: cursor}
}

// SpeechResult reports the outcome of ApplySpeech for the handler.
type SpeechResult struct {
	Status    string
	Reason    string
	NoteCount int
}

// ApplySpeech validates an optional selection range, dispatches the
// instruction to the LLM editor, enforces range-scoped invariants, and
// on success replaces state and broadcasts. Implements spec.md §4.3's
// POST /speech contract.
func (h *Hub) ApplySpeech(ctx context.Context, instruction string, selectionStart, selectionEnd *int) SpeechResult {
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return SpeechResult{Status: "ignored", Reason: "empty instruction"}
	}

	h.mu.Lock()
	current := h.sequence.Clone()
	length := len(current.Notes)
	h.mu.Unlock()

	if selectionStart != nil || selectionEnd != nil {
		if selectionStart == nil || selectionEnd == nil {
			return SpeechResult{Status: "error", Reason: "selection_start_index and selection_end_index must both be provided"}
		}
		if ok, reason := validateSelectionRange(length, *selectionStart, *selectionEnd); !ok {
			return SpeechResult{Status: "error", Reason: reason}
		}
	}

	updated, err := h.llmEditor.Apply(ctx, current, instruction, selectionStart, selectionEnd)
	if err != nil {
		log.Printf("hub: speech edit failed for instruction %q: %v", instruction, err)
		if selectionStart != nil && selectionEnd != nil {
			return SpeechResult{Status: "error", Reason: err.Error()}
		}
		return SpeechResult{Status: "error", Reason: "failed to process instruction"}
	}

	updated.Normalize()
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sequence = updated
	h.editor = editor.New(updated)
	h.broadcastLocked(Frame{Type: "sequence_update", Sequence: h.sequence.Clone()})

	return SpeechResult{Status: "ok", NoteCount: len(updated.Notes)}
}

func validateSelectionRange(length, start, end int) (bool, string) {
	if start < 0 || end < 0 {
		return false, "selection indices must be non-negative"
	}
	if start > end {
		return false, "selection_start_index must be <= selection_end_index"
	}
	if length == 0 {
		return false, "cannot apply selection-scoped edit to empty sequence"
	}
	if end >= length {
		return false, fmt.Sprintf("selection_end_index %d out of bounds for %d notes", end, length)
	}
	return true, ""
}
