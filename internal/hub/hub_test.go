package hub_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Hon139/MuseAid/internal/hub"
	"github.com/Hon139/MuseAid/internal/llm"
	"github.com/Hon139/MuseAid/internal/model"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEditProvider struct {
	output string
	err    error
}

func (f *fakeEditProvider) Name() string { return "fake" }

func (f *fakeEditProvider) Generate(_ context.Context, _ *llm.EditRequest) (*llm.EditResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &llm.EditResponse{RawOutput: f.output}, nil
}

// dialHub spins up a websocket server backed by h and returns a client
// connection already registered and past its initial sequence_update
// frame, mirroring ws.py's accept-then-send-current-state handshake.
func dialHub(t *testing.T, h *hub.Hub) *websocket.Conn {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		id, err := h.Register(conn)
		require.NoError(t, err)
		go func() {
			defer h.Unregister(id)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	var initial map[string]any
	require.NoError(t, conn.ReadJSON(&initial))
	assert.Equal(t, "sequence_update", initial["type"])
	return conn
}

func TestApplyGesturePitchUpBroadcastsCommand(t *testing.T) {
	editor := llm.NewEditor(&fakeEditProvider{}, "gemini-2.0-flash")
	h := hub.New(editor)
	seq, _ := h.Snapshot()
	seq.Notes = append(seq.Notes, &model.Note{Pitch: "C4", Duration: 1, NoteType: model.NoteQuarter})
	h.ReplaceSequence(seq)

	conn := dialHub(t, h)

	result := h.ApplyGesture("PITCH_UP")
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, "pitch_up", result.Command)

	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"command":"pitch_up"`)
}

func TestApplyGestureUnknownIsIgnored(t *testing.T) {
	editor := llm.NewEditor(&fakeEditProvider{}, "gemini-2.0-flash")
	h := hub.New(editor)
	result := h.ApplyGesture("JAZZ_HANDS")
	assert.Equal(t, "ignored", result.Status)
}

func TestApplyGestureTogglePlaybackDoesNotMutate(t *testing.T) {
	editor := llm.NewEditor(&fakeEditProvider{}, "gemini-2.0-flash")
	h := hub.New(editor)
	before, beforeCursor := h.Snapshot()

	result := h.ApplyGesture("TOGGLE_PLAYBACK")
	assert.Equal(t, "toggle_playback", result.Command)

	after, afterCursor := h.Snapshot()
	assert.Equal(t, before, after)
	assert.Equal(t, beforeCursor, afterCursor)
}

func TestApplyGestureSwitchStaffDoesNotMutateEditor(t *testing.T) {
	editor := llm.NewEditor(&fakeEditProvider{}, "gemini-2.0-flash")
	h := hub.New(editor)
	_, beforeCursor := h.Snapshot()

	result := h.ApplyGesture("TOGGLE_INSTRUMENT")
	assert.Equal(t, "switch_edit_staff", result.Command)

	_, afterCursor := h.Snapshot()
	assert.Equal(t, beforeCursor, afterCursor)
}

func TestApplySpeechEmptyInstructionIgnored(t *testing.T) {
	editor := llm.NewEditor(&fakeEditProvider{}, "gemini-2.0-flash")
	h := hub.New(editor)
	result := h.ApplySpeech(context.Background(), "   ", nil, nil)
	assert.Equal(t, "ignored", result.Status)
}

func TestApplySpeechRangeOnEmptySequenceRejected(t *testing.T) {
	editor := llm.NewEditor(&fakeEditProvider{}, "gemini-2.0-flash")
	h := hub.New(editor)
	start, end := 0, 0
	result := h.ApplySpeech(context.Background(), "raise it", &start, &end)
	assert.Equal(t, "error", result.Status)
	assert.Contains(t, result.Reason, "empty sequence")
}

func TestApplySpeechReplacesSequenceAndBroadcasts(t *testing.T) {
	fake := &fakeEditProvider{output: `{"name":"Untitled","bpm":120,"time_sig_num":4,"time_sig_den":4,"key":"C","notes":[{"pitch":"D4","duration":1,"beat":0,"note_type":"quarter","instrument":0}]}`}
	editor := llm.NewEditor(fake, "gemini-2.0-flash")
	h := hub.New(editor)

	conn := dialHub(t, h)

	result := h.ApplySpeech(context.Background(), "raise the pitch", nil, nil)
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, 1, result.NoteCount)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"sequence_update"`)
}

func TestApplySpeechFailurePreservesState(t *testing.T) {
	fake := &fakeEditProvider{err: assert.AnError}
	editor := llm.NewEditor(fake, "gemini-2.0-flash")
	h := hub.New(editor)
	before, _ := h.Snapshot()

	result := h.ApplySpeech(context.Background(), "do something", nil, nil)
	assert.Equal(t, "error", result.Status)
	assert.Equal(t, "failed to process instruction", result.Reason)

	after, _ := h.Snapshot()
	assert.Equal(t, before, after)
}

func TestMapGesturePassthroughAndUnknown(t *testing.T) {
	cmd, ok := hub.MapGesture("split_note")
	assert.True(t, ok)
	assert.Equal(t, "split_note", cmd)

	cmd, ok = hub.MapGesture("SPLIT_NOTE")
	assert.True(t, ok)
	assert.Equal(t, "split_note", cmd)

	_, ok = hub.MapGesture("NOT_A_GESTURE")
	assert.False(t, ok)
}
