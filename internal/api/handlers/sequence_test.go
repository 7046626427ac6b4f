package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Hon139/MuseAid/internal/api/handlers"
	"github.com/Hon139/MuseAid/internal/hub"
	"github.com/Hon139/MuseAid/internal/llm"
	"github.com/Hon139/MuseAid/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

type noopProvider struct{}

func (noopProvider) Name() string { return "noop" }
func (noopProvider) Generate(_ context.Context, _ *llm.EditRequest) (*llm.EditResponse, error) {
	return &llm.EditResponse{RawOutput: "{}"}, nil
}

func newTestHub(t *testing.T) *hub.Hub {
	t.Helper()
	editor := llm.NewEditor(noopProvider{}, "gemini-2.0-flash")
	return hub.New(editor)
}

func TestGetSequenceReturnsSnapshot(t *testing.T) {
	h := newTestHub(t)
	handler := handlers.NewSequenceHandler(h)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/sequence", nil)

	handler.GetSequence(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "sequence")
	assert.Contains(t, body, "cursor")
}

func TestPutSequenceAcceptsWrappedBody(t *testing.T) {
	h := newTestHub(t)
	handler := handlers.NewSequenceHandler(h)

	payload, err := json.Marshal(map[string]any{
		"sequence": model.Sequence{
			Name: "Test", BPM: 120, TimeSigNum: 4, TimeSigDen: 4, Key: "C",
			Notes: []*model.Note{{Pitch: "C4", Duration: 1, NoteType: model.NoteQuarter}},
		},
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/sequence", bytes.NewReader(payload))

	handler.PutSequence(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"note_count":1`)
}

func TestPutSequenceAcceptsBareSequence(t *testing.T) {
	h := newTestHub(t)
	handler := handlers.NewSequenceHandler(h)

	payload, err := json.Marshal(model.Sequence{
		Name: "Test", BPM: 100, TimeSigNum: 4, TimeSigDen: 4, Key: "C",
		Notes: []*model.Note{},
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/sequence", bytes.NewReader(payload))

	handler.PutSequence(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"note_count":0`)
}

func TestPutSequenceRejectsInvalidJSON(t *testing.T) {
	h := newTestHub(t)
	handler := handlers.NewSequenceHandler(h)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/sequence", bytes.NewReader([]byte("not json")))

	handler.PutSequence(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
