package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Hon139/MuseAid/internal/hub"
	"github.com/Hon139/MuseAid/internal/model"
	"github.com/gin-gonic/gin"
)

// SequenceHandler serves GET/PUT /sequence against the hub's canonical
// state, mirroring routes/sequence.py.
type SequenceHandler struct {
	hub *hub.Hub
}

func NewSequenceHandler(h *hub.Hub) *SequenceHandler {
	return &SequenceHandler{hub: h}
}

// GetSequence returns the current sequence and editor cursor. The
// Composition App calls this on startup to sync its local state.
func (h *SequenceHandler) GetSequence(c *gin.Context) {
	seq, cursor := h.hub.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"sequence": seq,
		"cursor":   cursor,
	})
}

// putSequenceBody accepts either {"sequence": {...}} or a bare sequence
// object, matching sequence.py's body.get("sequence", body) fallback.
type putSequenceBody struct {
	Sequence *model.Sequence `json:"sequence"`
}

// PutSequence replaces the server-side sequence, e.g. after the
// Composition App loads a file or imports MIDI, and broadcasts the
// change to every other connected client.
func (h *SequenceHandler) PutSequence(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "reason": "invalid sequence data"})
		return
	}

	var body putSequenceBody
	if err := json.Unmarshal(raw, &body); err != nil || body.Sequence == nil {
		var bare model.Sequence
		if err := json.Unmarshal(raw, &bare); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "reason": "invalid sequence data"})
			return
		}
		body.Sequence = &bare
	}

	noteCount := h.hub.ReplaceSequence(body.Sequence)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "note_count": noteCount})
}
