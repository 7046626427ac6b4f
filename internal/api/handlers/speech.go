package handlers

import (
	"net/http"

	"github.com/Hon139/MuseAid/internal/hub"
	"github.com/gin-gonic/gin"
)

// SpeechHandler serves POST /speech, dispatching a transcribed
// instruction to the LLM editor, per routes/speech.py.
type SpeechHandler struct {
	hub *hub.Hub
}

func NewSpeechHandler(h *hub.Hub) *SpeechHandler {
	return &SpeechHandler{hub: h}
}

// speechPayload is the body sent by the speech-to-text pipeline.
type speechPayload struct {
	Text                string `json:"text" binding:"required"`
	SelectionStartIndex *int   `json:"selection_start_index"`
	SelectionEndIndex   *int   `json:"selection_end_index"`
}

func (h *SpeechHandler) ReceiveSpeech(c *gin.Context) {
	var payload speechPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "reason": err.Error()})
		return
	}

	result := h.hub.ApplySpeech(c.Request.Context(), payload.Text, payload.SelectionStartIndex, payload.SelectionEndIndex)

	resp := gin.H{"status": result.Status}
	switch result.Status {
	case "ok":
		resp["note_count"] = result.NoteCount
	default:
		resp["reason"] = result.Reason
	}
	if payload.SelectionStartIndex != nil && payload.SelectionEndIndex != nil {
		resp["selection_start_index"] = *payload.SelectionStartIndex
		resp["selection_end_index"] = *payload.SelectionEndIndex
	}
	c.JSON(http.StatusOK, resp)
}
