package handlers

import (
	"net/http"

	"github.com/Hon139/MuseAid/internal/hub"
	"github.com/gin-gonic/gin"
)

// GestureHandler serves POST /gestures, mapping a gesture label to a
// SequenceEditor command and broadcasting it, per routes/gestures.py.
type GestureHandler struct {
	hub *hub.Hub
}

func NewGestureHandler(h *hub.Hub) *GestureHandler {
	return &GestureHandler{hub: h}
}

// gestureEvent is the payload sent by the gesture pipeline.
type gestureEvent struct {
	Gesture    string  `json:"gesture" binding:"required"`
	Confidence float64 `json:"confidence"`
	Timestamp  float64 `json:"timestamp"`
}

func (h *GestureHandler) ReceiveGesture(c *gin.Context) {
	var event gestureEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "reason": err.Error()})
		return
	}

	result := h.hub.ApplyGesture(event.Gesture)

	switch result.Status {
	case "ok":
		resp := gin.H{"status": "ok", "command": result.Command}
		if result.Command != "toggle_playback" && result.Command != "switch_edit_staff" {
			resp["cursor"] = result.Cursor
		}
		c.JSON(http.StatusOK, resp)
	default:
		c.JSON(http.StatusOK, gin.H{"status": result.Status, "reason": result.Reason})
	}
}
