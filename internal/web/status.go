// Package web renders the coordination server's human-facing status
// page. The teacher's own page-rendering stack (a-h/templ) has no
// generated runtime component in the retrieved corpus (see DESIGN.md),
// so this package falls back to the standard library's html/template —
// the one ambient concern in this repository without a corpus library
// backing it.
package web

import (
	"html/template"
	"net/http"

	"github.com/Hon139/MuseAid/internal/hub"
	"github.com/gin-gonic/gin"
)

var statusTemplate = template.Must(template.New("status").Parse(`<!DOCTYPE html>
<html>
<head><title>MuseAid — {{.Version}}</title></head>
<body>
<h1>MuseAid coordination server</h1>
<ul>
<li>Sequence: {{.Name}} — {{.BPM}} bpm, key of {{.Key}}, {{.TimeSigNum}}/{{.TimeSigDen}}</li>
<li>Notes: {{.NoteCount}}</li>
<li>Connected clients: {{.SubscriberCount}}</li>
</ul>
</body>
</html>
`))

type statusData struct {
	Version         string
	Name            string
	BPM             int
	Key             string
	TimeSigNum      int
	TimeSigDen      int
	NoteCount       int
	SubscriberCount int
}

// StatusHandler serves GET /status, a minimal human-readable view of the
// hub's current sequence and subscriber count.
type StatusHandler struct {
	hub     *hub.Hub
	version string
}

func NewStatusHandler(h *hub.Hub, version string) *StatusHandler {
	return &StatusHandler{hub: h, version: version}
}

func (h *StatusHandler) Serve(c *gin.Context) {
	seq, _ := h.hub.Snapshot()
	data := statusData{
		Version:         h.version,
		Name:            seq.Name,
		BPM:             seq.BPM,
		Key:             seq.Key,
		TimeSigNum:      seq.TimeSigNum,
		TimeSigDen:      seq.TimeSigDen,
		NoteCount:       len(seq.Notes),
		SubscriberCount: h.hub.SubscriberCount(),
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := statusTemplate.Execute(c.Writer, data); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render status page"})
	}
}
