package api

import (
	"github.com/Hon139/MuseAid/internal/api/handlers"
	"github.com/Hon139/MuseAid/internal/api/middleware"
	"github.com/Hon139/MuseAid/internal/hub"
	"github.com/Hon139/MuseAid/internal/web"
	"github.com/gin-gonic/gin"
)

// SetupRouter builds the coordination server's gin engine: the gesture,
// speech, sequence, and WebSocket endpoints spec.md §4.3 names, all
// backed by the single shared Hub.
func SetupRouter(h *hub.Hub, version string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RecoverWithSentry())
	router.Use(middleware.SentryMiddleware())
	router.Use(middleware.RequestTracking())
	router.Use(middleware.CORS())

	router.GET("/health", handlers.HealthCheck)
	router.GET("/status", web.NewStatusHandler(h, version).Serve)

	sequenceHandler := handlers.NewSequenceHandler(h)
	gestureHandler := handlers.NewGestureHandler(h)
	speechHandler := handlers.NewSpeechHandler(h)
	wsHandler := handlers.NewWSHandler(h)

	router.GET("/sequence", sequenceHandler.GetSequence)
	router.PUT("/sequence", sequenceHandler.PutSequence)
	router.POST("/gestures", gestureHandler.ReceiveGesture)
	router.POST("/speech", speechHandler.ReceiveSpeech)
	router.GET("/ws", wsHandler.Serve)

	return router
}
