package config

import "os"

// Config holds the coordination server's configuration, read entirely
// from the environment per spec.md §6.
type Config struct {
	// Environment
	Environment string
	Port        string

	// LLM API Keys
	OpenAIAPIKey string // gpt-* models
	GeminiAPIKey string // gemini-* models; also read from GOOGLE_API_KEY
	GeminiModel  string // default model for /speech edits

	// ElevenLabsAPIKey is recorded for completeness: MuseAid never calls
	// ElevenLabs directly, the external ASR collaborator does.
	ElevenLabsAPIKey string

	// Networking
	ServerURL string // MUSEAID_SERVER_URL, advertised to the pipeline/UI
	ServerWS  string // MUSEAID_SERVER_WS, advertised to the UI

	// CameraSrc configures the gesture pipeline binary's capture source
	// (device index, or an RTSP/HTTP/MJPEG URL).
	CameraSrc string

	// LandmarkServiceURL is the external hand-landmark inference service
	// the gesture pipeline binary POSTs camera frames to.
	LandmarkServiceURL string

	// Observability
	SentryDSN         string
	LangfusePublicKey string
	LangfuseSecretKey string
	LangfuseHost      string
	LangfuseEnabled   bool
}

// Load builds a Config from the process environment.
func Load() *Config {
	return &Config{
		Environment:        getEnv("ENVIRONMENT", "development"),
		Port:               getEnv("PORT", "8000"),
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		GeminiAPIKey:       firstNonEmpty(getEnv("GEMINI_API_KEY", ""), getEnv("GOOGLE_API_KEY", "")),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		ElevenLabsAPIKey:   getEnv("ELEVENLABS_API_KEY", ""),
		ServerURL:          getEnv("MUSEAID_SERVER_URL", "http://localhost:8000"),
		ServerWS:           getEnv("MUSEAID_SERVER_WS", "ws://localhost:8000/ws"),
		CameraSrc:          getEnv("CAMERA_SRC", "0"),
		LandmarkServiceURL: getEnv("LANDMARK_SERVICE_URL", ""),
		SentryDSN:          getEnv("SENTRY_DSN", ""),
		LangfusePublicKey:  getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey:  getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseHost:       getEnv("LANGFUSE_HOST", "https://cloud.langfuse.com"),
		LangfuseEnabled:   getEnv("LANGFUSE_ENABLED", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
