package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Hon139/MuseAid/internal/api"
	"github.com/Hon139/MuseAid/internal/config"
	"github.com/Hon139/MuseAid/internal/hub"
	"github.com/Hon139/MuseAid/internal/llm"
	"github.com/Hon139/MuseAid/internal/observability"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	sentryFlushTimeout    = 2 * time.Second
	environmentProduction = "production"
)

// releaseVersion is set via ldflags during build.
var releaseVersion = "dev"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "museaid-server@" + releaseVersion,
			EnableTracing:    true,
			TracesSampleRate: 1.0,
			EnableLogs:       true,
			Debug:            cfg.Environment != environmentProduction,
			BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
				if event.Request != nil {
					event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
				}
				return event
			},
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		log.Println("Sentry not configured (SENTRY_DSN not set)")
	}

	if cfg.LangfuseEnabled && cfg.LangfuseSecretKey != "" {
		os.Setenv("LANGFUSE_PUBLIC_KEY", cfg.LangfusePublicKey)
		os.Setenv("LANGFUSE_SECRET_KEY", cfg.LangfuseSecretKey)
		if cfg.LangfuseHost != "" {
			os.Setenv("LANGFUSE_HOST", cfg.LangfuseHost)
		}
	}
	observability.InitializeLangfuse(context.Background(), cfg)

	factory := llm.NewProviderFactory(cfg.OpenAIAPIKey, cfg.GeminiAPIKey, cfg.GeminiModel)
	provider, err := factory.GetProvider(context.Background(), cfg.GeminiModel)
	if err != nil {
		log.Fatalf("Failed to resolve LLM provider: %v", err)
	}
	editor := llm.NewEditor(provider, cfg.GeminiModel)
	h := hub.New(editor)

	if cfg.Environment == environmentProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.SetupRouter(h, releaseVersion)

	port := cfg.Port
	if port == "" {
		port = "8000"
	}

	log.Printf("Starting MuseAid coordination server on port %s", port)
	if err := router.Run(":" + port); err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to start server:", err)
	}
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string)
	sensitiveKeys := map[string]bool{
		"authorization": true,
		"cookie":        true,
		"x-api-key":     true,
	}

	for k, v := range headers {
		if sensitiveKeys[strings.ToLower(k)] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
