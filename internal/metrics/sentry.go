package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

const (
	// HTTP status code threshold for considering a request successful
	successStatusCodeThreshold = http.StatusBadRequest
)

// SentryMetrics handles custom metrics for Sentry
type SentryMetrics struct {
	enabled bool
}

// NewSentryMetrics creates a new Sentry metrics client
func NewSentryMetrics() *SentryMetrics {
	return &SentryMetrics{
		enabled: true, // Always enabled if Sentry is configured
	}
}

// RecordAPIRequest records API request metrics
func (m *SentryMetrics) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if !m.enabled {
		return
	}

	// Create a span for API request tracking using the request context
	span := sentry.StartSpan(ctx, "api.request")
	defer span.Finish()

	// Set span tags
	span.SetTag("endpoint", endpoint)
	span.SetTag("status_code", fmt.Sprintf("%d", statusCode))
	span.SetTag("success", fmt.Sprintf("%t", statusCode < successStatusCodeThreshold))

	// Set span data
	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("endpoint", endpoint)
	span.SetData("status_code", statusCode)

	// Set span status based on response
	if statusCode < successStatusCodeThreshold {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}

	// Set span description
	span.Description = fmt.Sprintf("API Request: %s", endpoint)
}

// RecordGestureEvent records one gesture POST reaching the hub: the raw
// label, the command it resolved to (if any), and whether it was applied.
func (m *SentryMetrics) RecordGestureEvent(ctx context.Context, gesture, command, status string) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "gesture.event")
	defer span.Finish()

	span.SetTag("gesture", gesture)
	span.SetTag("command", command)
	span.SetTag("status", status)
	span.SetData("gesture", gesture)
	span.SetData("command", command)
	span.SetData("status", status)

	if status == "ok" {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInvalidArgument
	}
	span.Description = fmt.Sprintf("Gesture: %s -> %s", gesture, command)
}

// RecordBroadcastFanout records how many subscribers a single broadcast
// reached and how many were pruned as stale, per frame type.
func (m *SentryMetrics) RecordBroadcastFanout(ctx context.Context, frameType string, subscriberCount, staleCount int) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "hub.broadcast")
	defer span.Finish()

	span.SetTag("frame_type", frameType)
	span.SetData("subscriber_count", subscriberCount)
	span.SetData("stale_count", staleCount)
	span.Status = sentry.SpanStatusOK
	span.Description = fmt.Sprintf("Broadcast: %s to %d subscribers", frameType, subscriberCount)
}

// RecordLLMLatency records the duration of one /speech edit call, tagged
// by provider and whether it was accepted or rejected by validation.
func (m *SentryMetrics) RecordLLMLatency(ctx context.Context, provider string, duration time.Duration, accepted bool) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "llm.edit_latency")
	defer span.Finish()

	span.SetTag("provider", provider)
	span.SetTag("accepted", fmt.Sprintf("%t", accepted))
	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("accepted", accepted)

	if accepted {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInvalidArgument
	}
	span.Description = fmt.Sprintf("LLM Edit Latency: %s", provider)
}
