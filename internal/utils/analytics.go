package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

const posthogEndpoint = "https://eu.i.posthog.com"

// AnalyticsClient wraps the PostHog client. A zero-value client is valid and
// drops every event, so callers never need to branch on configuration.
type AnalyticsClient struct {
	client posthog.Client
	logger *slog.Logger
}

// NewAnalyticsClient builds a client for the given API key. An empty key
// yields an inert client.
func NewAnalyticsClient(apiKey string, logger *slog.Logger) *AnalyticsClient {
	if apiKey == "" {
		logger.Warn("Analytics API key not set, event capture disabled")
		return &AnalyticsClient{}
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: posthogEndpoint})
	if err != nil {
		logger.Error("Failed to initialize analytics client", "error", err)
		return &AnalyticsClient{}
	}
	return &AnalyticsClient{client: client, logger: logger}
}

// Enabled reports whether events will actually be sent.
func (a *AnalyticsClient) Enabled() bool {
	return a != nil && a.client != nil
}

// Capture enqueues a single event for the given user.
func (a *AnalyticsClient) Capture(distinctID, event string, properties map[string]any) {
	if !a.Enabled() {
		return
	}
	if err := a.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	}); err != nil && a.logger != nil {
		a.logger.Warn("Failed to enqueue analytics event", "event", event, "error", err)
	}
}

// Close flushes pending events. Safe on an inert client.
func (a *AnalyticsClient) Close() {
	if !a.Enabled() {
		return
	}
	a.client.Close()
}
