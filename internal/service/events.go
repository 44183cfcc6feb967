package service

import (
	"context"
	"log/slog"

	"hello-upstream/internal/metrics"
	"hello-upstream/internal/model"
)

// failureMessages keeps each failure kind distinguishable in the log stream.
var failureMessages = map[model.FailureKind]string{
	model.FailureNetwork:  "upstream request failed",
	model.FailureTimeout:  "upstream request timed out",
	model.FailureStatus:   "upstream returned error status",
	model.FailureParse:    "upstream body not parseable",
	model.FailureCanceled: "upstream request abandoned",
}

// LogEvents reports fetch outcomes to slog and, when set, Prometheus.
type LogEvents struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewLogEvents creates a LogEvents. The metrics parameter may be nil.
func NewLogEvents(logger *slog.Logger, m *metrics.Metrics) *LogEvents {
	return &LogEvents{
		logger:  logger.With("component", "hello_service"),
		metrics: m,
	}
}

// Fetched logs the parsed upstream payload.
func (e *LogEvents) Fetched(ctx context.Context, res *model.FetchResult) {
	e.logger.InfoContext(ctx, "upstream payload",
		"url", res.URL,
		"status", res.StatusCode,
		"bytes", res.Bytes,
		"duration_ms", res.Duration.Milliseconds(),
		"payload", res.Payload,
	)
}

// FetchFailed logs the failure under a kind-specific message and counts it.
// A client that went away is not a problem with the upstream, so it is only
// logged at debug.
func (e *LogEvents) FetchFailed(ctx context.Context, kind model.FailureKind, err error) {
	if e.metrics != nil {
		e.metrics.UpstreamFailures.WithLabelValues(string(kind)).Inc()
	}

	msg, ok := failureMessages[kind]
	if !ok {
		msg = failureMessages[model.FailureNetwork]
	}

	level := slog.LevelWarn
	if kind == model.FailureCanceled {
		level = slog.LevelDebug
	}
	e.logger.Log(ctx, level, msg, "kind", string(kind), "err", err)
}
