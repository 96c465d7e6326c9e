package observability

import (
	"context"
	"os"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"atsresume/internal/types"
)

var stderrWriter = os.Stderr

// RecordAnalysis records the duration, count and overall score of one analysis.
func (om *ObservabilityManager) RecordAnalysis(ctx context.Context, result *types.AnalysisResult, withJD bool, duration time.Duration) {
	m := om.metrics
	cfg := om.config.CustomMetrics.Analysis
	if m == nil || !cfg.Enabled {
		return
	}

	attrs := metric.WithAttributes(
		attribute.Bool("with_jd", withJD),
		attribute.String("rating", result.Rating),
	)
	m.AnalysesTotal.Add(ctx, 1, attrs)
	if cfg.TrackDuration {
		m.AnalysisDuration.Record(ctx, duration.Seconds(), attrs)
	}
	if cfg.TrackScores {
		m.OverallScore.Record(ctx, result.OverallScore, attrs)
	}
}

// RecordExtraction counts a document extraction attempt by format and outcome.
func (om *ObservabilityManager) RecordExtraction(format string, err error) {
	m := om.metrics
	cfg := om.config.CustomMetrics.Analysis
	if m == nil || !cfg.Enabled || !cfg.TrackExtractions {
		return
	}
	m.Extractions.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("format", format),
		attribute.Bool("success", err == nil),
	))
}

// RecordLinkCheck counts one profile link check by status.
func (om *ObservabilityManager) RecordLinkCheck(ctx context.Context, status types.LinkStatus) {
	if !om.infrastructureEnabled() || !om.config.CustomMetrics.Infrastructure.TrackLinkChecks {
		return
	}
	om.metrics.LinkChecks.Add(ctx, 1, metric.WithAttributes(
		attribute.String("link", status.Name),
		attribute.String("status", status.Status),
	))
}

// RecordHTTPRequest counts one API request by route and response status.
func (om *ObservabilityManager) RecordHTTPRequest(ctx context.Context, route string, status int) {
	if !om.infrastructureEnabled() {
		return
	}
	om.metrics.HTTPRequests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("route", route),
		attribute.Int("status", status),
	))
}

// RecordRateLimitHit counts a rejected request. keyType is "ip" or "api".
func (om *ObservabilityManager) RecordRateLimitHit(ctx context.Context, keyType string) {
	if !om.infrastructureEnabled() || !om.config.CustomMetrics.Infrastructure.TrackRateLimits {
		return
	}
	om.metrics.RateLimitHits.Add(ctx, 1, metric.WithAttributes(attribute.String("key_type", keyType)))
}

// RecordVocabularyReload counts a vocabulary reload attempt.
func (om *ObservabilityManager) RecordVocabularyReload(ctx context.Context, success bool) {
	if !om.infrastructureEnabled() {
		return
	}
	om.metrics.VocabularyReloads.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", success)))
}

func (om *ObservabilityManager) infrastructureEnabled() bool {
	return om.metrics != nil && om.config.CustomMetrics.Infrastructure.Enabled
}
