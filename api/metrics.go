package api

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	boardSpanName    = "board.render"
	boardEventName   = "board.request.metrics"
	boardEventDomain = "dashboard"
	boardRoute       = "/"
)

// boardRequestMetrics accumulates timings for one board render and emits
// them as a single structured log line plus one span when the request ends.
type boardRequestMetrics struct {
	logger          *log.Logger
	span            trace.Span
	start           time.Time
	resolveDuration time.Duration
	renderDuration  time.Duration
	doorsRendered   int
	overridesActive int
	errorStage      string
}

func newBoardRequestMetrics(ctx context.Context, logger *log.Logger) (*boardRequestMetrics, context.Context) {
	spanCtx, span := otel.Tracer("xpa3-dd-dashboard/api").Start(ctx, boardSpanName)
	return &boardRequestMetrics{
		logger: logger,
		span:   span,
		start:  time.Now(),
	}, spanCtx
}

func (m *boardRequestMetrics) ObserveResolve(duration time.Duration) {
	if duration <= 0 {
		return
	}
	m.resolveDuration = duration
}

func (m *boardRequestMetrics) ObserveRender(duration time.Duration) {
	if duration <= 0 {
		return
	}
	m.renderDuration = duration
}

func (m *boardRequestMetrics) SetDoorsRendered(count int) {
	if count < 0 {
		count = 0
	}
	m.doorsRendered = count
}

func (m *boardRequestMetrics) SetOverridesActive(count int) {
	if count < 0 {
		count = 0
	}
	m.overridesActive = count
}

func (m *boardRequestMetrics) SetErrorStage(stage string) {
	if stage == "" {
		return
	}
	m.errorStage = stage
}

// Log finishes the span and writes the observability event. Safe to call
// exactly once, typically deferred from the handler.
func (m *boardRequestMetrics) Log(status int, err error) {
	if m == nil || m.logger == nil {
		return
	}

	severityText, severityNumber := severityForStatus(status, err)

	attrs := map[string]any{
		"http.route":                       boardRoute,
		"dashboard.board.total_ms":         durationToMillis(time.Since(m.start)),
		"dashboard.board.doors_rendered":   m.doorsRendered,
		"dashboard.board.overrides_active": m.overridesActive,
	}
	if m.resolveDuration > 0 {
		attrs["dashboard.board.resolve_ms"] = durationToMillis(m.resolveDuration)
	}
	if m.renderDuration > 0 {
		attrs["dashboard.board.render_ms"] = durationToMillis(m.renderDuration)
	}
	if m.errorStage != "" {
		attrs["dashboard.board.error_stage"] = m.errorStage
	}
	if err != nil {
		attrs["error.message"] = err.Error()
	}

	fields := log.Fields{
		"event.name":      boardEventName,
		"event.domain":    boardEventDomain,
		"attributes":      attrs,
		"severity_text":   severityText,
		"severity_number": severityNumber,
	}

	if m.span != nil {
		kvs := attributesFromMap(attrs)
		m.span.SetAttributes(kvs...)
		m.span.SetAttributes(attribute.Int64("http.status_code", int64(status)))

		eventAttrs := append(kvs,
			attribute.String("event.name", boardEventName),
			attribute.String("event.domain", boardEventDomain),
			attribute.String("severity_text", severityText),
			attribute.Int("severity_number", severityNumber),
		)
		m.span.AddEvent("observability.event", trace.WithAttributes(eventAttrs...))

		if err != nil || status >= http.StatusInternalServerError {
			desc := http.StatusText(status)
			if err != nil {
				desc = err.Error()
			}
			m.span.SetStatus(codes.Error, desc)
		} else {
			m.span.SetStatus(codes.Ok, "")
		}
		m.span.End()

		if sc := m.span.SpanContext(); sc.IsValid() {
			fields["trace_id"] = sc.TraceID().String()
		}
	}

	entry := m.logger.WithFields(fields)
	switch severityText {
	case "ERROR":
		entry.Error("observability.event")
	case "WARN":
		entry.Warn("observability.event")
	default:
		entry.Info("observability.event")
	}
}

func severityForStatus(status int, err error) (string, int) {
	switch {
	case err != nil || status >= http.StatusInternalServerError:
		return "ERROR", 17
	case status >= http.StatusBadRequest:
		return "WARN", 13
	default:
		return "INFO", 9
	}
}

func attributesFromMap(attrs map[string]any) []attribute.KeyValue {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	kvs := make([]attribute.KeyValue, 0, len(attrs))
	for _, k := range keys {
		switch v := attrs[k].(type) {
		case string:
			kvs = append(kvs, attribute.String(k, v))
		case bool:
			kvs = append(kvs, attribute.Bool(k, v))
		case int:
			kvs = append(kvs, attribute.Int(k, v))
		case int64:
			kvs = append(kvs, attribute.Int64(k, v))
		case float64:
			kvs = append(kvs, attribute.Float64(k, v))
		default:
			kvs = append(kvs, attribute.String(k, fmt.Sprint(v)))
		}
	}
	return kvs
}

func durationToMillis(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(d) / float64(time.Millisecond)
}
