// AngelaMos | 2026
// telemetry_test.go

package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/carterperez-dev/templates/project-records/internal/config"
)

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})

	return rec
}

func TestStartSpanRecordsErrorAndEvents(t *testing.T) {
	rec := recordSpans(t)

	ctx, span := StartSpan(context.Background(), "project.create", attribute.String("project.number", "P-1"))
	assert.NotEmpty(t, TraceIDFromContext(ctx))

	AddSpanEvent(ctx, "project.instantiated")
	SetSpanError(ctx, errors.New("boom"))
	span.End()

	ended := rec.Ended()
	require.Len(t, ended, 1)

	got := ended[0]
	assert.Equal(t, "project.create", got.Name())
	assert.Equal(t, codes.Error, got.Status().Code)
	assert.Equal(t, "boom", got.Status().Description)

	var names []string
	for _, e := range got.Events() {
		names = append(names, e.Name)
	}
	assert.Contains(t, names, "project.instantiated")
	assert.Contains(t, names, "exception")
}

func TestTraceIDWithoutSpan(t *testing.T) {
	assert.Empty(t, TraceIDFromContext(context.Background()))
}

func TestNewTelemetryDisabled(t *testing.T) {
	tel, err := NewTelemetry(context.Background(), config.OtelConfig{Enabled: false}, config.AppConfig{})
	require.NoError(t, err)
	require.NotNil(t, tel.TracerProvider)
	assert.NoError(t, tel.Shutdown(context.Background()))
}

func TestSamplingRatio(t *testing.T) {
	assert.InDelta(t, 0.5, samplingRatio(0.5), 0)
	assert.InDelta(t, 1, samplingRatio(1), 0)
	assert.InDelta(t, defaultSampling, samplingRatio(0), 0)
	assert.InDelta(t, defaultSampling, samplingRatio(1.5), 0)
}
