package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupInMemory(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp, err := NewProvider(context.Background(), exporter, "bookshelf-test", 1)
	require.NoError(t, err)
	Install(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return exporter
}

func TestInitTracer_Disabled(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), Options{Enabled: false})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestStartSpan(t *testing.T) {
	setupInMemory(t)

	t.Run("子Span继承TraceID", func(t *testing.T) {
		ctx, root := StartSpan(context.Background(), "test", "Root")
		defer root.End()

		_, child := StartSpan(ctx, "test", "Child")
		defer child.End()

		assert.True(t, root.SpanContext().IsValid())
		assert.Equal(t, root.SpanContext().TraceID(), child.SpanContext().TraceID())
		assert.NotEqual(t, root.SpanContext().SpanID(), child.SpanContext().SpanID())
		assert.Equal(t, root.SpanContext().TraceID().String(), ExtractTraceID(ctx))
	})

	t.Run("无Span时TraceID为空", func(t *testing.T) {
		assert.Empty(t, ExtractTraceID(context.Background()))
	})
}

func TestEndSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp, err := NewProvider(context.Background(), exporter, "bookshelf-test", 1)
	require.NoError(t, err)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := tp.Tracer("test").Start(context.Background(), "Failing")
	EndSpan(span, errors.New("库存不足"))

	_, span = tp.Tracer("test").Start(context.Background(), "Passing")
	EndSpan(span, nil)

	require.NoError(t, tp.ForceFlush(context.Background()))
	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	assert.Equal(t, "Failing", spans[0].Name)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Len(t, spans[0].Events, 1)
	assert.Equal(t, codes.Ok, spans[1].Status.Code)
}
