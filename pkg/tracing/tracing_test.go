package tracing

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
	"go.opentelemetry.io/otel/trace/noop"
)

// useRecorder 安装内存SpanRecorder，测试结束后换回Noop Provider
func useRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(noop.NewTracerProvider())
	})
	return recorder
}

func TestStartSpan_ParentChild(t *testing.T) {
	recorder := useRecorder(t)

	ctx, parent := StartSpan(context.Background(), "bookstore", "PlaceOrder")
	_, child := StartSpan(ctx, "bookstore", "LockBooks")
	child.SetAttributes(attribute.Int("book_count", 2))
	child.End()
	parent.End()

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "LockBooks", spans[0].Name())
	assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())
	assert.Equal(t, spans[1].SpanContext().TraceID(), spans[0].SpanContext().TraceID())
}

func TestRecordError(t *testing.T) {
	recorder := useRecorder(t)

	_, span := StartSpan(context.Background(), "bookstore", "Lookup")
	RecordError(span, nil)
	RecordError(span, errors.New("upstream timeout"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "upstream timeout", ended[0].Status().Description)
	assert.Len(t, ended[0].Events(), 1)
}

func TestExtractIDs(t *testing.T) {
	assert.Empty(t, ExtractTraceID(context.Background()))
	assert.Empty(t, ExtractSpanID(context.Background()))

	useRecorder(t)
	ctx, span := StartSpan(context.Background(), "bookstore", "GetBook")
	defer span.End()

	assert.Len(t, ExtractTraceID(ctx), 32)
	assert.Len(t, ExtractSpanID(ctx), 16)
}
