package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/freshfold/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// recordSpans installs an in-memory recorder as the global provider for the
// duration of the test and restores the previous one afterwards.
func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})

	return sr
}

func onlySpan(t *testing.T, sr *tracetest.SpanRecorder) sdktrace.ReadOnlySpan {
	t.Helper()
	spans := sr.Ended()
	require.Len(t, spans, 1)
	return spans[0]
}

func attributeMap(span sdktrace.ReadOnlySpan) map[string]interface{} {
	m := make(map[string]interface{})
	for _, attr := range span.Attributes() {
		m[string(attr.Key)] = attr.Value.AsInterface()
	}
	return m
}

func TestStartSpan(t *testing.T) {
	sr := recordSpans(t)

	_, span := telemetry.StartSpan(context.Background(), "pricing.compute")
	require.NotNil(t, span)
	span.End()

	ended := onlySpan(t, sr)
	assert.Equal(t, "pricing.compute", ended.Name())
	assert.Equal(t, trace.SpanKindInternal, ended.SpanKind())
}

func TestStartSpan_Options(t *testing.T) {
	sr := recordSpans(t)

	_, span := telemetry.StartSpan(context.Background(), "invoice.render",
		telemetry.WithAttribute(telemetry.SpanAttrService, "Wash Iron"),
		telemetry.WithSpanKind(trace.SpanKindClient),
	)
	span.End()

	ended := onlySpan(t, sr)
	assert.Equal(t, trace.SpanKindClient, ended.SpanKind())
	assert.Equal(t, "Wash Iron", attributeMap(ended)[telemetry.SpanAttrService])
}

func TestStartServiceSpan(t *testing.T) {
	sr := recordSpans(t)

	_, span := telemetry.StartServiceSpan(context.Background(), "booking", "confirm_payment")
	require.NotNil(t, span)
	span.End()

	assert.Equal(t, "booking.confirm_payment", onlySpan(t, sr).Name())
}

func TestSetAttributes(t *testing.T) {
	sr := recordSpans(t)

	_, span := telemetry.StartSpan(context.Background(), "order.commit")
	telemetry.SetAttributes(span,
		telemetry.SpanAttrOrderStatus, "Pending",
		"weight_kg", 12,
		"express", true,
	)
	span.End()

	attrs := attributeMap(onlySpan(t, sr))
	assert.Equal(t, "Pending", attrs[telemetry.SpanAttrOrderStatus])
	assert.Equal(t, int64(12), attrs["weight_kg"])
	assert.Equal(t, true, attrs["express"])
}

func TestSetAttribute(t *testing.T) {
	sr := recordSpans(t)

	_, span := telemetry.StartSpan(context.Background(), "order.lookup")
	telemetry.SetAttribute(span, telemetry.SpanAttrOrderID, "ORD-2041")
	span.End()

	assert.Equal(t, "ORD-2041", attributeMap(onlySpan(t, sr))[telemetry.SpanAttrOrderID])
}

func TestSetAttribute_Stringer(t *testing.T) {
	sr := recordSpans(t)

	userID := uuid.New()
	_, span := telemetry.StartSpan(context.Background(), "profile.load")
	telemetry.SetAttribute(span, telemetry.SpanAttrUserID, userID)
	span.End()

	assert.Equal(t, userID.String(), attributeMap(onlySpan(t, sr))[telemetry.SpanAttrUserID])
}

func TestRecordError(t *testing.T) {
	sr := recordSpans(t)

	_, span := telemetry.StartSpan(context.Background(), "payment.confirm")
	telemetry.RecordError(span, errors.New("pending order expired"))
	span.End()

	ended := onlySpan(t, sr)
	assert.Equal(t, codes.Error, ended.Status().Code)
	assert.Equal(t, "pending order expired", ended.Status().Description)

	events := ended.Events()
	require.NotEmpty(t, events)
	assert.Equal(t, "exception", events[0].Name)
}

func TestRecordError_NilError(t *testing.T) {
	sr := recordSpans(t)

	_, span := telemetry.StartSpan(context.Background(), "payment.confirm")
	telemetry.RecordError(span, nil)
	span.End()

	assert.NotEqual(t, codes.Error, onlySpan(t, sr).Status().Code)
}

func TestSetOK(t *testing.T) {
	sr := recordSpans(t)

	_, span := telemetry.StartSpan(context.Background(), "payment.confirm")
	telemetry.SetOK(span)
	span.End()

	assert.Equal(t, codes.Ok, onlySpan(t, sr).Status().Code)
}

func TestAddEvent(t *testing.T) {
	sr := recordSpans(t)

	_, span := telemetry.StartSpan(context.Background(), "booking.confirm_payment")
	telemetry.AddEvent(span, "order_committed",
		"payment_method", "Cash on Delivery",
		"weight_kg", 10,
	)
	span.End()

	events := onlySpan(t, sr).Events()
	require.Len(t, events, 1)
	assert.Equal(t, "order_committed", events[0].Name)

	attrs := make(map[string]interface{})
	for _, attr := range events[0].Attributes {
		attrs[string(attr.Key)] = attr.Value.AsInterface()
	}
	assert.Equal(t, "Cash on Delivery", attrs["payment_method"])
	assert.Equal(t, int64(10), attrs["weight_kg"])
}

func TestNilSpanHelpers(t *testing.T) {
	// All helpers tolerate a nil span.
	telemetry.RecordError(nil, errors.New("boom"))
	telemetry.SetAttributes(nil, "key", "value")
	telemetry.SetAttribute(nil, "key", "value")
	telemetry.SetOK(nil)
	telemetry.AddEvent(nil, "event", "key", "value")
}

func TestSpanFromContext(t *testing.T) {
	recordSpans(t)

	// Empty context yields a usable no-op span.
	assert.NotNil(t, telemetry.SpanFromContext(context.Background()))

	ctx, span := telemetry.StartSpan(context.Background(), "order.lookup")
	defer span.End()

	got := telemetry.SpanFromContext(ctx)
	assert.Equal(t, span.SpanContext().SpanID(), got.SpanContext().SpanID())
}

func TestContextWithSpan(t *testing.T) {
	recordSpans(t)

	_, span := telemetry.StartSpan(context.Background(), "order.lookup")
	defer span.End()

	ctx := telemetry.ContextWithSpan(context.Background(), span)
	assert.Equal(t, span.SpanContext().SpanID(), telemetry.SpanFromContext(ctx).SpanContext().SpanID())
}

func TestTraceAndSpanIDs(t *testing.T) {
	recordSpans(t)

	assert.Empty(t, telemetry.GetTraceID(context.Background()))
	assert.Empty(t, telemetry.GetSpanID(context.Background()))

	ctx, span := telemetry.StartSpan(context.Background(), "order.lookup")
	defer span.End()

	assert.Len(t, telemetry.GetTraceID(ctx), 32)
	assert.Len(t, telemetry.GetSpanID(ctx), 16)
}

func TestNestedSpans(t *testing.T) {
	sr := recordSpans(t)

	ctx, parent := telemetry.StartSpan(context.Background(), "booking.confirm_payment")
	_, child := telemetry.StartSpan(ctx, "pricing.compute")
	child.End()
	parent.End()

	spans := sr.Ended()
	require.Len(t, spans, 2)

	byName := make(map[string]sdktrace.ReadOnlySpan, 2)
	for _, s := range spans {
		byName[s.Name()] = s
	}
	parentSpan, ok := byName["booking.confirm_payment"]
	require.True(t, ok)
	childSpan, ok := byName["pricing.compute"]
	require.True(t, ok)

	assert.Equal(t, parentSpan.SpanContext().TraceID(), childSpan.SpanContext().TraceID())
	assert.Equal(t, parentSpan.SpanContext().SpanID(), childSpan.Parent().SpanID())
}

func TestSetAttributes_TypeCoverage(t *testing.T) {
	sr := recordSpans(t)

	_, span := telemetry.StartSpan(context.Background(), "order.commit")
	telemetry.SetAttributes(span,
		"string", "value",
		"int", 42,
		"int64", int64(100),
		"float64", 3.14,
		"bool", true,
		"string_slice", []string{"Wash", "Iron"},
		"int_slice", []int{1, 2, 3},
		"int64_slice", []int64{10, 20},
		"float64_slice", []float64{1.1, 2.2},
		"bool_slice", []bool{true, false},
	)
	span.End()

	assert.GreaterOrEqual(t, len(onlySpan(t, sr).Attributes()), 10)
}

func TestSetAttributes_MalformedPairs(t *testing.T) {
	sr := recordSpans(t)

	_, span := telemetry.StartSpan(context.Background(), "order.commit")
	// A non-string key drops its pair, a trailing key without a value is dropped.
	telemetry.SetAttributes(span,
		"kept_one", "a",
		42, "dropped",
		"kept_two", "b",
		"orphan",
	)
	span.End()

	attrs := attributeMap(onlySpan(t, sr))
	assert.Len(t, attrs, 2)
	assert.Equal(t, "a", attrs["kept_one"])
	assert.Equal(t, "b", attrs["kept_two"])
}
