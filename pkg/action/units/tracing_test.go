package units

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/ib-77/actionchain/pkg/action"
	"github.com/ib-77/actionchain/pkg/action/env"
)

func newRecorder() (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	recorder := tracetest.NewSpanRecorder()
	return recorder, sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
}

func TestTracing_SpanAroundChain(t *testing.T) {
	t.Parallel()

	recorder, tp := newRecorder()
	e := env.New()

	err := action.New[envT]().
		Use(Tracing[envT](tp.Tracer("test")), "provision").
		Use(appendStep("a")).
		Run(context.Background(), e)
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "provision", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)

	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsString()
	}
	assert.NotEmpty(t, attrs[AttrInvocationID])
	assert.NotEmpty(t, attrs[AttrChainID])
}

func TestTracing_RecordsError(t *testing.T) {
	t.Parallel()

	recorder, tp := newRecorder()
	errBad := errors.New("bad")
	e := env.New()

	err := action.New[envT]().
		Use(Tracing[envT](tp.Tracer("test"))).
		Use(Func("bad", func(context.Context, envT) error { return errBad })).
		Run(context.Background(), e)
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "action.chain", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "bad", spans[0].Status().Description)
	require.NotEmpty(t, spans[0].Events())
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestTracing_NilTracerPassesThrough(t *testing.T) {
	t.Parallel()

	e := env.New()
	chain, err := action.New[envT]().Use(Tracing[envT](nil)).Use(appendStep("a")).Compile(e)
	require.NoError(t, err)
	require.NoError(t, chain.Call(context.Background(), e))
	assert.Equal(t, []string{"a"}, steps(e))
}

func TestTracing_RecordsPanic(t *testing.T) {
	t.Parallel()

	recorder, tp := newRecorder()
	e := env.New()

	err := action.New[envT]().
		Use(Tracing[envT](tp.Tracer("test"))).
		Use(Func("explode", func(context.Context, envT) error { panic("kaboom") })).
		Run(context.Background(), e)
	require.NoError(t, err)
	assert.True(t, e.Halted())

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "unit panicked: kaboom", spans[0].Status().Description)
	require.NotEmpty(t, spans[0].Events())
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}
