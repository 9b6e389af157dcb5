package tracer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minet/internal/verify/tracer"
)

func TestNoopTracerStart(t *testing.T) {
	tr := tracer.NewNoop()
	ctx := context.Background()

	newCtx, span := tr.Start(ctx, "verify.lookup",
		tracer.String("search_type", "tokenId"),
		tracer.Bool("shared", true),
	)

	assert.Equal(t, ctx, newCtx)
	require.NotNil(t, span)

	span.SetAttributes(tracer.Int64("balance", 2))
	span.AddEvent("lookup.done", tracer.Float64("elapsed", 0.2))
	span.End(nil)
}

func TestNoopTracerEndWithError(t *testing.T) {
	_, span := tracer.NewNoop().Start(context.Background(), "verify.token")
	require.NotNil(t, span)

	span.End(errors.New("token does not exist"))
}

func TestAttributeConstructors(t *testing.T) {
	assert.Equal(t, tracer.Attribute{Key: "k", Value: "v"}, tracer.String("k", "v"))
	assert.Equal(t, tracer.Attribute{Key: "k", Value: true}, tracer.Bool("k", true))
	assert.Equal(t, tracer.Attribute{Key: "k", Value: int64(7)}, tracer.Int64("k", 7))
	assert.Equal(t, tracer.Attribute{Key: "k", Value: 1.5}, tracer.Float64("k", 1.5))

	// Durations are stored as whole milliseconds.
	assert.Equal(t, tracer.Attribute{Key: "k", Value: int64(1500)}, tracer.Duration("k", 1500*time.Millisecond))
}

func TestOTelTracerDefaultsToGlobalProvider(t *testing.T) {
	tr := tracer.NewOTel()

	ctx, span := tr.Start(context.Background(), "verify.metadata.fetch",
		tracer.String("gateway_url", "https://gateway.pinata.cloud/ipfs/"))
	require.NotNil(t, ctx)
	require.NotNil(t, span)

	span.SetAttributes(tracer.Bool("fetch.shared", false))
	span.AddEvent("fetch.done")
	span.End(errors.New("unexpected status 404"))
}
