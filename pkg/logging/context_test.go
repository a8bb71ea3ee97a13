package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eventdeck/eventdeck/pkg/logging"
)

func TestWithLoggerRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logging.New(buf)

	ctx := logging.WithLogger(context.Background(), &logger)
	logging.FromContext(ctx).Info().Msg("from context")

	assert.Contains(t, buf.String(), "from context")
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
	assert.Same(t, logging.Default(), logging.FromContext(nil)) //nolint:staticcheck
}

func TestCtxIsFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logging.New(buf)

	ctx := logging.WithLogger(context.Background(), &logger)
	logging.Ctx(ctx).Info().Msg("via ctx")

	assert.Contains(t, buf.String(), "via ctx")
}

func TestWithCollection(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logging.New(buf)

	ctx := logging.WithLogger(context.Background(), &logger)
	ctx = logging.WithCollection(ctx, "events")
	logging.Ctx(ctx).Info().Msg("listing")

	assert.Contains(t, buf.String(), `"collection":"events"`)
}

func TestWithOperation(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logging.New(buf)

	ctx := logging.WithLogger(context.Background(), &logger)
	ctx = logging.WithOperation(ctx, "create")
	ctx = logging.WithCollection(ctx, "events")
	logging.Ctx(ctx).Info().Msg("creating")

	output := buf.String()
	assert.Contains(t, output, `"operation":"create"`)
	assert.Contains(t, output, `"collection":"events"`)
}
