package logging_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/eventdeck/eventdeck/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	prev := *logging.Default()
	defer logging.SetDefault(prev)

	// Redirect the default logger into a buffer.
	buf := &bytes.Buffer{}
	logging.SetDefault(zerolog.New(buf).Level(zerolog.DebugLevel).With().Timestamp().Logger())

	logging.Default().Info().Str("collection", "events").Msg("refresh committed")
	logging.Err(errors.New("connection refused")).Msg("refresh failed")

	output := buf.String()
	assert.Contains(t, output, "refresh committed")
	assert.Contains(t, output, `"collection":"events"`)
	assert.Contains(t, output, "connection refused")
}

func TestNewWritesStructuredOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logging.New(buf)

	logger.Info().Str("event_id", "6").Msg("Event created")

	assert.Contains(t, buf.String(), `"event_id":"6"`)
	assert.Contains(t, buf.String(), "Event created")
}

func TestNopDiscardsOutput(t *testing.T) {
	logging.Nop.Error().Msg("should go nowhere")
	assert.Equal(t, zerolog.Disabled, logging.Nop.GetLevel())
}
