package logging

import (
	"bytes"
	"testing"

	"github.com/bmispelon/noyel/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	t.Run("json format honours level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(config.LoggingConfig{Level: "warn", Format: "json"}, &buf)

		logger.Info().Msg("hidden")
		assert.Empty(t, buf.String())

		logger.Warn().Str("endpoint", "giftee").Msg("shown")
		assert.Contains(t, buf.String(), `"endpoint":"giftee"`)
		assert.Contains(t, buf.String(), `"message":"shown"`)
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(config.LoggingConfig{Level: "chatty", Format: "json"}, &buf)

		logger.Debug().Msg("hidden")
		assert.Empty(t, buf.String())
		logger.Info().Msg("shown")
		assert.NotEmpty(t, buf.String())
	})

	t.Run("console format", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(config.LoggingConfig{Level: "info"}, &buf)

		logger.Info().Msg("ready")
		assert.Contains(t, buf.String(), "| INFO  |")
		assert.Contains(t, buf.String(), "ready")
	})
}
