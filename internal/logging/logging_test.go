package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/jrsteele09/go-coinbase-oauth/internal/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestSetupWriter(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	t.Run("json outside dev", func(t *testing.T) {
		var buf bytes.Buffer
		logging.SetupWriter(&buf, "PROD", "debug")
		log.Debug().Str("route", "/login").Msg("hello")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, "hello", entry["message"])
		require.Equal(t, "/login", entry["route"])
		require.Equal(t, "debug", entry["level"])
	})

	t.Run("level filters", func(t *testing.T) {
		var buf bytes.Buffer
		logging.SetupWriter(&buf, "PROD", "warn")
		log.Info().Msg("dropped")
		require.Zero(t, buf.Len())
	})

	t.Run("bad level falls back to info", func(t *testing.T) {
		var buf bytes.Buffer
		logging.SetupWriter(&buf, "PROD", "loud")
		require.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	})

	t.Run("console in dev", func(t *testing.T) {
		var buf bytes.Buffer
		logging.SetupWriter(&buf, "DEV", "info")
		log.Info().Msg("pretty")
		require.Contains(t, buf.String(), "pretty")
		require.False(t, json.Valid(buf.Bytes()))
	})
}
