package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUseJSONWritesStructuredLines(t *testing.T) {
	prev := Log
	t.Cleanup(func() {
		use(prev)
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	})

	var buf bytes.Buffer
	UseJSON(&buf)
	Log.Info().Str("product", "Milk").Msg("forecast ready")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Milk", entry["product"])
	assert.Equal(t, "forecast ready", entry["message"])
}

func TestSetLevelFallsBackToInfo(t *testing.T) {
	prev := Log
	t.Cleanup(func() {
		use(prev)
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	})

	SetLevel("chatty")
	assert.Equal(t, zerolog.InfoLevel, Log.GetLevel())

	SetLevel("debug")
	assert.Equal(t, zerolog.DebugLevel, Log.GetLevel())
}

func TestPackageLoggerFollowsLog(t *testing.T) {
	prev := Log
	t.Cleanup(func() {
		use(prev)
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	})

	var buf bytes.Buffer
	UseJSON(&buf)
	log.Info().Str("product", "Bread").Msg("from the package logger")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())
	assert.Equal(t, "Bread", entry["product"])

	buf.Reset()
	SetLevel("warn")
	log.Info().Msg("dropped")
	assert.Zero(t, buf.Len())
	assert.Equal(t, zerolog.WarnLevel, log.Logger.GetLevel())
}
