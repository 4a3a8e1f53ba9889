package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredLoggerCarriesRunID(t *testing.T) {
	var buf bytes.Buffer
	log, runID := New(&buf, zerolog.InfoLevel, true, true)
	_, err := uuid.Parse(runID)
	require.NoError(t, err)

	log.Debug().Msg("hidden")
	log.Info().Str("serial", "ABC123").Msg("probing")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, runID, entry["run_id"])
	assert.Equal(t, "ABC123", entry["serial"])
	assert.Equal(t, "probing", entry["message"])
}

func TestConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	log, _ := New(&buf, zerolog.WarnLevel, false, true)
	log.Info().Msg("quiet")
	log.Warn().Msg("loud")
	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}
