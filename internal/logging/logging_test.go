package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLevels(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)
	for _, name := range strings.Split(Levels, ",") {
		require.NoError(t, Setup("", name), name)
		assert.Equal(t, levelMapping[name], zerolog.GlobalLevel())
	}
	assert.Equal(t, zerolog.WarnLevel, levelMapping["warning"])
	assert.ErrorContains(t, Setup("", "loud"), "invalid logging level")
}

func TestSetupFile(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)
	path := filepath.Join(t.TempDir(), "soundshift.log")
	require.NoError(t, Setup(path, "info"))

	log.Debug().Msg("hidden")
	log.Info().Str("word", "tama").Msg("derived")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "info", rec["level"])
	assert.Equal(t, "tama", rec["word"])
	assert.Equal(t, "derived", rec["message"])

	assert.Error(t, Setup(filepath.Join(t.TempDir(), "missing", "x.log"), "info"))
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(console(&buf))
	logger.Warn().Msg("dropping word")
	assert.Contains(t, buf.String(), "WRN")
	assert.Contains(t, buf.String(), "dropping word")
}
