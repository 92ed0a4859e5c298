package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/sc-commander/internal/application/common"
	"github.com/andrescamacho/sc-commander/internal/infrastructure/config"
	"github.com/andrescamacho/sc-commander/internal/infrastructure/logging"
)

func TestSlogLogger_JSONRecords(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger, err := logging.NewWithWriter(&buf, "json", "info")
	require.NoError(t, err)

	// Act
	logger.Log(common.LevelInfo, "week settled", map[string]interface{}{
		"week": 3,
		"cash": 10650.0,
		"mode": "SEA",
	})

	// Assert
	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "INFO", record["level"])
	assert.Equal(t, "week settled", record["msg"])
	assert.Equal(t, 3.0, record["week"])
	assert.Equal(t, 10650.0, record["cash"])
	assert.Equal(t, "SEA", record["mode"])
}

func TestSlogLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewWithWriter(&buf, "text", "warn")
	require.NoError(t, err)

	logger.Log(common.LevelDebug, "hidden", nil)
	logger.Log(common.LevelInfo, "hidden too", nil)
	logger.Log(common.LevelWarn, "decision rejected", map[string]interface{}{"b": 2, "a": 1})

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, `msg="decision rejected" a=1 b=2`)
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestNewWithWriter_RejectsUnknownSettings(t *testing.T) {
	_, err := logging.NewWithWriter(&bytes.Buffer{}, "xml", "info")
	assert.Error(t, err)

	_, err = logging.NewWithWriter(&bytes.Buffer{}, "text", "loud")
	assert.Error(t, err)
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	logger, err := logging.New(config.LoggingConfig{Level: "debug", Format: "text", Output: "file", FilePath: path})
	require.NoError(t, err)

	logger.Log(common.LevelDebug, "written", nil)
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=written")
}
