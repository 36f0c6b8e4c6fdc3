package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photo-manifest/internal/config"
)

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, config.LogFormatJSON, false)

	log.Info("scan finished", "photos", 3)
	log.Debug("hidden below info")
	log.Error("scan failed", errors.New("boom"))
	log.Info("   ")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "INFO", first["level"])
	assert.Equal(t, "scan finished", first["msg"])
	assert.EqualValues(t, 3, first["photos"])

	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "ERROR", second["level"])
	assert.Equal(t, "boom", second["err"])
}

func TestTextOutputDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, config.LogFormatText, true)

	log.Debug("listing folder", "folder", "thumbnail")
	log.Success("config saved")
	log.Error("", errors.New("only error"))

	out := buf.String()
	assert.Contains(t, out, "listing folder")
	assert.Contains(t, out, "folder=thumbnail")
	assert.Contains(t, out, "ok=true")
	assert.Contains(t, out, "only error")
	assert.NoError(t, log.Close())
}
