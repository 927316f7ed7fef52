package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	Configure(Options{Level: "info", Out: &buf})

	Debug("hidden %d", 1)
	Info("visible %d", 2)
	Warn("careful")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible 2")
	assert.Contains(t, out, "careful")

	buf.Reset()
	SetLevel("debug")
	Debug("now shown")
	assert.Contains(t, buf.String(), "now shown")
}

func TestJSONModeCarriesScopedFields(t *testing.T) {
	var buf bytes.Buffer
	Configure(Options{Level: "info", JSON: true, Out: &buf})
	defer UseTestMode()

	With("check_id", "abc-123", "model", "CPH2581").Info("check finished")

	line := strings.TrimSpace(buf.String())
	var event map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &event))
	assert.Equal(t, "abc-123", event["check_id"])
	assert.Equal(t, "CPH2581", event["model"])
	assert.Contains(t, event["msg"], "check finished")
	assert.True(t, JSON())
}

func TestSilentFlags(t *testing.T) {
	FlagSilent = true
	defer func() { FlagSilent = false }()

	ConfigureLoggerFromFlags()
	LogError("nobody sees this")
	assert.False(t, JSON())
}

func TestCreateTable(t *testing.T) {
	var buf bytes.Buffer
	table := CreateTable(&buf, []string{"Setting", "Value"})
	require.NoError(t, table.Append([]string{"Check interval", "6h"}))
	require.NoError(t, table.Render())

	assert.Contains(t, buf.String(), "Check interval")
	assert.Contains(t, buf.String(), "6h")
}
