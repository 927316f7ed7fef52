package internal

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/MrSnakeDoc/arbcheck/internal/globalconfig"
	"github.com/MrSnakeDoc/arbcheck/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCmd_Verdicts(t *testing.T) {
	tests := []struct {
		name  string
		model string
		build string
		want  []string
	}{
		{"safe with warning", "X1", "A.1", []string{"SAFE", "ARB index: 0", "carries ARB 1", "Example One"}},
		{"fused", "X1", "A.2", []string{"FUSED", "ARB index: 1"}},
		{"unknown build", "X1", "Z.9", []string{"UNKNOWN", "Unknown version"}},
		{"unsupported", "NOPE", "A.1", []string{"UNKNOWN", "Device not supported"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, http.StatusOK, testDB)

			out, err := env.run(t, "", "check", "--model", tt.model, "--build", tt.build)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			assert.Positive(t, env.settings(t).LastCheckTimestamp)
		})
	}
}

func TestCheckCmd_ReadsDeviceProperties(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, testDB)
	env.runner.MockGetprop(globalconfig.PropModel, "X1")
	env.runner.MockGetprop(globalconfig.PropBuild, "A.2")

	out, err := env.run(t, "", "check")
	require.NoError(t, err)
	assert.Contains(t, out, "FUSED")
	assert.True(t, env.runner.VerifyCommand("getprop", globalconfig.PropModel))
}

func TestCheckCmd_ReadsOverAdbWithSerial(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, testDB)
	env.runner.MockAdbGetprop("abc123", globalconfig.PropModel, "X1")
	env.runner.MockAdbGetprop("abc123", globalconfig.PropBuild, "A.1")

	out, err := env.run(t, "", "check", "--serial", "abc123")
	require.NoError(t, err)
	assert.Contains(t, out, "SAFE")
	assert.True(t, env.runner.VerifyRunCount("adb", 2))
}

func TestCheckCmd_JSON(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, testDB)

	out, err := env.run(t, "", "check", "--json", "--model", "X1", "--build", "A.2")
	require.NoError(t, err)

	var got struct {
		ID     string `json:"id"`
		Result struct {
			Status     string `json:"status"`
			MatchedKey string `json:"matched_key"`
			MaxARB     int    `json:"max_arb"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "fused", got.Result.Status)
	assert.Equal(t, "A.2", got.Result.MatchedKey)
	assert.Equal(t, 1, got.Result.MaxARB)
}

func TestCheckCmd_FetchFailureIsGenericError(t *testing.T) {
	env := newTestEnv(t, http.StatusInternalServerError, "boom")

	out, err := env.run(t, "", "check", "--model", "X1", "--build", "A.1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, middleware.ErrLogged))
	assert.Contains(t, out, "Error")
	assert.Equal(t, int32(1), env.hits.Load(), "interactive checks are not retried")
	assert.Zero(t, env.settings(t).LastCheckTimestamp)
}

func TestCheckCmd_DeviceFailureIsGenericError(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, testDB)
	// the mock answers unknown commands with empty output

	out, err := env.run(t, "", "check")
	require.ErrorIs(t, err, middleware.ErrLogged)
	assert.Contains(t, out, "Error")
	assert.Zero(t, env.hits.Load())
}

func TestCheckCmd_ShareWithJSONRejected(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, testDB)

	_, err := env.run(t, "", "check", "--share", "--json", "--model", "X1", "--build", "A.1")
	require.ErrorIs(t, err, middleware.ErrLogged)
	assert.Zero(t, env.hits.Load())
}

func TestCheckCmd_Share(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, testDB)
	var copied string
	copyToClipboard = func(s string) error {
		copied = s
		return nil
	}

	_, err := env.run(t, "", "check", "--share", "--model", "X1", "--build", "A.2")
	require.NoError(t, err)
	assert.Equal(t, "My X1 is FUSED (ARB index 1). Checked with arbcheck.", copied)
}

func TestCheckCmd_ShareFallsBackToPrinting(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, testDB)
	copyToClipboard = func(string) error { return errors.New("no clipboard") }

	out, err := env.run(t, "", "check", "--share", "--model", "X1", "--build", "A.1")
	require.NoError(t, err)
	assert.Contains(t, out, "My X1 is SAFE")
}

func TestCheckCmd_RejectsPlainHTTP(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, testDB)

	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetArgs([]string{"check", "--model", "X1", "--build", "A.1", "--base-url", "http://example.invalid", "-s"})
	_, err := root.ExecuteC()
	require.ErrorIs(t, err, middleware.ErrLogged)
	assert.Zero(t, env.hits.Load())
}
