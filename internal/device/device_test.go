package device

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/MrSnakeDoc/arbcheck/internal/logger"
	"github.com/MrSnakeDoc/arbcheck/internal/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.UseTestMode()
	os.Exit(m.Run())
}

func TestReader_LocalGetprop(t *testing.T) {
	mr := runner.NewMockRunner()
	mr.MockGetprop("ro.product.model", "CPH2581")
	mr.MockGetprop("ro.build.display.id", "CPH2581_15.0.0.206(EX01)")

	r := NewReader(mr, "", time.Second)
	props, err := r.Properties(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Properties{Model: "CPH2581", BuildVersion: "CPH2581_15.0.0.206(EX01)"}, props)
	assert.True(t, mr.VerifyCommand("getprop", "ro.product.model"))
	assert.True(t, mr.VerifyCommand("getprop", "ro.build.display.id"))
	assert.Equal(t, time.Second, mr.Commands[0].Timeout)
}

func TestReader_AdbWithSerial(t *testing.T) {
	mr := runner.NewMockRunner()
	mr.MockAdbGetprop("R5CT1", "ro.product.model", "PJD110")
	mr.MockAdbGetprop("R5CT1", "ro.build.display.id", "PJD110_14.0.0.600(CN01)")

	r := NewReader(mr, "R5CT1", 0)
	props, err := r.Properties(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "PJD110", props.Model)
	assert.Equal(t, "PJD110_14.0.0.600(CN01)", props.BuildVersion, "CRLF from adb must be trimmed")
	assert.True(t, mr.VerifyRunCount("adb", 2))
	assert.False(t, mr.VerifyCommand("getprop", "ro.product.model"))
}

func TestReader_Overrides(t *testing.T) {
	mr := runner.NewMockRunner()
	mr.MockGetprop("ro.build.display.id", "A.1")

	r := NewReader(mr, "", time.Second)
	r.Model = "X1"

	props, err := r.Properties(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "X1", props.Model)
	assert.Equal(t, "A.1", props.BuildVersion)
	assert.True(t, mr.VerifyRunCount("getprop", 1))
}

func TestReader_EmptyProperty(t *testing.T) {
	mr := runner.NewMockRunner()
	mr.AddResponse("getprop|ro.product.model", []byte("\n"), nil)

	_, err := NewReader(mr, "", time.Second).Properties(context.Background())
	assert.True(t, errors.Is(err, ErrPropertyMissing))
}

func TestReader_CommandFailure(t *testing.T) {
	mr := runner.NewMockRunner()
	mr.AddResponse("getprop|ro.product.model", nil, errors.New("exec: \"getprop\": not found"))

	_, err := NewReader(mr, "", time.Second).Properties(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ro.product.model")
	assert.False(t, errors.Is(err, ErrPropertyMissing))
}
