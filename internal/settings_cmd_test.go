package internal

import (
	"net/http"
	"testing"

	"github.com/MrSnakeDoc/arbcheck/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsCmd_ShowDefaults(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, testDB)

	out, err := env.run(t, "", "settings")
	require.NoError(t, err)
	assert.Contains(t, out, "1h")
	assert.Contains(t, out, "never")
	assert.Contains(t, out, "off")
	assert.Zero(t, env.hits.Load())
}

func TestSettingsCmd_Set(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, testDB)

	_, err := env.run(t, "", "settings", "set", "interval", "12")
	require.NoError(t, err)
	_, err = env.run(t, "", "settings", "set", "notifications", "on")
	require.NoError(t, err)

	st := env.settings(t)
	assert.Equal(t, 12, st.CheckIntervalHours)
	assert.True(t, st.NotificationsEnabled)

	_, err = env.run(t, "", "settings", "set", "interval", "24h")
	require.NoError(t, err)
	assert.Equal(t, 24, env.settings(t).CheckIntervalHours)
}

func TestSettingsCmd_SetRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"interval not offered", []string{"settings", "set", "interval", "5"}},
		{"interval not a number", []string{"settings", "set", "interval", "daily"}},
		{"bad toggle", []string{"settings", "set", "notifications", "maybe"}},
		{"unknown key", []string{"settings", "set", "theme", "dark"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, http.StatusOK, testDB)

			_, err := env.run(t, "", tt.args...)
			require.ErrorIs(t, err, middleware.ErrLogged)

			st := env.settings(t)
			assert.Equal(t, 1, st.CheckIntervalHours)
			assert.False(t, st.NotificationsEnabled)
		})
	}
}

func TestParseToggle(t *testing.T) {
	for _, v := range []string{"on", "ON", "true", "yes", "1"} {
		got, ok := parseToggle(v)
		assert.True(t, ok, v)
		assert.True(t, got, v)
	}
	for _, v := range []string{"off", "false", "no", "0"} {
		got, ok := parseToggle(v)
		assert.True(t, ok, v)
		assert.False(t, got, v)
	}
	_, ok := parseToggle("sometimes")
	assert.False(t, ok)
}
