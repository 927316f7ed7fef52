package pathutils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandAndAbbreviate(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := Expand("~/.config/arbcheck/settings.yml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "arbcheck", "settings.yml"), got)

	assert.Equal(t, "~/.config/arbcheck/settings.yml", Abbreviate(got))
	assert.Equal(t, "~", Abbreviate(home))
}

func TestExpand_LeavesOtherPathsAlone(t *testing.T) {
	for _, p := range []string{"/etc/arbcheck.yml", "relative/path", "~user/file"} {
		got, err := Expand(p)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}
