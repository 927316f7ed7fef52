package utils

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"No ANSI", "Hello World", "Hello World"},
		{"With Color", "\033[31mRed\033[0m", "Red"},
		{"Multiple Colors", "\033[32mGreen\033[0m \033[34mBlue\033[0m", "Green Blue"},
		{"Complex ANSI", "\033[1;38;5;39mAzure Blue\033[0m", "Azure Blue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripANSI(tt.input))
		})
	}
}

func TestGetMaxWidth(t *testing.T) {
	assert.Equal(t, 0, GetMaxWidth(nil))
	assert.Equal(t, 7, GetMaxWidth([]string{"Hello", "World", "Testing"}))
	assert.Equal(t, 5, GetMaxWidth([]string{"\033[31mRed\033[0m", "\033[32mGreen\033[0m"}))
	assert.Equal(t, 3, GetMaxWidth([]string{"ARB"}))
}

func TestFormatLastCheck(t *testing.T) {
	assert.Equal(t, "never", FormatLastCheck(0))

	ts := time.Date(2025, 3, 7, 14, 5, 0, 0, time.Local)
	assert.Equal(t, "Mar 07, 14:05", FormatLastCheck(ts.UnixMilli()))
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "512 B", HumanSize(512))
	assert.Equal(t, "8.0 MiB", HumanSize(8<<20))
}

func TestWriteFileAtomicAndRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "state.yml")

	in := map[string]int{"check_interval_hours": 6}
	require.NoError(t, WriteFileAtomic(path, in, FileTypeYAML, 0o600))

	ok, err := FileExists(path)
	require.NoError(t, err)
	assert.True(t, ok)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	var out map[string]int
	require.NoError(t, FileReader(path, FileTypeYAML, &out))
	assert.Equal(t, 6, out["check_interval_hours"])

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestFileReader_Errors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))

	var v map[string]any
	assert.Error(t, FileReader(empty, FileTypeJSON, &v))
	assert.Error(t, FileReader(filepath.Join(dir, "missing.json"), FileTypeJSON, &v))
	assert.Error(t, WriteFileAtomic(filepath.Join(dir, "x.bin"), v, "binary", 0o600))
}

func TestFileExists_Directory(t *testing.T) {
	ok, err := FileExists(t.TempDir())
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestLimitedReadAll(t *testing.T) {
	data, err := LimitedReadAll(strings.NewReader("abcd"), 4)
	require.NoError(t, err)
	assert.Equal(t, "abcd", string(data))

	_, err = LimitedReadAll(strings.NewReader("abcde"), 4)
	assert.Error(t, err)
}

func TestParseSecureURL(t *testing.T) {
	u, err := ParseSecureURL("https://example.com/database.json")
	require.NoError(t, err)
	assert.Equal(t, "example.com", u.Host)

	_, err = ParseSecureURL("http://example.com/database.json")
	assert.True(t, errors.Is(err, ErrInsecureURL))
}

func TestJoinURL(t *testing.T) {
	assert.Equal(t, "https://a.b/database.json", JoinURL("https://a.b/", "database.json"))
	assert.Equal(t, "https://a.b/database.json", JoinURL("https://a.b", "/database.json"))
}

func TestMaybeGunzip(t *testing.T) {
	payload := []byte(`{"X1":{}}`)
	gz, err := GzipBytes(payload)
	require.NoError(t, err)

	for name, src := range map[string][]byte{"plain": payload, "gzip": gz} {
		t.Run(name, func(t *testing.T) {
			rc, err := MaybeGunzip(io.NopCloser(bytes.NewReader(src)))
			require.NoError(t, err)
			defer Try(rc.Close)

			got, err := io.ReadAll(rc)
			require.NoError(t, err)
			assert.Equal(t, payload, got)
		})
	}
}

func TestGenericHelpers(t *testing.T) {
	in := []int{1, 2, 3, 4}
	assert.Equal(t, []int{2, 4}, Filter(in, func(v int) bool { return v%2 == 0 }))
	assert.Equal(t, []string{"1", "2"}, Map([]int{1, 2}, func(v int) string { return string(rune('0' + v)) }))
	assert.True(t, Includes(in, 3))
	assert.False(t, Includes(in, 9))
	assert.ElementsMatch(t, []string{"a", "b"}, Keys(map[string]int{"a": 1, "b": 2}))
}
