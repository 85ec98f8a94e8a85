package policy

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClassifier_KeywordMode(t *testing.T) {
	c := New(ModeKeywords, "", testLogger())

	testCases := []struct {
		input    string
		inDomain bool
	}{
		{input: "耳機", inDomain: true},
		{input: "藍牙耳機", inDomain: true},
		{input: "électroménager", inDomain: false},
		{input: "冰箱", inDomain: false},
		{input: "  手機 ", inDomain: true},
		{input: "", inDomain: false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.inDomain, c.IsDeviceType(tc.input))
		})
	}
}

func TestClassifier_ModelModeAcceptsEverything(t *testing.T) {
	c := New(ModeModel, "", testLogger())

	assert.True(t, c.IsDeviceType("冰箱"))
	assert.True(t, c.IsDeviceType("耳機"))
}

func TestClassifier_ReloadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("keywords:\n  - 吸塵器\n"), 0o644))

	c := New(ModeKeywords, path, testLogger())

	assert.True(t, c.IsDeviceType("吸塵器"))
	assert.False(t, c.IsDeviceType("耳機"), "file list replaces the built-in list")

	require.NoError(t, os.WriteFile(path, []byte("keywords:\n  - 耳機\n"), 0o644))
	require.NoError(t, c.Reload())

	assert.True(t, c.IsDeviceType("耳機"))
	assert.False(t, c.IsDeviceType("吸塵器"))
}

func TestClassifier_MissingFileFallsBackToDefaults(t *testing.T) {
	c := New(ModeKeywords, filepath.Join(t.TempDir(), "absent.yaml"), testLogger())

	assert.True(t, c.IsDeviceType("筆電"))
}
