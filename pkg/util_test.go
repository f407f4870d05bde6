package pkg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestGenerateRandomString(t *testing.T) {
	s, err := GenerateRandomString(0)
	require.Error(t, err)
	assert.Empty(t, s)

	seen := map[string]bool{}
	for i := 1; i <= 8; i++ {
		s, err := GenerateRandomString(i * 5)
		require.NoError(t, err)
		assert.Len(t, s, i*5)
		assert.NotContains(t, s, "+")
		assert.NotContains(t, s, "/")
		assert.False(t, seen[s])
		seen[s] = true
	}
}

func TestBytesToString(t *testing.T) {
	want := "test"
	got := BytesToString([]byte(want))
	assert.Equal(t, want, got)
	assert.Empty(t, BytesToString(nil))
}

func TestPathExists(t *testing.T) {
	exists, err := PathExists("/invalid/path/some-dir", true)
	assert.NoError(t, err)
	assert.False(t, exists)
	exists, err = PathExists("/invalid/path/some-file", false)
	assert.NoError(t, err)
	assert.False(t, exists)

	tempDir := t.TempDir()
	exists, err = PathExists(tempDir, true)
	assert.NoError(t, err)
	assert.True(t, exists)
	exists, err = PathExists(tempDir, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
	assert.False(t, exists)

	file := filepath.Join(tempDir, "workoutcal.db")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))
	exists, err = PathExists(file, false)
	assert.NoError(t, err)
	assert.True(t, exists)
	exists, err = PathExists(file, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a directory")
	assert.False(t, exists)
}
