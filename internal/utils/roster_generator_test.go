package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSampleRoster(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.csv")

	require.NoError(t, WriteSampleRoster(path, 25, 7))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	parsed, err := NewFileParser().ParseCSV(data, 1)
	require.NoError(t, err)

	assert.Equal(t, rosterHeaders, parsed.Headers)
	require.Len(t, parsed.Rows, 25)

	// Generated employee ids are sequential and unique.
	seen := make(map[string]bool)
	for _, row := range parsed.Rows {
		id := row.Cells["Employee ID"]
		assert.NotEmpty(t, id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
		assert.NotEmpty(t, row.Cells["Email"])
	}
}

func TestWriteSampleRoster_Deterministic(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.csv")
	pathB := filepath.Join(dir, "b.csv")

	require.NoError(t, WriteSampleRoster(pathA, 10, 42))
	require.NoError(t, WriteSampleRoster(pathB, 10, 42))

	a, err := os.ReadFile(pathA)
	require.NoError(t, err)
	b, err := os.ReadFile(pathB)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
