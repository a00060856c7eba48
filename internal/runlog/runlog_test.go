package runlog

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppend(t *testing.T) {
	//** Arrange
	path := filepath.Join(t.TempDir(), "runs.log")
	log, err := New(Options{Path: path, MaxSize: 1})
	require.NoError(t, err)

	//** Act
	log.Append(Entry{RunID: "a", Players: 5, Rounds: 5, Strategy: "exact", Status: "optimal", Elapsed: 1500 * time.Millisecond})
	log.Append(Entry{RunID: "b", Players: 8, Rounds: 8, Strategy: "stochastic", Status: "best-effort", Cost: 3, Iterations: 1000, Seed: 7})
	require.NoError(t, log.Close())

	//** Assert
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	lines := make([]map[string]any, 0)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var line map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		lines = append(lines, line)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, lines, 2)
	assert.Equal(t, "a", lines[0]["run_id"])
	assert.Equal(t, 5.0, lines[0]["players"])
	assert.Equal(t, "1.5s", lines[0]["elapsed"])
	assert.Equal(t, "run", lines[0]["msg"])
	assert.Equal(t, "stochastic", lines[1]["strategy"])
	assert.Equal(t, 3.0, lines[1]["cost"])
}

func TestNewRequiresPath(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}
