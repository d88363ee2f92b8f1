package commands

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/internal/cli/testutil"
)

func TestCacheCommand_StatusWithoutDatabase(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LEAPLINT_OUTPUT", "json")
	path := filepath.Join(t.TempDir(), "missing.db")

	stdout, _, err := executeCommand(t, NewCacheCommand(), "status", "--cache-location", path)
	require.NoError(t, err)

	var st CacheStatus
	require.NoError(t, json.Unmarshal([]byte(stdout), &st))
	assert.Equal(t, path, st.Path)
	assert.False(t, st.Exists)
	assert.NoFileExists(t, path, "status must not create the database")
}

func TestCacheCommand_StatusAndClear(t *testing.T) {
	t.Chdir(testutil.SetupTestProject(t))
	path := filepath.Join(t.TempDir(), "cache.db")

	_, _, err := executeCommand(t, NewLintCommand(), "--cache-location", path, "--format", "json")
	require.ErrorIs(t, err, ErrLintIssues)

	t.Setenv("LEAPLINT_OUTPUT", "json")
	stdout, _, err := executeCommand(t, NewCacheCommand(), "status", "--cache-location", path)
	require.NoError(t, err)

	var st CacheStatus
	require.NoError(t, json.Unmarshal([]byte(stdout), &st))
	assert.True(t, st.Exists)
	assert.Equal(t, 3, st.Entries)
	require.NotNil(t, st.LastRun)
	assert.Equal(t, 3, st.LastRun.Files)
	assert.Equal(t, 2, st.LastRun.Issues)

	t.Setenv("LEAPLINT_OUTPUT", "markdown")
	stdout, _, err = executeCommand(t, NewCacheCommand(), "clear", "--cache-location", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Cleared 3 cached results")

	t.Setenv("LEAPLINT_OUTPUT", "json")
	stdout, _, err = executeCommand(t, NewCacheCommand(), "status", "--cache-location", path)
	require.NoError(t, err)
	var cleared CacheStatus
	require.NoError(t, json.Unmarshal([]byte(stdout), &cleared))
	assert.True(t, cleared.Exists)
	assert.Zero(t, cleared.Entries)
	assert.Nil(t, cleared.LastRun)
}

func TestCacheCommand_ClearWithoutDatabase(t *testing.T) {
	t.Chdir(t.TempDir())

	stdout, _, err := executeCommand(t, NewCacheCommand(), "clear", "--cache-location", filepath.Join(t.TempDir(), "none.db"))

	require.NoError(t, err)
	assert.Contains(t, stdout, "Cache is already empty")
}
