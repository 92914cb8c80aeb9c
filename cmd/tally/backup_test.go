package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupCreateRestore(t *testing.T) {
	env := newTestEnv(t, "sqlite")
	env.addLunch(t)

	out := env.mustRun(t, "backup", "create", "--name", "before", "--description", "lunch only")
	assert.Contains(t, out, "Created backup before")
	assert.Contains(t, out, "1 transactions")
	assert.Contains(t, out, "Description: lunch only")

	_, err := env.run(t, "", "backup", "create", "--name", "before")
	assert.Error(t, err, "names are unique")

	env.mustRun(t, "clear", "--force", "--no-backup")
	out = env.mustRun(t, "list")
	assert.Contains(t, out, "No transactions found.")

	out, err = env.run(t, "n\n", "backup", "restore", "before")
	require.NoError(t, err)
	assert.Contains(t, out, "Restore cancelled.")

	out = env.mustRun(t, "backup", "restore", "before", "--force")
	assert.Contains(t, out, "Restored from backup before")

	out = env.mustRun(t, "list")
	assert.Contains(t, out, "Lunch")

	_, err = env.run(t, "", "backup", "restore", "missing", "--force")
	assert.Error(t, err)
}

func TestClearTakesAutomaticBackup(t *testing.T) {
	env := newTestEnv(t, "sqlite")
	env.addLunch(t)

	out := env.mustRun(t, "clear", "--force")
	assert.Contains(t, out, "Backup saved as auto-clear-")
	assert.Contains(t, out, "All data cleared")

	out = env.mustRun(t, "backup", "list")
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "auto-clear-")
	assert.Contains(t, out, "auto")
}

func TestBackupListAndDelete(t *testing.T) {
	env := newTestEnv(t, "sqlite")

	out := env.mustRun(t, "backup", "list")
	assert.Contains(t, out, "No backups found.")

	env.mustRun(t, "backup", "create", "--name", "one")
	out = env.mustRun(t, "backup", "list")
	assert.Contains(t, out, "one")
	assert.Contains(t, out, "manual")

	out = env.mustRun(t, "backup", "delete", "one", "--force")
	assert.Contains(t, out, "Deleted backup one")

	out = env.mustRun(t, "backup", "list")
	assert.Contains(t, out, "No backups found.")
}

func TestBackupsNeedSQLiteFile(t *testing.T) {
	for _, backend := range []string{"file", "memory"} {
		t.Run(backend, func(t *testing.T) {
			env := newTestEnv(t, backend)
			_, err := env.run(t, "", "backup", "list")
			assert.ErrorIs(t, err, errNoBackups)
		})
	}
}
