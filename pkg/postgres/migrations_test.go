package postgres

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles_Embedded(t *testing.T) {
	files, err := migrationFiles(migrationsFS)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_create_event.sql", "002_event_coverage_status.sql"}, files)
}

func TestMigrationFiles_SortsAndSkipsOtherFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/010_late.sql":      {Data: []byte("SELECT 1")},
		"migrations/002_early.sql":     {Data: []byte("SELECT 1")},
		"migrations/README.md":         {Data: []byte("notes")},
		"migrations/archive/000_x.sql": {Data: []byte("SELECT 1")},
	}

	files, err := migrationFiles(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"002_early.sql", "010_late.sql"}, files)
}

func TestMigrationFiles_MissingDirectory(t *testing.T) {
	_, err := migrationFiles(fstest.MapFS{})
	assert.Error(t, err)
}

func TestPendingMigrations(t *testing.T) {
	files := []string{"001_a.sql", "002_b.sql", "003_c.sql"}

	assert.Equal(t, files, pendingMigrations(files, map[string]bool{}))
	assert.Equal(t, []string{"003_c.sql"}, pendingMigrations(files, map[string]bool{"001_a.sql": true, "002_b.sql": true}))
	assert.Empty(t, pendingMigrations(files, map[string]bool{"001_a.sql": true, "002_b.sql": true, "003_c.sql": true}))
}
