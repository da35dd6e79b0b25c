package postgres

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/stretchr/testify/require"
)

// The file source driver registers itself via a blank import; without
// it, opening a file:// source fails at startup before any SQL runs.
func TestMigrationFileSourceOpens(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"000001_init.up.sql", "000001_init.down.sql"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644))
	}

	src, err := source.Open("file://" + filepath.ToSlash(dir))
	require.NoError(t, err)
	require.NoError(t, src.Close())
}
