// Package testutil provides shared test helpers for creating config files and databases.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/studytrack/internal/config"
	"github.com/at-ishikawa/studytrack/internal/database"
)

// SetupTestConfig creates a config file backed by a SQLite database under tmpDir.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	dirs := []string{"reports", "exports"}
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`roadmap:
  timezone: UTC
database:
  driver: sqlite
  path: %s
  connect_attempts: 1
outputs:
  report_directory: %s
  export_directory: %s
`,
		filepath.Join(tmpDir, "studytrack.db"),
		filepath.Join(tmpDir, "reports"),
		filepath.Join(tmpDir, "exports"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupTestDB opens a migrated SQLite database under tmpDir and closes it when the test ends.
func SetupTestDB(t *testing.T, tmpDir string) *sqlx.DB {
	t.Helper()

	db, err := database.Connect(context.Background(), config.DatabaseConfig{
		Driver:          database.DriverSQLite,
		Path:            filepath.Join(tmpDir, "studytrack.db"),
		ConnectAttempts: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}
