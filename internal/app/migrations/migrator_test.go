package migrations

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/coursetracker/internal/config"
	"github.com/yigit/coursetracker/internal/db"
)

func openSQLite(t *testing.T) *db.Provider {
	t.Helper()
	p, err := db.NewProvider(context.Background(), &config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   db.MemoryPath,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestMigrate_AppliesSchemaOnce(t *testing.T) {
	p := openSQLite(t)
	m := NewMigrator(p.DB(), p.Dialect())

	require.NoError(t, m.Migrate(context.Background()))
	require.NoError(t, m.Migrate(context.Background()))

	versions, err := m.Applied(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"001"}, versions)

	for _, table := range []string{
		"Courses", "Courses_has_Prerequisites", "Terms", "Terms_has_Courses",
		"Students", "StudentTermPlans", "StudentTermPlans_has_Courses",
	} {
		var name string
		err := p.DB().QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		assert.NoError(t, err, table)
	}
}

func TestMigrate_ForeignKeysEnforced(t *testing.T) {
	p := openSQLite(t)
	require.NoError(t, NewMigrator(p.DB(), p.Dialect()).Migrate(context.Background()))

	_, err := p.DB().Exec(`INSERT INTO Terms_has_Courses (termID, courseID) VALUES (1, 1)`)
	assert.Error(t, err)
}

func TestMigrate_FailedFileIsNotRecorded(t *testing.T) {
	p := openSQLite(t)
	files := fstest.MapFS{
		"sqlite/001_ok.sql":     {Data: []byte("CREATE TABLE a (id INTEGER);\n")},
		"sqlite/002_broken.sql": {Data: []byte("CREATE TABLE b (id INTEGER);\nCREATE TABLE oops (;\n")},
	}
	m := NewMigrator(p.DB(), p.Dialect()).WithFiles(files)

	err := m.Migrate(context.Background())
	require.Error(t, err)

	versions, err := m.Applied(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"001"}, versions)

	var count int
	require.NoError(t, p.DB().QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE name = 'b'`).Scan(&count))
	assert.Zero(t, count)
}

func TestMigrate_BundledDialects(t *testing.T) {
	for _, dir := range []string{"postgres", "mysql", "sqlite"} {
		content, err := embedded.ReadFile(dir + "/001_init.sql")
		require.NoError(t, err, dir)
		assert.Len(t, SplitStatements(string(content)), 7+countIndexes(dir), dir)
	}
}

func countIndexes(dir string) int {
	if dir == "postgres" {
		return 2
	}
	return 0
}

func TestSplitStatements(t *testing.T) {
	script := `
-- courses
CREATE TABLE a (
    id INTEGER
);

INSERT INTO a VALUES (1);
SELECT 1`

	assert.Equal(t, []string{
		"CREATE TABLE a (\n    id INTEGER\n)",
		"INSERT INTO a VALUES (1)",
		"SELECT 1",
	}, SplitStatements(script))
}
