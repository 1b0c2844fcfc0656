package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles_UpDownPairs(t *testing.T) {
	t.Parallel()

	entries, err := fs.ReadDir(MigrationFiles, ".")
	require.NoError(t, err)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, entry := range entries {
		name := entry.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}

	require.NotEmpty(t, ups)
	assert.Equal(t, ups, downs)
}

func TestMigrationFiles_PortfoliosSchema(t *testing.T) {
	t.Parallel()

	data, err := fs.ReadFile(MigrationFiles, "000001_create_portfolios.up.sql")
	require.NoError(t, err)

	sql := string(data)
	assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS portfolios")
	assert.Contains(t, sql, "views             BIGINT")
	assert.Contains(t, sql, "UNIQUE INDEX IF NOT EXISTS portfolios_username_key")
}
