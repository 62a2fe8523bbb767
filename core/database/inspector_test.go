package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE test_nodes (id TEXT PRIMARY KEY, url TEXT NOT NULL, token TEXT)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "test_nodes")
	require.NoError(t, err)
	require.Len(t, columns, 3)

	byName := make(map[string]ColumnInfo)
	for _, col := range columns {
		byName[col.Field] = col
	}

	assert.Equal(t, "text", byName["id"].Type)
	assert.Equal(t, "PRI", byName["id"].Key)
	assert.Equal(t, "NO", byName["url"].Null)
	assert.Equal(t, "YES", byName["token"].Null)

	// PRAGMA table_info yields no rows for an unknown table
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestMissingColumns(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE legacy_nodes (id TEXT PRIMARY KEY, address TEXT)").Error)

	missing, err := MissingColumns(db, "legacy_nodes", []string{"id", "url", "token"})
	require.NoError(t, err)
	assert.Equal(t, []string{"url", "token"}, missing)

	missing, err = MissingColumns(db, "legacy_nodes", []string{"ID", "address"})
	require.NoError(t, err)
	assert.Empty(t, missing)
}
