package nodes

import (
	"context"
	"regexp"
	"testing"

	"dns-fleet/core/database"
	"dns-fleet/core/node"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newSQLiteStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	s := NewGormStore(db)
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func testStoreContract(t *testing.T, s Store) {
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, node.Node{ID: "ns2", Name: "Secondary", URL: "http://10.0.0.3:5380", Token: "t2"}))
	require.NoError(t, s.Upsert(ctx, node.Node{ID: "ns1", Name: "Primary", URL: "http://10.0.0.2:5380", Token: "t1"}))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "ns1", list[0].ID, "ordered by id")
	assert.Equal(t, "ns2", list[1].ID)

	n, err := s.Get(ctx, "ns1")
	require.NoError(t, err)
	assert.Equal(t, "t1", n.Token)

	require.NoError(t, s.Upsert(ctx, node.Node{ID: "ns1", Name: "Primary", URL: "http://10.0.0.9:5380", Token: "t9"}))
	n, err = s.Get(ctx, "ns1")
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.9:5380", n.URL, "upsert replaces")
	assert.Equal(t, "t9", n.Token)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Delete(ctx, "ns2"))
	assert.ErrorIs(t, s.Delete(ctx, "ns2"), ErrNotFound)

	list, err = s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestMemoryStore(t *testing.T) {
	testStoreContract(t, NewMemoryStore(nil))
}

func TestMemoryStore_Seed(t *testing.T) {
	s := NewMemoryStore([]node.Node{{ID: "a", URL: "http://a:5380"}})
	n, err := s.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "http://a:5380", n.URL)
}

func TestGormStore(t *testing.T) {
	testStoreContract(t, newSQLiteStore(t))
}

func TestGormStore_Verify(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	t.Run("Complete", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
			AddRow("id", "varchar(64)", "NO", "PRI", nil, "").
			AddRow("name", "varchar(128)", "YES", "", nil, "").
			AddRow("url", "varchar(512)", "NO", "", nil, "").
			AddRow("token", "varchar(256)", "YES", "", nil, "")
		mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `cluster_nodes`")).WillReturnRows(rows)

		assert.NoError(t, NewGormStore(db).Verify(context.Background()))
	})

	t.Run("Legacy schema", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
			AddRow("id", "varchar(64)", "NO", "PRI", nil, "").
			AddRow("address", "varchar(512)", "NO", "", nil, "")
		mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `cluster_nodes`")).WillReturnRows(rows)

		err := NewGormStore(db).Verify(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name, url, token")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
