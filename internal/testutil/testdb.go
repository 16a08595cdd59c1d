package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/tradieone/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a migrated in-memory store that closes with the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	store, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err, "open in-memory store")
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func NewTestUoW(store *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(store)
}
