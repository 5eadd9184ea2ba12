package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createCaptainshipTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE captainships (
		id TEXT PRIMARY KEY,
		url TEXT,
		name TEXT,
		avatar TEXT,
		email TEXT NOT NULL,
		started_at DATETIME NOT NULL UNIQUE,
		created_at DATETIME
	);`)
}
