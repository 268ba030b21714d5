package database

import (
	"path/filepath"
	"testing"

	"pulse360/config"
	"pulse360/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNew_EmptyDatabasePath(t *testing.T) {
	_, err := New(config.Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database path is empty")
}

func TestInitializeSQLiteDB_CreatesFile(t *testing.T) {
	db := &DB{log: logger.New("test")}

	dbPath := filepath.Join(t.TempDir(), "data", "test.db")
	err := db.initializeSQLiteDB(&gorm.Config{}, config.Config{DatabaseDbPath: dbPath})
	require.NoError(t, err)
	require.NotNil(t, db.SQL)

	// Parent directories are created on demand.
	assert.FileExists(t, dbPath)

	sqlDB, err := db.SQL.DB()
	require.NoError(t, err)
	_ = sqlDB.Close()
}

func TestInitializeSQLiteDB_InMemory(t *testing.T) {
	db := &DB{log: logger.New("test")}

	err := db.initializeSQLiteDB(&gorm.Config{}, config.Config{DatabaseDbPath: ":memory:"})
	require.NoError(t, err)
	require.NotNil(t, db.SQL)

	sqlDB, err := db.SQL.DB()
	require.NoError(t, err)
	_ = sqlDB.Close()
}

func TestInitializeCacheDB_MissingAddress(t *testing.T) {
	db := &DB{log: logger.New("test")}

	err := db.initializeCacheDB(config.Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache address or port is empty")
}

func TestCacheBuilder_NilClient(t *testing.T) {
	builder := NewCacheBuilder(nil, "key")

	assert.Error(t, builder.WithStruct(map[string]string{"a": "b"}).Set())
	assert.Error(t, builder.Delete())

	var dest map[string]string
	found, err := builder.Get(&dest)
	assert.Error(t, err)
	assert.False(t, found)
}
