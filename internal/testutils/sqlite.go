package testutils

import (
	"fmt"
	"testing"
	"time"

	"team-task-backend/internal/config"
	"team-task-backend/internal/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TestJWTSecret signs every token issued in tests
const TestJWTSecret = "test-secret-key"

// TestConfig returns a configuration suitable for tests: fast bcrypt and a fixed secret
func TestConfig() *config.Config {
	return &config.Config{
		Environment:    "test",
		Port:           "8080",
		LogLevel:       "debug",
		DatabaseName:   "testdb",
		JWTSecret:      TestJWTSecret,
		JWTIssuer:      "team-task-backend-test",
		JWTExpiration:  time.Hour,
		BcryptCost:     4,
		AllowedOrigins: []string{"http://localhost:3000"},
	}
}

// NewSQLiteDB opens a private in-memory SQLite database with the full schema.
// The connection is closed when the test ends.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache database lives as long as one connection is open
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(sqlite.Open(dsn), &database.Options{
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// SetupSQLiteTestSuite returns a BaseTestSuite backed by a fresh in-memory SQLite database.
// It has the same signature as SetupTestSuite so suites can run against either store.
func SetupSQLiteTestSuite(t *testing.T) *BaseTestSuite {
	return &BaseTestSuite{
		DB:     NewSQLiteDB(t),
		Config: TestConfig(),
	}
}
