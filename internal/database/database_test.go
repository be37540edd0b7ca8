package database

import (
	"fmt"
	"testing"

	"team-task-backend/internal/database/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := Open(sqlite.Open(dsn), &Options{MaxOpenConns: 1, MaxIdleConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestOpenMigratesAllTables(t *testing.T) {
	db := openMemory(t)

	for _, table := range []string{"users", "teams", "team_members", "tasks"} {
		assert.True(t, db.Migrator().HasTable(table), "expected table %s", table)
	}
	assert.True(t, db.Migrator().HasIndex(&models.TeamMember{}, "idx_team_members_team_user"))
}

func TestOpenTranslatesDuplicateKey(t *testing.T) {
	db := openMemory(t)

	first := &models.User{Username: "john_doe", Email: "john@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(first).Error)
	assert.NotEqual(t, uuid.Nil, first.ID)

	dup := &models.User{Username: "john_doe", Email: "other@example.com", PasswordHash: "x"}
	err := db.Create(dup).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
