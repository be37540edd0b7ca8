package testutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSQLiteDBIsolated(t *testing.T) {
	first := NewSQLiteDB(t)
	second := NewSQLiteDB(t)

	user := NewUserFactory().Create()
	require.NoError(t, first.Create(user).Error)

	var count int64
	require.NoError(t, second.Table("users").Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCleanTestDBOnSQLite(t *testing.T) {
	s := SetupSQLiteTestSuite(t)
	fs := NewFactorySet()

	creator, team, owner := fs.CreateTeamWithCreator()
	require.NoError(t, s.DB.Create(creator).Error)
	require.NoError(t, s.DB.Create(team).Error)
	require.NoError(t, s.DB.Create(owner).Error)

	s.CleanTestDB()

	for _, table := range []string{"users", "teams", "team_members"} {
		var count int64
		require.NoError(t, s.DB.Table(table).Count(&count).Error)
		assert.Equal(t, int64(0), count, table)
	}
}
