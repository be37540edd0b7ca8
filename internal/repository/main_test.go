//go:build integration
// +build integration

package repository

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"testing"

	"team-task-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
)

// TestMain runs before all repository tests and ensures proper Docker cleanup
func TestMain(m *testing.M) {
	// Set up signal handling for graceful cleanup on interruption (Ctrl+C)
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Repository tests interrupted, cleaning up Docker containers...")
		testutils.CleanupSharedContainer()
		os.Exit(1)
	}()

	log.Println("Starting repository integration tests...")
	code := m.Run()

	log.Println("Repository tests completed, cleaning up Docker containers...")
	testutils.CleanupSharedContainer()

	os.Exit(code)
}

// The same suites as the SQLite runs, against a real Postgres container

func TestUserRepositoryPostgres(t *testing.T) {
	suite.Run(t, &UserRepositoryTestSuite{setup: testutils.SetupTestSuite})
}

func TestTeamRepositoryPostgres(t *testing.T) {
	suite.Run(t, &TeamRepositoryTestSuite{setup: testutils.SetupTestSuite})
}

func TestTeamMemberRepositoryPostgres(t *testing.T) {
	suite.Run(t, &TeamMemberRepositoryTestSuite{setup: testutils.SetupTestSuite})
}

func TestTaskRepositoryPostgres(t *testing.T) {
	suite.Run(t, &TaskRepositoryTestSuite{setup: testutils.SetupTestSuite})
}
