package testutils

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"testing"
)

// TestMain runs the helper tests. They use in-memory SQLite; the shared Postgres
// container only exists when an integration run asked for it, and is purged on exit
// or interrupt.
func TestMain(m *testing.M) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		if sharedPool != nil {
			log.Println("testutils: interrupted, purging the shared Postgres container")
		}
		CleanupSharedContainer()
		os.Exit(1)
	}()

	code := m.Run()

	if sharedPool != nil {
		log.Println("testutils: purging the shared Postgres container")
	}
	CleanupSharedContainer()

	os.Exit(code)
}
