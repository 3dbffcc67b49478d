package testsupport

import (
	"testing"

	"fileorg/internal/config"
	"fileorg/internal/history"
)

// MustOpenHistory opens the history store configured by cfg and registers
// cleanup.
func MustOpenHistory(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(cfg.HistoryPath())
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
