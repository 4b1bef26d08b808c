package testutil

import (
	"testing"

	"github.com/ndang/mailgrep/internal/store"
)

// NewTestStore creates an in-memory HistoryStore with all migrations
// applied. It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.HistoryStore {
	t.Helper()

	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}
