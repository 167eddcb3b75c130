package testsupport

import (
	"context"
	"testing"

	"ovrprep/internal/config"
	"ovrprep/internal/manifest"
)

// MustOpenManifest opens the run ledger at cfg.Manifest.Path and closes it
// when the test finishes.
func MustOpenManifest(t testing.TB, cfg *config.Config) *manifest.Store {
	t.Helper()

	store, err := manifest.Open(context.Background(), cfg.Manifest.Path)
	if err != nil {
		t.Fatalf("manifest.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
