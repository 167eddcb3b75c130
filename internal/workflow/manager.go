package workflow

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ovrprep/internal/config"
	"ovrprep/internal/logging"
	"ovrprep/internal/manifest"
)

// Manager coordinates a single pipeline run.
type Manager struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *manifest.Store
	dryRun bool
	now    func() time.Time
	newID  func() string
}

// ManagerOption configures optional Manager behavior.
type ManagerOption func(*Manager)

// WithDryRun executes every stage without writing the vocabulary or OVR files.
func WithDryRun(enabled bool) ManagerOption {
	return func(m *Manager) { m.dryRun = enabled }
}

// WithManifest records the run in store when it finishes.
func WithManifest(store *manifest.Store) ManagerOption {
	return func(m *Manager) { m.store = store }
}

// WithRunID overrides the generated run identifier (used in tests).
func WithRunID(id string) ManagerOption {
	return func(m *Manager) {
		if id != "" {
			m.newID = func() string { return id }
		}
	}
}

// NewManager constructs a workflow manager.
func NewManager(cfg *config.Config, logger *slog.Logger, opts ...ManagerOption) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	m := &Manager{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "workflow"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}
