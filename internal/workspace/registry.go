package workspace

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ErrNotFound is returned for unknown or expired workspace ids.
var ErrNotFound = errors.New("workspace not found")

var activeWorkspaces = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "qlcc_workspaces_active",
	Help: "Workspaces currently held by the registry.",
})

// Factory builds the workspace for a new id.
type Factory func(ctx context.Context, id string) (*Workspace, error)

// FactoryFor builds workspaces over d.
func FactoryFor(d Deps) Factory {
	return func(ctx context.Context, id string) (*Workspace, error) {
		return New(ctx, id, d)
	}
}

// Registry holds the live workspaces. A workspace that is not used for ttl,
// or that is pushed out by newer ones, is disposed.
type Registry struct {
	factory Factory
	logger  *slog.Logger
	items   *expirable.LRU[string, *Workspace]
}

func NewRegistry(factory Factory, size int, ttl time.Duration, logger *slog.Logger) *Registry {
	if size <= 0 {
		size = 256
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "workspaces"))
	onEvict := func(id string, w *Workspace) {
		if !w.Dispose() {
			return
		}
		activeWorkspaces.Dec()
		logger.Info("workspace disposed", slog.String("workspace", id))
	}
	return &Registry{
		factory: factory,
		logger:  logger,
		items:   expirable.NewLRU[string, *Workspace](size, onEvict, ttl),
	}
}

// Create builds and registers a workspace under a fresh id.
func (r *Registry) Create(ctx context.Context) (*Workspace, error) {
	id := uuid.NewString()
	w, err := r.factory(ctx, id)
	if err != nil {
		r.logger.Error("workspace create failed", slog.String("error", err.Error()))
		return nil, err
	}
	r.items.Add(id, w)
	activeWorkspaces.Inc()
	r.logger.Info("workspace created", slog.String("workspace", id))
	return w, nil
}

// Get returns the workspace and restarts its idle timer. A workspace disposed
// between the lookup and the re-add is taken out again.
func (r *Registry) Get(id string) (*Workspace, error) {
	w, ok := r.items.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	r.items.Add(id, w)
	if w.Disposed() {
		r.items.Remove(id)
		return nil, ErrNotFound
	}
	return w, nil
}

// Dispose removes and disposes the workspace.
func (r *Registry) Dispose(id string) error {
	if !r.items.Remove(id) {
		return ErrNotFound
	}
	return nil
}

func (r *Registry) Len() int { return r.items.Len() }

// Close disposes every workspace.
func (r *Registry) Close() {
	r.items.Purge()
}
