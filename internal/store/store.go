// Package store is the filtered, paginated entity store shared by every
// back-office collection: filter state, list projection, drawer state
// machine and mutation orchestration, generic over the record type.
package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ListState tells a client whether the projection can be rendered.
type ListState string

const (
	ListIdle    ListState = "idle"
	ListLoading ListState = "loading"
	ListReady   ListState = "ready"
	ListFailed  ListState = "failed"
)

// Variant selects where filtering and pagination happen.
type Variant int

const (
	// VariantLocal filters a fully loaded collection in memory.
	VariantLocal Variant = iota
	// VariantRemote sends the filter to a paginated backend.
	VariantRemote
)

// Config describes one collection.
type Config[T Entity[T], F any] struct {
	Kind         string
	New          func() T
	Filter       F
	PageSize     int
	FirstPage    int
	Dependencies []Dependency[F]
	Modes        []Mode
	Status       StatusPolicy[T]
	Logger       *slog.Logger
	Now          func() time.Time
}

// DeleteDialog is the public state of the delete confirmation.
type DeleteDialog struct {
	Open   bool   `json:"open"`
	Target *int64 `json:"entityToDelete"`
}

// View is everything a client needs to render a collection.
type View[T any, F any] struct {
	Items        []T              `json:"items"`
	TotalItems   int              `json:"totalItems"`
	CurrentPage  int              `json:"currentPage"`
	ItemsPerPage int              `json:"itemsPerPage"`
	TotalPages   int              `json:"totalPages"`
	State        ListState        `json:"state"`
	Error        string           `json:"error,omitempty"`
	Filter       F                `json:"filter"`
	Drawer       DrawerSession[T] `json:"drawer"`
	DeleteDialog DeleteDialog     `json:"deleteDialog"`
}

type projection[T any] struct {
	items   []T
	total   int
	state   ListState
	err     error
	version [2]uint64
}

// Store is one collection inside a workspace. It is safe for concurrent use;
// backend calls run without holding the store lock.
type Store[T Entity[T], F any] struct {
	cfg     Config[T, F]
	variant Variant
	source  Source[T, F]
	logger  *slog.Logger

	mu          sync.Mutex
	filter      *FilterState[F]
	drawer      *Drawer[T]
	deletes     Confirmation[int64]
	proj        projection[T]
	dataVersion uint64
	inflight    map[int64]struct{}
	creating    bool
	disposed    bool
	onDispose   []func()
}

// NewLocal builds a store over an in-memory collection.
func NewLocal[T Entity[T], F any](cfg Config[T, F], src *LocalSource[T, F]) *Store[T, F] {
	return newStore(cfg, VariantLocal, src)
}

// NewRemote builds a store over a paginated backend.
func NewRemote[T Entity[T], F any](cfg Config[T, F], src *RemoteSource[T, F]) *Store[T, F] {
	return newStore(cfg, VariantRemote, src)
}

func newStore[T Entity[T], F any](cfg Config[T, F], variant Variant, src Source[T, F]) *Store[T, F] {
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if len(cfg.Modes) == 0 {
		cfg.Modes = []Mode{ModeAdd, ModeEdit}
	}
	return &Store[T, F]{
		cfg:      cfg,
		variant:  variant,
		source:   src,
		logger:   cfg.Logger.With(slog.String("component", "store"), slog.String("entity", cfg.Kind)),
		filter:   NewFilterState(cfg.Filter, cfg.PageSize, cfg.FirstPage, cfg.Dependencies...),
		drawer:   NewDrawer[T](cfg.Modes...),
		proj:     projection[T]{state: ListIdle},
		inflight: make(map[int64]struct{}),
	}
}

func (s *Store[T, F]) Kind() string     { return s.cfg.Kind }
func (s *Store[T, F]) Variant() Variant { return s.variant }

func (s *Store[T, F]) stateVersionLocked() [2]uint64 {
	return [2]uint64{s.filter.Version(), s.dataVersion}
}

// Refresh fetches the projection for the current filter and page when it is
// out of date. A response that arrives after the filter, page or data changed
// is dropped with ErrStaleResponse.
func (s *Store[T, F]) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return ErrDisposed
	}
	want := s.stateVersionLocked()
	if s.proj.state == ListReady && s.proj.version == want {
		s.mu.Unlock()
		return nil
	}
	q := s.filter.query()
	s.proj.state = ListLoading
	s.mu.Unlock()

	page, err := s.source.List(ctx, q)

	s.mu.Lock()
	if s.stateVersionLocked() != want {
		s.mu.Unlock()
		staleResponses.WithLabelValues(s.cfg.Kind).Inc()
		return ErrStaleResponse
	}
	if err != nil {
		s.proj.state = ListFailed
		s.proj.err = err
		s.mu.Unlock()
		s.logger.Warn("list failed", slog.String("error", err.Error()))
		return err
	}
	s.proj = projection[T]{items: page.Items, total: page.Total, state: ListReady, version: want}
	// The collection shrank below the current page: move to the last page.
	last := TotalPages(page.Total, s.filter.Size())
	past := last > 0 && s.filter.Page() > last
	if past {
		s.filter.setPage(last)
	}
	s.mu.Unlock()
	if past {
		return s.Refresh(ctx)
	}
	return nil
}

// View refreshes the projection if needed and returns a snapshot. A failed
// fetch is reported through View.State rather than as an error.
func (s *Store[T, F]) View(ctx context.Context) (View[T, F], error) {
	if err := s.Refresh(ctx); errors.Is(err, ErrDisposed) {
		return View[T, F]{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(), nil
}

func (s *Store[T, F]) snapshotLocked() View[T, F] {
	items := make([]T, len(s.proj.items))
	for i, e := range s.proj.items {
		items[i] = e.Clone()
	}
	v := View[T, F]{
		Items:        items,
		TotalItems:   s.proj.total,
		CurrentPage:  s.filter.Page(),
		ItemsPerPage: s.filter.Size(),
		TotalPages:   TotalPages(s.proj.total, s.filter.Size()),
		State:        s.proj.state,
		Filter:       s.filter.Criteria(),
		Drawer:       s.drawer.Session(),
	}
	if s.proj.err != nil && s.proj.state == ListFailed {
		v.Error = s.proj.err.Error()
	}
	if open, target := s.deletes.State(); open {
		id := target
		v.DeleteDialog = DeleteDialog{Open: true, Target: &id}
	}
	return v
}

// SetFilter merges changes into the criteria; the page returns to the first one.
func (s *Store[T, F]) SetFilter(mutate func(*F) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return ErrDisposed
	}
	_, err := s.filter.SetFilter(mutate)
	return err
}

// SetFilterJSON merges a partial JSON filter object into the criteria.
func (s *Store[T, F]) SetFilterJSON(raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return ErrDisposed
	}
	_, err := s.filter.SetFilterJSON(raw)
	return err
}

// ClearFilters restores the initial criteria.
func (s *Store[T, F]) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.Clear()
}

// SetCurrentPage moves to page n clamped to the pages of the current filter.
// The projection is brought up to date first; when it cannot be, or there are
// no pages, the page is left alone.
func (s *Store[T, F]) SetCurrentPage(ctx context.Context, n int) error {
	if err := s.Refresh(ctx); errors.Is(err, ErrDisposed) {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.proj.state != ListReady || s.proj.version != s.stateVersionLocked() {
		return nil
	}
	if page, ok := ClampPage(n, TotalPages(s.proj.total, s.filter.Size())); ok {
		s.filter.setPage(page)
	}
	return nil
}

// SetItemsPerPage changes the page size and goes back to the first page.
func (s *Store[T, F]) SetItemsPerPage(n int) error {
	if n <= 0 {
		return ErrValidation
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.setSize(n)
	return nil
}

// OnDispose registers cleanup run once by Dispose.
func (s *Store[T, F]) OnDispose(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onDispose = append(s.onDispose, fn)
}

// Dispose closes the drawer, runs cleanup hooks and rejects further use.
func (s *Store[T, F]) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	s.drawer.Close()
	s.deletes.Cancel()
	hooks := s.onDispose
	s.onDispose = nil
	s.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}
