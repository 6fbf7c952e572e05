package store

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// Predicate is one filter test. It only takes part when Active reports a
// non-empty filter value.
type Predicate[T any, F any] struct {
	Active func(F) bool
	Match  func(T, F) bool
}

// Contains matches when the entity field contains the filter value, ignoring case.
func Contains[T any, F any](filterField func(F) string, entityField func(T) string) Predicate[T, F] {
	return Predicate[T, F]{
		Active: func(f F) bool { return strings.TrimSpace(filterField(f)) != "" },
		Match: func(e T, f F) bool {
			needle := strings.ToLower(strings.TrimSpace(filterField(f)))
			return strings.Contains(strings.ToLower(entityField(e)), needle)
		},
	}
}

// Equals matches when the entity field equals a non-zero filter value.
func Equals[T any, F any, V comparable](filterField func(F) V, entityField func(T) V) Predicate[T, F] {
	return Predicate[T, F]{
		Active: func(f F) bool { return !isZero(filterField(f)) },
		Match:  func(e T, f F) bool { return entityField(e) == filterField(f) },
	}
}

// Journal persists the writes of a LocalSource. It is called before the
// in-memory swap; a failed write leaves the cache unchanged.
type Journal[T any] interface {
	Insert(ctx context.Context, es []T) error
	Replace(ctx context.Context, e T) error
	Delete(ctx context.Context, id int64) error
}

// IDReserver is implemented by journals that hand out ids themselves, so that
// several caches over the same collection never assign the same id.
type IDReserver interface {
	Reserve(ctx context.Context, n int) (first int64, err error)
}

// LocalSource keeps the whole collection in memory and filters it client side.
// Writes replace the backing slice so readers never see half-applied changes.
type LocalSource[T Entity[T], F any] struct {
	mu         sync.RWMutex
	items      []T
	predicates []Predicate[T, F]
	highWater  int64
	journal    Journal[T]

	version      uint64
	filtered     []T
	filteredFor  F
	filteredAt   uint64
	filteredOnce bool
}

// NewLocalSource seeds the cache. Seed records keep their ids.
func NewLocalSource[T Entity[T], F any](seed []T, predicates ...Predicate[T, F]) *LocalSource[T, F] {
	items := make([]T, 0, len(seed))
	var hw int64
	for _, e := range seed {
		items = append(items, e.Clone())
		hw = max(hw, e.EntityID())
	}
	return &LocalSource[T, F]{items: items, predicates: predicates, highWater: hw}
}

// WithJournal makes every write go through j first.
func (l *LocalSource[T, F]) WithJournal(j Journal[T]) *LocalSource[T, F] {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.journal = j
	return l
}

// RaiseHighWater makes new ids start above id, e.g. the highest id ever
// persisted for the collection.
func (l *LocalSource[T, F]) RaiseHighWater(id int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.highWater = max(l.highWater, id)
}

// ApplyFilters returns the records matching every active predicate, in insertion order.
func (l *LocalSource[T, F]) ApplyFilters(f F) []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return clonePage(Page[T]{Items: l.applyLocked(f)}).Items
}

func (l *LocalSource[T, F]) applyLocked(f F) []T {
	if l.filteredOnce && l.filteredAt == l.version && reflect.DeepEqual(l.filteredFor, f) {
		return l.filtered
	}
	active := make([]Predicate[T, F], 0, len(l.predicates))
	for _, p := range l.predicates {
		if p.Active(f) {
			active = append(active, p)
		}
	}
	out := make([]T, 0, len(l.items))
	for _, e := range l.items {
		if matchAll(e, f, active) {
			out = append(out, e)
		}
	}
	l.filtered, l.filteredFor, l.filteredAt, l.filteredOnce = out, f, l.version, true
	return out
}

func matchAll[T any, F any](e T, f F, preds []Predicate[T, F]) bool {
	for _, p := range preds {
		if !p.Match(e, f) {
			return false
		}
	}
	return true
}

func (l *LocalSource[T, F]) List(_ context.Context, q Query[F]) (Page[T], error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	filtered := l.applyLocked(q.Filter)
	start, end := SliceBounds(q.Page, q.Size, len(filtered))
	return clonePage(Page[T]{Items: filtered[start:end], Total: len(filtered)}), nil
}

func (l *LocalSource[T, F]) Get(_ context.Context, id int64) (T, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i := l.indexOf(id); i >= 0 {
		return l.items[i].Clone(), nil
	}
	var zero T
	return zero, fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// Create assigns the next id and appends e.
func (l *LocalSource[T, F]) Create(ctx context.Context, e T) (T, error) {
	out, err := l.CreateMany(ctx, []T{e})
	if err != nil {
		var zero T
		return zero, err
	}
	return out[0], nil
}

// CreateMany assigns consecutive ids and appends every record in one swap.
// Ids continue from the highest id ever held, so deleted ids are not reused.
func (l *LocalSource[T, F]) CreateMany(ctx context.Context, es []T) ([]T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	next := make([]T, len(l.items), len(l.items)+len(es))
	copy(next, l.items)
	created := make([]T, 0, len(es))
	id := l.highWater
	if r, ok := l.journal.(IDReserver); ok && len(es) > 0 {
		first, err := r.Reserve(ctx, len(es))
		if err != nil {
			return nil, err
		}
		id = max(id, first-1)
	}
	for _, e := range es {
		id++
		c := e.Clone()
		c.SetEntityID(id)
		next = append(next, c)
		created = append(created, c.Clone())
	}
	if l.journal != nil {
		if err := l.journal.Insert(ctx, created); err != nil {
			return nil, err
		}
	}
	l.items = next
	l.highWater = id
	l.version++
	return created, nil
}

func (l *LocalSource[T, F]) Replace(ctx context.Context, e T) (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var zero T
	i := l.indexOf(e.EntityID())
	if i < 0 {
		return zero, fmt.Errorf("%w: id %d", ErrNotFound, e.EntityID())
	}
	if l.journal != nil {
		if err := l.journal.Replace(ctx, e); err != nil {
			return zero, err
		}
	}
	next := make([]T, len(l.items))
	copy(next, l.items)
	next[i] = e.Clone()
	l.items = next
	l.version++
	return e.Clone(), nil
}

func (l *LocalSource[T, F]) Delete(ctx context.Context, id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if l.journal != nil {
		if err := l.journal.Delete(ctx, id); err != nil {
			return err
		}
	}
	next := make([]T, 0, len(l.items)-1)
	next = append(next, l.items[:i]...)
	next = append(next, l.items[i+1:]...)
	l.items = next
	l.version++
	return nil
}

func (l *LocalSource[T, F]) indexOf(id int64) int {
	for i, e := range l.items {
		if e.EntityID() == id {
			return i
		}
	}
	return -1
}
