package store

import (
	"context"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

// Backend is the paginated CRUD API a remote store talks to.
type Backend[T any] interface {
	List(ctx context.Context, params url.Values) (Page[T], error)
	Get(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, e T) (T, error)
	Import(ctx context.Context, es []T) ([]T, error)
	Update(ctx context.Context, id int64, e T) (T, error)
	Delete(ctx context.Context, id int64) error
}

// CacheOptions size the query and detail caches of a RemoteSource.
type CacheOptions struct {
	Size int
	TTL  time.Duration
}

// RemoteSource projects a server-driven list. Pages are cached by their
// encoded query; identical concurrent fetches share one request. Every
// successful mutation drops the cached pages.
type RemoteSource[T Entity[T], F any] struct {
	kind    string
	backend Backend[T]
	pages   *expirable.LRU[string, Page[T]]
	details *expirable.LRU[int64, T]
	flight  singleflight.Group
	gen     atomic.Uint64
}

func NewRemoteSource[T Entity[T], F any](kind string, backend Backend[T], opts CacheOptions) *RemoteSource[T, F] {
	if opts.Size <= 0 {
		opts.Size = 128
	}
	if opts.TTL <= 0 {
		opts.TTL = 30 * time.Second
	}
	return &RemoteSource[T, F]{
		kind:    kind,
		backend: backend,
		pages:   expirable.NewLRU[string, Page[T]](opts.Size, nil, opts.TTL),
		details: expirable.NewLRU[int64, T](opts.Size, nil, opts.TTL),
	}
}

// Params encodes q the way it is sent upstream; its Encode() is the cache key.
func Params[F any](q Query[F]) (url.Values, error) {
	params, err := EncodeParams(q.Filter)
	if err != nil {
		return nil, err
	}
	params.Set("page", strconv.Itoa(q.WirePage()))
	params.Set("size", strconv.Itoa(q.Size))
	return params, nil
}

func (r *RemoteSource[T, F]) List(ctx context.Context, q Query[F]) (Page[T], error) {
	params, err := Params(q)
	if err != nil {
		return Page[T]{}, err
	}
	key := params.Encode()
	if p, ok := r.pages.Get(key); ok {
		listCacheHits.WithLabelValues(r.kind).Inc()
		return clonePage(p), nil
	}
	listCacheMisses.WithLabelValues(r.kind).Inc()

	gen := r.gen.Load()
	v, err, _ := r.flight.Do(key, func() (any, error) {
		return r.backend.List(ctx, params)
	})
	if err != nil {
		return Page[T]{}, err
	}
	p := v.(Page[T])
	if r.gen.Load() == gen {
		r.pages.Add(key, p)
	}
	return clonePage(p), nil
}

func (r *RemoteSource[T, F]) Get(ctx context.Context, id int64) (T, error) {
	if e, ok := r.details.Get(id); ok {
		return e.Clone(), nil
	}
	e, err := r.backend.Get(ctx, id)
	if err != nil {
		var zero T
		return zero, err
	}
	r.details.Add(id, e)
	return e.Clone(), nil
}

func (r *RemoteSource[T, F]) Create(ctx context.Context, e T) (T, error) {
	created, err := r.backend.Create(ctx, e)
	if err != nil {
		var zero T
		return zero, err
	}
	r.invalidate()
	r.details.Add(created.EntityID(), created)
	return created.Clone(), nil
}

func (r *RemoteSource[T, F]) CreateMany(ctx context.Context, es []T) ([]T, error) {
	created, err := r.backend.Import(ctx, es)
	if err != nil {
		return nil, err
	}
	r.invalidate()
	return clonePage(Page[T]{Items: created}).Items, nil
}

// Replace sends the full updated record and refreshes the detail cache.
func (r *RemoteSource[T, F]) Replace(ctx context.Context, e T) (T, error) {
	updated, err := r.backend.Update(ctx, e.EntityID(), e)
	if err != nil {
		var zero T
		return zero, err
	}
	r.invalidate()
	r.details.Add(updated.EntityID(), updated)
	return updated.Clone(), nil
}

func (r *RemoteSource[T, F]) Delete(ctx context.Context, id int64) error {
	if err := r.backend.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate()
	r.details.Remove(id)
	return nil
}

func (r *RemoteSource[T, F]) invalidate() {
	r.gen.Add(1)
	r.pages.Purge()
}
