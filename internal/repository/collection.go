package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"qlcc/internal/model"
	"qlcc/internal/store"
)

// CollectionSpec maps the list parameters of a kind onto payload fields.
// Parameters listed in neither map are ignored.
type CollectionSpec struct {
	Kind      string
	FirstPage int
	Contains  map[string]string
	Equals    map[string]string
}

// Collection stores one entity kind in a RecordRepository. It serves as the
// paginated backend of remote stores and as the journal of local ones.
type Collection[T store.Entity[T]] struct {
	repo RecordRepository
	spec CollectionSpec
	new  func() T
}

func NewCollection[T store.Entity[T]](repo RecordRepository, spec CollectionSpec, newT func() T) *Collection[T] {
	return &Collection[T]{repo: repo, spec: spec, new: newT}
}

var (
	_ store.Backend[*model.Document] = (*Collection[*model.Document])(nil)
	_ store.Journal[*model.Document] = (*Collection[*model.Document])(nil)
	_ store.IDReserver               = (*Collection[*model.Document])(nil)
)

func (c *Collection[T]) decode(rec Record) (T, error) {
	e := c.new()
	if err := json.Unmarshal(rec.Payload, e); err != nil {
		var zero T
		return zero, fmt.Errorf("decode %s %d: %w", c.spec.Kind, rec.ID, err)
	}
	e.SetEntityID(rec.ID)
	return e, nil
}

func (c *Collection[T]) encode(e T) (Record, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return Record{}, fmt.Errorf("encode %s %d: %w", c.spec.Kind, e.EntityID(), err)
	}
	return Record{Kind: c.spec.Kind, ID: e.EntityID(), Payload: payload}, nil
}

func notFound(err error, kind string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s %d", store.ErrNotFound, kind, id)
	}
	return err
}

// Load returns every stored record of the kind, for seeding a local store.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	recs, err := c.repo.All(ctx, c.spec.Kind)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		e, err := c.decode(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (c *Collection[T]) HighWater(ctx context.Context) (int64, error) {
	return c.repo.HighWater(ctx, c.spec.Kind)
}

// Reserve hands out n consecutive unused ids.
func (c *Collection[T]) Reserve(ctx context.Context, n int) (int64, error) {
	return c.repo.Reserve(ctx, c.spec.Kind, n)
}

func (c *Collection[T]) List(ctx context.Context, params url.Values) (store.Page[T], error) {
	q := RecordQuery{Kind: c.spec.Kind, Contains: map[string]string{}, Equals: map[string]string{}}
	for param, field := range c.spec.Contains {
		if v := params.Get(param); v != "" {
			q.Contains[field] = v
		}
	}
	for param, field := range c.spec.Equals {
		if v := params.Get(param); v != "" {
			q.Equals[field] = v
		}
	}
	size, _ := strconv.Atoi(params.Get("size"))
	if size <= 0 {
		size = 10
	}
	page, err := strconv.Atoi(params.Get("page"))
	if err != nil {
		page = c.spec.FirstPage
	}
	q.Limit = size
	q.Offset = max(page-c.spec.FirstPage, 0) * size

	res, err := c.repo.List(ctx, q)
	if err != nil {
		return store.Page[T]{}, err
	}
	items := make([]T, 0, len(res.Items))
	for _, rec := range res.Items {
		e, err := c.decode(rec)
		if err != nil {
			return store.Page[T]{}, err
		}
		items = append(items, e)
	}
	return store.Page[T]{Items: items, Total: res.Total}, nil
}

func (c *Collection[T]) Get(ctx context.Context, id int64) (T, error) {
	rec, err := c.repo.FindByID(ctx, c.spec.Kind, id)
	if err != nil {
		var zero T
		return zero, notFound(err, c.spec.Kind, id)
	}
	return c.decode(*rec)
}

func (c *Collection[T]) Create(ctx context.Context, e T) (T, error) {
	out, err := c.Import(ctx, []T{e})
	if err != nil {
		var zero T
		return zero, err
	}
	return out[0], nil
}

// Import reserves consecutive ids and inserts every record in one transaction.
func (c *Collection[T]) Import(ctx context.Context, es []T) ([]T, error) {
	if len(es) == 0 {
		return []T{}, nil
	}
	first, err := c.Reserve(ctx, len(es))
	if err != nil {
		return nil, err
	}
	out := make([]T, len(es))
	for i, e := range es {
		out[i] = e.Clone()
		out[i].SetEntityID(first + int64(i))
	}
	if err := c.Insert(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Collection[T]) Update(ctx context.Context, id int64, e T) (T, error) {
	e = e.Clone()
	e.SetEntityID(id)
	if err := c.Replace(ctx, e); err != nil {
		var zero T
		return zero, err
	}
	return e, nil
}

func (c *Collection[T]) Delete(ctx context.Context, id int64) error {
	return notFound(c.repo.Delete(ctx, c.spec.Kind, id), c.spec.Kind, id)
}

// Insert stores records whose ids are already assigned.
func (c *Collection[T]) Insert(ctx context.Context, es []T) error {
	recs := make([]Record, 0, len(es))
	for _, e := range es {
		rec, err := c.encode(e)
		if err != nil {
			return err
		}
		recs = append(recs, rec)
	}
	return c.repo.Insert(ctx, recs)
}

func (c *Collection[T]) Replace(ctx context.Context, e T) error {
	rec, err := c.encode(e)
	if err != nil {
		return err
	}
	return notFound(c.repo.Update(ctx, rec), c.spec.Kind, e.EntityID())
}
