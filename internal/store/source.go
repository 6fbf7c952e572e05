package store

import "context"

// Query is one list request: criteria plus a 1-based page.
type Query[F any] struct {
	Filter    F
	Page      int
	Size      int
	FirstPage int
}

// WirePage is the page number in the numbering the backend expects.
func (q Query[F]) WirePage() int {
	return q.Page - 1 + q.FirstPage
}

// Page is one page of a list and the number of records matching the criteria.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// Source holds the records behind a store: a local cache or a remote API.
type Source[T any, F any] interface {
	List(ctx context.Context, q Query[F]) (Page[T], error)
	Get(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, e T) (T, error)
	CreateMany(ctx context.Context, es []T) ([]T, error)
	Replace(ctx context.Context, e T) (T, error)
	Delete(ctx context.Context, id int64) error
}

func clonePage[T Entity[T]](p Page[T]) Page[T] {
	items := make([]T, len(p.Items))
	for i, e := range p.Items {
		items[i] = e.Clone()
	}
	return Page[T]{Items: items, Total: p.Total}
}
