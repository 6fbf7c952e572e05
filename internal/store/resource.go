package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Resource is the type-erased face of a Store used by the HTTP layer.
type Resource interface {
	Kind() string
	Snapshot(ctx context.Context) (any, error)
	SetFilterJSON(raw []byte) error
	ClearFilters()
	SetCurrentPage(ctx context.Context, n int) error
	SetItemsPerPage(n int) error
	OpenDrawer(ctx context.Context, m Mode, id, fileID *int64) error
	SwitchToEdit() error
	CloseDrawer()
	SubmitJSON(ctx context.Context, actor string, raw []byte) (any, error)
	ImportJSON(ctx context.Context, actor string, raw []byte) (any, error)
	ChangeStatusJSON(ctx context.Context, actor string, id int64, raw []byte) (any, error)
	RequestDelete(id int64)
	CancelDelete()
	Delete(ctx context.Context, actor string, id int64) error
	Dispose()
}

func (s *Store[T, F]) Snapshot(ctx context.Context) (any, error) {
	return s.View(ctx)
}

func (s *Store[T, F]) SubmitJSON(ctx context.Context, actor string, raw []byte) (any, error) {
	return s.Submit(ctx, actor, raw)
}

// ImportJSON decodes a JSON array of records on top of fresh defaults.
func (s *Store[T, F]) ImportJSON(ctx context.Context, actor string, raw []byte) (any, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: import expects a JSON array: %v", ErrValidation, err)
	}
	es := make([]T, 0, len(items))
	for i, item := range items {
		e := s.cfg.New()
		if err := json.Unmarshal(item, e); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrValidation, i, err)
		}
		es = append(es, e)
	}
	return s.Import(ctx, actor, es)
}

// ChangeStatusJSON expects {"status": <value>}.
func (s *Store[T, F]) ChangeStatusJSON(ctx context.Context, actor string, id int64, raw []byte) (any, error) {
	var body struct {
		Status json.RawMessage `json:"status"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Status) == 0 {
		return nil, fmt.Errorf("%w: status is required", ErrValidation)
	}
	return s.ChangeStatus(ctx, actor, id, body.Status)
}
