package store

import (
	"context"
	"io"
	"log/slog"
	"time"

	"qlcc/internal/model"
)

var fixedNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func resident(id int64, name, building, apartment string) *model.Resident {
	return &model.Resident{
		Base:      model.Base{ID: id},
		FullName:  name,
		Phone:     "0900000000",
		Building:  building,
		Apartment: apartment,
		Status:    model.ResidentActive,
	}
}

func residentPredicates() []Predicate[*model.Resident, model.ResidentFilter] {
	return []Predicate[*model.Resident, model.ResidentFilter]{
		Contains(func(f model.ResidentFilter) string { return f.Name }, func(r *model.Resident) string { return r.FullName }),
		Contains(func(f model.ResidentFilter) string { return f.Phone }, func(r *model.Resident) string { return r.Phone }),
		Equals(func(f model.ResidentFilter) string { return f.Building }, func(r *model.Resident) string { return r.Building }),
		Equals(func(f model.ResidentFilter) string { return f.Apartment }, func(r *model.Resident) string { return r.Apartment }),
		Equals(func(f model.ResidentFilter) model.ResidentStatus { return f.Status }, func(r *model.Resident) model.ResidentStatus { return r.Status }),
	}
}

func residentDependencies() []Dependency[model.ResidentFilter] {
	return []Dependency[model.ResidentFilter]{{
		Parent: func(f model.ResidentFilter) any { return f.Building },
		Child:  func(f model.ResidentFilter) any { return f.Apartment },
		Clear:  func(f *model.ResidentFilter) { f.Apartment = "" },
	}}
}

func residentConfig() Config[*model.Resident, model.ResidentFilter] {
	return Config[*model.Resident, model.ResidentFilter]{
		Kind:         "residents",
		New:          model.NewResident,
		PageSize:     20,
		FirstPage:    0,
		Dependencies: residentDependencies(),
		Modes:        []Mode{ModeAdd, ModeEdit, ModeView},
		Status: Statuses[*model.Resident, model.ResidentStatus]{
			Get:     func(r *model.Resident) model.ResidentStatus { return r.Status },
			Set:     func(r *model.Resident, s model.ResidentStatus) { r.Status = s },
			Allowed: model.ResidentTransitions,
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:    func() time.Time { return fixedNow },
	}
}

func newResidentStore(seed ...*model.Resident) (*Store[*model.Resident, model.ResidentFilter], *LocalSource[*model.Resident, model.ResidentFilter]) {
	src := NewLocalSource(seed, residentPredicates()...)
	return NewLocal(residentConfig(), src), src
}

// hookSource wraps a Source and lets tests run code inside backend calls.
type hookSource struct {
	Source[*model.Resident, model.ResidentFilter]
	onList    func() error
	onReplace func()
}

func (h *hookSource) List(ctx context.Context, q Query[model.ResidentFilter]) (Page[*model.Resident], error) {
	if h.onList != nil {
		if err := h.onList(); err != nil {
			return Page[*model.Resident]{}, err
		}
	}
	return h.Source.List(ctx, q)
}

func (h *hookSource) Replace(ctx context.Context, e *model.Resident) (*model.Resident, error) {
	if h.onReplace != nil {
		h.onReplace()
	}
	return h.Source.Replace(ctx, e)
}

func ids(rs []*model.Resident) []int64 {
	out := make([]int64, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

// all returns a copy of the whole collection.
func (l *LocalSource[T, F]) all() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return clonePage(Page[T]{Items: l.items}).Items
}
