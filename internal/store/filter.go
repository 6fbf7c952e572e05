package store

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Dependency clears a child criterion whenever its parent criterion changes,
// e.g. the apartment filter when another building is picked.
type Dependency[F any] struct {
	Parent func(F) any
	Child  func(F) any
	Clear  func(*F)
}

// FilterState holds the criteria and the pagination cursor of one list.
// Page is kept 1-based; FirstPage only matters on the wire.
type FilterState[F any] struct {
	initial     F
	criteria    F
	page        int
	size        int
	defaultSize int
	firstPage   int
	deps        []Dependency[F]
	version     uint64
}

// NewFilterState snapshots initial so ClearFilters can restore it.
func NewFilterState[F any](initial F, size, firstPage int, deps ...Dependency[F]) *FilterState[F] {
	if size <= 0 {
		size = 10
	}
	if firstPage != 0 {
		firstPage = 1
	}
	return &FilterState[F]{
		initial:     cloneCriteria(initial),
		criteria:    cloneCriteria(initial),
		page:        1,
		size:        size,
		defaultSize: size,
		firstPage:   firstPage,
		deps:        deps,
	}
}

func (s *FilterState[F]) Criteria() F     { return cloneCriteria(s.criteria) }
func (s *FilterState[F]) Page() int       { return s.page }
func (s *FilterState[F]) Size() int       { return s.size }
func (s *FilterState[F]) FirstPage() int  { return s.firstPage }
func (s *FilterState[F]) Version() uint64 { return s.version }

// SetFilter applies mutate to a copy of the criteria. When any criterion
// changed the page goes back to the first one. It reports whether anything changed.
func (s *FilterState[F]) SetFilter(mutate func(*F) error) (bool, error) {
	prev := s.criteria
	next := cloneCriteria(prev)
	if err := mutate(&next); err != nil {
		return false, err
	}
	for _, d := range s.deps {
		parentChanged := !reflect.DeepEqual(d.Parent(prev), d.Parent(next))
		childTouched := !reflect.DeepEqual(d.Child(prev), d.Child(next))
		if parentChanged && !childTouched {
			d.Clear(&next)
		}
	}
	if reflect.DeepEqual(next, prev) {
		return false, nil
	}
	s.criteria = next
	s.page = 1
	s.version++
	return true, nil
}

// SetFilterJSON shallow-merges a JSON object into the criteria.
func (s *FilterState[F]) SetFilterJSON(raw []byte) (bool, error) {
	return s.SetFilter(func(f *F) error {
		if err := json.Unmarshal(raw, f); err != nil {
			return fmt.Errorf("%w: filter: %v", ErrValidation, err)
		}
		return nil
	})
}

// Clear restores the initial criteria and page size.
func (s *FilterState[F]) Clear() {
	s.criteria = cloneCriteria(s.initial)
	s.page = 1
	s.size = s.defaultSize
	s.version++
}

func (s *FilterState[F]) setPage(n int) {
	if n == s.page {
		return
	}
	s.page = n
	s.version++
}

func (s *FilterState[F]) setSize(n int) {
	s.size = n
	s.page = 1
	s.version++
}

func (s *FilterState[F]) query() Query[F] {
	return Query[F]{Filter: cloneCriteria(s.criteria), Page: s.page, Size: s.size, FirstPage: s.firstPage}
}

// cloneCriteria deep-copies f through its JSON form so that pointer fields
// of the copy never alias the original.
func cloneCriteria[F any](f F) F {
	raw, err := json.Marshal(f)
	if err != nil {
		return f
	}
	var out F
	if err := json.Unmarshal(raw, &out); err != nil {
		return f
	}
	return out
}
