package store

import (
	"encoding/json"
	"fmt"
	"slices"
)

// StatusPolicy changes the status of a record after checking the move is legal.
type StatusPolicy[T any] interface {
	Transition(e T, to json.RawMessage) error
}

// Statuses is a StatusPolicy over a status field of type S.
type Statuses[T any, S comparable] struct {
	Get     func(T) S
	Set     func(T, S)
	Allowed map[S][]S
}

// Allows reports whether from -> to is in the table.
func (s Statuses[T, S]) Allows(from, to S) bool {
	return slices.Contains(s.Allowed[from], to)
}

// Apply moves e to status to.
func (s Statuses[T, S]) Apply(e T, to S) error {
	from := s.Get(e)
	if _, known := s.Allowed[to]; !known {
		return fmt.Errorf("%w: unknown status %v", ErrValidation, to)
	}
	if !s.Allows(from, to) {
		return fmt.Errorf("%w: %v -> %v", ErrIllegalTransition, from, to)
	}
	s.Set(e, to)
	return nil
}

func (s Statuses[T, S]) Transition(e T, to json.RawMessage) error {
	var target S
	if err := json.Unmarshal(to, &target); err != nil {
		return fmt.Errorf("%w: status: %v", ErrValidation, err)
	}
	return s.Apply(e, target)
}
