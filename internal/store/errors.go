package store

import (
	"errors"

	"qlcc/internal/model"
)

var (
	// ErrValidation is returned when a record fails field validation. Nothing is stored.
	ErrValidation = model.ErrValidation
	// ErrNotFound is returned when the requested id is not held by the local cache.
	ErrNotFound = errors.New("entity not found")
	// ErrPreconditionNotMet is returned when a destructive action was not confirmed first.
	ErrPreconditionNotMet = errors.New("precondition not met")
	// ErrMutationInProgress is returned when a second mutation targets an entity that is already being changed.
	ErrMutationInProgress = errors.New("mutation already in progress")
	// ErrIllegalTransition is returned when a status change is not allowed from the current status.
	ErrIllegalTransition = errors.New("illegal status transition")
	// ErrDrawerClosed is returned when a drawer action needs an open drawer.
	ErrDrawerClosed = errors.New("drawer is closed")
	// ErrInvalidDrawerState is returned when the drawer cannot take the requested transition.
	ErrInvalidDrawerState = errors.New("invalid drawer state")
	// ErrModeUnsupported is returned when a collection does not offer the requested drawer mode.
	ErrModeUnsupported = errors.New("drawer mode not supported")
	// ErrStaleResponse is returned when a list response arrived after the state it was requested for changed.
	ErrStaleResponse = errors.New("stale response discarded")
	// ErrDisposed is returned by every operation on a disposed store.
	ErrDisposed = errors.New("store disposed")
)
