// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.
package repository

import (
	"context"
	"encoding/json"
	"time"
)

// Record is one stored entity: its kind, id and the JSON document of the entity.
type Record struct {
	Kind      string
	ID        int64
	Payload   json.RawMessage
	UpdatedAt time.Time
}

// RecordQuery selects one page of records of a kind. Contains matches payload
// fields case-insensitively by substring, Equals by exact text value.
type RecordQuery struct {
	Kind     string
	Contains map[string]string
	Equals   map[string]string
	PageQuery
}

// RecordRepository defines data access for entity records.
// No business logic here, only persistence.
type RecordRepository interface {
	// All returns every record of kind in id order.
	All(ctx context.Context, kind string) ([]Record, error)

	// List returns a page of records matching q and the total number of matches.
	List(ctx context.Context, q RecordQuery) (*PageResult[Record], error)

	// FindByID returns sql.ErrNoRows when the record does not exist.
	FindByID(ctx context.Context, kind string, id int64) (*Record, error)

	// HighWater is the highest id ever handed out for kind.
	HighWater(ctx context.Context, kind string) (int64, error)

	// Reserve hands out n consecutive ids for kind and returns the first one.
	// Reserved ids are never handed out again.
	Reserve(ctx context.Context, kind string, n int) (int64, error)

	// Insert stores recs in one transaction and raises the high-water mark of
	// their kind to the largest id.
	Insert(ctx context.Context, recs []Record) error

	// Update replaces the payload. It returns sql.ErrNoRows when nothing matched.
	Update(ctx context.Context, rec Record) error

	// Delete returns sql.ErrNoRows when nothing matched.
	Delete(ctx context.Context, kind string, id int64) error
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
