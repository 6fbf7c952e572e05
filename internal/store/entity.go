package store

import (
	"encoding/json"
	"fmt"

	"qlcc/internal/model"
)

// Entity is satisfied by the pointer type of every stored record, e.g. *model.Resident.
type Entity[T any] interface {
	comparable
	EntityID() int64
	SetEntityID(id int64)
	AuditInfo() *model.Audit
	Clone() T
	Validate() error
}

// Patch changes a working copy of a record during an update.
type Patch[T any] func(T) error

// JSONPatch merges a partial JSON object over the record. Fields absent from raw keep their value.
func JSONPatch[T any](raw []byte) Patch[T] {
	return func(e T) error {
		if err := json.Unmarshal(raw, e); err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return nil
	}
}

func isZero[T comparable](v T) bool {
	var zero T
	return v == zero
}
