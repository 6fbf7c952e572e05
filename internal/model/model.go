// Package model contains the back-office domain records.
// Records carry JSON tags matching the upstream API wire format and no persistence details.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrValidation marks a record that failed field validation.
var ErrValidation = errors.New("validation failed")

// Audit holds who created and last changed a record and when.
type Audit struct {
	CreatedBy string     `json:"createdBy,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedBy string     `json:"updatedBy,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// StampCreated records the creating actor. Update fields are cleared.
func (a *Audit) StampCreated(actor string, now time.Time) {
	a.CreatedBy = actor
	a.CreatedAt = now
	a.UpdatedBy = ""
	a.UpdatedAt = nil
}

// StampUpdated records the actor of the latest change.
func (a *Audit) StampUpdated(actor string, now time.Time) {
	a.UpdatedBy = actor
	a.UpdatedAt = &now
}

// Base is embedded by every record: a stable id plus audit metadata.
type Base struct {
	ID int64 `json:"id"`
	Audit
}

func (b *Base) EntityID() int64 { return b.ID }

func (b *Base) SetEntityID(id int64) { b.ID = id }

func (b *Base) AuditInfo() *Audit { return &b.Audit }

// AttachmentHolder is implemented by records that own files.
type AttachmentHolder interface {
	Files() []Attachment
}

// FindFile returns the attachment with the given id, if the record holds files.
func FindFile(record any, fileID int64) (*Attachment, bool) {
	h, ok := record.(AttachmentHolder)
	if !ok {
		return nil, false
	}
	for _, f := range h.Files() {
		if f.ID == fileID {
			return &f, true
		}
	}
	return nil, false
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", ErrValidation, field)
	}
	return nil
}

func oneOf[S comparable](field string, value S, allowed map[S][]S) error {
	if _, ok := allowed[value]; !ok {
		return fmt.Errorf("%w: %s %v is not a known value", ErrValidation, field, value)
	}
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func fieldErr(field, msg string) error {
	return fmt.Errorf("%w: %s %s", ErrValidation, field, msg)
}
