// Package crud is the generic admin data-table engine: one schema per
// entity plus a list/form editor that works against any store.Repository.
package crud

import (
	"context"
	"errors"
	"fmt"

	"rclinic-backend/store"
)

var (
	ErrDeleteDeclined = errors.New("delete not confirmed")
	ErrNotEditing     = errors.New("editor is not in form mode")
)

// FieldKind tells a form renderer which input to draw.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindTextarea FieldKind = "textarea"
	KindNumber   FieldKind = "number"
	KindDate     FieldKind = "date"
	KindEmail    FieldKind = "email"
	KindURL      FieldKind = "url"
	KindPassword FieldKind = "password"
	KindSelect   FieldKind = "select"
)

type Field struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Kind     FieldKind `json:"kind"`
	Required bool      `json:"required"`
	Options  []string  `json:"options,omitempty"`
}

// RuleError is a domain validation failure, e.g. a password confirmation
// that does not match. Missing required fields are rejected earlier by
// request binding.
type RuleError struct {
	Field   string
	Message string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Schema describes one entity for the editor.
//
// Prepare runs on every save before Validate. current is the stored record
// when editing and nil when creating; it is the hook for merging
// write-only fields such as passwords.
type Schema[T store.Entity[K], K comparable] struct {
	Name         string
	Fields       []Field
	Defaults     func() T
	NewID        func(ctx context.Context, record T, repo store.Repository[T, K]) (K, error)
	WithID       func(record T, id K) T
	ToggleStatus func(record T) T
	Prepare      func(current *T, incoming T) (T, error)
	Validate     func(record T) error
}

func (s *Schema[T, K]) prepare(current *T, incoming T) (T, error) {
	if s.Prepare == nil {
		return incoming, nil
	}
	return s.Prepare(current, incoming)
}

func (s *Schema[T, K]) validate(record T) error {
	if s.Validate == nil {
		return nil
	}
	return s.Validate(record)
}
