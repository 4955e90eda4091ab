package crud

import (
	"context"
	"fmt"

	"rclinic-backend/store"
)

type Mode string

const (
	ModeList Mode = "list"
	ModeForm Mode = "form"
)

// Confirmer answers the blocking prompt shown before a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a plain function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Editor drives one admin table. It starts in list mode; Edit and New move
// it to form mode, Save and Cancel bring it back. An Editor is not safe for
// concurrent use; create one per request or session.
type Editor[T store.Entity[K], K comparable] struct {
	schema *Schema[T, K]
	repo   store.Repository[T, K]

	mode    Mode
	editing *K
	draft   T
}

func NewEditor[T store.Entity[K], K comparable](schema *Schema[T, K], repo store.Repository[T, K]) *Editor[T, K] {
	return &Editor[T, K]{schema: schema, repo: repo, mode: ModeList}
}

func (e *Editor[T, K]) Mode() Mode { return e.mode }

// Draft is the record the form is seeded with.
func (e *Editor[T, K]) Draft() T { return e.draft }

// Editing reports the id under edit, or false in create mode.
func (e *Editor[T, K]) Editing() (K, bool) {
	if e.editing == nil {
		var zero K
		return zero, false
	}
	return *e.editing, true
}

func (e *Editor[T, K]) List(ctx context.Context) ([]T, error) {
	return e.repo.List(ctx)
}

// ToggleStatus flips the record's visibility in place.
func (e *Editor[T, K]) ToggleStatus(ctx context.Context, id K) (T, error) {
	return e.repo.Mutate(ctx, id, func(current T) (T, error) {
		return e.schema.ToggleStatus(current), nil
	})
}

// Delete removes the record with id once confirm agrees. A declined prompt
// leaves the store untouched.
func (e *Editor[T, K]) Delete(ctx context.Context, id K, confirm Confirmer) error {
	if _, err := e.repo.Get(ctx, id); err != nil {
		return err
	}
	prompt := fmt.Sprintf("¿Está seguro de que desea eliminar este registro de %s?", e.schema.Name)
	if !confirm.Confirm(prompt) {
		return ErrDeleteDeclined
	}
	return e.repo.Delete(ctx, id)
}

// Edit opens the form preloaded with the stored record.
func (e *Editor[T, K]) Edit(ctx context.Context, id K) (T, error) {
	record, err := e.repo.Get(ctx, id)
	if err != nil {
		return record, err
	}
	e.mode = ModeForm
	e.editing = &id
	e.draft = record
	return record, nil
}

// New opens an empty form seeded with the schema defaults.
func (e *Editor[T, K]) New() T {
	e.mode = ModeForm
	e.editing = nil
	e.draft = e.schema.Defaults()
	return e.draft
}

// Save replaces the edited record or appends a new one, then returns to
// list mode. On error the editor stays in form mode so the caller can retry.
func (e *Editor[T, K]) Save(ctx context.Context, data T) (T, error) {
	var zero T
	if e.mode != ModeForm {
		return zero, ErrNotEditing
	}

	var saved T
	var err error
	if e.editing != nil {
		saved, err = e.update(ctx, *e.editing, data)
	} else {
		saved, err = e.create(ctx, data)
	}
	if err != nil {
		return zero, err
	}
	e.reset()
	return saved, nil
}

// Cancel discards the form.
func (e *Editor[T, K]) Cancel() error {
	if e.mode != ModeForm {
		return ErrNotEditing
	}
	e.reset()
	return nil
}

func (e *Editor[T, K]) update(ctx context.Context, id K, data T) (T, error) {
	data = e.schema.WithID(data, id)
	return e.repo.Mutate(ctx, id, func(current T) (T, error) {
		next, err := e.schema.prepare(&current, data)
		if err != nil {
			return current, err
		}
		if err := e.schema.validate(next); err != nil {
			return current, err
		}
		return next, nil
	})
}

func (e *Editor[T, K]) create(ctx context.Context, data T) (T, error) {
	var zero T
	next, err := e.schema.prepare(nil, data)
	if err != nil {
		return zero, err
	}
	if err := e.schema.validate(next); err != nil {
		return zero, err
	}
	id, err := e.schema.NewID(ctx, next, e.repo)
	if err != nil {
		return zero, fmt.Errorf("assign %s id: %w", e.schema.Name, err)
	}
	return e.repo.Create(ctx, e.schema.WithID(next, id))
}

func (e *Editor[T, K]) reset() {
	var zero T
	e.mode = ModeList
	e.editing = nil
	e.draft = zero
}
