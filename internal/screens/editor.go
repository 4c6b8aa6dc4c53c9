package screens

import (
	"context"

	"github.com/diewo77/invoicedesk/validation"
)

// EditorHooks binds an Editor to one entity type.
type EditorHooks[D any] struct {
	// Entity is the i18n code of the entity label, e.g. "entity.product".
	Entity string
	// New returns the draft for a fresh record.
	New func() D
	// Copy turns a stored record into a draft.
	Copy func(D) D
	// Validate records violations; a non-empty result blocks saving.
	Validate func(D) validation.Violations
	Create   func(ctx context.Context, draft D) (D, error)
	Update   func(ctx context.Context, id uint, draft D) (D, error)
	// Saved runs after a successful create or update, usually a list refresh.
	Saved func(ctx context.Context)
}

// Editor is the state of a record edit dialog: whether it is open, the draft
// being edited and the ID of the record it came from (0 for a new record).
type Editor[D any] struct {
	deps  Deps
	hooks EditorHooks[D]

	open      bool
	editingID uint
	draft     D
}

// NewEditor returns a closed editor.
func NewEditor[D any](deps Deps, hooks EditorHooks[D]) *Editor[D] {
	return &Editor[D]{deps: deps.withDefaults(), hooks: hooks}
}

// OpenNew opens the dialog with the default draft.
func (e *Editor[D]) OpenNew() {
	e.open = true
	e.editingID = 0
	e.draft = e.hooks.New()
}

// OpenEdit opens the dialog with a copy of record.
func (e *Editor[D]) OpenEdit(id uint, record D) {
	e.open = true
	e.editingID = id
	if e.hooks.Copy != nil {
		e.draft = e.hooks.Copy(record)
	} else {
		e.draft = record
	}
}

// Close discards the draft.
func (e *Editor[D]) Close() {
	var zero D
	e.open = false
	e.editingID = 0
	e.draft = zero
}

// IsOpen reports whether the dialog is shown.
func (e *Editor[D]) IsOpen() bool { return e.open }

// EditingID returns the ID of the record being edited, 0 for a new one.
func (e *Editor[D]) EditingID() uint { return e.editingID }

// Draft returns the draft for in-place changes.
func (e *Editor[D]) Draft() *D { return &e.draft }

// Save validates the draft and dispatches a create for a new record or an
// update for an edited one. The dialog closes only on success.
func (e *Editor[D]) Save(ctx context.Context) (D, error) {
	var zero D
	label := e.deps.t(e.hooks.Entity)
	log := e.deps.Log.With().Str("entity", e.hooks.Entity).Uint("id", e.editingID).Logger()

	if v := e.hooks.Validate(e.draft); !v.Empty() {
		e.deps.Notifier.Error(e.deps.tf("notify.validation", label))
		return zero, &ValidationError{Entity: e.hooks.Entity, Violations: v}
	}

	op := "create"
	var saved D
	var err error
	if e.editingID == 0 {
		saved, err = e.hooks.Create(ctx, e.draft)
	} else {
		op = "update"
		saved, err = e.hooks.Update(ctx, e.editingID, e.draft)
	}
	if err != nil {
		log.Error().Err(err).Str("op", op).Msg("save failed")
		e.deps.Notifier.Error(e.deps.tf("notify.save_failed", label))
		return zero, &OperationError{Op: op, Entity: e.hooks.Entity, Err: err}
	}

	if op == "create" {
		e.deps.Notifier.Success(e.deps.tf("notify.created", label))
	} else {
		e.deps.Notifier.Success(e.deps.tf("notify.updated", label))
	}
	log.Info().Str("op", op).Msg("saved")
	e.Close()
	if e.hooks.Saved != nil {
		e.hooks.Saved(ctx)
	}
	return saved, nil
}
