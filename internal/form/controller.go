// Package form implements the provider form controller: the draft record
// the user is typing into, and whether submitting it creates a new provider
// or overwrites an existing one.
//
// The controller is a two-state machine:
//
//	Creating --OnEditRequest--> Editing
//	Editing  --OnEditRequest--> Editing
//	Editing  --OnSubmit (valid)--> Creating
//	any      --Reset--> Creating
//
// A failed submit changes nothing but emits an error notification.
package form

import (
	"context"
	"log/slog"

	"github.com/roach88/providers/internal/notify"
	"github.com/roach88/providers/internal/provider"
)

// Success messages emitted after each committed mutation.
const (
	MsgAdded   = "provider added"
	MsgUpdated = "provider updated"
	MsgDeleted = "provider deleted"
)

// Mode is the controller state.
type Mode int

const (
	Creating Mode = iota
	Editing
)

func (m Mode) String() string {
	if m == Editing {
		return "editing"
	}
	return "creating"
}

// Store is the provider collection the controller commits to.
type Store interface {
	Add(ctx context.Context, r provider.Record) error
	Update(ctx context.Context, r provider.Record) bool
	Remove(ctx context.Context, id int64) bool
}

// Notifier surfaces the outcome of each action to the user.
type Notifier interface {
	Notify(kind notify.Kind, message string)
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// Controller owns the draft and the edit-mode flag.
//
// Not safe for concurrent use; callers serialize intents.
type Controller struct {
	store    Store
	ids      provider.IDGenerator
	notifier Notifier
	logger   *slog.Logger

	draft provider.Record
	mode  Mode
}

// New creates a controller in the Creating state with a blank draft.
func New(store Store, ids provider.IDGenerator, notifier Notifier, opts ...Option) *Controller {
	c := &Controller{
		store:    store,
		ids:      ids,
		notifier: notifier,
		logger:   slog.Default(),
		draft:    provider.Blank(),
		mode:     Creating,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Draft returns a copy of the current draft.
func (c *Controller) Draft() provider.Record {
	return c.draft
}

// Mode returns the current state.
func (c *Controller) Mode() Mode {
	return c.mode
}

// OnFieldChange sets one draft field, NFC-normalized. Valid in both states.
func (c *Controller) OnFieldChange(field provider.Field, value string) {
	c.draft = c.draft.With(field, provider.Normalize(value))
}

// OnEditRequest loads r, id included, and enters Editing. Field text is
// NFC-normalized like typed input.
func (c *Controller) OnEditRequest(r provider.Record) {
	c.draft = r.Normalized()
	c.mode = Editing
	c.logger.Debug("editing provider", "id", r.ID)
}

// OnSubmit validates the draft and commits it.
//
// On a validation failure the draft and mode are untouched, an error
// notification carries the rule's message, and the *provider.ValidationError
// is returned. On success the draft is reset, the mode returns to Creating,
// and nil is returned.
func (c *Controller) OnSubmit(ctx context.Context) error {
	if verr := provider.Validate(c.draft); verr != nil {
		c.logger.Debug("submit rejected", "field", verr.Field, "reason", verr.Message)
		c.notifier.Notify(notify.Error, verr.Message)
		return verr
	}

	switch c.mode {
	case Editing:
		if !c.store.Update(ctx, c.draft) {
			// The record was deleted while its draft was open.
			c.logger.Warn("submitted draft matches no provider", "id", c.draft.ID)
		}
		c.logger.Info("provider updated", "id", c.draft.ID)
		c.notifier.Notify(notify.Success, MsgUpdated)
	default:
		r := c.draft
		r.ID = c.ids.Next()
		if err := c.store.Add(ctx, r); err != nil {
			c.logger.Error("add provider", "id", r.ID, "error", err)
			c.notifier.Notify(notify.Error, err.Error())
			return err
		}
		c.logger.Info("provider added", "id", r.ID)
		c.notifier.Notify(notify.Success, MsgAdded)
	}

	c.Reset()
	return nil
}

// OnDeleteRequest removes the provider with the given id, without
// confirmation. The draft and mode are left alone, even when the draft is
// the record being deleted.
func (c *Controller) OnDeleteRequest(ctx context.Context, id int64) {
	removed := c.store.Remove(ctx, id)
	c.logger.Info("provider deleted", "id", id, "found", removed)
	c.notifier.Notify(notify.Success, MsgDeleted)
}

// Reset clears the draft to the blank template and returns to Creating.
func (c *Controller) Reset() {
	c.draft = provider.Blank()
	c.mode = Creating
}
