// Package ui is the presentation layer: it turns user intents (field edits,
// submit, edit, delete, reset) into form controller calls and renders the
// draft form, the provider table and live notifications.
//
// The Presenter is the single UI thread. Every intent and every render
// runs under one mutex, so the store and controller never see concurrent
// callers even when the HTTP server handles requests in parallel.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/text/message"

	"github.com/roach88/providers/internal/form"
	"github.com/roach88/providers/internal/notify"
	"github.com/roach88/providers/internal/provider"
	"github.com/roach88/providers/internal/store"
)

// ErrNotFound is returned when an intent names a provider that does not exist.
var ErrNotFound = errors.New("provider not found")

// Option configures a Presenter.
type Option func(*Presenter)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Presenter) { p.logger = l }
}

// WithPrinter sets the translation printer. Defaults to English.
func WithPrinter(pr *message.Printer) Option {
	return func(p *Presenter) { p.printer = pr }
}

// Presenter dispatches intents and builds views.
type Presenter struct {
	mu      sync.Mutex
	store   *store.Store
	ctrl    *form.Controller
	notes   *notify.Center
	printer *message.Printer
	logger  *slog.Logger

	// rows mirrors the store; refreshed by the mutation hook.
	rows     []provider.Record
	revision uint64
	cancel   func()
}

// NewPresenter wires a presenter to st and subscribes to its mutations.
func NewPresenter(st *store.Store, ctrl *form.Controller, notes *notify.Center, opts ...Option) *Presenter {
	p := &Presenter{
		store:  st,
		ctrl:   ctrl,
		notes:  notes,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.printer == nil {
		p.printer = defaultPrinter()
	}
	p.rows = st.Snapshot()
	p.cancel = st.Subscribe(p.onMutation)
	return p
}

// Close unsubscribes from the store.
func (p *Presenter) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// onMutation runs inside whichever intent caused the mutation, so p.mu is
// already held.
func (p *Presenter) onMutation(ev store.Event) {
	p.rows = ev.Records
	p.revision++
	p.logger.Debug("table refreshed", "op", ev.Op, "id", ev.ID, "rows", len(ev.Records), "revision", p.revision)
}

// Revision counts the store mutations the presenter has observed.
func (p *Presenter) Revision() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.revision
}

// ChangeField applies one field edit to the draft.
func (p *Presenter) ChangeField(field provider.Field, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ctrl.OnFieldChange(field, value)
}

// Submit applies the given field values to the draft and submits it.
// Fields absent from values keep their draft contents. The returned error
// is the validation (or commit) failure already surfaced as a notification.
func (p *Presenter) Submit(ctx context.Context, values map[provider.Field]string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, f := range provider.Fields() {
		if v, ok := values[f]; ok {
			p.ctrl.OnFieldChange(f, v)
		}
	}
	return p.ctrl.OnSubmit(ctx)
}

// Edit loads the provider with the given id into the draft.
func (p *Presenter) Edit(id int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	r, ok := p.store.Get(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	p.ctrl.OnEditRequest(r)
	return nil
}

// Delete removes the provider with the given id.
func (p *Presenter) Delete(ctx context.Context, id int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ctrl.OnDeleteRequest(ctx, id)
}

// Reset abandons the draft.
func (p *Presenter) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ctrl.Reset()
}

// Records returns the table contents in display order.
func (p *Presenter) Records() []provider.Record {
	records, _ := p.table()
	return records
}

// table returns the table contents with the revision they belong to.
func (p *Presenter) table() ([]provider.Record, uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]provider.Record, len(p.rows))
	copy(out, p.rows)
	return out, p.revision
}

// View builds the page view model.
func (p *Presenter) View() Page {
	p.mu.Lock()
	defer p.mu.Unlock()
	return buildPage(p.printer, p.ctrl.Draft(), p.ctrl.Mode(), p.rows, p.notes.Active(), p.notes.Now())
}
