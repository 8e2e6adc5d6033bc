package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/text/message"

	"github.com/roach88/providers/internal/config"
	"github.com/roach88/providers/internal/form"
	"github.com/roach88/providers/internal/kv"
	"github.com/roach88/providers/internal/locale"
	"github.com/roach88/providers/internal/mirror"
	"github.com/roach88/providers/internal/notify"
	"github.com/roach88/providers/internal/provider"
	"github.com/roach88/providers/internal/store"
)

// app is one wired session: durable store, mirror, provider store,
// notification center and form controller.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	printer *message.Printer

	kv     *kv.Store
	mirror *mirror.Mirror
	store  *store.Store
	ids    *provider.ClockIDGenerator
	notes  *notify.Center
	ctrl   *form.Controller
}

// openApp resolves configuration, opens the database and loads the
// provider list. The caller must Close the app.
func openApp(ctx context.Context, opts *RootOptions, cmd *cobra.Command) (*app, error) {
	cfg, err := opts.resolveConfig()
	if err != nil {
		return nil, err
	}
	logger := opts.newLogger(cmd.ErrOrStderr())

	logger.Debug("opening database", "path", cfg.DB)
	kvs, err := kv.Open(cfg.DB)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	m := mirror.New(kvs, cfg.Key, logger)
	st := store.New(m)
	records := m.Load(ctx)
	// The loaded list is written straight back, so a malformed stored
	// value is replaced by the empty list it was read as.
	st.ReplaceAll(ctx, records)

	ids := provider.NewClockIDGenerator()
	for _, r := range records {
		ids.Observe(r.ID)
	}

	notes := notify.NewCenter(
		notify.WithTTL(notify.Success, cfg.SuccessTTL()),
		notify.WithTTL(notify.Error, cfg.ErrorTTL()),
	)

	a := &app{
		cfg:     cfg,
		logger:  logger,
		printer: locale.Printer(locale.Match(cfg.Lang)),
		kv:      kvs,
		mirror:  m,
		store:   st,
		ids:     ids,
		notes:   notes,
		ctrl:    form.New(st, ids, notes, form.WithLogger(logger)),
	}
	logger.Debug("provider list loaded", "count", st.Len(), "key", cfg.Key)
	return a, nil
}

// Close releases the database.
func (a *app) Close() {
	if err := a.kv.Close(); err != nil {
		a.logger.Error("error closing database", "error", err)
	}
}

// text translates a message key into the configured language.
func (a *app) text(key string) string {
	return locale.Text(a.printer, key)
}

// notices drains the active notifications, translated, for output.
func (a *app) notices() []NoticeJSON {
	active := a.notes.Active()
	out := make([]NoticeJSON, 0, len(active))
	for _, n := range active {
		a.notes.Dismiss(n.ID)
		out = append(out, NoticeJSON{Kind: string(n.Kind), Message: a.text(n.Message)})
	}
	return out
}
