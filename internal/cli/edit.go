package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/providers/internal/provider"
)

// NewEditCommand creates the edit command.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	var fields *fieldFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a provider",
		Long: `Load a provider into the form, apply the given fields and submit.

Fields that are not given keep their stored value. The edited provider is
validated as a whole, so a record stored before a rule existed may need
more than the field being changed.

Example:
  providers edit 1718000000000 --phone 9999999`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(rootOpts, fields, args[0], cmd)
		},
	}
	fields = addFieldFlags(cmd)

	return cmd
}

func runEdit(opts *RootOptions, fields *fieldFlags, rawID string, cmd *cobra.Command) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := openApp(ctx, opts, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	f := opts.formatter(cmd)
	current, ok := a.store.Get(id)
	if !ok {
		msg := fmt.Sprintf("provider %d not found", id)
		if err := f.Error(CodeNotFound, msg, nil); err != nil {
			return err
		}
		return NewExitError(ExitCommandError, msg)
	}

	a.ctrl.OnEditRequest(current)
	if err := a.submit(ctx, f, fields.changed(cmd)); err != nil {
		return err
	}

	updated, _ := a.store.Get(id)
	if opts.Format == "json" {
		return f.Respond(updated, a.notices())
	}
	table, err := a.table([]provider.Record{updated})
	if err != nil {
		return err
	}
	return f.Respond(table, a.notices())
}

// parseID parses a provider id argument.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, NewExitError(ExitCommandError, fmt.Sprintf("invalid provider id %q", raw))
	}
	return id, nil
}
