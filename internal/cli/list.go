package cli

import (
	"bytes"
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/providers/internal/provider"
	"github.com/roach88/providers/internal/ui"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the provider table",
		Long: `Print every stored provider in insertion order.

Example:
  providers list
  providers list --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}
	return cmd
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := openApp(ctx, opts, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	records := a.store.Snapshot()
	f := opts.formatter(cmd)
	if opts.Format == "json" {
		return f.Success(records)
	}

	table, err := a.table(records)
	if err != nil {
		return err
	}
	return f.Success(table)
}

// table renders records as the translated provider table.
func (a *app) table(records []provider.Record) (string, error) {
	var buf bytes.Buffer
	if err := ui.WriteTable(&buf, records, a.printer); err != nil {
		return "", WrapExitError(ExitCommandError, "failed to render table", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
