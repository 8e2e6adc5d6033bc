package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/providers/internal/provider"
)

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	var fields *fieldFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a provider",
		Long: `Add a provider from the given fields.

The draft is validated the same way the web form validates it: name,
contact and address are required, phone must be digits only and email
must look like an address. A rejected draft exits with code 1.

Example:
  providers add --name Acme --contact Jo --address "1 Rd" --phone 5551234 --email jo@acme.com`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(rootOpts, fields, cmd)
		},
	}
	fields = addFieldFlags(cmd)

	return cmd
}

func runAdd(opts *RootOptions, fields *fieldFlags, cmd *cobra.Command) error {
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
	if err := a.submit(ctx, f, fields.changed(cmd)); err != nil {
		return err
	}

	added, _ := a.store.Get(a.ids.Last())
	f.VerboseLog("assigned id %d", added.ID)
	if opts.Format == "json" {
		return f.Respond(added, a.notices())
	}
	table, err := a.table([]provider.Record{added})
	if err != nil {
		return err
	}
	return f.Respond(table, a.notices())
}
