package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// DeleteResult is the JSON payload of the delete command.
type DeleteResult struct {
	ID    int64 `json:"id"`
	Found bool  `json:"found"`
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a provider",
		Long: `Delete a provider by id, without confirmation.

Deleting an id that is not stored changes nothing and still succeeds.

Example:
  providers delete 1718000000000`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runDelete(opts *RootOptions, rawID string, cmd *cobra.Command) error {
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

	_, found := a.store.Get(id)
	a.ctrl.OnDeleteRequest(ctx, id)

	f := opts.formatter(cmd)
	f.VerboseLog("provider %d found: %t", id, found)
	if opts.Format == "json" {
		return f.Respond(DeleteResult{ID: id, Found: found}, a.notices())
	}
	return f.Respond(nil, a.notices())
}
