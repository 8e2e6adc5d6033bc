package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/roach88/providers/internal/provider"
)

// fieldFlags binds one string flag per editable provider field.
type fieldFlags struct {
	values map[provider.Field]*string
}

func addFieldFlags(cmd *cobra.Command) *fieldFlags {
	ff := &fieldFlags{values: make(map[provider.Field]*string)}
	for _, field := range provider.Fields() {
		v := new(string)
		cmd.Flags().StringVar(v, string(field), "", "provider "+string(field))
		ff.values[field] = v
	}
	return ff
}

// changed returns the fields given on the command line, in form order.
func (ff *fieldFlags) changed(cmd *cobra.Command) map[provider.Field]string {
	out := make(map[provider.Field]string)
	for _, field := range provider.Fields() {
		if cmd.Flags().Changed(string(field)) {
			out[field] = *ff.values[field]
		}
	}
	return out
}

// submit applies values to the draft, submits it and reports the outcome.
// A rejected draft yields an ExitFailure error after the response is written.
func (a *app) submit(ctx context.Context, f *OutputFormatter, values map[provider.Field]string) error {
	for _, field := range provider.Fields() {
		if v, ok := values[field]; ok {
			a.ctrl.OnFieldChange(field, v)
		}
	}

	err := a.ctrl.OnSubmit(ctx)
	if err == nil {
		return nil
	}

	notes := a.notices()
	var verr *provider.ValidationError
	if errors.As(err, &verr) {
		msg := a.text(verr.Message)
		if outErr := f.Fail(CodeValidation, msg, map[string]string{"field": string(verr.Field)}, notes); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitFailure, "provider rejected", verr)
	}

	if outErr := f.Fail(CodeAddFailed, err.Error(), nil, notes); outErr != nil {
		return outErr
	}
	return WrapExitError(ExitCommandError, "failed to store provider", err)
}
