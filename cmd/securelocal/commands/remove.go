package commands

import (
	"github.com/spf13/cobra"

	"securelocal/internal/app"
)

// remove key...: delete keys from the section.
func removeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "remove key...",
		Aliases: []string{"rm"},
		Short:   "Delete keys from a section",
		Args:    cobra.MinimumNArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, w *app.Wire, args []string) error {
			return w.Store.Remove(cmd.Context(), args)
		}),
	}
}
