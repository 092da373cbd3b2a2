package commands

import (
	"github.com/spf13/cobra"

	"securelocal/internal/app"
	"securelocal/internal/store"
)

func sectionsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "List the sections that exist",
		Args:  cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, w *app.Wire, args []string) error {
			names, err := store.ListSections(cmd.Context(), w.Root)
			if err != nil {
				return err
			}
			return opts.printer(cmd).List(names)
		}),
	}
}
