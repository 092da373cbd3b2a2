package commands

import (
	"github.com/spf13/cobra"

	"securelocal/internal/app"
)

// get [key...]: print the section, or the truthy values of the named keys.
func getCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get [key...]",
		Short: "Print values from a section",
		Long: "With no keys, print the whole section. With keys, print only those " +
			"whose value is truthy: keys holding false, 0, \"\" or null are left out.",
		RunE: opts.run(func(cmd *cobra.Command, w *app.Wire, args []string) error {
			var keys any
			if len(args) > 0 {
				keys = args
			}
			doc, err := w.Store.Get(cmd.Context(), keys)
			if err != nil {
				return err
			}
			return opts.printer(cmd).Document(doc)
		}),
	}
}
