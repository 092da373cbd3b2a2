package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"securelocal/internal/app"
	"securelocal/internal/domain"
)

// clear --yes: delete the base directory, and every section with it.
func clearCmd(opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every section",
		Long: "Delete the shared base directory. This empties every section on the " +
			"storage root, not only the one selected with --section.",
		Args: cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, w *app.Wire, args []string) error {
			if !yes {
				return fmt.Errorf("clear deletes every section; pass --yes to confirm")
			}
			w.Logger.Warn("clearing every section", "directory", domain.BaseDirectory, "via", w.Store.Section())
			return w.Store.Clear(cmd.Context())
		}),
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deleting every section")
	return cmd
}
