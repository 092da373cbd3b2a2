package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"securelocal/internal/app"
)

// set key=value...: merge values into the section.
func setCmd(opts *rootOptions) *cobra.Command {
	var rawJSON string

	cmd := &cobra.Command{
		Use:   "set key=value...",
		Short: "Merge values into a section",
		Long: "Each value is parsed as JSON when possible and stored as a string " +
			"otherwise. --json merges a whole object; key=value pairs are applied after it.",
		RunE: opts.run(func(cmd *cobra.Command, w *app.Wire, args []string) error {
			items, err := parseItems(rawJSON, args)
			if err != nil {
				return err
			}
			return w.Store.Set(cmd.Context(), items)
		}),
	}
	cmd.Flags().StringVar(&rawJSON, "json", "", `JSON object to merge, e.g. '{"color":"red"}'`)
	return cmd
}

// parseItems builds the map handed to Set from --json and key=value args.
func parseItems(rawJSON string, args []string) (map[string]any, error) {
	items := map[string]any{}
	if strings.TrimSpace(rawJSON) != "" {
		if err := json.Unmarshal([]byte(rawJSON), &items); err != nil {
			return nil, fmt.Errorf("--json: %w", err)
		}
		if items == nil {
			return nil, fmt.Errorf("--json: want a JSON object")
		}
	}
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid item %q: want key=value", arg)
		}
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			v = raw
		}
		items[key] = v
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("nothing to set: pass key=value pairs or --json")
	}
	return items, nil
}
