package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"securelocal/internal/app"
)

// rootOptions holds global flags for all commands.
type rootOptions struct {
	home    string
	section string
	backend string
	format  string
	strict  bool
	verbose bool
}

// Execute runs the CLI until completion or interrupt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand creates the root command for the securelocal CLI.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "securelocal",
		Short:        "Section-scoped key-value document store",
		Long:         "Store JSON values per named section in a private local storage area. Content is not encrypted.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.format, validFormats)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.home, "home", "", "storage root (default ~/.securelocal)")
	root.PersistentFlags().StringVarP(&opts.section, "section", "s", "", "section name (default \"secure-local\")")
	root.PersistentFlags().StringVar(&opts.backend, "backend", app.BackendDisk, "storage backend (disk|sqlite|memory)")
	root.PersistentFlags().StringVar(&opts.format, "format", formatJSON, "output format (json|text|yaml)")
	root.PersistentFlags().BoolVar(&opts.strict, "strict", false, "fail on unparsable section content")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		getCmd(opts),
		setCmd(opts),
		removeCmd(opts),
		clearCmd(opts),
		sectionsCmd(opts),
	)
	return root
}

// config loads the environment configuration and applies explicit flags.
func (o *rootOptions) config(cmd *cobra.Command) (app.Config, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return app.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("home") {
		cfg.Home = o.home
	}
	if flags.Changed("section") {
		cfg.Section = o.section
	}
	if flags.Changed("backend") {
		cfg.Backend = o.backend
	}
	if flags.Changed("strict") {
		cfg.Strict = o.strict
	}
	if o.verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// run wraps a command body with wiring and cleanup of the backend.
func (o *rootOptions) run(fn func(cmd *cobra.Command, w *app.Wire, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := o.config(cmd)
		if err != nil {
			return err
		}
		w, err := app.NewWire(cfg, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer func() { _ = w.Close() }()
		return fn(cmd, w, args)
	}
}

func (o *rootOptions) printer(cmd *cobra.Command) *printer {
	return &printer{format: o.format, w: cmd.OutOrStdout()}
}
