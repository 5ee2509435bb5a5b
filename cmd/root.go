package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/agentic-research/cclua/internal/config"
	"github.com/agentic-research/cclua/internal/frontend"
	"github.com/spf13/cobra"
)

// options holds the persistent flags shared by every command.
type options struct {
	configPath string
	cachePath  string
	formatName string
	verbose    bool

	log *slog.Logger
}

// NewRootCmd builds the command tree. Each call returns independent flag
// state.
func NewRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "cclua [input] [output]",
		Short: "Translate restricted Python scripts to ComputerCraft Lua",
		Long: `cclua translates a Python file, or every .py file under a directory,
into Lua for ComputerCraft computers. Members of names imported from cc_lib
are renamed from snake_case to camelCase.

Paths default to transpiler_in.py and transpiler_out.lua, and can also be
set with the in_file / out_file environment variables or a cclua.hcl file.`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			o.log = newLogger(cmd.ErrOrStderr(), o.verbose)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd, o, args)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&o.configPath, "config", "c", "", "Path to configuration file (default ./"+config.DefaultFile+" if present)")
	flags.StringVar(&o.cachePath, "cache", "", "Path to translation cache database")
	flags.StringVarP(&o.formatName, "format", "f", "", "Input format: python or json (default: by file extension)")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newCheckCmd(o), newMappingsCmd(o))
	return root
}

// load resolves configuration and applies the positional arguments and flags.
func (o *options) load(args []string) (*config.Config, error) {
	cfg, err := config.Load(o.configPath, os.LookupEnv)
	if err != nil {
		return nil, err
	}
	var input, output string
	if len(args) > 0 {
		input = args[0]
	}
	if len(args) > 1 {
		output = args[1]
	}
	cfg.Override(input, output, o.cachePath, o.formatName)

	if cfg.Source != "" {
		o.logger().Debug("loaded config", "path", cfg.Source)
	}
	o.logger().Debug("resolved paths", "input", cfg.Input, "output", cfg.Output, "cache", cfg.Cache)
	return cfg, nil
}

// format parses the configured input format; empty means by extension.
func (o *options) format(cfg *config.Config) (frontend.Format, error) {
	if cfg.Format == "" {
		return frontend.FormatUnknown, nil
	}
	f, ok := frontend.ParseFormat(cfg.Format)
	if !ok {
		return frontend.FormatUnknown, fmt.Errorf("unknown input format %q (want python or json)", cfg.Format)
	}
	return f, nil
}

func (o *options) logger() *slog.Logger {
	if o.log == nil {
		o.log = newLogger(io.Discard, false)
	}
	return o.log
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
