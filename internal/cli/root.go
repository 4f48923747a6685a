// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvchain/blocktri"
	"github.com/katalvlaran/lvchain/internal/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	Workers    int
	Tolerance  float64 // symmetry tolerance for diagonal blocks
	LogLevel   string
	LogFormat  string

	runID  string
	logger logging.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the lvchain CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "lvchain",
		Short: "Exact inference kernels for chain-structured models",
		Long: `lvchain solves block-tridiagonal SPD systems (block Thomas) and runs the
scaled forward-backward recursion on discrete chains, for problems read from
YAML or JSON files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, explicit := opts.ConfigPath, cmd.Flags().Changed("config")
			if !explicit {
				path = defaultConfigPath()
			}
			cfg, err := LoadConfig(path, explicit)
			if err != nil {
				return WrapExitError(ExitCommandError, ErrCodeParse, err)
			}
			applyConfig(cmd, cfg, opts)

			return opts.validate()
		},
	}

	// Global flags
	pf := cmd.PersistentFlags()
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	pf.StringVar(&opts.Format, "format", "text", "output format (json|text)")
	pf.StringVar(&opts.ConfigPath, "config", "", "config file (default $XDG_CONFIG_HOME/lvchain/config.yaml)")
	pf.IntVar(&opts.Workers, "workers", 0, "plate entries processed concurrently (0 = GOMAXPROCS)")
	pf.Float64Var(&opts.Tolerance, "tolerance", blocktri.DefaultSymmetryTolerance, "symmetry tolerance for diagonal blocks")
	pf.StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	pf.StringVar(&opts.LogFormat, "log-format", "text", "log format (text|json)")

	cmd.AddCommand(NewSolveCommand(opts))
	cmd.AddCommand(NewForwardBackwardCommand(opts))

	return cmd
}

// validate rejects flag values the kernels would panic on.
func (o *RootOptions) validate() error {
	if !slices.Contains(ValidFormats, o.Format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}
	if o.Workers < 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid workers %d: must be >= 0", o.Workers))
	}
	if !(o.Tolerance >= 0) || o.Tolerance > 1 {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid tolerance %v: must be in [0, 1]", o.Tolerance))
	}
	return nil
}

// session resolves the per-invocation formatter and logger. Commands built
// without the root (as in tests) get the same defaults.
func (o *RootOptions) session(cmd *cobra.Command) (*OutputFormatter, context.Context) {
	if o.runID == "" {
		o.runID = uuid.NewString()
	}
	if o.logger == nil {
		level := o.LogLevel
		if level == "" {
			level = "warn"
		}
		o.logger = logging.ByFormat(cmd.ErrOrStderr(), o.LogFormat, logging.ParseLevel(level)).With("run_id", o.runID)
	}

	f := &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
		RunID:     o.runID,
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return f, logging.WithContext(ctx, o.logger)
}
