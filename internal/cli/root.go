// Package cli implements the rlcalc command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mesh-intelligence/rlcalc/internal/config"
	"github.com/mesh-intelligence/rlcalc/internal/logging"
	"github.com/mesh-intelligence/rlcalc/internal/paths"
	"github.com/mesh-intelligence/rlcalc/pkg/units"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootOptions holds global flag values and the state loaded from them
// before any subcommand runs.
type rootOptions struct {
	configDir string
	units     units.Unit
	convert   string
	precision int
	logLevel  string

	resolvedConfigDir string
	settings          config.Settings
	log               zerolog.Logger
}

// flagAliases maps alternative spellings to canonical flag names.
var flagAliases = map[string]string{
	"core-od":   "coreod",
	"roll-od":   "rollod",
	"thick":     "thickness",
	"unit":      "units",
	"log_level": "log-level",
}

// NewRootCmd creates the top-level "rlcalc" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{
		units: units.DefaultUnit,
		log:   zerolog.Nop(),
	}

	root := newCalcCmd(opts)
	root.SilenceUsage = true
	root.SilenceErrors = true
	root.PersistentPreRunE = opts.load

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/rlcalc)")
	pf.VarP(&opts.units, "units", "u", "working units: mil, in, ft, yd, mm, cm, m")
	pf.StringVar(&opts.convert, "convert", "", "report the length in these units")
	pf.IntVar(&opts.precision, "precision", config.DefaultPrecision, "decimal places in printed lengths")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (default warn)")

	root.SetGlobalNormalizationFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if canonical, ok := flagAliases[name]; ok {
			name = canonical
		}
		return pflag.NormalizedName(name)
	})

	root.AddCommand(newVersionCmd())
	root.AddCommand(newConvertCmd(opts))
	root.AddCommand(newUnitsCmd())
	root.AddCommand(newInteractiveCmd(opts))
	root.AddCommand(newConfigCmd(opts))

	return root
}

// load resolves the configuration directory, reads settings with flags
// taking precedence, and builds the logger.
func (o *rootOptions) load(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	dir, err := paths.ResolveConfigDir(o.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}

	v, err := config.Load(dir)
	if err != nil {
		return sysError(err)
	}
	err = config.BindFlags(v, cmd.Flags(), map[string]string{
		config.KeyUnits:     "units",
		config.KeyConvert:   "convert",
		config.KeyPrecision: "precision",
		config.KeyLogLevel:  "log-level",
	})
	if err != nil {
		return sysError(err)
	}

	settings, err := config.Decode(v)
	if err != nil {
		return userError(fmt.Errorf("config: %w", err))
	}

	log, err := logging.New(cmd.ErrOrStderr(), settings.LogLevel)
	if err != nil {
		return userError(fmt.Errorf("config: %w", err))
	}

	o.resolvedConfigDir = dir
	o.settings = settings
	o.log = log
	o.log.Debug().
		Str("config_dir", dir).
		Str("file", v.ConfigFileUsed()).
		Stringer("units", settings.Units).
		Int("precision", settings.Precision).
		Msg("loaded settings")
	return nil
}

// exitError carries the process exit code for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }

func sysError(err error) error { return &exitError{code: exitSysError, err: err} }

// exitCode maps an error returned by the root command to an exit code.
// Errors raised by cobra itself (bad flags, wrong argument counts) are
// user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// Run executes rlcalc with the given arguments and streams and returns
// the process exit code. Errors are written to stderr; nothing is
// written to stdout on failure.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "rlcalc:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// Execute runs the root command against the process arguments and exits
// with the appropriate code.
func Execute() {
	os.Exit(Run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
