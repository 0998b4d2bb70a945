package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kbukum/systolic/config"
	"github.com/kbukum/systolic/errors"
	"github.com/kbukum/systolic/logger"
	"github.com/kbukum/systolic/version"
)

// Exit codes.
const (
	ExitOK     = 0
	ExitError  = 1
	ExitConfig = 2
)

type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// NewRootCommand builds the command tree reading from in and writing
// results to out and diagnostics to errOut.
func NewRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   version.Name,
		Short: "Evaluate polynomials on a systolic pipeline",
		Long: `Evaluate a polynomial for each input by pushing the inputs through a chain
of arithmetic cells, one cell per Horner stage.

Examples:
  systolic --with-x 1,2,3 --coefs 2,-6,2,-1
  systolic --with-x 3 --equation "x^2 - 4x + 7" --verbose
  seq 1 10 | systolic --stream --chain chain.yaml`,
		Args:          cobra.NoArgs,
		RunE:          a.runEval,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.String("config", "", "Path to a YAML config file")
	pf.String("env-file", "", "Path to a .env file")
	pf.String("log-level", "", "Log level (debug, info, warn, error)")
	pf.Bool("no-color", false, "Disable colored output")
	pf.Bool("telemetry", false, "Export traces and metrics over OTLP")

	addEvalFlags(root.Flags())

	root.AddCommand(
		newEvalCommand(a),
		newServeCommand(a),
		newVersionCommand(a),
		newAboutCommand(a),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, NewRootCommand(os.Stdin, os.Stdout, os.Stderr), os.Args[1:])
}

func run(ctx context.Context, root *cobra.Command, args []string) int {
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		return exitCode(err)
	}
	return ExitOK
}

func exitCode(err error) int {
	if appErr, ok := errors.AsAppError(err); ok && errors.IsConfigurationCode(appErr.Code) {
		return ExitConfig
	}
	return ExitError
}

func addEvalFlags(fs *pflag.FlagSet) {
	fs.StringP("with-x", "x", "", "Comma separated input values")
	fs.StringP("coefs", "c", "", "Comma separated coefficients, highest degree first")
	fs.StringP("equation", "e", "", `Polynomial in X, e.g. "2*X^3-6*X^2+2*X-1"`)
	fs.String("chain", "", "Path to a YAML chain spec")
	fs.BoolP("verbose", "v", false, "Print the chain and every step (not with --stream)")
	fs.StringP("format", "f", config.FormatText, "Output format: text, json, yaml")
	fs.IntP("parallel", "p", 0, "Compute up to n cells of a step concurrently")
	fs.Bool("stream", false, "Read inputs from stdin, one per line, and print outputs as they leave the chain")
}

// load resolves the configuration for cmd and installs the global logger.
func (a *app) load(cmd *cobra.Command) (*config.Config, *logger.Logger, error) {
	flags := cmd.Flags()
	opts := []config.LoaderOption{config.WithFlags(flags)}
	if path, _ := flags.GetString("config"); path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}
	if path, _ := flags.GetString("env-file"); path != "" {
		opts = append(opts, config.WithEnvFile(path))
	}

	var cfg config.Config
	if err := config.LoadConfig(version.Name, &cfg, opts...); err != nil {
		return nil, nil, errors.InvalidInput("config", err.Error()).WithCause(err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	var log *logger.Logger
	if cfg.Logging.Output == "stderr" {
		log = logger.NewWithWriter(&cfg.Logging, cfg.Name, a.errOut)
	} else {
		log = logger.New(&cfg.Logging, cfg.Name)
	}
	logger.SetGlobalLogger(log)
	return &cfg, log, nil
}
