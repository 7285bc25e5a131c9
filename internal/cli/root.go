package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/numcore/internal/client"
	"github.com/GriffinCanCode/numcore/internal/infrastructure/config"
	"github.com/GriffinCanCode/numcore/internal/infrastructure/logging"
	"github.com/GriffinCanCode/numcore/internal/providers/numeric"
	"github.com/GriffinCanCode/numcore/internal/render"
	"github.com/GriffinCanCode/numcore/internal/service"
	"github.com/GriffinCanCode/numcore/internal/shared/types"
)

// ErrToolFailed marks a command whose tool returned a failed Result.
var ErrToolFailed = errors.New("tool failed")

// executor runs tools either in-process or against a server.
type executor interface {
	Execute(ctx context.Context, toolID string, params map[string]interface{}) (*types.Result, error)
	Services(ctx context.Context) ([]types.Service, error)
	Health(ctx context.Context) (map[string]interface{}, error)
}

type localExecutor struct {
	registry *service.Registry
}

func (l *localExecutor) Execute(ctx context.Context, toolID string, params map[string]interface{}) (*types.Result, error) {
	origin := "cli"
	return l.registry.Execute(ctx, toolID, params, &types.Context{Origin: &origin})
}

func (l *localExecutor) Services(ctx context.Context) ([]types.Service, error) {
	return l.registry.List(nil), nil
}

func (l *localExecutor) Health(ctx context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{
		"status":           "healthy",
		"mode":             "local",
		"service_registry": l.registry.Stats(),
	}, nil
}

// Streams are the command's standard streams.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the process streams.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

type app struct {
	streams Streams
	limits  config.LimitsConfig

	format   string
	server   string
	logLevel string
	dev      bool

	output render.Format
	logger *logging.Logger
	exec   executor
}

// NewRootCommand builds the numcli command tree.
func NewRootCommand(streams Streams) *cobra.Command {
	a := &app{
		streams: streams,
		limits:  config.LoadOrDefault().Limits,
	}

	root := &cobra.Command{
		Use:   "numcli",
		Short: "numcore - descriptive statistics and numeric demos",
		Long: `numcli runs the numcore numeric tools from the command line.

Without --server the tools run in-process. With --server the same
requests are sent to a running numcore server.

Commands:
  stats    - statistics and normalization of numeric text
  fib      - Fibonacci sequence
  primes   - prime sieve
  matrix   - matrix multiplication
  pi       - Monte Carlo estimate of pi
  services - list available tools
  health   - check the server, or the in-process registry`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetIn(streams.In)
	root.SetOut(streams.Out)
	root.SetErr(streams.Err)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.format, "format", "f", string(render.JSON), "Output format: json, yaml or toml")
	flags.StringVar(&a.server, "server", "", "numcore server URL (default: run locally)")
	flags.StringVar(&a.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	flags.BoolVar(&a.dev, "dev", false, "Development logging")

	root.AddCommand(
		a.statsCommand(),
		a.fibCommand(),
		a.primesCommand(),
		a.matrixCommand(),
		a.piCommand(),
		a.servicesCommand(),
		a.healthCommand(),
	)
	return root
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context, args []string, streams Streams) int {
	root := NewRootCommand(streams)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, ErrToolFailed) {
			fmt.Fprintf(streams.Err, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	format, err := render.ParseFormat(a.format)
	if err != nil {
		return err
	}
	a.output = format

	logCfg := logging.Config{
		Level:       a.logLevel,
		Development: a.dev,
		OutputPaths: []string{"stderr"},
	}
	if a.dev && !cmd.Flags().Changed("log-level") {
		logCfg.Level = "debug"
	}
	a.logger, err = logging.New(logCfg)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", a.logLevel, err)
	}

	if a.server != "" {
		a.logger.Debug("using remote server", zap.String("server", a.server))
		a.exec = client.New(a.server, client.WithLogger(a.logger.Named("client").Logger))
		return nil
	}

	registry := service.NewRegistry(service.WithLogger(a.logger.Named("registry").Logger))
	provider := numeric.NewProvider(
		numeric.WithLimits(a.limits),
		numeric.WithLogger(a.logger.Named("numeric").Logger),
	)
	if err := registry.Register(provider); err != nil {
		return err
	}
	a.exec = &localExecutor{registry: registry}
	return nil
}

// run executes one tool and renders its data, or reports its failure.
func (a *app) run(cmd *cobra.Command, toolID string, params map[string]interface{}) error {
	result, err := a.exec.Execute(cmd.Context(), toolID, params)
	if err != nil {
		return err
	}
	if !result.Success {
		a.fail(result)
		return ErrToolFailed
	}
	return render.Encode(a.streams.Out, a.output, result.Data)
}

func (a *app) fail(result *types.Result) {
	if result.Reason != "" {
		fmt.Fprintf(a.streams.Err, "Error: %s (%s)\n", result.Message(), result.Reason)
		return
	}
	fmt.Fprintf(a.streams.Err, "Error: %s\n", result.Message())
}
