package cli

import (
	"fmt"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/numcore/internal/ingest"
	"github.com/GriffinCanCode/numcore/internal/render"
)

func (a *app) statsCommand() *cobra.Command {
	var (
		line  bool
		globs []string
	)

	cmd := &cobra.Command{
		Use:   "stats [files|-]",
		Short: "Compute statistics and normalized values of numeric text",
		Long: `Parses comma and newline separated numbers and prints their
statistics together with the min-max normalized values. Tokens that are
not numbers are skipped. Files may be gzip or zstd compressed and in any
common text encoding. With no files, or "-", standard input is read.`,
		Example: `  numcli stats data.csv
  numcli stats --glob 'exports/**/*.csv.gz' -f yaml
  echo "1, 2, 3" | numcli stats --line`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(globs) > 0 {
				matched, err := ingest.Expand(globs)
				if err != nil {
					return err
				}
				if len(matched) == 0 {
					return fmt.Errorf("no files match %v", globs)
				}
				paths = append(paths, matched...)
			}
			if len(paths) == 0 {
				paths = []string{"-"}
			}

			toolID, key := "numeric.process_csv", "text"
			if line {
				toolID, key = "numeric.process_simple", "input"
			}

			if len(paths) == 1 {
				doc, err := a.read(paths[0])
				if err != nil {
					return err
				}
				return a.run(cmd, toolID, map[string]interface{}{key: doc.Text})
			}
			return a.statsMany(cmd, toolID, key, paths)
		},
	}

	cmd.Flags().BoolVar(&line, "line", false, "Treat the input as a single comma separated line")
	cmd.Flags().StringArrayVar(&globs, "glob", nil, "Doublestar glob of input files (repeatable)")
	return cmd
}

// statsMany processes each file on its own. Failures are reported and the
// remaining files still run.
func (a *app) statsMany(cmd *cobra.Command, toolID, key string, paths []string) error {
	reports := make([]map[string]interface{}, 0, len(paths))
	failed := false

	for _, path := range paths {
		doc, err := a.read(path)
		if err != nil {
			fmt.Fprintf(a.streams.Err, "Error: %s: %v\n", path, err)
			failed = true
			continue
		}
		result, err := a.exec.Execute(cmd.Context(), toolID, map[string]interface{}{key: doc.Text})
		if err != nil {
			return err
		}
		if !result.Success {
			fmt.Fprintf(a.streams.Err, "Error: %s: %s\n", path, result.Message())
			failed = true
			continue
		}
		report := map[string]interface{}{"source": path}
		for k, v := range result.Data {
			report[k] = v
		}
		reports = append(reports, report)
	}

	if len(reports) > 0 {
		out := interface{}(reports)
		if a.output == render.TOML {
			out = map[string]interface{}{"files": reports}
		}
		if err := render.Encode(a.streams.Out, a.output, out); err != nil {
			return err
		}
	}
	if failed {
		return ErrToolFailed
	}
	return nil
}

func (a *app) read(path string) (*ingest.Document, error) {
	opts := ingest.Options{MaxBytes: a.limits.MaxInputBytes}
	if path == "-" {
		return ingest.Read(a.streams.In, "stdin", opts)
	}
	return ingest.ReadFile(path, opts)
}

func (a *app) fibCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fib N",
		Short: "Print the first N Fibonacci numbers",
		Long:  "Prints the first N Fibonacci numbers starting at 0, 1. Terms wrap modulo 2^64.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseCount(args[0], "N")
			if err != nil {
				return err
			}
			return a.run(cmd, "numeric.fibonacci", map[string]interface{}{"count": n})
		},
	}
}

func (a *app) primesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "primes LIMIT",
		Short: "Print all primes up to LIMIT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, err := parseCount(args[0], "LIMIT")
			if err != nil {
				return err
			}
			return a.run(cmd, "numeric.primes", map[string]interface{}{"limit": limit})
		},
	}
}

func (a *app) matrixCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Matrix multiplication",
	}

	demo := &cobra.Command{
		Use:   "demo",
		Short: "Multiply the built-in 2x3 and 3x2 example matrices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "numeric.matrix_demo", nil)
		},
	}

	var aJSON, bJSON string
	multiply := &cobra.Command{
		Use:     "multiply",
		Short:   "Multiply two matrices given as JSON arrays of rows",
		Example: `  numcli matrix multiply --a '[[1,2],[3,4]]' --b '[[5],[6]]'`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ma, err := parseMatrix(aJSON, "--a")
			if err != nil {
				return err
			}
			mb, err := parseMatrix(bJSON, "--b")
			if err != nil {
				return err
			}
			return a.run(cmd, "numeric.matrix_multiply", map[string]interface{}{"a": ma, "b": mb})
		},
	}
	multiply.Flags().StringVar(&aJSON, "a", "", "Left operand, e.g. [[1,2],[3,4]]")
	multiply.Flags().StringVar(&bJSON, "b", "", "Right operand")
	_ = multiply.MarkFlagRequired("a")
	_ = multiply.MarkFlagRequired("b")

	cmd.AddCommand(demo, multiply)
	return cmd
}

func (a *app) piCommand() *cobra.Command {
	var seed uint64

	cmd := &cobra.Command{
		Use:   "pi N",
		Short: "Estimate pi from N random points",
		Long:  "Estimates pi by sampling N points in the unit square. --seed makes the estimate reproducible.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseCount(args[0], "N")
			if err != nil {
				return err
			}
			params := map[string]interface{}{"iterations": n}
			if cmd.Flags().Changed("seed") {
				params["seed"] = seed
			}
			return a.run(cmd, "numeric.monte_carlo_pi", params)
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed")
	return cmd
}

func (a *app) servicesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "List the available tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := a.exec.Services(cmd.Context())
			if err != nil {
				return err
			}
			return render.Encode(a.streams.Out, a.output, map[string]interface{}{"services": services})
		},
	}
}

func (a *app) healthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Report server health",
		Long: `Reports the health document of the --server target. Without
--server the in-process registry is reported instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			health, err := a.exec.Health(cmd.Context())
			if err != nil {
				return err
			}
			return render.Encode(a.streams.Out, a.output, health)
		},
	}
}

func parseCount(s, name string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer between 0 and 4294967295: %q", name, s)
	}
	return uint32(n), nil
}

func parseMatrix(s, flag string) ([][]float64, error) {
	var m [][]float64
	if err := sonic.UnmarshalString(s, &m); err != nil {
		return nil, fmt.Errorf("%s must be a JSON array of rows: %w", flag, err)
	}
	return m, nil
}
