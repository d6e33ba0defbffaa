// Package commands implements the distinct CLI subcommands.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/Sumatoshi-tech/distinct/internal/config"
	"github.com/Sumatoshi-tech/distinct/internal/observability"
	"github.com/Sumatoshi-tech/distinct/internal/simulate"
)

// tracerName identifies spans created by the CLI.
const tracerName = "distinct"

// boundSigmas is the verdict threshold in multiples of the canonical
// error bound.
const boundSigmas = 3.0

// percent scales a ratio for display.
const percent = 100

// SimulateCommand holds the configuration for the simulate command.
type SimulateCommand struct {
	hash       string
	iterations int
	seed       uint32
	domain     uint32
	precision  uint8
}

// NewSimulateCommand creates the simulate command.
func NewSimulateCommand() *cobra.Command {
	sc := &SimulateCommand{}

	cobraCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Estimate the distinct count of a pseudo-random stream",
		Long: `Simulate feeds a deterministic LCG-generated stream of bounded-range
integers into a HyperLogLog sketch while tracking exact ground truth in a
side array, then prints the expected and estimated distinct counts.`,
		RunE: sc.run,
	}

	cobraCmd.Flags().Uint8VarP(&sc.precision, "precision", "p", 0, "sketch precision in [4,16] (0 = from config)")
	cobraCmd.Flags().StringVar(&sc.hash, "hash", "", "hash function (string, integer, xxhash, murmur3, fnv-mix)")
	cobraCmd.Flags().Uint32Var(&sc.seed, "seed", 0, "stream seed (0 = from config)")
	cobraCmd.Flags().IntVarP(&sc.iterations, "iterations", "n", 0, "stream length (0 = from config)")
	cobraCmd.Flags().Uint32Var(&sc.domain, "domain", 0, "value domain size (0 = from config)")

	return cobraCmd
}

func (sc *SimulateCommand) run(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadRunContext(cmd)
	if err != nil {
		return err
	}

	sc.applyOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, span := otel.Tracer(tracerName).Start(cmd.Context(), "simulate")
	defer span.End()

	params := cfg.SimulationParams()

	logger.InfoContext(ctx, "starting simulation",
		slog.Int("iterations", params.Iterations),
		slog.Uint64("domain", uint64(params.Domain)),
		slog.Int("precision", int(params.Precision)),
		slog.String("hash", params.HashName),
	)

	result, err := simulate.Run(params)
	if err != nil {
		return fmt.Errorf("simulate: %w", err)
	}

	logger.InfoContext(ctx, "simulation complete",
		slog.Uint64("expected", result.Expected),
		slog.Uint64("estimated", result.Estimated),
		slog.Float64("relative_error", result.RelativeError),
	)

	renderResult(cmd.OutOrStdout(), result)

	return nil
}

// applyOverrides copies explicitly set flags over the loaded configuration.
func (sc *SimulateCommand) applyOverrides(cfg *config.Config) {
	if sc.precision != 0 {
		cfg.Simulation.Precision = sc.precision
	}

	if sc.hash != "" {
		cfg.Simulation.Hash = sc.hash
	}

	if sc.seed != 0 {
		cfg.Simulation.Seed = sc.seed
	}

	if sc.iterations != 0 {
		cfg.Simulation.Iterations = sc.iterations
	}

	if sc.domain != 0 {
		cfg.Simulation.Domain = sc.domain
	}
}

// renderResult prints the expected-versus-estimated table and a verdict.
func renderResult(w io.Writer, result simulate.Result) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Metric", "Value"})
	tw.AppendRows([]table.Row{
		{"Expected distinct", humanize.Comma(int64(result.Expected))},
		{"Estimated distinct", humanize.Comma(int64(result.Estimated))},
		{"Relative error", fmt.Sprintf("%.2f%%", result.RelativeError*percent)},
		{fmt.Sprintf("Bound (%gx 1.04/sqrt(m))", boundSigmas), fmt.Sprintf("%.2f%%", boundSigmas*result.ErrorBound*percent)},
	})
	tw.Render()

	if result.Within(boundSigmas) {
		fmt.Fprintln(w, color.GreenString("estimate within bound"))
	} else {
		fmt.Fprintln(w, color.RedString("estimate OUTSIDE bound"))
	}
}

// loadRunContext loads configuration and builds the logger shared by the
// subcommands, honoring the persistent --config/--verbose/--quiet flags.
func loadRunContext(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, fmt.Errorf("read config flag: %w", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, nil, fmt.Errorf("read verbose flag: %w", err)
	}

	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return nil, nil, fmt.Errorf("read quiet flag: %w", err)
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}

	if quiet {
		level = "error"
	}

	logger := observability.NewLogger(os.Stderr, level, cfg.Logging.Format)

	return cfg, logger, nil
}
