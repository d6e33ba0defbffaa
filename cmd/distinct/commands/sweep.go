package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/Sumatoshi-tech/distinct/internal/simulate"
)

// defaultSweepPoints is the cardinality ladder the sweep walks by default.
var defaultSweepPoints = []int{100, 1_000, 10_000, 100_000}

// SweepCommand holds the configuration for the sweep command.
type SweepCommand struct {
	out    string
	points []int
}

// NewSweepCommand creates the sweep command.
func NewSweepCommand() *cobra.Command {
	sw := &SweepCommand{}

	cobraCmd := &cobra.Command{
		Use:   "sweep",
		Short: "Chart estimation error across cardinalities",
		Long: `Sweep runs the simulation at a ladder of stream lengths and renders a
bar chart of the relative error at each point, next to the canonical
error bound, as a standalone HTML file.`,
		RunE: sw.run,
	}

	cobraCmd.Flags().IntSliceVar(&sw.points, "points", defaultSweepPoints, "stream lengths to sweep")
	cobraCmd.Flags().StringVarP(&sw.out, "out", "o", "", "output HTML path (default from config)")

	return cobraCmd
}

func (sw *SweepCommand) run(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadRunContext(cmd)
	if err != nil {
		return err
	}

	if sw.out == "" {
		sw.out = cfg.Simulation.ChartPath
	}

	ctx, span := otel.Tracer(tracerName).Start(cmd.Context(), "sweep")
	defer span.End()

	results, err := simulate.Sweep(cfg.SimulationParams(), sw.points)
	if err != nil {
		return fmt.Errorf("sweep: %w", err)
	}

	for _, point := range results {
		logger.InfoContext(ctx, "sweep point",
			slog.Int("iterations", point.Iterations),
			slog.Uint64("expected", point.Result.Expected),
			slog.Uint64("estimated", point.Result.Estimated),
			slog.Float64("relative_error", point.Result.RelativeError),
		)
	}

	if err := sw.renderChart(results, cfg.Simulation.Precision); err != nil {
		return err
	}

	logger.InfoContext(ctx, "chart written", slog.String("path", sw.out))

	return nil
}

// renderChart writes the relative-error bar chart as a standalone HTML page.
func (sw *SweepCommand) renderChart(points []simulate.SweepPoint, precision uint8) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("HyperLogLog relative error, precision %d", precision),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "stream length"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "relative error (%)"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "5%", Top: "5%"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	labels := make([]string, 0, len(points))
	errorBars := make([]opts.BarData, 0, len(points))
	boundBars := make([]opts.BarData, 0, len(points))

	for _, point := range points {
		labels = append(labels, fmt.Sprintf("%d", point.Iterations))
		errorBars = append(errorBars, opts.BarData{Value: point.Result.RelativeError * percent})
		boundBars = append(boundBars, opts.BarData{Value: point.Result.ErrorBound * percent})
	}

	bar.SetXAxis(labels).
		AddSeries("relative error", errorBars).
		AddSeries("1.04/sqrt(m)", boundBars)

	page := components.NewPage()
	page.AddCharts(bar)

	f, err := os.Create(sw.out)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}

	return nil
}
