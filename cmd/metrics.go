package cmd

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/bhig/portfolio"
	"github.com/bhig/portfolio/metrics"
	"github.com/bhig/portfolio/renderer"
	"github.com/google/subcommands"
)

type metricsCmd struct {
	benchmark string
	riskFree  float64
	alpha     float64
	window    int
}

func (*metricsCmd) Name() string { return "metrics" }
func (*metricsCmd) Synopsis() string {
	return "compute performance and risk statistics from the value series"
}
func (*metricsCmd) Usage() string {
	return `metrics [-benchmark <csv>] [-rf <rate>] [-alpha <level>] [-window <days>]

  Computes performance and risk statistics from the daily value series
  recorded by update. With a benchmark value series, also computes relative
  statistics: beta, tracking error and information ratio.
`
}

func (c *metricsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.benchmark, "benchmark", "", "Benchmark value series (CSV) for relative statistics")
	f.Float64Var(&c.riskFree, "rf", 0, "Annualized risk-free rate, e.g. 0.02 for 2%")
	f.Float64Var(&c.alpha, "alpha", 0.95, "Confidence level for value at risk")
	f.IntVar(&c.window, "window", 63, "Window in days for rolling statistics")
}

func (c *metricsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	series, err := portfolio.LoadValueSeries(*seriesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading value series: %v\n", err)
		return subcommands.ExitFailure
	}
	if series.Len() < 2 {
		fmt.Fprintf(os.Stderr, "Not enough data points in %q, run update on at least two days.\n", *seriesFile)
		return subcommands.ExitFailure
	}

	returns := metrics.Returns(series.Values())
	tail := 1 - c.alpha

	rows := []renderer.Metric{
		{Name: "Total Return", Value: fmtPercent(metrics.TotalReturn(returns))},
		{Name: "CAGR", Value: fmtPercent(metrics.CAGR(returns, series.DaysElapsed()))},
		{Name: "Volatility (annualized)", Value: fmtPercent(metrics.RealizedVolatility(returns, true))},
		{Name: "Sharpe Ratio", Value: fmtRatio(metrics.SharpeRatio(returns, c.riskFree))},
		{Name: "Sortino Ratio", Value: fmtRatio(metrics.SortinoRatio(returns, c.riskFree))},
		{Name: "Max Drawdown", Value: fmtPercent(metrics.MaxDrawdown(returns))},
		{Name: fmt.Sprintf("VaR %d%% (parametric)", int(c.alpha*100)), Value: fmtPercent(metrics.ParametricVaR(returns, tail))},
		{Name: fmt.Sprintf("VaR %d%% (historical)", int(c.alpha*100)), Value: fmtPercent(metrics.HistoricalVaR(returns, tail))},
		{Name: fmt.Sprintf("CVaR %d%%", int(c.alpha*100)), Value: fmtPercent(metrics.ConditionalVaR(returns, tail))},
	}

	if rolling := metrics.RollingSharpe(returns, c.riskFree, c.window); len(rolling) > 0 {
		rows = append(rows, renderer.Metric{
			Name:  fmt.Sprintf("Rolling Sharpe (%dd)", c.window),
			Value: fmtRatio(rolling[len(rolling)-1]),
		})
	}

	if c.benchmark != "" {
		bench, err := portfolio.LoadValueSeries(c.benchmark)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading benchmark series: %v\n", err)
			return subcommands.ExitFailure
		}
		rp, rb := series.AlignReturns(bench)
		rows = append(rows,
			renderer.Metric{Name: "Beta", Value: fmtRatio(metrics.Beta(rp, rb))},
			renderer.Metric{Name: "Tracking Error", Value: fmtPercent(metrics.TrackingError(rp, rb))},
			renderer.Metric{Name: "Information Ratio", Value: fmtRatio(metrics.InformationRatio(rp, rb))},
		)
		if rolling := metrics.RollingInformationRatio(rp, rb, c.window); len(rolling) > 0 {
			rows = append(rows, renderer.Metric{
				Name:  fmt.Sprintf("Rolling Info Ratio (%dd)", c.window),
				Value: fmtRatio(rolling[len(rolling)-1]),
			})
		}
	}

	printMarkdown(renderer.Metrics("Portfolio Metrics", rows))

	return subcommands.ExitSuccess
}

func fmtRatio(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}

func fmtPercent(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return portfolio.Fraction(v).SignedString()
}
