package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/bhig/portfolio"
	"github.com/bhig/portfolio/quote"
	"github.com/bhig/portfolio/renderer"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

type updateCmd struct {
	cash     float64
	currency string
	date     string
}

func (*updateCmd) Name() string { return "update" }
func (*updateCmd) Synopsis() string {
	return "rebuild the portfolio from the journal, fetch prices and record today's value"
}
func (*updateCmd) Usage() string {
	return `update [-cash <amount>] [-d <date>]

  Runs the daily cycle: replays the journal into a fresh portfolio, fetches
  current market prices, reports the valuation, appends the total value to
  the value series and saves the portfolio state.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.cash, "cash", 10000, "Initial cash balance before the first transaction")
	f.StringVar(&c.currency, "c", "USD", "Base currency of the portfolio")
	f.StringVar(&c.date, "d", portfolio.Today().String(), "Valuation date (YYYY-MM-DD)")
}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := portfolio.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	p := portfolio.NewPortfolio(portfolio.M(c.cash, c.currency))

	journal := portfolio.JournalFile(*journalFile)
	txs, err := journal.Transactions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading journal: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, tx := range txs {
		if err := p.Apply(tx); err != nil {
			fmt.Fprintf(os.Stderr, "Error applying %s: %v\n", tx, err)
			return subcommands.ExitFailure
		}
	}
	log.Info().Int("transactions", len(txs)).Msg("journal replayed")

	prices, err := quote.NewClient().Prices(ctx, p.Tickers())
	if err != nil {
		// partial price maps are still usable, unpriced tickers value at zero
		log.Warn().Err(err).Msg("some quotes could not be fetched")
	}

	printMarkdown(renderer.Summary(p, prices, day))

	series, err := portfolio.LoadValueSeries(*seriesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading value series: %v\n", err)
		return subcommands.ExitFailure
	}
	total := p.TotalValue(prices)
	series.Append(day, total.InexactFloat64())
	if err := portfolio.SaveValueSeries(*seriesFile, series); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing value series: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := SavePortfolio(p); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	log.Info().Stringer("date", day).Stringer("total", total).Msg("portfolio updated")

	return subcommands.ExitSuccess
}
