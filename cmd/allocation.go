package cmd

import (
	"context"
	"flag"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/bhig/portfolio"
	"github.com/bhig/portfolio/quote"
	"github.com/bhig/portfolio/renderer"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

type allocationCmd struct {
	by string
}

func (*allocationCmd) Name() string { return "allocation" }
func (*allocationCmd) Synopsis() string {
	return "display the portfolio allocation by ticker, sector, asset class, exchange or currency"
}
func (*allocationCmd) Usage() string {
	return `allocation [-by <grouping>]

  Displays the market value weight of each group as a fraction of the total
  portfolio value, securities plus cash. Cash keeps the remaining weight.
`
}

func (c *allocationCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.by, "by", "ticker", "Grouping (ticker, sector, asset-class, exchange, currency)")
}

func (c *allocationCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	grouping, err := portfolio.ParseGrouping(c.by)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	p, err := LoadPortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	prices, err := quote.NewClient().Prices(ctx, p.Tickers())
	if err != nil {
		log.Warn().Err(err).Msg("some quotes could not be fetched")
	}

	weights := p.AllocationBy(grouping, prices)
	keys := slices.Sorted(maps.Keys(weights))
	printMarkdown(renderer.Allocation(grouping, weights, keys))

	return subcommands.ExitSuccess
}
