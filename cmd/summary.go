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

type summaryCmd struct{}

func (*summaryCmd) Name() string { return "summary" }
func (*summaryCmd) Synopsis() string {
	return "display holdings, valuation and profit and loss"
}
func (*summaryCmd) Usage() string {
	return `summary

  Displays the saved portfolio state valued at current market prices:
  holdings with average cost, unrealized and realized P&L, cash and totals.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := LoadPortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	prices, err := quote.NewClient().Prices(ctx, p.Tickers())
	if err != nil {
		log.Warn().Err(err).Msg("some quotes could not be fetched")
	}

	printMarkdown(renderer.Summary(p, prices, portfolio.Today()))

	return subcommands.ExitSuccess
}
