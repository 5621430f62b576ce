package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/bhig/portfolio"
	"github.com/bhig/portfolio/renderer"
	"github.com/google/subcommands"
)

// --- Buy Command ---

type buyCmd struct {
	date       string
	ticker     string
	name       string
	assetClass string
	quantity   float64
	price      float64
	currency   string
	exchange   string
	sector     string
	fees       float64
	note       string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "purchase shares to open or add to a position" }
func (*buyCmd) Usage() string {
	return `buy -t <ticker> -q <quantity> -p <price> [-d <date>] [-fees <fees>] [-m <note>]

  Records a purchase in the journal. The total cost, price times quantity
  plus fees, is debited from the cash balance on the next update.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", portfolio.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.ticker, "t", "", "Asset ticker")
	f.StringVar(&c.name, "n", "", "Asset name (defaults to the ticker)")
	f.StringVar(&c.assetClass, "class", "Equity", "Asset class (Equity, Bond, ETF, ...)")
	f.Float64Var(&c.quantity, "q", 0, "Number of shares")
	f.Float64Var(&c.price, "p", 0, "Price per share")
	f.StringVar(&c.currency, "c", "USD", "Transaction currency (ISO 4217 code)")
	f.StringVar(&c.exchange, "e", "", "Exchange the asset trades on")
	f.StringVar(&c.sector, "sector", "", "Sector the asset belongs to")
	f.Float64Var(&c.fees, "fees", 0, "Transaction fees")
	f.StringVar(&c.note, "m", "", "An optional rationale or note for the transaction")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.quantity <= 0 || c.price <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := portfolio.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	name := c.name
	if name == "" {
		name = c.ticker
	}

	tx, err := portfolio.NewTransaction(c.ticker, name, c.assetClass,
		portfolio.Q(c.quantity), portfolio.M(c.price, c.currency), day,
		c.exchange, c.sector, portfolio.M(c.fees, c.currency), c.note)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return appendTransaction(tx)
}

// --- Sell Command ---

type sellCmd struct {
	date     string
	ticker   string
	quantity float64
	price    float64
	currency string
	fees     float64
	note     string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares to trim or close a position" }
func (*sellCmd) Usage() string {
	return `sell -t <ticker> -q <quantity> -p <price> [-d <date>] [-fees <fees>] [-m <note>]

  Records a sale in the journal. The proceeds, price times quantity minus
  fees, are credited to the cash balance on the next update.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", portfolio.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.ticker, "t", "", "Asset ticker")
	f.Float64Var(&c.quantity, "q", 0, "Number of shares to sell")
	f.Float64Var(&c.price, "p", 0, "Price per share")
	f.StringVar(&c.currency, "c", "USD", "Transaction currency (ISO 4217 code)")
	f.Float64Var(&c.fees, "fees", 0, "Transaction fees")
	f.StringVar(&c.note, "m", "", "An optional rationale or note for the transaction")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.quantity <= 0 || c.price <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := portfolio.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	// A sale is a buy with a negative quantity; identity fields are taken
	// from the position opened by earlier purchases.
	tx, err := portfolio.NewTransaction(c.ticker, c.ticker, "",
		portfolio.Q(-c.quantity), portfolio.M(c.price, c.currency), day,
		"", "", portfolio.M(c.fees, c.currency), c.note)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return appendTransaction(tx)
}

// --- Tx Command ---

type txCmd struct {
	ticker string
	head   int
	tail   int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the transactions recorded in the journal" }
func (*txCmd) Usage() string {
	return `tx [-t <ticker>] [-head <n>] [-tail <n>]

  Lists transactions from the journal, with options for filtering and
  limiting the output.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Show only transactions for this ticker.")
	f.IntVar(&c.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&c.tail, "tail", 0, "Show only the last N transactions.")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.head > 0 && c.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}

	journal := portfolio.JournalFile(*journalFile)
	txs, err := journal.Transactions()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.ticker != "" {
		kept := txs[:0]
		for _, tx := range txs {
			if tx.Ticker == c.ticker {
				kept = append(kept, tx)
			}
		}
		txs = kept
	}
	if c.head > 0 && len(txs) > c.head {
		txs = txs[:c.head]
	}
	if c.tail > 0 && len(txs) > c.tail {
		txs = txs[len(txs)-c.tail:]
	}

	printMarkdown(renderer.Transactions(txs))

	return subcommands.ExitSuccess
}
