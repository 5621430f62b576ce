// Package cmd implements the CLI application to manage a portfolio.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/bhig/portfolio"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Register the subcommands.
// A main package will call Register() to wire the subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&updateCmd{}, "portfolio")
	c.Register(&summaryCmd{}, "portfolio")
	c.Register(&allocationCmd{}, "portfolio")
	c.Register(&metricsCmd{}, "portfolio")

	c.Register(&buyCmd{}, "transactions")
	c.Register(&sellCmd{}, "transactions")
	c.Register(&txCmd{}, "transactions")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var portfolioFile = flag.String("portfolio-file", "portfolio.json", "Path to the portfolio state file (JSON)")
var journalFile = flag.String("journal-file", "journal.jsonl", "Path to the transaction journal (JSONL format)")
var seriesFile = flag.String("series-file", "portfolio_values.csv", "Path to the daily value series (CSV)")
var verbose = flag.Bool("v", false, "Enable debug logging")

// Setup configures console logging. Call it once, after flag parsing.
func Setup() {
	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// LoadPortfolio reads the portfolio state from the app state file.
func LoadPortfolio() (*portfolio.Portfolio, error) {
	return portfolio.FileStore{Path: *portfolioFile}.Load()
}

// SavePortfolio writes the portfolio state into the app state file.
func SavePortfolio(p *portfolio.Portfolio) error {
	return portfolio.FileStore{Path: *portfolioFile}.Save(p)
}

// appendTransaction appends a single transaction to the app journal file.
func appendTransaction(tx portfolio.Transaction) subcommands.ExitStatus {
	journal := portfolio.JournalFile(*journalFile)
	if err := journal.Append(tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to journal %q: %v\n", *journalFile, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Successfully appended transaction to %s\n", *journalFile)
	return subcommands.ExitSuccess
}
