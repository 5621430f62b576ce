// The pms command line manages a personal investment portfolio: a journal of
// buy and sell transactions, a daily valuation cycle and performance reports.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/bhig/portfolio/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	cmd.Setup()
	os.Exit(int(commander.Execute(context.Background())))
}
