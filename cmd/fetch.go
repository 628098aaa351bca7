package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tzuhan/psa"
	"github.com/tzuhan/psa/quote"
)

type fetchCmd struct {
	windowFlags
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "downloads close prices for both strategies" }
func (*fetchCmd) Usage() string {
	return `psa fetch [-from <date>] [-fto <date>]

Downloads daily close prices from Yahoo Finance for every ticker of both
strategy files, plus the benchmark index, covering the historical and
forward windows. New prices are merged into the price database, so fetch
can be re-run at any time.

Usage Examples:
# Fetch everything with the default windows.
$ psa fetch

`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) { c.windowFlags.SetFlags(f) }

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	high, low, err := LoadStrategies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load strategies: %v\n", err)
		return subcommands.ExitFailure
	}
	hist, fwd, err := c.windows()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	tickers := append(high.Tickers(), low.Tickers()...)
	if *benchmark != "" {
		tickers = append(tickers, *benchmark)
	}

	// one download covering both windows
	span := hist
	span.To = fwd.To
	fetched, failed := quote.NewClient().Fetch(tickers, span)

	for ticker, err := range failed {
		fmt.Fprintf(os.Stderr, "Warning: could not fetch %q: %v\n", ticker, err)
	}
	if len(failed) == len(tickers) {
		fmt.Fprintln(os.Stderr, "Error: nothing could be fetched.")
		return subcommands.ExitFailure
	}

	db, err := OpenPrices()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load the price database: %v\n", err)
		return subcommands.ExitFailure
	}
	points := merge(db, fetched)
	if err := ClosePrices(db); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not save the price database: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("✅ Fetched %d tickers, %d new or updated prices.\n", len(tickers)-len(failed), points)
	return subcommands.ExitSuccess
}

// merge copies every fetched price into db and counts the points.
func merge(db, fetched *psa.Prices) (points int) {
	for _, ticker := range fetched.Tickers() {
		for on, close := range fetched.Close(ticker).Values() {
			db.Append(ticker, on, close)
			points++
		}
	}
	return points
}
