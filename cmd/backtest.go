package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tzuhan/psa/renderer"
)

type backtestCmd struct {
	windowFlags
	capital float64
}

func (*backtestCmd) Name() string     { return "backtest" }
func (*backtestCmd) Synopsis() string { return "runs both strategies and prints the performance" }
func (*backtestCmd) Usage() string {
	return `psa backtest [-capital <amount>] [-from <date>] [-to <date>] [-ffrom <date>] [-fto <date>]

Runs both strategies over the historical window and the out-of-sample
forward window, then prints the performance and risk figures side by side.

Usage Examples:
# Backtest with the default windows and NT$1,000,000.
$ psa backtest

# Backtest a shorter forward window.
$ psa backtest -ffrom 2024-10-01 -fto 2025-03-31

`
}

func (c *backtestCmd) SetFlags(f *flag.FlagSet) {
	c.windowFlags.SetFlags(f)
	f.Float64Var(&c.capital, "capital", 0, "Initial capital in TWD (default 1,000,000)")
}

func (c *backtestCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	comparison, err := Compare(c.windowFlags, c.capital)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.PerformanceMarkdown(comparison))
	printMarkdown(renderer.RiskMarkdown(comparison))
	printMarkdown(renderer.CompareMarkdown(comparison))
	return subcommands.ExitSuccess
}
