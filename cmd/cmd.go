// Package cmd implements the psa subcommands.
package cmd

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/tzuhan/psa"
	"github.com/tzuhan/psa/date"
)

// Commands lists every subcommand for registration and completion.
var Commands = []subcommands.Command{
	&fetchCmd{},
	&backtestCmd{},
	&diagnoseCmd{},
	&reportCmd{},
	&webCmd{},
	&launchCmd{},
	&topicCmd{},
	&assistCmd{},
}

// envOr returns the environment value for key, or def when unset.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

var (
	dataDir   = flag.String("data", envOr("PSA_DATA", "data"), "Path to the price database folder")
	highFile  = flag.String("high", envOr("PSA_HIGH", "great_reward.jsonl"), "Path to the high return strategy file")
	lowFile   = flag.String("low", envOr("PSA_LOW", "low_risk.jsonl"), "Path to the low risk strategy file")
	benchmark = flag.String("benchmark", envOr("PSA_BENCHMARK", "^TWII"), "Benchmark index ticker, empty for none")
)

// LoadStrategies reads both strategy files.
func LoadStrategies() (high, low *psa.Strategy, err error) {
	high, err = psa.LoadStrategy("great_reward", "高報酬策略", *highFile)
	if err != nil {
		return nil, nil, err
	}
	low, err = psa.LoadStrategy("low_risk", "低風險策略", *lowFile)
	if err != nil {
		return nil, nil, err
	}
	return high, low, nil
}

// OpenPrices is the central function to open the price database. A missing
// folder is an empty database, run fetch to fill it.
func OpenPrices() (db *psa.Prices, err error) {
	db, err = psa.DecodePrices(*dataDir)
	if err == nil && len(db.Tickers()) == 0 {
		log.Println("warning, the price database is empty, run 'psa fetch' first")
	}
	return
}

func ClosePrices(db *psa.Prices) error {
	return psa.EncodePrices(*dataDir, db)
}

// windowFlags are the backtest window overrides shared by several commands.
type windowFlags struct {
	from, to   string // historical window
	ffrom, fto string // forward window
}

func (w *windowFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&w.from, "from", "", "Start of the historical window (default "+psa.DefaultHistoricalRange.From.String()+")")
	f.StringVar(&w.to, "to", "", "End of the historical window (default "+psa.DefaultHistoricalRange.To.String()+")")
	f.StringVar(&w.ffrom, "ffrom", "", "Start of the forward window (default "+psa.DefaultForwardRange.From.String()+")")
	f.StringVar(&w.fto, "fto", "", "End of the forward window (default "+psa.DefaultForwardRange.To.String()+")")
}

// parseRange overrides the bounds of def with the given flag values.
func parseRange(def date.Range, from, to string) (date.Range, error) {
	r := def
	if from != "" {
		d, err := date.Parse(from)
		if err != nil {
			return r, fmt.Errorf("invalid date %q: %w", from, err)
		}
		r.From = d
	}
	if to != "" {
		d, err := date.Parse(to)
		if err != nil {
			return r, fmt.Errorf("invalid date %q: %w", to, err)
		}
		r.To = d
	}
	if r.To.Before(r.From) {
		return r, fmt.Errorf("empty window %s", r)
	}
	return r, nil
}

func (w *windowFlags) windows() (hist, fwd date.Range, err error) {
	hist, err = parseRange(psa.DefaultHistoricalRange, w.from, w.to)
	if err != nil {
		return hist, fwd, err
	}
	fwd, err = parseRange(psa.DefaultForwardRange, w.ffrom, w.fto)
	return hist, fwd, err
}

// Compare loads everything and runs the full two-strategy analysis.
func Compare(w windowFlags, capital float64) (*psa.Comparison, error) {
	high, low, err := LoadStrategies()
	if err != nil {
		return nil, fmt.Errorf("could not load strategies: %w", err)
	}
	prices, err := OpenPrices()
	if err != nil {
		return nil, fmt.Errorf("could not load prices: %w", err)
	}

	b := psa.NewBacktest(high, low, prices)
	b.Benchmark = *benchmark
	if capital > 0 {
		b.Capital = psa.M(capital, "TWD")
	}
	if b.Historical, b.Forward, err = w.windows(); err != nil {
		return nil, err
	}
	return b.Run()
}

// printMarkdown renders markdown to the terminal.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
