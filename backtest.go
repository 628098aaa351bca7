package psa

import (
	"fmt"

	"github.com/tzuhan/psa/date"
)

// Backtest holds everything needed to compare the two strategies.
type Backtest struct {
	High, Low  *Strategy
	Prices     *Prices
	Benchmark  string     // optional benchmark ticker, e.g. "^TWII"
	Historical date.Range // in-sample window
	Forward    date.Range // out-of-sample window, after the knowledge cutoff
	Capital    Money      // starting capital for the valuation lines
}

// NewBacktest returns a backtest over the default windows with 1M TWD capital.
func NewBacktest(high, low *Strategy, prices *Prices) *Backtest {
	return &Backtest{
		High:       high,
		Low:        low,
		Prices:     prices,
		Historical: DefaultHistoricalRange,
		Forward:    DefaultForwardRange,
		Capital:    M(1_000_000, "TWD"),
	}
}

// Result holds the backtest outcome for a single strategy.
type Result struct {
	Strategy   *Strategy
	Missing    []string // tickers dropped for lack of price data
	Normalized bool     // true when the file weights did not sum to 1

	Returns    *Series // daily portfolio returns over the full span
	Cumulative *Series // growth of 1 unit over the full span
	Drawdown   *Series
	RollingVol *Series // RollingWindowShort-day annualized volatility

	Historical Metrics
	Forward    Metrics
	FinalValue Money // capital valued at the end of the forward window
}

// Comparison is the complete two-strategy analysis: the payload of every
// report, page and AI prompt in the tool.
type Comparison struct {
	Historical date.Range
	Forward    date.Range
	Capital    Money

	High Result
	Low  Result

	// BenchmarkReturns is nil when no benchmark ticker was configured
	// or its prices are absent.
	BenchmarkReturns *Series
	BenchmarkForward Metrics

	Correlation   float64 // correlation of the two strategies' daily returns
	HighStability float64
	LowStability  float64

	Problems        []Problem
	Recommendations []Recommendation

	// Recommended is the label of the strategy with the better composite
	// score over the forward window, with the scoring detail.
	Recommended         string
	HighScore, LowScore float64
}

// Run executes the backtest and assembles the comparison report.
func (b *Backtest) Run() (*Comparison, error) {
	span := date.NewRange(b.Historical.From, b.Forward.To)

	high, err := b.run(b.High, span)
	if err != nil {
		return nil, fmt.Errorf("backtesting %q: %w", b.High.Name(), err)
	}
	low, err := b.run(b.Low, span)
	if err != nil {
		return nil, fmt.Errorf("backtesting %q: %w", b.Low.Name(), err)
	}

	c := &Comparison{
		Historical: b.Historical,
		Forward:    b.Forward,
		Capital:    b.Capital,
		High:       high,
		Low:        low,

		Correlation:   Correlation(high.Returns, low.Returns),
		HighStability: Stability(high.Historical, high.Forward),
		LowStability:  Stability(low.Historical, low.Forward),

		HighScore: high.Forward.Score(),
		LowScore:  low.Forward.Score(),
	}

	if b.Benchmark != "" && b.Prices.Has(b.Benchmark) {
		returns := DailyReturns(b.Prices.Close(b.Benchmark).Truncate(span))
		c.BenchmarkReturns = returns
		c.BenchmarkForward = ComputeMetrics(returns.Truncate(b.Forward))
	}

	c.Problems = Diagnose(high.Historical, low.Historical, high.Forward, low.Forward)
	c.Recommendations = Recommend(c.Problems, c.HighStability, c.LowStability)

	if c.HighScore >= c.LowScore {
		c.Recommended = b.High.Label()
	} else {
		c.Recommended = b.Low.Label()
	}
	return c, nil
}

// run backtests a single strategy over the full span.
func (b *Backtest) run(s *Strategy, span date.Range) (Result, error) {
	weights, normalized := s.Weights()

	perTicker := make(map[string]*Series, len(weights))
	for ticker := range weights {
		if close := b.Prices.Close(ticker); close != nil {
			perTicker[ticker] = DailyReturns(close.Truncate(span))
		}
	}

	returns, missing, err := WeightedReturns(perTicker, weights)
	if err != nil {
		return Result{}, err
	}

	forward := ComputeMetrics(returns.Truncate(b.Forward))
	return Result{
		Strategy:   s,
		Missing:    missing,
		Normalized: normalized,
		Returns:    returns,
		Cumulative: Cumulative(returns),
		Drawdown:   Drawdown(returns),
		RollingVol: RollingVolatility(returns, RollingWindowShort),
		Historical: ComputeMetrics(returns.Truncate(b.Historical)),
		Forward:    forward,
		FinalValue: b.Capital.MulFloat(1 + forward.TotalReturn),
	}, nil
}
