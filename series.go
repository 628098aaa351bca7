package psa

import (
	"fmt"
	"math"
	"sort"

	"github.com/tzuhan/psa/date"
)

// Series is a daily series of float values: prices, returns or index levels.
type Series = date.History[float64]

// DailyReturns computes the day-over-day percentage change of a price series.
// The first day has no return and is dropped, like a pct_change().dropna().
func DailyReturns(prices *Series) *Series {
	out := &Series{}
	prev := math.NaN()
	for on, p := range prices.Values() {
		if !math.IsNaN(prev) && prev != 0 {
			out.Append(on, p/prev-1)
		}
		prev = p
	}
	return out
}

// WeightedReturns combines per-ticker return series into a single portfolio
// return series using the given weights.
//
// Tickers without a series are dropped and the remaining weights are
// re-normalized, so a partially available portfolio is still comparable.
// The dropped tickers are returned for the caller to report.
// A day is included only when every remaining ticker has a return on it.
func WeightedReturns(returns map[string]*Series, weights map[string]float64) (*Series, []string, error) {
	available := make(map[string]float64)
	var missing []string
	for ticker, w := range weights {
		if r, ok := returns[ticker]; ok && r.Len() > 0 {
			available[ticker] = w
		} else {
			missing = append(missing, ticker)
		}
	}
	sort.Strings(missing)

	var total, lost float64
	for _, w := range weights {
		total += w
	}
	for _, t := range missing {
		lost += weights[t]
	}
	if total == 0 || len(available) == 0 {
		return nil, missing, fmt.Errorf("no price data for any of the %d weighted tickers", len(weights))
	}
	if lost/total > MaxMissingRatio {
		return nil, missing, fmt.Errorf("%.0f%% of the portfolio weight has no price data (max %.0f%%)",
			100*lost/total, 100*MaxMissingRatio)
	}

	// re-normalize the surviving weights
	var sum float64
	for _, w := range available {
		sum += w
	}
	for t := range available {
		available[t] /= sum
	}

	series := make([]*Series, 0, len(available))
	for t := range available {
		series = append(series, returns[t])
	}

	out := &Series{}
	for on := range date.Iterate(series...) {
		var value float64
		complete := true
		for t, w := range available {
			r, ok := returns[t].Get(on)
			if !ok {
				complete = false
				break
			}
			value += w * r
		}
		if complete {
			out.Append(on, value)
		}
	}
	return out, missing, nil
}

// Cumulative computes the compound growth of 1 unit invested at the start:
// (1+r1)*(1+r2)*...
func Cumulative(returns *Series) *Series {
	out := &Series{}
	acc := 1.0
	for on, r := range returns.Values() {
		acc *= 1 + r
		out.Append(on, acc)
	}
	return out
}

// Drawdown computes the running drawdown of a return series: the relative
// distance of the cumulative value from its running maximum, always <= 0.
func Drawdown(returns *Series) *Series {
	out := &Series{}
	acc, peak := 1.0, 1.0
	for on, r := range returns.Values() {
		acc *= 1 + r
		if acc > peak {
			peak = acc
		}
		out.Append(on, acc/peak-1)
	}
	return out
}

// RollingVolatility computes the annualized standard deviation of the returns
// over a sliding window of the given number of trading days. Days before the
// window is full are skipped.
func RollingVolatility(returns *Series, window int) *Series {
	out := &Series{}
	var buf []float64
	for on, r := range returns.Values() {
		buf = append(buf, r)
		if len(buf) < window {
			continue
		}
		if len(buf) > window {
			buf = buf[1:]
		}
		out.Append(on, stddev(buf)*math.Sqrt(TradingDaysYear))
	}
	return out
}

// Correlation computes the Pearson correlation of two return series over
// their common days. It returns NaN when there are fewer than two.
func Correlation(a, b *Series) float64 {
	var xs, ys []float64
	for on, x := range a.Values() {
		if y, ok := b.Get(on); ok {
			xs, ys = append(xs, x), append(ys, y)
		}
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	mx, my := mean(xs), mean(ys)
	var sxy, sxx, syy float64
	for i := range xs {
		dx, dy := xs[i]-mx, ys[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return math.NaN()
	}
	return sxy / math.Sqrt(sxx*syy)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stddev is the sample standard deviation.
func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var ss float64
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}

// quantile returns the q-quantile (0..1) of the values using linear
// interpolation between the two nearest order statistics.
func quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
