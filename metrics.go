package psa

import "math"

// Metrics holds the performance and risk indicators of one strategy over one window.
//
// Ratios are kept as ratios (0.05 for 5%); the renderer converts to Percent
// for display.
type Metrics struct {
	Days                 int     // number of daily returns in the window
	TotalReturn          float64 // compounded return over the window
	AnnualizedReturn     float64
	AnnualizedVolatility float64
	Sharpe               float64
	Sortino              float64
	MaxDrawdown          float64 // most negative drawdown, <= 0
	WinRate              float64 // share of positive days
	VaR                  map[float64]float64 // confidence level -> daily VaR (a quantile of returns, usually negative)
}

// ComputeMetrics computes all indicators from a daily return series.
//
// A series shorter than MinDataPoints yields zero metrics rather than noise;
// the Days field lets the caller detect and report that case.
func ComputeMetrics(returns *Series) Metrics {
	m := Metrics{Days: returns.Len(), VaR: make(map[float64]float64)}

	values := make([]float64, 0, returns.Len())
	for _, r := range returns.Values() {
		if !math.IsNaN(r) && !math.IsInf(r, 0) {
			values = append(values, r)
		}
	}
	m.Days = len(values)
	if m.Days < MinDataPoints {
		return m
	}

	// Basic statistics.
	compound := 1.0
	wins := 0
	for _, r := range values {
		compound *= 1 + r
		if r > 0 {
			wins++
		}
	}
	m.TotalReturn = compound - 1
	m.AnnualizedReturn = math.Pow(1+mean(values), TradingDaysYear) - 1
	m.AnnualizedVolatility = stddev(values) * math.Sqrt(TradingDaysYear)
	if m.AnnualizedVolatility != 0 {
		m.Sharpe = m.AnnualizedReturn / m.AnnualizedVolatility
	}
	m.WinRate = float64(wins) / float64(len(values))

	// Maximum drawdown from the running peak of the compounded value.
	acc, peak, maxDD := 1.0, 1.0, 0.0
	for _, r := range values {
		acc *= 1 + r
		if acc > peak {
			peak = acc
		}
		if dd := acc/peak - 1; dd < maxDD {
			maxDD = dd
		}
	}
	m.MaxDrawdown = maxDD

	// Daily value-at-risk: the lower quantile of the return distribution.
	for _, level := range VaRConfidenceLevels {
		m.VaR[level] = quantile(values, 1-level)
	}

	// Sortino: annualized return over the downside deviation only.
	var downside []float64
	for _, r := range values {
		if r < 0 {
			downside = append(downside, r)
		}
	}
	if len(downside) == 0 {
		// no losing day at all, reward it instead of dividing by zero
		m.Sortino = m.AnnualizedReturn * 10
	} else if dev := stddev(downside) * math.Sqrt(TradingDaysYear); dev != 0 {
		m.Sortino = m.AnnualizedReturn / dev
	}
	return m
}

// Score is the composite quality score used to pick the recommended strategy:
// a weighted blend of Sharpe ratio, drawdown resistance and win rate.
func (m Metrics) Score() float64 {
	return m.Sharpe*ScoreWeightSharpe +
		(1-math.Abs(m.MaxDrawdown))*ScoreWeightMaxDrawdown +
		m.WinRate*ScoreWeightWinRate
}
