package psa

import "github.com/tzuhan/psa/date"

// Parameters of the analysis. They mirror the values the strategies were
// produced and evaluated with, so changing them invalidates published reports.

// TradingDaysYear is the number of trading days used to annualize returns and volatility.
const TradingDaysYear = 252

// RollingWindowShort is the window, in trading days, of the rolling volatility series.
const RollingWindowShort = 30

// RollingWindowLong is the window, in trading days, of the long rolling statistics.
const RollingWindowLong = 252

// MinDataPoints is the minimum number of daily returns required to compute metrics.
const MinDataPoints = 30

// MaxMissingRatio is the largest tolerated share of a strategy's weight
// whose tickers have no price data before the backtest is rejected.
const MaxMissingRatio = 0.10

// VaRConfidenceLevels are the confidence levels reported for value-at-risk.
var VaRConfidenceLevels = []float64{0.90, 0.95, 0.99, 0.995}

// Composite score weights. See Score.
const (
	ScoreWeightSharpe      = 0.4
	ScoreWeightMaxDrawdown = 0.3
	ScoreWeightWinRate     = 0.3
)

// KnowledgeCutoff is the model's knowledge cutoff date. The forward window
// starts strictly after it, so forward performance is out-of-sample by
// construction.
var KnowledgeCutoff = date.New(2024, 9, 30)

// DefaultHistoricalRange is the in-sample window the strategies were built on.
var DefaultHistoricalRange = date.NewRange(date.New(2020, 1, 1), KnowledgeCutoff)

// DefaultForwardRange is the out-of-sample window used for the forward backtest.
var DefaultForwardRange = date.NewRange(date.New(2024, 10, 1), date.New(2025, 8, 26))
