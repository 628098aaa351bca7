// Package psa implements the analysis engine behind the `psa` command-line
// tool: backtesting and comparison of two model-proposed equity strategies,
// a high-return one and a low-risk one, over the Taiwan stock market.
//
// The core functionalities include:
//   - Strategy Files: weighted portfolios persisted as human-readable,
//     version-controllable JSONL files.
//   - Price Histories: daily close series per ticker, persisted per-year
//     in JSONL, fetched by the quote package.
//   - Backtesting: weighted daily returns over the intersection of
//     available tickers, with weight re-normalization when data is missing.
//   - Performance Metrics: total and annualized return, volatility, Sharpe,
//     Sortino, maximum drawdown, win rate and value-at-risk.
//   - Strategy Diagnosis: stability of the metrics across the historical
//     window and the forward window that starts after the model's knowledge
//     cutoff, with a severity-ranked list of construction problems.
//
// This package serves as the foundational logic for the `psa` command-line
// tool; rendering and transport live in their own packages.
package psa
