// Package renderer turns backtest results into markdown documents. The
// documents are rendered to the terminal by the report command and to HTML
// by the web server, so everything here is plain markdown.
package renderer

import (
	"fmt"
	"math"
	"sort"

	"github.com/tzuhan/psa"
	"github.com/tzuhan/psa/date"
)

// pct formats a ratio as a signed percentage, "-" for zero.
func pct(v float64) string {
	return psa.PercentOf(v).SignedString()
}

// num formats a plain figure with two decimals.
func num(v float64) string {
	if math.IsNaN(v) {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", v)
}

// metricRows builds the label column plus one value column per Metrics.
func metricRows(columns ...psa.Metrics) [][]string {
	row := func(label string, value func(m psa.Metrics) string) []string {
		cells := []string{label}
		for _, m := range columns {
			cells = append(cells, value(m))
		}
		return cells
	}
	return [][]string{
		row("交易日數", func(m psa.Metrics) string { return fmt.Sprintf("%d", m.Days) }),
		row("總報酬率", func(m psa.Metrics) string { return pct(m.TotalReturn) }),
		row("年化報酬率", func(m psa.Metrics) string { return pct(m.AnnualizedReturn) }),
		row("年化波動率", func(m psa.Metrics) string { return pct(m.AnnualizedVolatility) }),
		row("夏普比率", func(m psa.Metrics) string { return num(m.Sharpe) }),
		row("Sortino 比率", func(m psa.Metrics) string { return num(m.Sortino) }),
		row("最大回撤", func(m psa.Metrics) string { return pct(m.MaxDrawdown) }),
		row("勝率", func(m psa.Metrics) string { return pct(m.WinRate) }),
	}
}

// curveRows samples the curves at month ends and formats one row per date.
// The tables stand in for the charts, so monthly granularity is enough.
func curveRows(format func(float64) string, curves ...*psa.Series) [][]string {
	var rows [][]string
	for _, on := range monthEnds(curves[0]) {
		cells := []string{on.String()}
		for _, curve := range curves {
			if v, ok := curve.Get(on); ok {
				cells = append(cells, format(v))
			} else {
				cells = append(cells, "N/A")
			}
		}
		rows = append(rows, cells)
	}
	return rows
}

// monthEnds picks the last observed day of each month, the final day always
// included.
func monthEnds(s *psa.Series) []date.Date {
	var out []date.Date
	var prev date.Date
	first := true
	for on := range s.Values() {
		if !first && (on.Year() != prev.Year() || on.Month() != prev.Month()) {
			out = append(out, prev)
		}
		prev, first = on, false
	}
	if !first {
		out = append(out, prev)
	}
	return out
}

// varRows builds one row per confidence level, worst first.
func varRows(columns ...psa.Metrics) [][]string {
	levels := make([]float64, len(psa.VaRConfidenceLevels))
	copy(levels, psa.VaRConfidenceLevels)
	sort.Sort(sort.Reverse(sort.Float64Slice(levels)))

	var rows [][]string
	for _, level := range levels {
		cells := []string{fmt.Sprintf("VaR %.1f%%", level*100)}
		for _, m := range columns {
			cells = append(cells, pct(m.VaR[level]))
		}
		rows = append(rows, cells)
	}
	return rows
}
