package psa

import (
	"fmt"
	"math"
)

// Severity ranks how damaging a diagnosed problem is.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityHigh:
		return "嚴重"
	case SeverityMedium:
		return "中等"
	default:
		return "輕微"
	}
}

// Problem is one diagnosed issue with how the model built its portfolios.
type Problem struct {
	Title       string
	Severity    Severity
	Description string
}

// Stability measures how consistent a strategy's key metrics are between the
// historical (in-sample) window and the forward (out-of-sample) window.
// 1 means identical performance, 0 means none of it survived.
//
// For each of annualized return, Sharpe and win rate, the ratio
// min/max of the two values is taken, clipped at 0, then averaged.
func Stability(hist, forward Metrics) float64 {
	pairs := [][2]float64{
		{hist.AnnualizedReturn, forward.AnnualizedReturn},
		{hist.Sharpe, forward.Sharpe},
		{hist.WinRate, forward.WinRate},
	}
	var sum float64
	for _, p := range pairs {
		h, f := p[0], p[1]
		if h == 0 {
			continue
		}
		den := math.Max(math.Max(math.Abs(h), math.Abs(f)), 0.001)
		ratio := math.Min(h, f) / den
		sum += math.Max(0, ratio)
	}
	return sum / float64(len(pairs))
}

// stabilityFloor is the stability below which a strategy is considered overfitted.
const stabilityFloor = 0.70

// denom floors a ratio denominator away from zero, the same guard the
// stability calculation uses, so the report text stays finite.
func denom(v float64) float64 {
	if math.Abs(v) < 0.001 {
		return math.Copysign(0.001, v)
	}
	return v
}

// Diagnose inspects the historical and forward metrics of both strategies and
// returns the list of detected construction problems, worst first. When
// nothing is wrong it returns a single low-severity "stable" note, so the
// report never ends on silence.
func Diagnose(highHist, lowHist, highFwd, lowFwd Metrics) []Problem {
	var problems []Problem

	highStability := Stability(highHist, highFwd)
	lowStability := Stability(lowHist, lowFwd)

	// 1. Overfitting: strong in-sample, collapsing out-of-sample.
	if highStability < stabilityFloor || lowStability < stabilityFloor {
		problems = append(problems, Problem{
			Title:    "過擬合問題 (Overfitting)",
			Severity: SeverityHigh,
			Description: fmt.Sprintf(
				"模型可能過度擬合歷史數據：歷史回測優異，但前向表現大幅下降。"+
					"高報酬策略穩定性 %.0f%%，低風險策略穩定性 %.0f%%（低於 %.0f%% 視為過擬合）。"+
					"投資者按建議執行可能面臨預期外的損失。",
				100*highStability, 100*lowStability, 100*stabilityFloor),
		})
	}

	// 2. Risk underestimation: forward drawdowns much deeper than history suggested.
	// A flat history still counts, any forward drawdown exceeds it.
	histRisk := math.Max(math.Abs(highHist.MaxDrawdown), math.Abs(lowHist.MaxDrawdown))
	fwdRisk := math.Max(math.Abs(highFwd.MaxDrawdown), math.Abs(lowFwd.MaxDrawdown))
	if fwdRisk > histRisk*1.5 {
		problems = append(problems, Problem{
			Title:    "風險低估問題 (Risk Underestimation)",
			Severity: SeverityHigh,
			Description: fmt.Sprintf(
				"模型可能低估了投資組合的真實風險水平。歷史最大回撤 %.2f%%，前向最大回撤 %.2f%%，"+
					"風險放大 %.1f 倍。歷史期間市場環境相對穩定，未充分考慮極端情況。",
				100*histRisk, 100*fwdRisk, fwdRisk/denom(histRisk)),
		})
	}

	// 3. Poor adaptability: risk-adjusted performance decays in the new regime.
	histSharpe := (highHist.Sharpe + lowHist.Sharpe) / 2
	fwdSharpe := (highFwd.Sharpe + lowFwd.Sharpe) / 2
	if fwdSharpe < histSharpe*0.6 {
		problems = append(problems, Problem{
			Title:    "市場環境適應性不足 (Poor Market Adaptability)",
			Severity: SeverityMedium,
			Description: fmt.Sprintf(
				"投資組合可能無法適應新的市場環境。歷史平均夏普比率 %.3f，前向平均夏普比率 %.3f，"+
					"表現衰退 %.1f%%。可能原因：市場結構變化、投資者行為改變、政策環境變化。",
				histSharpe, fwdSharpe, 100*(fwdSharpe/denom(histSharpe)-1)),
		})
	}

	// 4. Reduced differentiation: the two strategies stop behaving differently.
	histDiff := math.Abs(highHist.AnnualizedReturn - lowHist.AnnualizedReturn)
	fwdDiff := math.Abs(highFwd.AnnualizedReturn - lowFwd.AnnualizedReturn)
	if fwdDiff < histDiff*0.5 {
		problems = append(problems, Problem{
			Title:    "策略區分度降低 (Reduced Strategy Differentiation)",
			Severity: SeverityMedium,
			Description: fmt.Sprintf(
				"高報酬與低風險策略在前向期間的差異化程度降低。歷史策略報酬差異 %.2f%%，"+
					"前向策略報酬差異 %.2f%%，區分度下降 %.1f%%。可能表示策略建構邏輯不夠穩固。",
				100*histDiff, 100*fwdDiff, 100*(fwdDiff/histDiff-1)),
		})
	}

	if len(problems) == 0 {
		problems = append(problems, Problem{
			Title:    "策略表現穩定",
			Severity: SeverityLow,
			Description: "投資組合在前向回測期間表現相對穩定，未發現明顯問題。" +
				"這可能表示模型對市場的理解相對準確，但仍需持續監控更長期的表現。",
		})
	}
	return problems
}

// Recommendation is one improvement suggestion derived from the diagnosis.
type Recommendation struct {
	Title   string
	Content string
}

// Recommend turns the diagnosed problems into improvement suggestions.
// The monitoring advice is always included.
func Recommend(problems []Problem, highStability, lowStability float64) []Recommendation {
	var recs []Recommendation

	severe := false
	for _, p := range problems {
		if p.Severity == SeverityHigh {
			severe = true
			break
		}
	}
	if severe {
		recs = append(recs, Recommendation{
			Title: "增強模型穩健性",
			Content: "使用多個時間段進行交叉驗證；定期以滾動窗口更新投資組合配置；" +
				"在極端市場情境下做壓力測試；降低單一股票權重上限（如 10-15%）；" +
				"增加產業分散度並考慮加入防禦性資產。",
		})
	}
	if highStability < lowStability {
		recs = append(recs, Recommendation{
			Title: "優化高報酬策略",
			Content: "降低集中風險、減少對科技股的依賴；增加價值因子以平衡成長與價值；" +
				"設定更嚴格的風險預算並建立停損機制。",
		})
	}
	recs = append(recs, Recommendation{
		Title: "建立監控機制",
		Content: "每月追蹤關鍵績效指標；滾動夏普比率低於 0.5 時提出警告；" +
			"最大回撤超過 20% 視為嚴重；每季或半年再平衡一次。",
	})
	return recs
}
