package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/tzuhan/psa"
)

// ReportMarkdown renders the complete analysis report: overview, both
// strategies, risk, stability diagnosis and the final recommendation.
func ReportMarkdown(c *psa.Comparison) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("投資組合策略分析報告")
	doc.PlainText(fmt.Sprintf("歷史回測區間:%s,前向測試區間:%s,初始資金 %s。",
		c.Historical, c.Forward, c.Capital))

	writeStrategies(doc, c)
	writePerformance(doc, c)
	writeRisk(doc, c)
	writeDiagnosis(doc, c)
	writeRecommendation(doc, c)

	return doc.String()
}

// PerformanceMarkdown renders the performance section alone, for the web page.
func PerformanceMarkdown(c *psa.Comparison) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	writePerformance(doc, c)
	return doc.String()
}

// RiskMarkdown renders the risk section alone, for the web page.
func RiskMarkdown(c *psa.Comparison) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	writeRisk(doc, c)
	return doc.String()
}

// CompareMarkdown renders the side-by-side forward comparison, for the web page.
func CompareMarkdown(c *psa.Comparison) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	writeStrategies(doc, c)
	writeRecommendation(doc, c)
	return doc.String()
}

// DiagnoseMarkdown renders the stability diagnosis alone, for the web page.
func DiagnoseMarkdown(c *psa.Comparison) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	writeDiagnosis(doc, c)
	return doc.String()
}

func writeStrategies(doc *md.Markdown, c *psa.Comparison) {
	doc.H2("投資組合")
	for _, r := range []psa.Result{c.High, c.Low} {
		doc.H3(r.Strategy.Label())
		rows := make([][]string, 0, len(r.Strategy.Holdings()))
		for _, h := range r.Strategy.Holdings() {
			rows = append(rows, []string{h.Ticker, h.Name, fmt.Sprintf("%.1f%%", h.Weight*100)})
		}
		doc.Table(md.TableSet{
			Header: []string{"代號", "名稱", "權重"},
			Rows:   rows,
		})
		if r.Normalized {
			doc.PlainText("權重總和不為 100%,已自動正規化。")
		}
		if len(r.Missing) > 0 {
			doc.PlainText(fmt.Sprintf("缺少價格資料,已剔除:%v。", r.Missing))
		}
	}
}

func writePerformance(doc *md.Markdown, c *psa.Comparison) {
	high, low := c.High.Strategy.Label(), c.Low.Strategy.Label()

	doc.H2("績效分析")
	doc.H3("歷史回測")
	doc.Table(md.TableSet{
		Header: []string{"指標", high, low},
		Rows:   metricRows(c.High.Historical, c.Low.Historical),
	})

	doc.H3("前向測試(樣本外)")
	header := []string{"指標", high, low}
	columns := []psa.Metrics{c.High.Forward, c.Low.Forward}
	if c.BenchmarkReturns != nil {
		header = append(header, "加權指數")
		columns = append(columns, c.BenchmarkForward)
	}
	doc.Table(md.TableSet{Header: header, Rows: metricRows(columns...)})

	doc.PlainText(fmt.Sprintf("%s 期末資產:%s;%s 期末資產:%s。",
		high, c.High.FinalValue, low, c.Low.FinalValue))

	if c.High.Cumulative != nil && c.Low.Cumulative != nil {
		doc.H3("累積報酬走勢")
		growthHeader := []string{"日期", high, low}
		growth := []*psa.Series{c.High.Cumulative, c.Low.Cumulative}
		if c.BenchmarkReturns != nil {
			growthHeader = append(growthHeader, "加權指數")
			growth = append(growth, psa.Cumulative(c.BenchmarkReturns))
		}
		doc.Table(md.TableSet{
			Header: growthHeader,
			Rows:   curveRows(func(v float64) string { return pct(v - 1) }, growth...),
		})
	}

	if c.High.RollingVol != nil && c.Low.RollingVol != nil {
		doc.H3(fmt.Sprintf("%d 日滾動波動率", psa.RollingWindowShort))
		doc.Table(md.TableSet{
			Header: []string{"日期", high, low},
			Rows:   curveRows(pct, c.High.RollingVol, c.Low.RollingVol),
		})
	}
}

func writeRisk(doc *md.Markdown, c *psa.Comparison) {
	high, low := c.High.Strategy.Label(), c.Low.Strategy.Label()

	doc.H2("風險分析")
	doc.H3("風險價值 (VaR)")
	doc.PlainText("單日報酬的歷史分位數,數值為該信心水準下的單日損失下界。")
	doc.Table(md.TableSet{
		Header: []string{"信心水準", high, low},
		Rows:   varRows(c.High.Forward, c.Low.Forward),
	})

	doc.H3("回撤與相關性")
	doc.Table(md.TableSet{
		Header: []string{"指標", high, low},
		Rows: [][]string{
			{"歷史最大回撤", pct(c.High.Historical.MaxDrawdown), pct(c.Low.Historical.MaxDrawdown)},
			{"前向最大回撤", pct(c.High.Forward.MaxDrawdown), pct(c.Low.Forward.MaxDrawdown)},
		},
	})
	doc.PlainText(fmt.Sprintf("兩策略日報酬相關係數:%s。", num(c.Correlation)))

	if c.High.Drawdown != nil && c.Low.Drawdown != nil {
		doc.H3("回撤走勢")
		doc.Table(md.TableSet{
			Header: []string{"日期", high, low},
			Rows:   curveRows(pct, c.High.Drawdown, c.Low.Drawdown),
		})
	}
}

func writeDiagnosis(doc *md.Markdown, c *psa.Comparison) {
	doc.H2("穩定性診斷")
	doc.Table(md.TableSet{
		Header: []string{"策略", "穩定性"},
		Rows: [][]string{
			{c.High.Strategy.Label(), num(c.HighStability)},
			{c.Low.Strategy.Label(), num(c.LowStability)},
		},
	})

	for _, p := range c.Problems {
		doc.H3(fmt.Sprintf("%s(%s)", p.Title, p.Severity))
		doc.PlainText(p.Description)
	}

	doc.H2("改善建議")
	items := make([]string, 0, len(c.Recommendations))
	for _, r := range c.Recommendations {
		items = append(items, fmt.Sprintf("%s:%s", r.Title, r.Content))
	}
	doc.BulletList(items...)
}

func writeRecommendation(doc *md.Markdown, c *psa.Comparison) {
	doc.H2("綜合評分與推薦")
	doc.Table(md.TableSet{
		Header: []string{"策略", "綜合評分"},
		Rows: [][]string{
			{c.High.Strategy.Label(), num(c.HighScore)},
			{c.Low.Strategy.Label(), num(c.LowScore)},
		},
	})
	doc.PlainText(fmt.Sprintf("推薦策略:%s。", c.Recommended))
}
