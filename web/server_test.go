package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tzuhan/psa"
	"github.com/tzuhan/psa/date"
)

func testComparison() *psa.Comparison {
	m := psa.Metrics{Days: 45, TotalReturn: 0.1, AnnualizedReturn: 0.2, Sharpe: 1.1, WinRate: 0.6,
		MaxDrawdown: -0.1, VaR: map[float64]float64{0.90: -0.01, 0.95: -0.015, 0.99: -0.02, 0.995: -0.025}}
	return &psa.Comparison{
		Historical: date.NewRange(date.New(2020, 1, 1), date.New(2024, 9, 30)),
		Forward:    date.NewRange(date.New(2024, 10, 1), date.New(2025, 8, 26)),
		Capital:    psa.M(1_000_000, "TWD"),
		High: psa.Result{
			Strategy:   psa.NewStrategy("great_reward", "高報酬策略", psa.Holding{Ticker: "2330", Name: "台積電", Weight: 1}),
			Historical: m, Forward: m, FinalValue: psa.M(1_100_000, "TWD"),
		},
		Low: psa.Result{
			Strategy:   psa.NewStrategy("low_risk", "低風險策略", psa.Holding{Ticker: "2412", Name: "中華電", Weight: 1}),
			Historical: m, Forward: m, FinalValue: psa.M(1_050_000, "TWD"),
		},
		Recommendations: []psa.Recommendation{{Title: "建立監控機制", Content: "定期重新評估。"}},
		Recommended:     "高報酬策略",
	}
}

func get(t *testing.T, srv *httptest.Server, path string) string {
	t.Helper()
	resp, err := srv.Client().Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s status = %v, want 200", path, resp.Status)
	}
	if got, want := resp.Header.Get("Content-Type"), "text/html; charset=utf-8"; got != want {
		t.Errorf("GET %s Content-Type = %q, want %q", path, got, want)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(body)
}

func TestServerPages(t *testing.T) {
	srv := httptest.NewServer(NewServer("", testComparison()).Handler())
	defer srv.Close()

	cases := []struct{ path, want string }{
		{"/", "投資組合策略分析報告"},
		{"/performance", "績效分析"},
		{"/risk", "風險分析"},
		{"/compare", "綜合評分與推薦"},
		{"/diagnose", "穩定性診斷"},
	}
	for _, c := range cases {
		body := get(t, srv, c.path)
		if !strings.Contains(body, c.want) {
			t.Errorf("GET %s is missing %q", c.path, c.want)
		}
		// every page carries the navigation
		if !strings.Contains(body, `href="/diagnose"`) {
			t.Errorf("GET %s is missing the navigation", c.path)
		}
	}
}

func TestServerRendersTables(t *testing.T) {
	srv := httptest.NewServer(NewServer("", testComparison()).Handler())
	defer srv.Close()

	// markdown pipe tables must come out as HTML tables
	body := get(t, srv, "/performance")
	if !strings.Contains(body, "<table>") {
		t.Error("performance page has no <table>, markdown tables were not converted")
	}
	if strings.Contains(body, "|---") {
		t.Error("performance page leaks raw markdown")
	}
}

func TestServerNotFound(t *testing.T) {
	srv := httptest.NewServer(NewServer("", testComparison()).Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/no-such-page")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %v, want 404", resp.Status)
	}
}

func TestDefaultAddr(t *testing.T) {
	if got := NewServer("", testComparison()).Addr(); got != DefaultAddr {
		t.Errorf("Addr() = %q, want %q", got, DefaultAddr)
	}
	if got := NewServer("localhost:9000", testComparison()).Addr(); got != "localhost:9000" {
		t.Errorf("Addr() = %q, want localhost:9000", got)
	}
}
