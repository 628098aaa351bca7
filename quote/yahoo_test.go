package quote

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/tzuhan/psa/date"
)

func TestSymbol(t *testing.T) {
	cases := []struct{ ticker, want string }{
		{"2330", "2330.TW"},
		{"0050", "0050.TW"},
		{"^TWII", "^TWII"},
		{"2330.TW", "2330.TW"},
		{"AAPL.US", "AAPL.US"},
	}
	for _, c := range cases {
		if got := Symbol(c.ticker); got != c.want {
			t.Errorf("Symbol(%q) = %q, want %q", c.ticker, got, c.want)
		}
	}
}

// chartJSON builds a Yahoo chart payload for consecutive days starting at on.
// A negative close becomes a JSON null, like a market holiday.
func chartJSON(on date.Date, closes ...float64) string {
	stamps := make([]string, len(closes))
	values := make([]string, len(closes))
	for i, v := range closes {
		stamps[i] = fmt.Sprintf("%d", on.Add(i).Unix())
		if v < 0 {
			values[i] = "null"
		} else {
			values[i] = fmt.Sprintf("%v", v)
		}
	}
	return fmt.Sprintf(`{"chart":{"result":[{"timestamp":[%s],"indicators":{"quote":[{"close":[%s]}]}}],"error":null}}`,
		strings.Join(stamps, ","), strings.Join(values, ","))
}

// testClient returns a Client pointed at the test server, without cache,
// retries or delays.
func testClient(srv *httptest.Server) *Client {
	return &Client{BaseURL: srv.URL, Workers: 3, client: srv.Client()}
}

func TestHistory(t *testing.T) {
	day := date.New(2024, 1, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got, want := r.URL.Path, "/v8/finance/chart/2330.TW"; got != want {
			t.Errorf("path = %q, want %q", got, want)
		}
		fmt.Fprint(w, chartJSON(day, 589, -1, 593.5))
	}))
	defer srv.Close()

	s, err := testClient(srv).History("2330", date.NewRange(day, day.Add(2)))
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	// the null close is skipped
	if got := s.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
	if v, ok := s.Get(day); !ok || v != 589 {
		t.Errorf("close[%s] = %v %v, want 589 true", day, v, ok)
	}
	if v, ok := s.Get(day.Add(2)); !ok || v != 593.5 {
		t.Errorf("close[%s] = %v %v, want 593.5 true", day.Add(2), v, ok)
	}
}

func TestHistoryRejectedSymbol(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`)
	}))
	defer srv.Close()

	_, err := testClient(srv).History("9999", date.NewRange(date.New(2024, 1, 2), date.New(2024, 1, 5)))
	if err == nil {
		t.Fatal("History() expected error for a rejected symbol")
	}
	if !strings.Contains(err.Error(), "delisted") {
		t.Errorf("error %q does not carry Yahoo's description", err)
	}
}

func TestHistoryRetries(t *testing.T) {
	day := date.New(2024, 1, 2)
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, chartJSON(day, 589))
	}))
	defer srv.Close()

	c := testClient(srv)
	c.Retries = 2
	s, err := c.history("2330", date.NewRange(day, day))
	if err != nil {
		t.Fatalf("history() error = %v, want success on second attempt", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("server calls = %d, want 2", got)
	}
}

func TestFetch(t *testing.T) {
	day := date.New(2024, 1, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/2330.TW"):
			fmt.Fprint(w, chartJSON(day, 589, 593.5))
		case strings.HasSuffix(r.URL.Path, "/%5ETWII"), strings.HasSuffix(r.URL.Path, "/^TWII"):
			fmt.Fprint(w, chartJSON(day, 17850.1, 17900.8))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	prices, failed := testClient(srv).Fetch([]string{"2330", "^TWII", "9999", "2330"}, date.NewRange(day, day.Add(1)))

	if got, want := strings.Join(prices.Tickers(), ","), "2330,^TWII"; got != want {
		t.Errorf("Tickers() = %q, want %q", got, want)
	}
	if v, _ := prices.Close("2330").Get(day.Add(1)); v != 593.5 {
		t.Errorf("close = %v, want 593.5", v)
	}
	if len(failed) != 1 {
		t.Fatalf("failed = %v, want only the unknown ticker", failed)
	}
	if _, ok := failed["9999"]; !ok {
		t.Errorf("failed = %v, want an entry for 9999", failed)
	}
}
