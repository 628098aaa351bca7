package quote

import (
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/tzuhan/psa"
	"github.com/tzuhan/psa/date"
)

/*
	{
	    "chart": {
	        "result": [
	            {
	                "meta": {"symbol": "2330.TW", "currency": "TWD"},
	                "timestamp": [1704153600, 1704240000],
	                "indicators": {
	                    "quote": [
	                        {"close": [589.0, 593.5]}
	                    ]
	                }
	            }
	        ],
	        "error": null
	    }
	}
*/

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Defaults for the download pool. Yahoo throttles aggressively, so requests
// run three at a time with a short pause between retries.
const (
	defaultWorkers = 3
	defaultRetries = 2
	defaultDelay   = 100 * time.Millisecond
)

// Client fetches daily close histories from the Yahoo Finance chart API.
// The zero value is not usable, call NewClient.
type Client struct {
	BaseURL string
	Workers int
	Retries int
	Delay   time.Duration
	client  *http.Client
}

// NewClient returns a Client with a daily-expiring disk cache.
func NewClient() *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		Workers: defaultWorkers,
		Retries: defaultRetries,
		Delay:   defaultDelay,
		client:  newDailyCachingClient(),
	}
}

// Symbol returns the Yahoo symbol for a ticker. Bare Taiwan listing codes
// get the ".TW" suffix, index symbols (like ^TWII) and tickers that already
// carry an exchange suffix pass through unchanged.
func Symbol(ticker string) string {
	if strings.HasPrefix(ticker, "^") || strings.Contains(ticker, ".") {
		return ticker
	}
	return ticker + ".TW"
}

// History downloads the daily close series of a single ticker over span.
// Both bounds are included.
func (c *Client) History(ticker string, span date.Range) (*psa.Series, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d&events=history",
		c.BaseURL, Symbol(ticker), span.From.Unix(), span.To.Add(1).Unix())

	var jobj any
	if err := getJSON(c.client, addr, &jobj); err != nil {
		return nil, fmt.Errorf("error retrieving %q: %w", ticker, err)
	}

	// a non-null error object means Yahoo rejected the symbol or the range
	if jval, err := jsonpath.Get("$.chart.error.description", jobj); err == nil {
		if desc, ok := jval.(string); ok && desc != "" {
			return nil, fmt.Errorf("cannot fetch %q: %s", ticker, desc)
		}
	}

	stamps, err := jsonlist("$.chart.result[0].timestamp", jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q: %w", ticker, err)
	}
	closes, err := jsonlist("$.chart.result[0].indicators.quote[0].close", jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q: %w", ticker, err)
	}
	if len(stamps) != len(closes) {
		return nil, fmt.Errorf("cannot fetch %q: %d timestamps for %d closes", ticker, len(stamps), len(closes))
	}

	s := &psa.Series{}
	for i, jstamp := range stamps {
		stamp, ok := jstamp.(float64)
		if !ok {
			continue
		}
		// null closes are market holidays, skip them
		close, ok := closes[i].(float64)
		if !ok {
			continue
		}
		s.Append(date.FromUnix(int64(stamp)), close)
	}
	if s.Len() == 0 {
		return nil, fmt.Errorf("cannot fetch %q: empty history for %s", ticker, span)
	}
	return s, nil
}

// jsonlist resolves path in jobj and asserts the result is a list.
func jsonlist(path string, jobj any) ([]any, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("%q: not a list: %v", path, jval)
	}
	return jlist, nil
}

// history is History with retries.
func (c *Client) history(ticker string, span date.Range) (s *psa.Series, err error) {
	for attempt := 0; attempt <= c.Retries; attempt++ {
		if attempt > 0 {
			time.Sleep(c.Delay)
		}
		if s, err = c.History(ticker, span); err == nil {
			return s, nil
		}
		log.Printf("fetch %q attempt %d/%d: %v", ticker, attempt+1, c.Retries+1, err)
	}
	return nil, err
}

// Fetch downloads the close history of every ticker over span, a few at a
// time. Tickers that still fail after retries are reported in failed, the
// returned prices hold everything that succeeded.
func (c *Client) Fetch(tickers []string, span date.Range) (prices *psa.Prices, failed map[string]error) {
	prices = psa.NewPrices()
	failed = make(map[string]error)

	// dedup keeps a retried ticker from being downloaded twice
	unique := make([]string, 0, len(tickers))
	seen := make(map[string]bool)
	for _, t := range tickers {
		if !seen[t] {
			seen[t] = true
			unique = append(unique, t)
		}
	}
	sort.Strings(unique)

	var mu sync.Mutex
	var wg sync.WaitGroup
	queue := make(chan string)

	workers := c.Workers
	if workers <= 0 {
		workers = 1
	}
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ticker := range queue {
				s, err := c.history(ticker, span)
				mu.Lock()
				if err != nil {
					failed[ticker] = err
				} else {
					for on, close := range s.Values() {
						prices.Append(ticker, on, close)
					}
				}
				mu.Unlock()
			}
		}()
	}
	for _, t := range unique {
		queue <- t
	}
	close(queue)
	wg.Wait()
	return prices, failed
}
