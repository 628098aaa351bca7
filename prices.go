package psa

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tzuhan/psa/date"
)

// This file persists price histories in a folder, in a way that is still
// human-readable and git-friendly: one JSONL file per calendar year, one
// close price per line.

const priceFilesGlob = "[0-9][0-9][0-9][0-9].jsonl"

// Prices stores the daily close series of every known ticker.
type Prices struct {
	series map[string]*Series
}

// NewPrices returns an empty price database.
func NewPrices() *Prices { return &Prices{series: make(map[string]*Series)} }

// Tickers returns all known tickers in alphabetical order.
func (p *Prices) Tickers() []string {
	out := make([]string, 0, len(p.series))
	for t := range p.series {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Has reports whether the ticker has at least one price.
func (p *Prices) Has(ticker string) bool {
	s, ok := p.series[ticker]
	return ok && s.Len() > 0
}

// Close returns the close series for a ticker, or nil when unknown.
func (p *Prices) Close(ticker string) *Series { return p.series[ticker] }

// Append records one close price. Existing values for the same day are overwritten.
func (p *Prices) Append(ticker string, on date.Date, close float64) {
	s, ok := p.series[ticker]
	if !ok {
		s = &Series{}
		p.series[ticker] = s
	}
	s.Append(on, close)
}

// jprice is the persisted form of one price point.
type jprice struct {
	On     date.Date `json:"on"`
	Ticker string    `json:"ticker"`
	Close  float64   `json:"close"`
}

// DecodePrices reads every per-year JSONL file from dir into a price database.
// A missing directory is not an error: it decodes to an empty database.
func DecodePrices(dir string) (*Prices, error) {
	p := NewPrices()
	files, err := filepath.Glob(filepath.Join(dir, priceFilesGlob))
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		err = p.decode(file, f)
		f.Close()
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Prices) decode(filename string, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		txt := strings.TrimSpace(scanner.Text())
		if txt == "" {
			continue
		}
		var jp jprice
		if err := json.Unmarshal([]byte(txt), &jp); err != nil {
			return fmt.Errorf("format error in %s:%d: %w", filename, line, err)
		}
		p.Append(jp.Ticker, jp.On, jp.Close)
	}
	return scanner.Err()
}

// EncodePrices writes the whole database back to dir, one file per year,
// tickers in alphabetical order then days in chronological order, so a
// rewrite of unchanged data is byte-identical.
func EncodePrices(dir string, p *Prices) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	byYear := make(map[int][]jprice)
	for _, ticker := range p.Tickers() {
		for on, close := range p.series[ticker].Values() {
			byYear[on.Year()] = append(byYear[on.Year()], jprice{On: on, Ticker: ticker, Close: close})
		}
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	for _, y := range years {
		var b strings.Builder
		for _, jp := range byYear[y] {
			line, err := json.Marshal(jp)
			if err != nil {
				return err
			}
			b.Write(line)
			b.WriteByte('\n')
		}
		file := filepath.Join(dir, fmt.Sprintf("%04d.jsonl", y))
		if err := os.WriteFile(file, []byte(b.String()), 0644); err != nil {
			return err
		}
	}
	return nil
}
