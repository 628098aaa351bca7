package psa

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
)

// Holding is a single line of a strategy: a ticker and its target weight.
type Holding struct {
	Ticker string  // exchange ticker, e.g. "2330"
	Name   string  // display name, e.g. "台積電"
	Weight float64 // target weight, as a ratio of the portfolio
}

// Strategy is a named, weighted portfolio proposed by the model.
type Strategy struct {
	name     string
	label    string // display label, e.g. "高報酬策略"
	holdings []Holding
}

// NewStrategy returns a strategy with the given identifier and display label.
func NewStrategy(name, label string, holdings ...Holding) *Strategy {
	return &Strategy{name: name, label: label, holdings: holdings}
}

func (s *Strategy) Name() string  { return s.name }
func (s *Strategy) Label() string { return s.label }

// Holdings returns a copy of the strategy lines.
func (s *Strategy) Holdings() []Holding {
	out := make([]Holding, len(s.holdings))
	copy(out, s.holdings)
	return out
}

// Tickers returns the tickers of all holdings, in file order.
func (s *Strategy) Tickers() []string {
	out := make([]string, 0, len(s.holdings))
	for _, h := range s.holdings {
		out = append(out, h.Ticker)
	}
	return out
}

// TotalWeight returns the sum of all holding weights.
func (s *Strategy) TotalWeight() float64 {
	var sum float64
	for _, h := range s.holdings {
		sum += h.Weight
	}
	return sum
}

// Weights returns the holdings as a ticker-to-weight map, normalized so the
// weights sum to 1. The original file is untouched; a weight sum off by more
// than 1% is reported so the caller can warn the user.
func (s *Strategy) Weights() (weights map[string]float64, normalized bool) {
	sum := s.TotalWeight()
	if sum == 0 {
		return map[string]float64{}, false
	}
	normalized = math.Abs(sum-1) > 0.01
	weights = make(map[string]float64, len(s.holdings))
	for _, h := range s.holdings {
		weights[h.Ticker] += h.Weight / sum
	}
	return weights, normalized
}

// Validate checks the strategy for obvious file mistakes.
func (s *Strategy) Validate() error {
	if s.name == "" {
		return fmt.Errorf("strategy has no name")
	}
	if len(s.holdings) == 0 {
		return fmt.Errorf("strategy %q has no holdings", s.name)
	}
	seen := make(map[string]bool)
	for _, h := range s.holdings {
		if h.Ticker == "" {
			return fmt.Errorf("strategy %q has a holding with no ticker", s.name)
		}
		if seen[h.Ticker] {
			return fmt.Errorf("strategy %q lists ticker %q twice", s.name, h.Ticker)
		}
		seen[h.Ticker] = true
		if h.Weight <= 0 {
			return fmt.Errorf("strategy %q holding %q has non-positive weight %v", s.name, h.Ticker, h.Weight)
		}
	}
	if s.TotalWeight() == 0 {
		return fmt.Errorf("strategy %q has zero total weight", s.name)
	}
	return nil
}

// jholding is the object read from the file using the json parser.
type jholding struct {
	Ticker string  `json:"ticker"`
	Name   string  `json:"name,omitempty"`
	Weight float64 `json:"weight"`
}

// DecodeStrategy reads a strategy from a JSONL stream, one holding per line.
// filename is for error messages only.
func DecodeStrategy(name, label, filename string, r io.Reader) (*Strategy, error) {
	s := &Strategy{name: name, label: label}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		txt := strings.TrimSpace(scanner.Text())
		if txt == "" || strings.HasPrefix(txt, "#") {
			continue
		}
		var jh jholding
		if err := json.Unmarshal([]byte(txt), &jh); err != nil {
			return nil, fmt.Errorf("format error in %s:%d: %w", filename, line, err)
		}
		s.holdings = append(s.holdings, Holding{Ticker: jh.Ticker, Name: jh.Name, Weight: jh.Weight})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %q: %w", filename, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid strategy file %q: %w", filename, err)
	}
	return s, nil
}

// LoadStrategy reads a strategy from a JSONL file.
func LoadStrategy(name, label, filename string) (*Strategy, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeStrategy(name, label, filename, f)
}

// EncodeStrategy writes the strategy in its canonical JSONL form.
func EncodeStrategy(w io.Writer, s *Strategy) error {
	for _, h := range s.holdings {
		b, err := json.Marshal(jholding{Ticker: h.Ticker, Name: h.Name, Weight: h.Weight})
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s\n", b); err != nil {
			return err
		}
	}
	return nil
}
