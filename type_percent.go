package psa

import (
	"fmt"
	"math"
)

// Percent is a percentage value, 5.0 means 5%.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) IsNaN() bool { return math.IsNaN(float64(p)) }

func (p Percent) String() string {
	if p.IsNaN() {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	if p.IsNaN() {
		return "N/A"
	}
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" {
		return "-"
	}
	return res
}

// Ratio converts the percentage back to its ratio, 5% returns 0.05.
func (p Percent) Ratio() float64 { return float64(p) / 100 }

// PercentOf converts a ratio to a Percent, 0.05 becomes 5%.
func PercentOf(ratio float64) Percent { return Percent(100 * ratio) }
