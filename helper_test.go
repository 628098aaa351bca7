package psa

import (
	"math"
	"testing"

	"github.com/tzuhan/psa/date"
)

var day0 = date.New(2024, 10, 1)

// seriesOf builds a Series from consecutive calendar days starting at day0.
func seriesOf(values ...float64) *Series {
	s := &Series{}
	for i, v := range values {
		s.Append(day0.Add(i), v)
	}
	return s
}

// constSeries builds a Series of n identical values starting at day0.
func constSeries(n int, v float64) *Series {
	s := &Series{}
	for i := range n {
		s.Append(day0.Add(i), v)
	}
	return s
}

// almost fails the test unless got is within eps of want.
func almost(t *testing.T, name string, got, want float64) {
	t.Helper()
	const eps = 1e-9
	if math.Abs(got-want) > eps {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// TWD is a helper for tests to create Taiwan dollar money from a const.
func TWD(v float64) Money { return M(v, "TWD") }
