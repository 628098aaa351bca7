package date

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Date
		err  bool
	}{
		{in: "2024-09-30", want: New(2024, time.September, 30)},
		{in: "2025-7-1", want: New(2025, time.July, 1)},
		{in: "not-a-date", err: true},
		{in: "2024/09/30", err: true},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		if c.err {
			if err == nil {
				t.Errorf("Parse(%q) expected error, got %v", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("Parse(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestDateNormalization(t *testing.T) {
	// Overflowing days roll into the next month.
	if got, want := New(2024, time.January, 32), New(2024, time.February, 1); got != want {
		t.Errorf("New(2024,1,32) = %v, want %v", got, want)
	}
	if got, want := New(2024, time.December, 31).Add(1), New(2025, time.January, 1); got != want {
		t.Errorf("Add(1) across year = %v, want %v", got, want)
	}
}

func TestDateSub(t *testing.T) {
	a := New(2024, time.October, 1)
	b := New(2024, time.September, 30)
	if got := a.Sub(b); got != 1 {
		t.Errorf("Sub() = %d, want 1", got)
	}
	if got := b.Sub(a); got != -1 {
		t.Errorf("Sub() = %d, want -1", got)
	}
}

func TestRangeContains(t *testing.T) {
	r := NewRange(MustParse("2024-10-01"), MustParse("2025-08-26"))
	cases := []struct {
		on   string
		want bool
	}{
		{"2024-10-01", true},
		{"2025-08-26", true},
		{"2024-09-30", false},
		{"2025-08-27", false},
		{"2025-01-15", true},
	}
	for _, c := range cases {
		if got := r.Contains(MustParse(c.on)); got != c.want {
			t.Errorf("Contains(%s) = %v, want %v", c.on, got, c.want)
		}
	}
}

func TestHistoryAppendSortsAndOverwrites(t *testing.T) {
	h := &History[float64]{}
	h.Append(MustParse("2024-10-03"), 3)
	h.Append(MustParse("2024-10-01"), 1)
	h.Append(MustParse("2024-10-02"), 2)
	h.Append(MustParse("2024-10-01"), 10) // overwrite

	if got := h.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}
	first, v := h.First()
	if first != MustParse("2024-10-01") || v != 10 {
		t.Errorf("First() = %v %v, want 2024-10-01 10", first, v)
	}
	last, v := h.Latest()
	if last != MustParse("2024-10-03") || v != 3 {
		t.Errorf("Latest() = %v %v, want 2024-10-03 3", last, v)
	}
}

func TestHistoryValueAsOf(t *testing.T) {
	h := &History[float64]{}
	h.Append(MustParse("2024-10-01"), 100)
	h.Append(MustParse("2024-10-04"), 104)

	// Exact day.
	if v, ok := h.ValueAsOf(MustParse("2024-10-01")); !ok || v != 100 {
		t.Errorf("ValueAsOf(exact) = %v %v, want 100 true", v, ok)
	}
	// Gap day falls back to the previous close.
	if v, ok := h.ValueAsOf(MustParse("2024-10-03")); !ok || v != 100 {
		t.Errorf("ValueAsOf(gap) = %v %v, want 100 true", v, ok)
	}
	// Before the first point there is nothing.
	if _, ok := h.ValueAsOf(MustParse("2024-09-30")); ok {
		t.Errorf("ValueAsOf(before) = _, true; want false")
	}
}

func TestHistoryTruncate(t *testing.T) {
	h := &History[float64]{}
	for i := range 10 {
		h.Append(MustParse("2024-10-01").Add(i), float64(i))
	}
	cut := h.Truncate(NewRange(MustParse("2024-10-03"), MustParse("2024-10-05")))
	if got := cut.Len(); got != 3 {
		t.Fatalf("Truncate().Len() = %d, want 3", got)
	}
	if first, v := cut.First(); first != MustParse("2024-10-03") || v != 2 {
		t.Errorf("Truncate().First() = %v %v, want 2024-10-03 2", first, v)
	}
}

func TestIterate(t *testing.T) {
	a := &History[float64]{}
	a.Append(MustParse("2024-10-01"), 1)
	a.Append(MustParse("2024-10-03"), 3)
	b := &History[float64]{}
	b.Append(MustParse("2024-10-02"), 2)
	b.Append(MustParse("2024-10-03"), 3)

	var got []string
	for on := range Iterate(a, b) {
		got = append(got, on.String())
	}
	want := []string{"2024-10-01", "2024-10-02", "2024-10-03"}
	if len(got) != len(want) {
		t.Fatalf("Iterate() yielded %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Iterate()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
