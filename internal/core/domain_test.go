package core

import (
	"errors"
	"testing"
)

func TestParseQuantity(t *testing.T) {
	cases := []struct {
		in  string
		out int
		ok  bool
	}{
		{"1", 1, true},
		{"10", 10, true},
		{" 3 ", 3, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"1.5", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseQuantity(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("%q expected ErrInvalidQuantity, got %v", tc.in, err)
		}
	}
}

func TestSurcharge(t *testing.T) {
	for visit, want := range map[int]int64{1: 0, 5: 0, 6: 500, 12: 500} {
		if got := Surcharge(visit); got != want {
			t.Fatalf("Surcharge(%d) = %d, want %d", visit, got, want)
		}
	}
}

func TestDescribeLines(t *testing.T) {
	lines := []Line{
		{Name: "rulers", Quantity: 3, PriceCents: 100},
		{Name: "toothpicks", Quantity: 10, PriceCents: 10},
	}
	if got, want := DescribeLines(lines), "rulers x3, toothpicks x10"; got != want {
		t.Fatalf("DescribeLines = %q, want %q", got, want)
	}
	if got := lines[0].Subtotal(); got != 300 {
		t.Fatalf("Subtotal = %d, want 300", got)
	}
	if got := DescribeLines(nil); got != "" {
		t.Fatalf("DescribeLines(nil) = %q, want empty", got)
	}
}

func TestVisitValidate(t *testing.T) {
	valid := Visit{
		TeamName:        "Alpha",
		VisitNumber:     1,
		Items:           "rulers x3",
		TotalCents:      300,
		TotalItems:      3,
		TotalSpentCents: 300,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid visit rejected: %v", err)
	}

	cases := map[string]Visit{
		"empty team":        {VisitNumber: 1},
		"zero visit number": {TeamName: "Alpha"},
		"spent below total": {TeamName: "Alpha", VisitNumber: 1, TotalCents: 500, TotalSpentCents: 100},
	}
	for name, v := range cases {
		if err := v.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}
