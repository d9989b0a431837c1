package deductions

import (
	"errors"
	"math"
	"testing"

	"gearhr/internal/domain/apperr"
)

func TestSSSBracketTable(t *testing.T) {
	if len(SSSBrackets) != 61 {
		t.Fatalf("expected 61 brackets, got %d", len(SSSBrackets))
	}
	for i := 1; i < len(SSSBrackets); i++ {
		prev, cur := SSSBrackets[i-1], SSSBrackets[i]
		if math.Abs(cur.Lower-(prev.Upper+0.01)) > 1e-9 {
			t.Fatalf("bracket %d not contiguous: prev upper %v, lower %v", i, prev.Upper, cur.Lower)
		}
		if cur.Amount <= prev.Amount {
			t.Fatalf("bracket %d amount %v not increasing", i, cur.Amount)
		}
	}
}

func TestSSSBoundaries(t *testing.T) {
	cases := []struct {
		salary float64
		want   float64
	}{
		{0, 250},
		{5249.99, 250},
		{5249.995, 250},
		{5250.00, 275},
		{5749.99, 275},
		{5750, 300},
		{20000, 1000},
		{34249.99, 1725},
		{34749.99, 1725},
		{34750, 1750},
		{35000, 1750},
		{9999999.99, 1750},
		{50000000, 1750},
	}
	for _, tc := range cases {
		got, err := SSS(tc.salary)
		if err != nil {
			t.Fatalf("SSS(%v) unexpected error: %v", tc.salary, err)
		}
		if got != tc.want {
			t.Fatalf("SSS(%v): expected %v, got %v", tc.salary, tc.want, got)
		}
	}
}

func TestSSSEveryBracketInterval(t *testing.T) {
	for _, bracket := range SSSBrackets {
		upper := bracket.Upper
		if math.IsInf(upper, 1) {
			upper = bracket.Lower + 1000000
		}
		for _, salary := range []float64{bracket.Lower, (bracket.Lower + upper) / 2, upper} {
			got, err := SSS(salary)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != bracket.Amount {
				t.Fatalf("SSS(%v): expected %v, got %v", salary, bracket.Amount, got)
			}
		}
	}
}

func TestPhilHealthClamp(t *testing.T) {
	cases := []struct {
		salary float64
		want   float64
	}{
		{0, 500},
		{5000, 500},
		{10000, 500},
		{20000, 1000},
		{35000, 1750},
		{60000, 3000},
		{100000, 5000},
		{250000, 5000},
	}
	for _, tc := range cases {
		got, err := PhilHealth(tc.salary)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tc.want {
			t.Fatalf("PhilHealth(%v): expected %v, got %v", tc.salary, tc.want, got)
		}
	}
}

func TestPhilHealthMonotonicInsideRange(t *testing.T) {
	prev := 0.0
	for salary := 10000.0; salary <= 100000; salary += 1234.5 {
		got, err := PhilHealth(salary)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got < prev {
			t.Fatalf("PhilHealth not monotonic at %v: %v < %v", salary, got, prev)
		}
		prev = got
	}
}

func TestPagIbigCap(t *testing.T) {
	for _, salary := range []float64{0, 1000, 5000, 9999.5, 10000, 10001, 35000, 1e7} {
		got, err := PagIbig(salary)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := math.Min(Round2(salary*0.02), 200)
		if got != want {
			t.Fatalf("PagIbig(%v): expected %v, got %v", salary, want, got)
		}
	}
}

func TestWithholdingTaxTierBoundaries(t *testing.T) {
	cases := []struct {
		ntc  float64
		want float64
	}{
		{0, 0},
		{20833, 0},
		{20834, 0.2},
		{33332, 2499.8},
		{33332.5, 2500},
		{33333, 2500},
		{66666, 10833.25},
		{66667, 10833.33},
		{166666, 40833.03},
		{166667, 40833.33},
		{666666, 200833.01},
		{666667, 200833.33},
		{1000000, 317499.88},
	}
	for _, tc := range cases {
		got, err := WithholdingTax(tc.ntc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tc.want {
			t.Fatalf("WithholdingTax(%v): expected %v, got %v", tc.ntc, tc.want, got)
		}
	}
}

func TestWithholdingTaxIncludesAllowances(t *testing.T) {
	got, err := WithholdingTax(100000, 1500, 1000, 800)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 22123.23 {
		t.Fatalf("expected 22123.23, got %v", got)
	}

	ntc, err := NetTaxableCompensation(100000, 1500, 1000, 800)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ntc != 104300 {
		t.Fatalf("expected ntc 104300, got %v", ntc)
	}
	if tier := TierFor(ntc); tier.Subtrahend != 66667 {
		t.Fatalf("expected 66,667 tier, got %+v", tier)
	}
}

func TestComputeBreakdown(t *testing.T) {
	b, err := Compute(35000, 1500, 1000, 800)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Breakdown{SSS: 1750, PhilHealth: 1750, PagIbig: 200, WithholdingTax: 3741.75}
	if b != want {
		t.Fatalf("expected %+v, got %+v", want, b)
	}
	if b.Total() != 7441.75 {
		t.Fatalf("expected total 7441.75, got %v", b.Total())
	}
}

func TestRejectsNegativeAndNonFinite(t *testing.T) {
	checks := map[string]func() error{
		"sss":        func() error { _, err := SSS(-1); return err },
		"philhealth": func() error { _, err := PhilHealth(-0.01); return err },
		"pagibig":    func() error { _, err := PagIbig(math.Inf(-1)); return err },
		"tax":        func() error { _, err := WithholdingTax(-5000); return err },
		"allowance":  func() error { _, err := WithholdingTax(5000, -1); return err },
		"nan":        func() error { _, err := Compute(math.NaN()); return err },
	}
	for name, check := range checks {
		err := check()
		if !errors.Is(err, apperr.ErrValidation) {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}
}
