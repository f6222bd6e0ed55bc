package stats

import (
	"math"
	"testing"
)

// Reference values from standard two-tailed t tables.
func TestTTestPValueAgainstTables(t *testing.T) {
	cases := []struct {
		t, df, want float64
	}{
		{2.0, 10, 0.0734},
		{2.228, 10, 0.05},
		{1.812, 10, 0.10},
		{2.086, 20, 0.05},
		{2.845, 20, 0.01},
		{1.96, 1000, 0.05},
	}

	for _, c := range cases {
		got := TTestPValue(c.t, c.df)
		// Two significant digits of agreement with published tables.
		if math.Abs(got-c.want) > 0.005 {
			t.Errorf("TTestPValue(t=%v, df=%v) = %v, want ≈%v", c.t, c.df, got, c.want)
		}
	}
}

func TestTTestPValueSymmetricInT(t *testing.T) {
	if p1, p2 := TTestPValue(2.5, 12), TTestPValue(-2.5, 12); p1 != p2 {
		t.Errorf("p-value not symmetric in t: %v vs %v", p1, p2)
	}
}

func TestTTestPValueMonotonicInT(t *testing.T) {
	df := 15.0
	prev := 1.1
	for _, tv := range []float64{0, 0.5, 1, 1.5, 2, 3, 5, 10} {
		p := TTestPValue(tv, df)
		if p > prev {
			t.Errorf("p-value not monotonically decreasing in |t|: p(%v) = %v > %v", tv, p, prev)
		}
		prev = p
	}
}

func TestCorrelationPValue(t *testing.T) {
	// n=2 carries no evidence at all.
	if p := CorrelationPValue(0.9, 2); p != 1 {
		t.Errorf("CorrelationPValue with n=2 = %v, want 1", p)
	}

	// A perfect correlation is as significant as it gets.
	if p := CorrelationPValue(1.0, 20); p != 0 {
		t.Errorf("CorrelationPValue with r=1 = %v, want 0", p)
	}

	// No correlation should be wholly unconvincing.
	if p := CorrelationPValue(0, 30); math.Abs(p-1) > 1e-9 {
		t.Errorf("CorrelationPValue with r=0 = %v, want 1", p)
	}

	// Stronger correlation at the same n is more significant.
	pWeak := CorrelationPValue(0.2, 30)
	pStrong := CorrelationPValue(0.7, 30)
	if pStrong >= pWeak {
		t.Errorf("expected p(r=0.7) < p(r=0.2), got %v >= %v", pStrong, pWeak)
	}
}

func TestRegularizedIncompleteBetaBoundaries(t *testing.T) {
	if got := RegularizedIncompleteBeta(2, 3, 0); got != 0 {
		t.Errorf("I_0(2,3) = %v, want 0", got)
	}
	if got := RegularizedIncompleteBeta(2, 3, 1); got != 1 {
		t.Errorf("I_1(2,3) = %v, want 1", got)
	}

	// I_x(1,1) is the uniform CDF.
	if got := RegularizedIncompleteBeta(1, 1, 0.42); math.Abs(got-0.42) > 1e-10 {
		t.Errorf("I_0.42(1,1) = %v, want 0.42", got)
	}

	// Symmetry: I_x(a,b) = 1 - I_{1-x}(b,a).
	a, b, x := 3.5, 1.5, 0.3
	lhs := RegularizedIncompleteBeta(a, b, x)
	rhs := 1 - RegularizedIncompleteBeta(b, a, 1-x)
	if math.Abs(lhs-rhs) > 1e-10 {
		t.Errorf("symmetry identity violated: %v vs %v", lhs, rhs)
	}
}
