package formulas

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	return diff <= 1e-9*math.Max(math.Abs(a), math.Abs(b))
}

func TestPriceGeometricGrowth(t *testing.T) {
	// Each additional owned unit multiplies the price by the growth factor.
	for owned := 0; owned < 50; owned++ {
		p := Price(15, PriceGrowthFactor, owned)
		next := Price(15, PriceGrowthFactor, owned+1)
		if !almostEqual(next, p*PriceGrowthFactor) {
			t.Errorf("owned=%d: next price %v, want %v", owned, next, p*PriceGrowthFactor)
		}
	}
}

func TestPriceAtZeroOwned(t *testing.T) {
	if got := Price(100, 1.15, 0); got != 100 {
		t.Errorf("price at zero owned: got %v, want base price 100", got)
	}
}

func TestBulkPrice(t *testing.T) {
	// Buying three one at a time must cost the same as one bulk call.
	single := Price(15, 1.15, 0) + Price(15, 1.15, 1) + Price(15, 1.15, 2)
	bulk := BulkPrice(15, 1.15, 0, 3)
	if !almostEqual(single, bulk) {
		t.Errorf("bulk price %v, want %v", bulk, single)
	}
}

// TestGeneratedBasePriceIndexZero pins the formula at n=0: no special case,
// so it yields 9. The hand-tuned table overrides index 0 to 15 instead.
func TestGeneratedBasePriceIndexZero(t *testing.T) {
	if got := GeneratedBasePrice(0); got != 9 {
		t.Errorf("GeneratedBasePrice(0) = %v, want 9", got)
	}
	if got := GeneratedBaseCPS(0); got != 0.1 {
		t.Errorf("GeneratedBaseCPS(0) = %v, want the fixed 0.1", got)
	}
}

// TestGeneratedCurvesMatchReferenceTable checks the generated formulas
// against the hand-tuned table for indices 1..15. Index 0 is hand-tuned in
// the table and excluded here.
func TestGeneratedCurvesMatchReferenceTable(t *testing.T) {
	reference := []struct {
		n     int
		price float64
		cps   float64
	}{
		{1, 100, 1},
		{2, 1_100, 8},
		{3, 12_000, 47},
		{4, 130_000, 260},
		{5, 1.4e6, 1_400},
		{6, 2e7, 7_800},
		{7, 3.3e8, 44_000},
		{8, 5.1e9, 260_000},
		{9, 7.5e10, 1.6e6},
		{10, 1e12, 1e7},
		{11, 1.4e13, 6.5e7},
		{12, 1.7e14, 4.3e8},
		{13, 2.1e15, 2.9e9},
		{14, 2.6e16, 2.1e10},
		{15, 3.1e17, 1.5e11},
	}

	for _, ref := range reference {
		if got := GeneratedBasePrice(ref.n); !withinTwoSigDigits(got, ref.price) {
			t.Errorf("GeneratedBasePrice(%d) = %v, want ~%v", ref.n, got, ref.price)
		}
		if got := GeneratedBaseCPS(ref.n); !withinTwoSigDigits(got, ref.cps) {
			t.Errorf("GeneratedBaseCPS(%d) = %v, want ~%v", ref.n, got, ref.cps)
		}
	}
}

// withinTwoSigDigits allows the generated curve to differ from the table in
// the third significant digit, the table's own precision.
func withinTwoSigDigits(got, want float64) bool {
	if want == 0 {
		return got == 0
	}
	return math.Abs(got-want)/want < 0.05
}

func TestGeneratedCurvesMonotonic(t *testing.T) {
	for n := 1; n < 30; n++ {
		if GeneratedBasePrice(n+1) <= GeneratedBasePrice(n) {
			t.Errorf("price curve not increasing at n=%d", n)
		}
		if GeneratedBaseCPS(n+1) <= GeneratedBaseCPS(n) {
			t.Errorf("cps curve not increasing at n=%d", n)
		}
	}
}

func TestPrestigeThresholds(t *testing.T) {
	cases := []struct {
		lifetime float64
		want     int
	}{
		{0, 0},
		{1e11, 0},
		{1e12 - 1, 0},
		{1e12, 1},
		{8e12, 2},
		{27e12, 3},
		{1e15, 10},
		{-5, 0},
	}
	for _, c := range cases {
		if got := Prestige(c.lifetime); got != c.want {
			t.Errorf("Prestige(%v) = %d, want %d", c.lifetime, got, c.want)
		}
	}
}

func TestCookiesForPrestigeRoundTrip(t *testing.T) {
	for level := 1; level <= 100; level++ {
		needed := CookiesForPrestige(level)
		// A hair above the threshold always grants the level; a hair below
		// never does. Exact-threshold behavior is left to float rounding.
		if got := Prestige(needed * 1.000001); got < level {
			t.Errorf("level %d: Prestige just above threshold = %d", level, got)
		}
		if got := Prestige(needed * 0.999); got >= level {
			t.Errorf("level %d: reached early at %v", level, needed*0.999)
		}
	}
}
