// Package formulas holds the closed-form growth curves of the economy:
// geometric building pricing, the generated base-stat curves for building
// indices beyond the hand-tuned table, and the prestige cube root.
package formulas

import "math"

const (
	// PriceGrowthFactor is the per-unit geometric price multiplier.
	PriceGrowthFactor = 1.15

	// PrestigeBase is the lifetime-cookies denominator of one prestige level.
	PrestigeBase = 1e12

	// PrestigePercentPerLevel is the CPS bonus per prestige level.
	PrestigePercentPerLevel = 0.01

	// baseCPSIndexZero is the fixed rate for index 0; the generated CPS
	// curve is degenerate at n=0 and must not be evaluated there.
	baseCPSIndexZero = 0.1
)

// Price returns the current price of the next unit given the owned count:
// basePrice * growth^owned. It depends on nothing but its arguments.
func Price(basePrice, growth float64, owned int) float64 {
	return basePrice * math.Pow(growth, float64(owned))
}

// BulkPrice returns the total price of buying `amount` successive units
// starting from the owned count.
func BulkPrice(basePrice, growth float64, owned, amount int) float64 {
	total := 0.0
	for i := 0; i < amount; i++ {
		total += Price(basePrice, growth, owned+i)
	}
	return total
}

// GeneratedBaseCPS returns the base production rate for a generated building
// index: ceil(n^(n*0.5+2) * 10) / 10, rounded to two significant digits.
// Index 0 is the fixed constant.
func GeneratedBaseCPS(n int) float64 {
	if n <= 0 {
		return baseCPSIndexZero
	}

	cps := math.Ceil(math.Pow(float64(n), float64(n)*0.5+2)*10) / 10

	// Keep two significant digits, as the reference curve does.
	digits := math.Pow(10, math.Ceil(math.Log10(math.Ceil(cps)))) / 100
	return math.Round(cps/digits) * digits
}

// GeneratedBasePrice returns the base price for a generated building index:
// (n + 9 + (n<5 ? 0 : (n-5)^1.75 * 5)) * 10^n * max(1, n-14). Unlike the CPS
// curve there is no index-0 special case: the formula yields 9 at n=0, and
// the hand-tuned table overrides that to 15. The curve is super-exponential;
// float64 holds it up to roughly index 290.
func GeneratedBasePrice(n int) float64 {
	base := float64(n) + 9
	if n >= 5 {
		base += math.Pow(float64(n-5), 1.75) * 5
	}
	return base * math.Pow(10, float64(n)) * math.Max(1, float64(n-14))
}

// Prestige returns the whole prestige level earned by a lifetime cookie
// total: floor((total / 1e12)^(1/3)).
func Prestige(lifetimeCookies float64) int {
	if lifetimeCookies <= 0 {
		return 0
	}
	return int(math.Cbrt(lifetimeCookies / PrestigeBase))
}

// CookiesForPrestige returns the lifetime total required for a prestige level.
func CookiesForPrestige(level int) float64 {
	l := float64(level)
	return l * l * l * PrestigeBase
}
