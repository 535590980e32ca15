package shared

import "math"

// Round2 rounds an amount to two decimals, the resolution postings carry.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// AmountsEqual compares two amounts at posting resolution.
func AmountsEqual(a, b float64) bool {
	return Round2(a) == Round2(b)
}
