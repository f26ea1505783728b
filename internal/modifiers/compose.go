package modifiers

import "time"

// minInverseDenominator keeps Inverse finite when ratios sum near -100%
const minInverseDenominator = 0.1

// SumRatios adds ratio contributions from every source
func SumRatios(ratios ...float64) float64 {
	total := 0.0
	for _, r := range ratios {
		total += r
	}
	return total
}

// Compose applies percentage contributions to a base value.
// Ratios are summed first, then applied once: base * (1 + Σratios).
// The result does not depend on the order of ratios.
func Compose(base float64, ratios ...float64) float64 {
	return base * (1 + SumRatios(ratios...))
}

// Inverse divides base by (1 + Σratios), used where a faster rate shortens a
// channel time
func Inverse(base float64, ratios ...float64) float64 {
	denominator := 1 + SumRatios(ratios...)
	if denominator < minInverseDenominator {
		denominator = minInverseDenominator
	}
	return base / denominator
}

// Flat sums flat contributions directly
func Flat(values ...float64) float64 {
	return SumRatios(values...)
}

// Clamp01 clamps a probability to [0, 1]; NaN becomes 0
func Clamp01(p float64) float64 {
	if p != p || p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// NonNegative floors a composed value at zero
func NonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// Seconds converts a composed seconds value into a Duration, floored at min
func Seconds(seconds, minSeconds float64) time.Duration {
	if seconds < minSeconds {
		seconds = minSeconds
	}
	return time.Duration(seconds * float64(time.Second))
}
