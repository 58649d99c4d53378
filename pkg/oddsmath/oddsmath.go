// Package oddsmath provides the probability and expected-value math the
// analysis and settlement engines are built on. All odds are decimal.
package oddsmath

import "math"

// Margin-correction constants. A typical book runs ~6% overround on a
// 1X2 market, which inflates the implied probability of favorites more
// than of underdogs.
const (
	favoriteAdjustment = 0.03  // odds <= 2.00
	midRangeAdjustment = 0.015 // odds <= 3.50
	confidenceCap      = 0.95

	favoriteOddsCeiling = 2.00
	midRangeOddsCeiling = 3.50
)

// ImpliedProbability converts a decimal odd to its raw implied
// probability. Non-positive odds degrade to 0 rather than erroring, so
// malformed input flows through as EV -1 and is filtered downstream.
func ImpliedProbability(odds float64) float64 {
	if odds <= 0 {
		return 0
	}
	return 1.0 / odds
}

// Confidence estimates the win probability behind a quoted odd,
// correcting for the bookmaker's margin:
//
//	odds <= 2.00: implied + 0.03
//	odds <= 3.50: implied + 0.015
//	otherwise:    implied (long odds already price the risk)
//
// The result is capped at 0.95.
func Confidence(odds float64) float64 {
	if odds <= 0 {
		return 0
	}

	implied := 1.0 / odds

	var adjusted float64
	switch {
	case odds <= favoriteOddsCeiling:
		adjusted = implied + favoriteAdjustment
	case odds <= midRangeOddsCeiling:
		adjusted = implied + midRangeAdjustment
	default:
		adjusted = implied
	}

	return math.Min(adjusted, confidenceCap)
}

// ExpectedValue computes EV = probability*odds - 1.
// Positive EV marks a statistically favorable bet.
func ExpectedValue(probability, odds float64) float64 {
	return probability*odds - 1.0
}

// CombinedOdds is the product of all odds in a multi-bet slip.
func CombinedOdds(odds []float64) float64 {
	combined := 1.0
	for _, odd := range odds {
		combined *= odd
	}
	return combined
}

// Margin returns a bookmaker's overround on a 1X2 market: the amount by
// which the implied probabilities sum above 1.
func Margin(home, draw, away float64) float64 {
	return ImpliedProbability(home) + ImpliedProbability(draw) + ImpliedProbability(away) - 1.0
}

// KellyFraction returns the Kelly criterion stake fraction for a bet
// with the given win probability and decimal odds. Returns 0 when the
// inputs cannot support a positive stake.
func KellyFraction(probability, odds float64) float64 {
	if odds <= 1 || probability <= 0 {
		return 0
	}
	return (odds*probability - 1.0) / (odds - 1.0)
}
