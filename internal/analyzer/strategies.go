package analyzer

import (
	"fmt"

	"github.com/rafael-rodrigues-dsv/component-betting-advisor-app/pkg/models"
	"github.com/rafael-rodrigues-dsv/component-betting-advisor-app/pkg/oddsmath"
)

// ConservativeStrategy backs safe favorites: narrow odd band, the
// low-variance side of totals and BTTS, and a small positive EV floor.
type ConservativeStrategy struct{}

// NewConservativeStrategy creates the conservative profile.
func NewConservativeStrategy() *ConservativeStrategy { return &ConservativeStrategy{} }

// Strategy returns the profile's strategy tag.
func (s *ConservativeStrategy) Strategy() models.Strategy { return models.StrategyConservative }

// Generate scans every bookmaker for favorites in the 1.20-1.80 band on
// HOME, AWAY, UNDER 2.5 and BTTS NO, keeping candidates with EV > 1%.
// Draws are deliberately skipped: the band never prices them anyway.
func (s *ConservativeStrategy) Generate(snapshot models.OddsSnapshot) []models.MarketPrediction {
	const (
		bandLow  = 1.20
		bandHigh = 1.80
		minEV    = 0.01
	)

	targets := []marketOutcome{
		{models.MarketMatchWinner, models.OutcomeHome},
		{models.MarketMatchWinner, models.OutcomeAway},
		{models.MarketOverUnder, models.OutcomeUnder25},
		{models.MarketBothTeamsScore, models.OutcomeNo},
	}

	var candidates []models.MarketPrediction
	for _, book := range sortedBookmakers(snapshot) {
		odds := snapshot.Bookmakers[book]
		for _, target := range targets {
			odd, offered := odds.Odd(target.Market, target.Outcome)
			if !offered || odd < bandLow || odd > bandHigh {
				continue
			}

			confidence := oddsmath.Confidence(odd)
			ev := oddsmath.ExpectedValue(confidence, odd)
			if ev <= minEV {
				continue
			}

			recommendation := models.RecommendationBuy
			if ev > 0.05 {
				recommendation = models.RecommendationStrongBuy
			}

			candidates = append(candidates, models.MarketPrediction{
				Market:           target.Market,
				PredictedOutcome: target.Outcome,
				Confidence:       confidence,
				Odds:             odd,
				ExpectedValue:    ev,
				Bookmaker:        book,
				Recommendation:   recommendation,
				Reason:           fmt.Sprintf("Safe favorite at %.1f%% confidence", confidence*100),
			})
		}
	}

	return candidates
}

// BalancedStrategy trades off risk and return: mid-band odds across all
// seven market/outcome pairs with a 2% EV floor.
type BalancedStrategy struct{}

// NewBalancedStrategy creates the balanced profile.
func NewBalancedStrategy() *BalancedStrategy { return &BalancedStrategy{} }

// Strategy returns the profile's strategy tag.
func (s *BalancedStrategy) Strategy() models.Strategy { return models.StrategyBalanced }

// Generate accepts 1X2 prices between 1.50 and 3.50 and totals/BTTS
// prices between 1.50 and 2.50, keeping candidates with EV > 2%.
func (s *BalancedStrategy) Generate(snapshot models.OddsSnapshot) []models.MarketPrediction {
	const (
		bandLow       = 1.50
		bandHigh1X2   = 3.50
		bandHighProps = 2.50
		minEV         = 0.02
	)

	var candidates []models.MarketPrediction
	for _, book := range sortedBookmakers(snapshot) {
		odds := snapshot.Bookmakers[book]
		for _, pair := range allMarketOutcomes {
			odd, offered := odds.Odd(pair.Market, pair.Outcome)
			if !offered {
				continue
			}

			bandHigh := bandHighProps
			if pair.Market == models.MarketMatchWinner {
				bandHigh = bandHigh1X2
			}
			if odd < bandLow || odd > bandHigh {
				continue
			}

			confidence := oddsmath.Confidence(odd)
			ev := oddsmath.ExpectedValue(confidence, odd)
			if ev <= minEV {
				continue
			}

			recommendation := models.RecommendationHold
			if ev > 0.05 {
				recommendation = models.RecommendationBuy
			}

			candidates = append(candidates, models.MarketPrediction{
				Market:           pair.Market,
				PredictedOutcome: pair.Outcome,
				Confidence:       confidence,
				Odds:             odd,
				ExpectedValue:    ev,
				Bookmaker:        book,
				Recommendation:   recommendation,
				Reason:           fmt.Sprintf("Balanced pick with %.1f%% EV", ev*100),
			})
		}
	}

	return candidates
}

// ValueBetStrategy backs cross-bookmaker mispricing: it only emits
// candidates from discrepancies wide enough to suggest the best price is
// an outlier. Confidence is the implied probability of the consensus
// (lowest) price, so EV at the best price equals the price gap itself.
type ValueBetStrategy struct{}

// NewValueBetStrategy creates the value-bet profile.
func NewValueBetStrategy() *ValueBetStrategy { return &ValueBetStrategy{} }

// Strategy returns the profile's strategy tag.
func (s *ValueBetStrategy) Strategy() models.Strategy { return models.StrategyValueBet }

// Generate requires at least two bookmakers, a discrepancy of 5% or
// more, and EV > 5% at the best available price.
func (s *ValueBetStrategy) Generate(snapshot models.OddsSnapshot) []models.MarketPrediction {
	const (
		minDiffPercent = 5.0
		minEV          = 0.05
	)

	var candidates []models.MarketPrediction
	for _, disc := range FindDiscrepancies(snapshot) {
		if disc.DiffPercent < minDiffPercent {
			continue
		}

		confidence := oddsmath.ImpliedProbability(disc.WorstOdd)
		ev := oddsmath.ExpectedValue(confidence, disc.BestOdd)
		if ev <= minEV {
			continue
		}

		recommendation := models.RecommendationBuy
		if ev > 0.10 {
			recommendation = models.RecommendationStrongBuy
		}

		candidates = append(candidates, models.MarketPrediction{
			Market:           disc.Market,
			PredictedOutcome: disc.Outcome,
			Confidence:       confidence,
			Odds:             disc.BestOdd,
			ExpectedValue:    ev,
			Bookmaker:        disc.BestBookmaker,
			Recommendation:   recommendation,
			Reason:           fmt.Sprintf("Value bet: %.1f%% price gap between books (EV %.1f%%)", disc.DiffPercent, ev*100),
		})
	}

	return candidates
}

// AggressiveStrategy backs underdogs and high-scoring outcomes,
// accepting slightly negative EV in exchange for payout potential.
type AggressiveStrategy struct{}

// NewAggressiveStrategy creates the aggressive profile.
func NewAggressiveStrategy() *AggressiveStrategy { return &AggressiveStrategy{} }

// Strategy returns the profile's strategy tag.
func (s *AggressiveStrategy) Strategy() models.Strategy { return models.StrategyAggressive }

// Generate accepts 1X2 underdogs at odds >= 3.00 with confidence >= 25%,
// and OVER 2.5 / BTTS YES at odds >= 2.50 with confidence >= 30%.
// Candidates survive down to EV > -5%.
func (s *AggressiveStrategy) Generate(snapshot models.OddsSnapshot) []models.MarketPrediction {
	const (
		minOdd1X2    = 3.00
		minOddProps  = 2.50
		minConf1X2   = 0.25
		minConfProps = 0.30
		minEV        = -0.05
	)

	targets := []struct {
		marketOutcome
		minOdd  float64
		minConf float64
	}{
		{marketOutcome{models.MarketMatchWinner, models.OutcomeHome}, minOdd1X2, minConf1X2},
		{marketOutcome{models.MarketMatchWinner, models.OutcomeDraw}, minOdd1X2, minConf1X2},
		{marketOutcome{models.MarketMatchWinner, models.OutcomeAway}, minOdd1X2, minConf1X2},
		{marketOutcome{models.MarketOverUnder, models.OutcomeOver25}, minOddProps, minConfProps},
		{marketOutcome{models.MarketBothTeamsScore, models.OutcomeYes}, minOddProps, minConfProps},
	}

	var candidates []models.MarketPrediction
	for _, book := range sortedBookmakers(snapshot) {
		odds := snapshot.Bookmakers[book]
		for _, target := range targets {
			odd, offered := odds.Odd(target.Market, target.Outcome)
			if !offered || odd < target.minOdd {
				continue
			}

			confidence := oddsmath.Confidence(odd)
			if confidence < target.minConf {
				continue
			}

			ev := oddsmath.ExpectedValue(confidence, odd)
			if ev <= minEV {
				continue
			}

			recommendation := models.RecommendationHold
			if ev > 0 {
				recommendation = models.RecommendationBuy
			}

			candidates = append(candidates, models.MarketPrediction{
				Market:           target.Market,
				PredictedOutcome: target.Outcome,
				Confidence:       confidence,
				Odds:             odd,
				ExpectedValue:    ev,
				Bookmaker:        book,
				Recommendation:   recommendation,
				Reason:           fmt.Sprintf("High-potential underdog at %.2f (EV %.1f%%)", odd, ev*100),
			})
		}
	}

	return candidates
}
