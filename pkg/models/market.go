package models

import "strings"

// Market is the closed set of betting markets the engine understands.
// Settlement and analysis both dispatch exhaustively on this type, so
// adding a market is a one-place change.
type Market string

const (
	MarketMatchWinner    Market = "MATCH_WINNER"     // 1X2: home, draw, away
	MarketOverUnder      Market = "OVER_UNDER"       // total goals over/under 2.5
	MarketBothTeamsScore Market = "BOTH_TEAMS_SCORE" // both teams to score
)

// ParseMarket normalizes a wire-format market key. "BTTS" is accepted as
// an input alias for BOTH_TEAMS_SCORE for compatibility with older clients.
func ParseMarket(s string) (Market, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MATCH_WINNER":
		return MarketMatchWinner, true
	case "OVER_UNDER":
		return MarketOverUnder, true
	case "BOTH_TEAMS_SCORE", "BTTS":
		return MarketBothTeamsScore, true
	default:
		return "", false
	}
}

// Outcome labels, per market.
const (
	OutcomeHome = "HOME"
	OutcomeDraw = "DRAW"
	OutcomeAway = "AWAY"

	OutcomeOver25  = "OVER_2.5"
	OutcomeUnder25 = "UNDER_2.5"

	OutcomeYes = "YES"
	OutcomeNo  = "NO"
)

// Strategy selects the analysis profile applied to an odds snapshot.
type Strategy string

const (
	StrategyConservative Strategy = "CONSERVATIVE" // safe favorites, narrow odd band
	StrategyBalanced     Strategy = "BALANCED"     // mid-band odds, all markets
	StrategyValueBet     Strategy = "VALUE_BET"    // cross-bookmaker discrepancies
	StrategyAggressive   Strategy = "AGGRESSIVE"   // underdogs, high potential return
)

// ParseStrategy validates a wire-format strategy name.
func ParseStrategy(s string) (Strategy, bool) {
	switch Strategy(strings.ToUpper(strings.TrimSpace(s))) {
	case StrategyConservative:
		return StrategyConservative, true
	case StrategyBalanced:
		return StrategyBalanced, true
	case StrategyValueBet:
		return StrategyValueBet, true
	case StrategyAggressive:
		return StrategyAggressive, true
	default:
		return "", false
	}
}

// Recommendation tiers emitted by the strategy profiles.
type Recommendation string

const (
	RecommendationStrongBuy Recommendation = "STRONG_BUY"
	RecommendationBuy       Recommendation = "BUY"
	RecommendationHold      Recommendation = "HOLD"
	RecommendationAvoid     Recommendation = "AVOID"
)

// IsActionable reports whether the tier is a buy signal.
func (r Recommendation) IsActionable() bool {
	return r == RecommendationBuy || r == RecommendationStrongBuy
}
