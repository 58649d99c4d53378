package models

// MarketPrediction is one scored candidate: a market/outcome pair at a
// specific bookmaker, with the engine's confidence, expected value and
// recommendation tier.
type MarketPrediction struct {
	Market           Market         `json:"market"`
	PredictedOutcome string         `json:"predicted_outcome"`
	Confidence       float64        `json:"confidence"` // estimated win probability, 0..0.95
	Odds             float64        `json:"odds"`
	ExpectedValue    float64        `json:"expected_value"` // confidence*odds - 1
	Bookmaker        string         `json:"bookmaker"`
	Recommendation   Recommendation `json:"recommendation"`
	Reason           string         `json:"reason"`

	// KellyFraction is the suggested stake fraction under the Kelly
	// criterion, 0 for candidates with no positive stake.
	KellyFraction float64 `json:"kelly_fraction,omitempty"`
}

// IsPositiveEV reports whether the candidate beats the fair price.
func (p MarketPrediction) IsPositiveEV() bool {
	return p.ExpectedValue > 0
}

// Prediction is the analysis result for one fixture under one strategy.
// Predictions holds at most one entry per (market, outcome) pair, sorted
// by expected value descending.
type Prediction struct {
	MatchID     string             `json:"match_id"`
	HomeTeam    string             `json:"home_team"`
	AwayTeam    string             `json:"away_team"`
	League      string             `json:"league"`
	Date        string             `json:"date"`
	Strategy    Strategy           `json:"strategy"`
	Predictions []MarketPrediction `json:"predictions"`

	// BookmakerMargins is each bookmaker's 1X2 overround, a quick
	// read on how sharp the snapshot's prices are.
	BookmakerMargins map[string]float64 `json:"bookmaker_margins,omitempty"`
}

// Best returns the top-ranked candidate, used by the ticket pre-fill
// feature, or nil when the strategy produced nothing.
func (p Prediction) Best() *MarketPrediction {
	if len(p.Predictions) == 0 {
		return nil
	}
	return &p.Predictions[0]
}

// HasRecommendations reports whether at least one candidate is a buy.
func (p Prediction) HasRecommendations() bool {
	for _, mp := range p.Predictions {
		if mp.Recommendation.IsActionable() {
			return true
		}
	}
	return false
}
