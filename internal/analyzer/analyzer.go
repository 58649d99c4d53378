// Package analyzer turns a bookmaker odds snapshot into ranked market
// predictions under one of four risk strategies.
package analyzer

import (
	"sort"

	"github.com/rafael-rodrigues-dsv/component-betting-advisor-app/pkg/models"
	"github.com/rafael-rodrigues-dsv/component-betting-advisor-app/pkg/oddsmath"
)

// CandidateGenerator produces raw (pre-dedup) prediction candidates for
// one strategy. Candidates that fail a strategy's odd band, confidence
// floor or EV floor are simply absent from the output.
type CandidateGenerator interface {
	Strategy() models.Strategy
	Generate(snapshot models.OddsSnapshot) []models.MarketPrediction
}

// Analyzer orchestrates the strategy generators and the deduplicator
// over a single fixture's odds snapshot.
type Analyzer struct {
	generators map[models.Strategy]CandidateGenerator
}

// NewAnalyzer creates an analyzer with all four strategy profiles
// registered.
func NewAnalyzer() *Analyzer {
	a := &Analyzer{generators: make(map[models.Strategy]CandidateGenerator)}
	for _, gen := range []CandidateGenerator{
		NewConservativeStrategy(),
		NewBalancedStrategy(),
		NewValueBetStrategy(),
		NewAggressiveStrategy(),
	} {
		a.generators[gen.Strategy()] = gen
	}
	return a
}

// Analyze scores every bookmaker and market in the snapshot under the
// given strategy and returns the fixture's prediction. A strategy that
// yields no candidates produces an empty list, not an error.
func (a *Analyzer) Analyze(matchID, homeTeam, awayTeam, league, date string, snapshot models.OddsSnapshot, strategy models.Strategy) models.Prediction {
	var candidates []models.MarketPrediction
	if gen, ok := a.generators[strategy]; ok {
		candidates = gen.Generate(snapshot)
	}

	deduped := Deduplicate(candidates)
	if deduped == nil {
		deduped = []models.MarketPrediction{}
	}

	for i := range deduped {
		deduped[i].KellyFraction = oddsmath.KellyFraction(deduped[i].Confidence, deduped[i].Odds)
	}

	return models.Prediction{
		MatchID:          matchID,
		HomeTeam:         homeTeam,
		AwayTeam:         awayTeam,
		League:           league,
		Date:             date,
		Strategy:         strategy,
		Predictions:      deduped,
		BookmakerMargins: bookmakerMargins(snapshot),
	}
}

// bookmakerMargins computes each bookmaker's 1X2 overround. Bookmakers
// with an incomplete 1X2 line are skipped.
func bookmakerMargins(snapshot models.OddsSnapshot) map[string]float64 {
	if len(snapshot.Bookmakers) == 0 {
		return nil
	}

	margins := make(map[string]float64, len(snapshot.Bookmakers))
	for book, odds := range snapshot.Bookmakers {
		if odds.Home <= 0 || odds.Draw <= 0 || odds.Away <= 0 {
			continue
		}
		margins[book] = oddsmath.Margin(odds.Home, odds.Draw, odds.Away)
	}

	if len(margins) == 0 {
		return nil
	}
	return margins
}

// marketOutcome identifies one of the seven supported market/outcome
// pairs.
type marketOutcome struct {
	Market  models.Market
	Outcome string
}

// allMarketOutcomes enumerates every pair the engine scores, in display
// order.
var allMarketOutcomes = []marketOutcome{
	{models.MarketMatchWinner, models.OutcomeHome},
	{models.MarketMatchWinner, models.OutcomeDraw},
	{models.MarketMatchWinner, models.OutcomeAway},
	{models.MarketOverUnder, models.OutcomeOver25},
	{models.MarketOverUnder, models.OutcomeUnder25},
	{models.MarketBothTeamsScore, models.OutcomeYes},
	{models.MarketBothTeamsScore, models.OutcomeNo},
}

// sortedBookmakers returns the snapshot's bookmaker keys in stable
// order so candidate generation is deterministic.
func sortedBookmakers(snapshot models.OddsSnapshot) []string {
	keys := make([]string, 0, len(snapshot.Bookmakers))
	for key := range snapshot.Bookmakers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
