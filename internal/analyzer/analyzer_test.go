package analyzer

import (
	"testing"

	"github.com/rafael-rodrigues-dsv/component-betting-advisor-app/pkg/models"
)

func TestAnalyzeWrapsFixtureMetadata(t *testing.T) {
	a := NewAnalyzer()

	snapshot := models.OddsSnapshot{
		Bookmakers: map[string]models.BookmakerOdds{
			"bet365": {Home: 1.65, Draw: 3.80, Away: 5.50},
		},
	}

	prediction := a.Analyze("fx-1001", "Flamengo", "Palmeiras", "Brasileirão Série A",
		"2026-09-05", snapshot, models.StrategyConservative)

	if prediction.MatchID != "fx-1001" || prediction.HomeTeam != "Flamengo" ||
		prediction.AwayTeam != "Palmeiras" || prediction.League != "Brasileirão Série A" {
		t.Errorf("fixture metadata not carried through: %+v", prediction)
	}
	if prediction.Strategy != models.StrategyConservative {
		t.Errorf("strategy = %s, want CONSERVATIVE", prediction.Strategy)
	}
	if len(prediction.Predictions) != 1 {
		t.Fatalf("got %d predictions, want 1", len(prediction.Predictions))
	}
	if best := prediction.Best(); best == nil || best.PredictedOutcome != models.OutcomeHome {
		t.Errorf("Best() = %+v, want the HOME pick", best)
	} else if best.KellyFraction <= 0 {
		t.Errorf("KellyFraction = %v, want positive for a positive-EV pick", best.KellyFraction)
	}

	margin, ok := prediction.BookmakerMargins["bet365"]
	if !ok || margin < 0.04 || margin > 0.06 {
		t.Errorf("bet365 margin = %v (%v), want ~0.05", margin, ok)
	}
}

func TestAnalyzeEmptySnapshotIsNotAnError(t *testing.T) {
	a := NewAnalyzer()

	prediction := a.Analyze("fx-1002", "A", "B", "L", "2026-09-05",
		models.OddsSnapshot{}, models.StrategyValueBet)

	if prediction.Predictions == nil {
		t.Fatal("predictions is nil, want an empty list")
	}
	if len(prediction.Predictions) != 0 {
		t.Errorf("got %d predictions, want 0", len(prediction.Predictions))
	}
	if prediction.Best() != nil {
		t.Errorf("Best() = %+v, want nil", prediction.Best())
	}
}

func TestAnalyzeUnknownStrategy(t *testing.T) {
	a := NewAnalyzer()

	snapshot := models.OddsSnapshot{
		Bookmakers: map[string]models.BookmakerOdds{
			"bet365": {Home: 1.65, Draw: 3.80, Away: 5.50},
		},
	}

	prediction := a.Analyze("fx-1003", "A", "B", "L", "2026-09-05", snapshot, models.Strategy("YOLO"))

	if len(prediction.Predictions) != 0 {
		t.Errorf("unknown strategy produced %d predictions, want 0", len(prediction.Predictions))
	}
}

// The prediction list invariant: unique (market, outcome) keys, ordered
// by EV descending, regardless of how many bookmakers quote each pair.
func TestAnalyzeDeduplicatesAcrossBookmakers(t *testing.T) {
	a := NewAnalyzer()

	snapshot := models.OddsSnapshot{
		Bookmakers: map[string]models.BookmakerOdds{
			"bet365":   {Home: 1.70, Draw: 3.60, Away: 4.80, Under25: floatPtr(1.60)},
			"betano":   {Home: 1.75, Draw: 3.60, Away: 4.80, Under25: floatPtr(1.55)},
			"pinnacle": {Home: 1.72, Draw: 3.55, Away: 4.90},
		},
	}

	prediction := a.Analyze("fx-1004", "A", "B", "L", "2026-09-05", snapshot, models.StrategyConservative)

	seen := make(map[candidateKey]bool)
	for i, p := range prediction.Predictions {
		key := candidateKey{Market: p.Market, Outcome: p.PredictedOutcome}
		if seen[key] {
			t.Errorf("duplicate key %v in prediction list", key)
		}
		seen[key] = true

		if i > 0 && prediction.Predictions[i-1].ExpectedValue < p.ExpectedValue {
			t.Errorf("predictions not ordered by EV descending at index %d", i)
		}
	}

	// HOME must come from the bookmaker with the highest EV (betano at 1.75).
	for _, p := range prediction.Predictions {
		if p.PredictedOutcome == models.OutcomeHome && p.Bookmaker != "betano" {
			t.Errorf("HOME pick from %s at %.2f, want betano at 1.75", p.Bookmaker, p.Odds)
		}
	}
}
