package analyzer

import (
	"math"
	"testing"

	"github.com/rafael-rodrigues-dsv/component-betting-advisor-app/pkg/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestFindDiscrepancies(t *testing.T) {
	snapshot := models.OddsSnapshot{
		Bookmakers: map[string]models.BookmakerOdds{
			"bet365": {Home: 2.00, Draw: 3.30, Away: 3.60},
			"betano": {Home: 2.50, Draw: 3.32, Away: 3.60},
		},
	}

	discrepancies := FindDiscrepancies(snapshot)

	if len(discrepancies) != 1 {
		t.Fatalf("got %d discrepancies, want 1 (only HOME spreads wide enough)", len(discrepancies))
	}

	disc := discrepancies[0]
	if disc.Market != models.MarketMatchWinner || disc.Outcome != models.OutcomeHome {
		t.Errorf("discrepancy on %s/%s, want MATCH_WINNER/HOME", disc.Market, disc.Outcome)
	}
	if disc.BestBookmaker != "betano" || disc.BestOdd != 2.50 {
		t.Errorf("best = %s at %.2f, want betano at 2.50", disc.BestBookmaker, disc.BestOdd)
	}
	if disc.WorstBookmaker != "bet365" || disc.WorstOdd != 2.00 {
		t.Errorf("worst = %s at %.2f, want bet365 at 2.00", disc.WorstBookmaker, disc.WorstOdd)
	}
	if math.Abs(disc.DiffPercent-25.0) > 1e-9 {
		t.Errorf("diff%% = %f, want 25.0", disc.DiffPercent)
	}
	if math.Abs(disc.ImpliedProb-0.4) > 1e-9 {
		t.Errorf("implied prob = %f, want 0.4 (1/best)", disc.ImpliedProb)
	}
}

func TestFindDiscrepanciesBelowFloor(t *testing.T) {
	// 2.00 vs 2.04 is a 2% spread, under the 3% detection floor.
	snapshot := models.OddsSnapshot{
		Bookmakers: map[string]models.BookmakerOdds{
			"bet365": {Home: 2.00, Draw: 3.30, Away: 3.60},
			"betano": {Home: 2.04, Draw: 3.30, Away: 3.60},
		},
	}

	if got := FindDiscrepancies(snapshot); len(got) != 0 {
		t.Errorf("got %d discrepancies, want none below the 3%% floor", len(got))
	}
}

func TestFindDiscrepanciesRequiresTwoBookmakers(t *testing.T) {
	snapshot := models.OddsSnapshot{
		Bookmakers: map[string]models.BookmakerOdds{
			"bet365": {Home: 2.00, Draw: 3.30, Away: 3.60},
		},
	}

	if got := FindDiscrepancies(snapshot); got != nil {
		t.Errorf("got %+v, want nil with a single bookmaker", got)
	}
}

func TestFindDiscrepanciesOptionalMarkets(t *testing.T) {
	// Only one book quotes OVER 2.5, so that pair cannot be compared;
	// BTTS YES is quoted by both and spreads 10%.
	snapshot := models.OddsSnapshot{
		Bookmakers: map[string]models.BookmakerOdds{
			"bet365": {Home: 1.90, Draw: 3.40, Away: 4.00, Over25: floatPtr(2.10), BTTSYes: floatPtr(2.00)},
			"betano": {Home: 1.90, Draw: 3.40, Away: 4.00, BTTSYes: floatPtr(2.20)},
		},
	}

	discrepancies := FindDiscrepancies(snapshot)

	if len(discrepancies) != 1 {
		t.Fatalf("got %d discrepancies, want 1", len(discrepancies))
	}
	if discrepancies[0].Market != models.MarketBothTeamsScore || discrepancies[0].Outcome != models.OutcomeYes {
		t.Errorf("discrepancy on %s/%s, want BOTH_TEAMS_SCORE/YES",
			discrepancies[0].Market, discrepancies[0].Outcome)
	}
}
