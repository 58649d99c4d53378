package analyzer

import (
	"math"
	"testing"

	"github.com/rafael-rodrigues-dsv/component-betting-advisor-app/pkg/models"
	"github.com/rafael-rodrigues-dsv/component-betting-advisor-app/pkg/oddsmath"
)

func TestConservativeStrategyBand(t *testing.T) {
	snapshot := models.OddsSnapshot{
		Bookmakers: map[string]models.BookmakerOdds{
			"bet365": {
				Home:    1.80, // in band
				Draw:    3.60,
				Away:    4.50,           // out of band
				Under25: floatPtr(1.50), // in band
				BTTSNo:  floatPtr(1.15), // below band
				Over25:  floatPtr(2.40), // never a conservative target
				BTTSYes: floatPtr(2.10), // never a conservative target
			},
		},
	}

	candidates := NewConservativeStrategy().Generate(snapshot)

	if len(candidates) != 2 {
		t.Fatalf("got %d candidates, want 2 (HOME and UNDER_2.5): %+v", len(candidates), candidates)
	}

	for _, c := range candidates {
		if c.Odds < 1.20 || c.Odds > 1.80 {
			t.Errorf("candidate %s/%s at odds %.2f outside 1.20-1.80 band",
				c.Market, c.PredictedOutcome, c.Odds)
		}
		if c.ExpectedValue <= 0.01 {
			t.Errorf("candidate %s/%s with EV %.4f under the 1%% floor",
				c.Market, c.PredictedOutcome, c.ExpectedValue)
		}
		if c.Reason == "" {
			t.Errorf("candidate %s/%s has no reason", c.Market, c.PredictedOutcome)
		}
	}
}

func TestConservativeStrategySkipsDraws(t *testing.T) {
	snapshot := models.OddsSnapshot{
		Bookmakers: map[string]models.BookmakerOdds{
			"bet365": {Home: 2.50, Draw: 1.70, Away: 4.00}, // draw priced in band
		},
	}

	for _, c := range NewConservativeStrategy().Generate(snapshot) {
		if c.PredictedOutcome == models.OutcomeDraw {
			t.Errorf("conservative profile emitted a DRAW candidate: %+v", c)
		}
	}
}

func TestConservativeStrategyTiers(t *testing.T) {
	// Odds 1.80: EV = 0.03*1.80 = 0.054 > 0.05 -> STRONG_BUY.
	// Odds 1.50: EV = 0.045 -> BUY.
	snapshot := models.OddsSnapshot{
		Bookmakers: map[string]models.BookmakerOdds{
			"bet365": {Home: 1.80, Draw: 3.80, Away: 4.20, Under25: floatPtr(1.50)},
		},
	}

	candidates := NewConservativeStrategy().Generate(snapshot)
	if len(candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(candidates))
	}

	byOutcome := map[string]models.MarketPrediction{}
	for _, c := range candidates {
		byOutcome[c.PredictedOutcome] = c
	}

	if rec := byOutcome[models.OutcomeHome].Recommendation; rec != models.RecommendationStrongBuy {
		t.Errorf("HOME at 1.80 recommendation = %s, want STRONG_BUY", rec)
	}
	if rec := byOutcome[models.OutcomeUnder25].Recommendation; rec != models.RecommendationBuy {
		t.Errorf("UNDER_2.5 at 1.50 recommendation = %s, want BUY", rec)
	}
}

func TestBalancedStrategyBands(t *testing.T) {
	snapshot := models.OddsSnapshot{
		Bookmakers: map[string]models.BookmakerOdds{
			"bet365": {
				Home:    2.00,           // in 1X2 band
				Draw:    3.40,           // in 1X2 band
				Away:    3.80,           // above 1X2 band
				Over25:  floatPtr(2.20), // in props band
				Under25: floatPtr(2.60), // above props band
			},
		},
	}

	candidates := NewBalancedStrategy().Generate(snapshot)

	want := map[string]models.Recommendation{
		models.OutcomeHome:   models.RecommendationBuy,  // EV 0.060
		models.OutcomeDraw:   models.RecommendationBuy,  // EV 0.051
		models.OutcomeOver25: models.RecommendationHold, // EV 0.033
	}

	if len(candidates) != len(want) {
		t.Fatalf("got %d candidates, want %d: %+v", len(candidates), len(want), candidates)
	}

	for _, c := range candidates {
		wantRec, ok := want[c.PredictedOutcome]
		if !ok {
			t.Errorf("unexpected candidate %s/%s", c.Market, c.PredictedOutcome)
			continue
		}
		if c.Recommendation != wantRec {
			t.Errorf("%s recommendation = %s, want %s", c.PredictedOutcome, c.Recommendation, wantRec)
		}
		if c.ExpectedValue <= 0.02 {
			t.Errorf("%s EV %.4f under the 2%% floor", c.PredictedOutcome, c.ExpectedValue)
		}
	}
}

func TestValueBetStrategyWidePriceGap(t *testing.T) {
	// bet365 home=2.00, betano home=2.50: 25% spread clears both the 3%
	// detection floor and the 5% profile floor.
	snapshot := models.OddsSnapshot{
		Bookmakers: map[string]models.BookmakerOdds{
			"bet365": {Home: 2.00, Draw: 3.30, Away: 3.60},
			"betano": {Home: 2.50, Draw: 3.30, Away: 3.60},
		},
	}

	candidates := NewValueBetStrategy().Generate(snapshot)

	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1: %+v", len(candidates), candidates)
	}

	c := candidates[0]
	if c.Market != models.MarketMatchWinner || c.PredictedOutcome != models.OutcomeHome {
		t.Errorf("candidate on %s/%s, want MATCH_WINNER/HOME", c.Market, c.PredictedOutcome)
	}
	if c.Bookmaker != "betano" || c.Odds != 2.50 {
		t.Errorf("candidate at %s/%.2f, want betano/2.50", c.Bookmaker, c.Odds)
	}
	// Consensus confidence 0.5 at odds 2.50 -> EV 0.25 -> STRONG_BUY.
	if math.Abs(c.Confidence-0.5) > 1e-9 {
		t.Errorf("confidence = %f, want 0.5", c.Confidence)
	}
	if math.Abs(c.ExpectedValue-0.25) > 1e-9 {
		t.Errorf("EV = %f, want 0.25", c.ExpectedValue)
	}
	if c.Recommendation != models.RecommendationStrongBuy {
		t.Errorf("recommendation = %s, want STRONG_BUY", c.Recommendation)
	}
}

func TestValueBetStrategyNarrowSpread(t *testing.T) {
	// 2% spread: no discrepancy, no candidate.
	snapshot := models.OddsSnapshot{
		Bookmakers: map[string]models.BookmakerOdds{
			"bet365": {Home: 2.00, Draw: 3.30, Away: 3.60},
			"betano": {Home: 2.04, Draw: 3.30, Away: 3.60},
		},
	}

	if got := NewValueBetStrategy().Generate(snapshot); len(got) != 0 {
		t.Errorf("got %d candidates, want none for a 2%% spread", len(got))
	}
}

func TestValueBetStrategyDetectionWithoutProfileFloor(t *testing.T) {
	// A 4% spread is a detectable discrepancy but stays under the
	// profile's 5% floor, so it must not become a prediction.
	snapshot := models.OddsSnapshot{
		Bookmakers: map[string]models.BookmakerOdds{
			"bet365": {Home: 2.00, Draw: 3.30, Away: 3.60},
			"betano": {Home: 2.08, Draw: 3.30, Away: 3.60},
		},
	}

	if got := FindDiscrepancies(snapshot); len(got) != 1 {
		t.Fatalf("got %d discrepancies, want 1 at the 3%% floor", len(got))
	}
	if got := NewValueBetStrategy().Generate(snapshot); len(got) != 0 {
		t.Errorf("got %d candidates, want none under the 5%% profile floor", len(got))
	}
}

func TestValueBetStrategySingleBookmaker(t *testing.T) {
	snapshot := models.OddsSnapshot{
		Bookmakers: map[string]models.BookmakerOdds{
			"bet365": {Home: 2.00, Draw: 3.30, Away: 3.60},
		},
	}

	if got := NewValueBetStrategy().Generate(snapshot); len(got) != 0 {
		t.Errorf("got %d candidates, want none with one bookmaker", len(got))
	}
}

func TestAggressiveStrategyBands(t *testing.T) {
	snapshot := models.OddsSnapshot{
		Bookmakers: map[string]models.BookmakerOdds{
			"bet365": {
				Home:    3.00,           // underdog, conf 0.348
				Draw:    3.40,           // conf 0.309
				Away:    2.10,           // favorite, below the 3.00 floor
				Over25:  floatPtr(2.50), // props floor, conf 0.415
				BTTSYes: floatPtr(2.10), // below the 2.50 props floor
			},
		},
	}

	candidates := NewAggressiveStrategy().Generate(snapshot)

	for _, c := range candidates {
		switch c.Market {
		case models.MarketMatchWinner:
			if c.Odds < 3.00 {
				t.Errorf("1X2 candidate at odds %.2f under the 3.00 floor", c.Odds)
			}
		case models.MarketOverUnder, models.MarketBothTeamsScore:
			if c.Odds < 2.50 {
				t.Errorf("%s candidate at odds %.2f under the 2.50 floor", c.Market, c.Odds)
			}
		}
		if c.ExpectedValue <= -0.05 {
			t.Errorf("candidate %s EV %.4f under the -5%% floor", c.PredictedOutcome, c.ExpectedValue)
		}
	}

	outcomes := make(map[string]bool)
	for _, c := range candidates {
		outcomes[c.PredictedOutcome] = true
	}
	for _, want := range []string{models.OutcomeHome, models.OutcomeDraw, models.OutcomeOver25} {
		if !outcomes[want] {
			t.Errorf("missing expected candidate %s: %+v", want, candidates)
		}
	}
	if outcomes[models.OutcomeAway] {
		t.Error("AWAY at 2.10 should be under the 1X2 odds floor")
	}
	if outcomes[models.OutcomeYes] {
		t.Error("BTTS YES at 2.10 should be under the props odds floor")
	}
}

func TestAggressiveStrategyConfidenceFloor(t *testing.T) {
	// Odds 5.00 implies 20% confidence, under the 25% floor.
	snapshot := models.OddsSnapshot{
		Bookmakers: map[string]models.BookmakerOdds{
			"bet365": {Home: 5.00, Draw: 5.00, Away: 5.00},
		},
	}

	if got := NewAggressiveStrategy().Generate(snapshot); len(got) != 0 {
		t.Errorf("got %d candidates, want none under the confidence floor", len(got))
	}
}

func TestAggressiveStrategyZeroEVIsHold(t *testing.T) {
	// Odds 4.00: raw implied confidence 0.25, EV exactly 0 -> HOLD.
	snapshot := models.OddsSnapshot{
		Bookmakers: map[string]models.BookmakerOdds{
			"bet365": {Home: 4.00, Draw: 6.00, Away: 1.50},
		},
	}

	candidates := NewAggressiveStrategy().Generate(snapshot)
	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1: %+v", len(candidates), candidates)
	}
	if candidates[0].Recommendation != models.RecommendationHold {
		t.Errorf("recommendation = %s, want HOLD at zero EV", candidates[0].Recommendation)
	}
}

// Degraded input: a non-positive odd yields confidence 0 and EV -1,
// which every profile's EV floor filters out without erroring.
func TestStrategiesDegradeInvalidOdds(t *testing.T) {
	snapshot := models.OddsSnapshot{
		Bookmakers: map[string]models.BookmakerOdds{
			"bet365": {Home: 0, Draw: -1.5, Away: 0},
		},
	}

	for _, gen := range []CandidateGenerator{
		NewConservativeStrategy(),
		NewBalancedStrategy(),
		NewAggressiveStrategy(),
	} {
		if got := gen.Generate(snapshot); len(got) != 0 {
			t.Errorf("%s emitted %d candidates for invalid odds", gen.Strategy(), len(got))
		}
	}

	if ev := oddsmath.ExpectedValue(oddsmath.Confidence(0), 0); ev != -1.0 {
		t.Errorf("degraded EV = %f, want -1", ev)
	}
}
