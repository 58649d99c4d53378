package analyzer

import (
	"github.com/rafael-rodrigues-dsv/component-betting-advisor-app/pkg/models"
	"github.com/rafael-rodrigues-dsv/component-betting-advisor-app/pkg/oddsmath"
)

// Minimum spread (in percent of the worst price) for a pricing
// disagreement to count as a discrepancy at all.
const discrepancyDetectionFloor = 3.0

// Discrepancy records a pricing disagreement between bookmakers on one
// market/outcome pair.
type Discrepancy struct {
	Market         models.Market `json:"market"`
	Outcome        string        `json:"outcome"`
	BestOdd        float64       `json:"best_odd"`
	BestBookmaker  string        `json:"best_bookmaker"`
	WorstOdd       float64       `json:"worst_odd"`
	WorstBookmaker string        `json:"worst_bookmaker"`
	Diff           float64       `json:"diff"`
	DiffPercent    float64       `json:"diff_percentage"`
	ImpliedProb    float64       `json:"implied_prob"` // of the best odd
}

// FindDiscrepancies compares every bookmaker's price on each of the
// seven market/outcome pairs and returns the pairs whose best and worst
// prices differ by at least the detection floor. A snapshot with fewer
// than two bookmakers yields nothing.
func FindDiscrepancies(snapshot models.OddsSnapshot) []Discrepancy {
	if len(snapshot.Bookmakers) < 2 {
		return nil
	}

	books := sortedBookmakers(snapshot)

	var discrepancies []Discrepancy
	for _, pair := range allMarketOutcomes {
		var (
			quoted              int
			bestBook, worstBook string
			bestOdd, worstOdd   float64
		)

		for _, book := range books {
			odd, offered := snapshot.Bookmakers[book].Odd(pair.Market, pair.Outcome)
			if !offered {
				continue
			}
			if quoted == 0 || odd > bestOdd {
				bestBook, bestOdd = book, odd
			}
			if quoted == 0 || odd < worstOdd {
				worstBook, worstOdd = book, odd
			}
			quoted++
		}

		if quoted < 2 {
			continue
		}

		diff := bestOdd - worstOdd
		diffPercent := diff / worstOdd * 100

		if diffPercent < discrepancyDetectionFloor {
			continue
		}

		discrepancies = append(discrepancies, Discrepancy{
			Market:         pair.Market,
			Outcome:        pair.Outcome,
			BestOdd:        bestOdd,
			BestBookmaker:  bestBook,
			WorstOdd:       worstOdd,
			WorstBookmaker: worstBook,
			Diff:           diff,
			DiffPercent:    diffPercent,
			ImpliedProb:    oddsmath.ImpliedProbability(bestOdd),
		})
	}

	return discrepancies
}
