package analyzer

import (
	"sort"

	"github.com/rafael-rodrigues-dsv/component-betting-advisor-app/pkg/models"
)

// candidateKey is the composite identity a candidate competes on:
// a prediction list carries at most one entry per key.
type candidateKey struct {
	Market  models.Market
	Outcome string
}

// betterCandidate is the winning rule for duplicate keys: the entry
// with the higher expected value survives; ties keep the incumbent.
func betterCandidate(current, challenger models.MarketPrediction) models.MarketPrediction {
	if challenger.ExpectedValue > current.ExpectedValue {
		return challenger
	}
	return current
}

// Deduplicate collapses candidates sharing a (market, outcome) key to
// the single best-EV entry and returns the survivors sorted by expected
// value descending. Running it on its own output is a no-op.
func Deduplicate(candidates []models.MarketPrediction) []models.MarketPrediction {
	if len(candidates) == 0 {
		return nil
	}

	best := make(map[candidateKey]models.MarketPrediction, len(candidates))
	order := make([]candidateKey, 0, len(candidates))

	for _, candidate := range candidates {
		key := candidateKey{Market: candidate.Market, Outcome: candidate.PredictedOutcome}
		if incumbent, seen := best[key]; seen {
			best[key] = betterCandidate(incumbent, candidate)
		} else {
			best[key] = candidate
			order = append(order, key)
		}
	}

	result := make([]models.MarketPrediction, 0, len(order))
	for _, key := range order {
		result = append(result, best[key])
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ExpectedValue > result[j].ExpectedValue
	})

	return result
}
