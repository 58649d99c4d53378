// Package settlement resolves placed bets against fixture results and
// rolls the outcomes up into ticket statuses.
package settlement

import (
	"fmt"

	"github.com/rafael-rodrigues-dsv/component-betting-advisor-app/pkg/models"
)

// SettleBet determines whether one bet won, lost or is still pending
// against a fixture result. It never guesses: a fixture that is not
// finished, a missing score or an unrecognized market/outcome all leave
// the bet PENDING.
func SettleBet(bet models.Bet, result *models.FixtureResult) models.BetResult {
	if result == nil || !result.IsFinished() {
		return models.BetResultPending
	}

	home, away, ok := result.Score()
	if !ok {
		return models.BetResultPending
	}

	won, known := outcomeWon(bet.Market, bet.PredictedOutcome, home, away)
	if !known {
		return models.BetResultPending
	}
	if won {
		return models.BetResultWon
	}
	return models.BetResultLost
}

// outcomeWon evaluates a market/outcome pair against a final score.
// known=false marks a pair the engine does not understand.
func outcomeWon(market models.Market, outcome string, home, away int) (won, known bool) {
	switch market {
	case models.MarketMatchWinner:
		switch outcome {
		case models.OutcomeHome:
			return home > away, true
		case models.OutcomeDraw:
			return home == away, true
		case models.OutcomeAway:
			return away > home, true
		}

	case models.MarketOverUnder:
		// Fixed 2.5 line. The short "OVER"/"UNDER" spellings are kept
		// for bets stored by older clients.
		total := float64(home + away)
		switch outcome {
		case models.OutcomeOver25, "OVER":
			return total > 2.5, true
		case models.OutcomeUnder25, "UNDER":
			return total < 2.5, true
		}

	case models.MarketBothTeamsScore:
		bothScored := home > 0 && away > 0
		switch outcome {
		case models.OutcomeYes:
			return bothScored, true
		case models.OutcomeNo:
			return !bothScored, true
		}
	}

	return false, false
}

// FormatScore renders a final score for display, e.g. "2 x 1".
func FormatScore(home, away int) string {
	return fmt.Sprintf("%d x %d", home, away)
}

// ResolveStatus computes a ticket status from the bets exactly as they
// stand right now: any lost bet loses the ticket immediately (even with
// other bets still open), otherwise any pending bet keeps it pending,
// and a complete set of wins wins it. This is the manual/simulation
// policy; the batch updater in Ledger waits for every bet to finish
// before touching the ticket.
func ResolveStatus(bets []models.Bet) models.TicketStatus {
	pending := false
	for _, bet := range bets {
		if bet.IsLost() {
			return models.TicketStatusLost
		}
		if bet.IsPending() {
			pending = true
		}
	}
	if pending {
		return models.TicketStatusPending
	}
	return models.TicketStatusWon
}
