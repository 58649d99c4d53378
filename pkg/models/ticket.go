package models

import "time"

// BetResult is the settlement outcome of a single bet. The zero value
// means the bet has not been settled yet.
type BetResult string

const (
	BetResultWon     BetResult = "WON"
	BetResultLost    BetResult = "LOST"
	BetResultPending BetResult = "PENDING"
	BetResultVoid    BetResult = "VOID"
)

// ParseBetResult validates a wire-format bet result value.
func ParseBetResult(s string) (BetResult, bool) {
	switch BetResult(s) {
	case BetResultWon, BetResultLost, BetResultPending, BetResultVoid:
		return BetResult(s), true
	default:
		return "", false
	}
}

// TicketStatus is the aggregate status of a multi-bet ticket.
type TicketStatus string

const (
	TicketStatusPending TicketStatus = "PENDING"
	TicketStatusWon     TicketStatus = "WON"
	TicketStatusLost    TicketStatus = "LOST"

	// TicketStatusPartiallyWon is part of the stored vocabulary but no
	// settlement rule currently produces it; a per-bet stake split would
	// be needed for it to be reachable.
	TicketStatusPartiallyWon TicketStatus = "PARTIALLY_WON"
)

// Bet is a single selection inside a ticket. Created unsettled; only the
// settlement engine mutates Result and the score/status fields.
type Bet struct {
	MatchID          string  `json:"match_id"`
	HomeTeam         string  `json:"home_team"`
	AwayTeam         string  `json:"away_team"`
	League           string  `json:"league"`
	Market           Market  `json:"market"`
	PredictedOutcome string  `json:"predicted_outcome"`
	Odds             float64 `json:"odds"`
	Confidence       float64 `json:"confidence"`

	Result     BetResult `json:"result,omitempty"`
	FinalScore string    `json:"final_score,omitempty"` // e.g. "2 x 1"

	// Live fixture state, refreshed on every settlement pass.
	Status      string `json:"status,omitempty"`       // e.g. "Match Finished"
	StatusShort string `json:"status_short,omitempty"` // e.g. "FT"
	Elapsed     *int   `json:"elapsed,omitempty"`
	GoalsHome   *int   `json:"goals_home,omitempty"`
	GoalsAway   *int   `json:"goals_away,omitempty"`
}

// IsWon reports whether the bet settled as won.
func (b Bet) IsWon() bool { return b.Result == BetResultWon }

// IsLost reports whether the bet settled as lost.
func (b Bet) IsLost() bool { return b.Result == BetResultLost }

// IsPending reports whether the bet still awaits a terminal result.
func (b Bet) IsPending() bool {
	return b.Result == "" || b.Result == BetResultPending
}

// Ticket is a multi-bet slip. Bets, stake and bookmaker are fixed at
// creation; only Status (and the bets' results) change afterwards.
type Ticket struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Bets        []Bet        `json:"bets"`
	Stake       float64      `json:"stake"`
	BookmakerID string       `json:"bookmaker_id"`
	Status      TicketStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
}

// CombinedOdds is the product of all bet odds on the slip.
func (t Ticket) CombinedOdds() float64 {
	combined := 1.0
	for _, bet := range t.Bets {
		combined *= bet.Odds
	}
	return combined
}

// PotentialReturn is stake times combined odds.
func (t Ticket) PotentialReturn() float64 {
	return t.Stake * t.CombinedOdds()
}

// PotentialProfit is the potential return net of the stake.
func (t Ticket) PotentialProfit() float64 {
	return t.PotentialReturn() - t.Stake
}

// TotalBets returns the number of selections on the slip.
func (t Ticket) TotalBets() int { return len(t.Bets) }

// WonBets counts settled winning bets.
func (t Ticket) WonBets() int {
	count := 0
	for _, bet := range t.Bets {
		if bet.IsWon() {
			count++
		}
	}
	return count
}

// LostBets counts settled losing bets.
func (t Ticket) LostBets() int {
	count := 0
	for _, bet := range t.Bets {
		if bet.IsLost() {
			count++
		}
	}
	return count
}

// PendingBets counts bets without a terminal result.
func (t Ticket) PendingBets() int {
	count := 0
	for _, bet := range t.Bets {
		if bet.IsPending() {
			count++
		}
	}
	return count
}

// AverageConfidence is the mean confidence across the slip's bets.
func (t Ticket) AverageConfidence() float64 {
	if len(t.Bets) == 0 {
		return 0
	}
	sum := 0.0
	for _, bet := range t.Bets {
		sum += bet.Confidence
	}
	return sum / float64(len(t.Bets))
}

// TicketStats is the aggregate view over all stored tickets.
type TicketStats struct {
	Total         int     `json:"total"`
	Pending       int     `json:"pending"`
	Won           int     `json:"won"`
	Lost          int     `json:"lost"`
	TotalStaked   float64 `json:"total_staked"`
	TotalReturned float64 `json:"total_returned"`
}
