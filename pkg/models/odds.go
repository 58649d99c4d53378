package models

// BookmakerOdds holds one bookmaker's decimal odds for a fixture.
// The 1X2 prices are always present; totals and BTTS are optional and
// nil when the bookmaker does not offer the market.
type BookmakerOdds struct {
	Home float64 `json:"home"`
	Draw float64 `json:"draw"`
	Away float64 `json:"away"`

	Over25  *float64 `json:"over_2.5,omitempty"`
	Under25 *float64 `json:"under_2.5,omitempty"`
	BTTSYes *float64 `json:"btts_yes,omitempty"`
	BTTSNo  *float64 `json:"btts_no,omitempty"`
}

// OddsSnapshot is the full odds picture for one fixture at one point in
// time: bookmaker key -> that bookmaker's odds. The analyzer treats a
// snapshot as immutable once read.
type OddsSnapshot struct {
	MatchID    string                   `json:"match_id,omitempty"`
	Bookmakers map[string]BookmakerOdds `json:"bookmakers"`
}

// BestOdd returns the bookmaker offering the highest price for the given
// market/outcome pair, or ok=false when nobody offers it.
func (s OddsSnapshot) BestOdd(market Market, outcome string) (bookmaker string, odd float64, ok bool) {
	for book, odds := range s.Bookmakers {
		value, offered := odds.Odd(market, outcome)
		if !offered {
			continue
		}
		if value > odd {
			bookmaker = book
			odd = value
			ok = true
		}
	}
	return bookmaker, odd, ok
}

// Odd looks up the price this bookmaker quotes for a market/outcome pair.
// Returns ok=false for optional markets the bookmaker does not carry.
func (o BookmakerOdds) Odd(market Market, outcome string) (float64, bool) {
	switch market {
	case MarketMatchWinner:
		switch outcome {
		case OutcomeHome:
			return o.Home, o.Home > 0
		case OutcomeDraw:
			return o.Draw, o.Draw > 0
		case OutcomeAway:
			return o.Away, o.Away > 0
		}
	case MarketOverUnder:
		switch outcome {
		case OutcomeOver25:
			return deref(o.Over25)
		case OutcomeUnder25:
			return deref(o.Under25)
		}
	case MarketBothTeamsScore:
		switch outcome {
		case OutcomeYes:
			return deref(o.BTTSYes)
		case OutcomeNo:
			return deref(o.BTTSNo)
		}
	}
	return 0, false
}

func deref(p *float64) (float64, bool) {
	if p == nil || *p <= 0 {
		return 0, false
	}
	return *p, true
}
