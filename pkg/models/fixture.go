package models

// Fixture statuses considered finished for settlement purposes.
// FT = full time, AET = after extra time, PEN = decided on penalties.
var finishedStatuses = map[string]bool{
	"FT":  true,
	"AET": true,
	"PEN": true,
}

// FixtureResult is the result payload for a fixture as delivered by the
// football data provider.
type FixtureResult struct {
	Fixture FixtureInfo `json:"fixture"`
	Goals   Goals       `json:"goals"`
}

// FixtureInfo carries the fixture's identity and live status.
type FixtureInfo struct {
	ID     int64         `json:"id"`
	Status FixtureStatus `json:"status"`
}

// FixtureStatus is the provider's match status block.
type FixtureStatus struct {
	Long    string `json:"long"`    // e.g. "Match Finished"
	Short   string `json:"short"`   // e.g. "FT", "NS", "1H"
	Elapsed *int   `json:"elapsed"` // minute of play, nil before kickoff
}

// Goals holds the current score. Pointers because the provider omits
// goals for fixtures that have not started.
type Goals struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

// IsFinished reports whether the fixture reached a terminal status.
func (r FixtureResult) IsFinished() bool {
	return finishedStatuses[r.Fixture.Status.Short]
}

// Score returns the final score, ok=false when either side is missing.
func (r FixtureResult) Score() (home, away int, ok bool) {
	if r.Goals.Home == nil || r.Goals.Away == nil {
		return 0, 0, false
	}
	return *r.Goals.Home, *r.Goals.Away, true
}
