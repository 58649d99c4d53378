package settlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/rafael-rodrigues-dsv/component-betting-advisor-app/pkg/contracts"
	"github.com/rafael-rodrigues-dsv/component-betting-advisor-app/pkg/models"
)

var (
	// ErrTicketNotFound is returned for settlement operations on an
	// unknown ticket ID.
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrTicketNotPending is returned when a single-ticket settlement is
	// requested for a ticket already in a terminal state.
	ErrTicketNotPending = errors.New("ticket is not pending")

	// ErrResultCountMismatch is returned by Simulate when the supplied
	// results do not line up one-to-one with the ticket's bets.
	ErrResultCountMismatch = errors.New("result count does not match bet count")
)

// Notifier receives tickets that reached a terminal status, for fan-out
// to live subscribers.
type Notifier interface {
	TicketSettled(ticket *models.Ticket)
}

// UpdateStats summarizes one batch settlement pass.
type UpdateStats struct {
	TotalPending int `json:"total_pending"`
	Updated      int `json:"updated"`
	Won          int `json:"won"`
	Lost         int `json:"lost"`
}

// Ledger aggregates bet settlement into ticket outcomes. It reads
// fixture results through the injected provider and persists mutations
// through the ticket store; it holds no state of its own.
type Ledger struct {
	store    contracts.TicketStore
	results  contracts.FixtureResultProvider
	notifier Notifier
}

// NewLedger creates a ledger. notifier may be nil.
func NewLedger(store contracts.TicketStore, results contracts.FixtureResultProvider, notifier Notifier) *Ledger {
	return &Ledger{
		store:    store,
		results:  results,
		notifier: notifier,
	}
}

// SettlePending runs one batch settlement pass over every pending
// ticket. Tickets are processed one at a time, bets within a ticket in
// list order; a failure on one bet or ticket never aborts the batch.
func (l *Ledger) SettlePending(ctx context.Context) (stats UpdateStats, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in settlement pass: %v", r)
			fmt.Printf("[Settlement] PANIC: %v\n", r)
		}
	}()

	tickets, err := l.store.FindPending(ctx)
	if err != nil {
		return stats, fmt.Errorf("find pending tickets: %w", err)
	}

	stats.TotalPending = len(tickets)
	if len(tickets) == 0 {
		return stats, nil
	}

	fmt.Printf("[Settlement] Found %d pending tickets\n", len(tickets))

	for _, ticket := range tickets {
		updated, settleErr := l.settleTicket(ctx, ticket)
		if settleErr != nil {
			fmt.Printf("[Settlement] error settling ticket %s: %v\n", ticket.ID, settleErr)
			continue
		}
		if !updated {
			continue
		}

		stats.Updated++
		switch ticket.Status {
		case models.TicketStatusWon:
			stats.Won++
		case models.TicketStatusLost:
			stats.Lost++
		}
	}

	fmt.Printf("[Settlement] Pass complete: %d/%d tickets updated (%d won, %d lost)\n",
		stats.Updated, stats.TotalPending, stats.Won, stats.Lost)

	return stats, nil
}

// SettleTicket settles one specific pending ticket with the batch
// (wait-for-all) policy. Returns whether the ticket reached a terminal
// status.
func (l *Ledger) SettleTicket(ctx context.Context, ticketID string) (*models.Ticket, bool, error) {
	ticket, err := l.store.FindByID(ctx, ticketID)
	if err != nil {
		return nil, false, fmt.Errorf("find ticket: %w", err)
	}
	if ticket == nil {
		return nil, false, ErrTicketNotFound
	}
	if ticket.Status != models.TicketStatusPending {
		return ticket, false, ErrTicketNotPending
	}

	updated, err := l.settleTicket(ctx, ticket)
	return ticket, updated, err
}

// settleTicket applies the batch policy to one ticket: every bet is
// refreshed from the fixture results, and the ticket status is only
// recomputed once no bet remains pending. A lookup failure leaves the
// affected bet pending and the pass moves on.
func (l *Ledger) settleTicket(ctx context.Context, ticket *models.Ticket) (bool, error) {
	allFinished := true
	anyLost := false

	for i := range ticket.Bets {
		bet := &ticket.Bets[i]

		if !bet.IsPending() {
			if bet.IsLost() {
				anyLost = true
			}
			continue
		}

		result, err := l.results.GetFixtureResult(ctx, bet.MatchID)
		if err != nil {
			fmt.Printf("[Settlement] fixture %s lookup failed: %v\n", bet.MatchID, err)
			allFinished = false
			continue
		}
		if result == nil {
			allFinished = false
			continue
		}

		// Refresh the live fixture state on the bet either way.
		bet.Status = result.Fixture.Status.Long
		bet.StatusShort = result.Fixture.Status.Short
		bet.Elapsed = result.Fixture.Status.Elapsed
		bet.GoalsHome = result.Goals.Home
		bet.GoalsAway = result.Goals.Away

		outcome := SettleBet(*bet, result)
		if outcome == models.BetResultPending {
			allFinished = false
			continue
		}

		bet.Result = outcome
		if home, away, ok := result.Score(); ok {
			bet.FinalScore = FormatScore(home, away)
		}
		if outcome == models.BetResultLost {
			anyLost = true
		}
	}

	// Wait-for-all policy: while any bet is open the ticket stays
	// pending, no matter how many bets already lost.
	if !allFinished {
		if err := l.store.UpdateBetResults(ctx, ticket.ID, ticket.Bets); err != nil {
			return false, fmt.Errorf("persist bet results: %w", err)
		}
		return false, nil
	}

	if anyLost {
		ticket.Status = models.TicketStatusLost
	} else {
		ticket.Status = models.TicketStatusWon
	}

	if err := l.store.UpdateBetResults(ctx, ticket.ID, ticket.Bets); err != nil {
		return false, fmt.Errorf("persist bet results: %w", err)
	}
	if err := l.store.UpdateStatus(ctx, ticket.ID, ticket.Status); err != nil {
		return false, fmt.Errorf("persist ticket status: %w", err)
	}

	fmt.Printf("[Settlement] Ticket %s settled: %s\n", ticket.ID, ticket.Status)

	if l.notifier != nil {
		l.notifier.TicketSettled(ticket)
	}

	return true, nil
}

// Simulate applies caller-supplied results to a ticket's bets, one per
// bet in order, then recomputes the status with the immediate policy.
// A count mismatch is a hard failure before any mutation.
func (l *Ledger) Simulate(ctx context.Context, ticketID string, results []models.BetResult) (*models.Ticket, error) {
	ticket, err := l.store.FindByID(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}

	if len(results) != len(ticket.Bets) {
		return nil, fmt.Errorf("%w: %d results for %d bets", ErrResultCountMismatch, len(results), len(ticket.Bets))
	}

	for i := range ticket.Bets {
		ticket.Bets[i].Result = results[i]
	}
	ticket.Status = ResolveStatus(ticket.Bets)

	if err := l.persistResolution(ctx, ticket); err != nil {
		return nil, err
	}

	fmt.Printf("[Settlement] Ticket %s simulated: %s\n", ticket.ID, ticket.Status)

	return ticket, nil
}

// SimulateLive resolves a ticket immediately against the fixture result
// provider. Bets whose fixtures have no result yet stay pending; the
// ticket status follows the immediate policy.
func (l *Ledger) SimulateLive(ctx context.Context, ticketID string) (*models.Ticket, error) {
	ticket, err := l.store.FindByID(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}

	for i := range ticket.Bets {
		bet := &ticket.Bets[i]

		result, err := l.results.GetFixtureResult(ctx, bet.MatchID)
		if err != nil {
			fmt.Printf("[Settlement] fixture %s lookup failed: %v\n", bet.MatchID, err)
			bet.Result = models.BetResultPending
			continue
		}
		if result == nil {
			bet.Result = models.BetResultPending
			continue
		}

		bet.Result = SettleBet(*bet, result)
		if home, away, ok := result.Score(); ok && result.IsFinished() {
			bet.FinalScore = FormatScore(home, away)
		}
	}

	ticket.Status = ResolveStatus(ticket.Bets)

	if err := l.persistResolution(ctx, ticket); err != nil {
		return nil, err
	}

	fmt.Printf("[Settlement] Ticket %s resolved live: %s (%d/%d won)\n",
		ticket.ID, ticket.Status, ticket.WonBets(), ticket.TotalBets())

	return ticket, nil
}

func (l *Ledger) persistResolution(ctx context.Context, ticket *models.Ticket) error {
	if err := l.store.UpdateStatus(ctx, ticket.ID, ticket.Status); err != nil {
		return fmt.Errorf("persist ticket status: %w", err)
	}
	if err := l.store.UpdateBetResults(ctx, ticket.ID, ticket.Bets); err != nil {
		return fmt.Errorf("persist bet results: %w", err)
	}

	if ticket.Status != models.TicketStatusPending && l.notifier != nil {
		l.notifier.TicketSettled(ticket)
	}

	return nil
}
