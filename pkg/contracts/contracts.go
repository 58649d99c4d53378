// Package contracts defines the collaborator interfaces the engine
// depends on. The core carries no process-wide state of its own; odds,
// fixture results and ticket persistence are all injected.
package contracts

import (
	"context"

	"github.com/rafael-rodrigues-dsv/component-betting-advisor-app/pkg/models"
)

// OddsProvider supplies the current odds snapshot for a fixture.
// Returns (nil, nil) when no snapshot is available.
type OddsProvider interface {
	GetOddsSnapshot(ctx context.Context, matchID string) (*models.OddsSnapshot, error)
}

// FixtureResultProvider supplies the (possibly in-progress) result of a
// fixture. Returns (nil, nil) when the fixture is unknown or has no
// result yet, never an error for that case.
type FixtureResultProvider interface {
	GetFixtureResult(ctx context.Context, matchID string) (*models.FixtureResult, error)
}

// TicketStore is the persistence boundary for tickets. The settlement
// engine only ever calls UpdateBetResults and UpdateStatus; it never
// talks to storage directly.
type TicketStore interface {
	Create(ctx context.Context, ticket *models.Ticket) error
	FindByID(ctx context.Context, id string) (*models.Ticket, error)
	FindAll(ctx context.Context, limit, offset int) ([]*models.Ticket, error)
	FindPending(ctx context.Context) ([]*models.Ticket, error)
	UpdateBetResults(ctx context.Context, ticketID string, bets []models.Bet) error
	UpdateStatus(ctx context.Context, ticketID string, status models.TicketStatus) error
	Delete(ctx context.Context, id string) (bool, error)
	Stats(ctx context.Context) (*models.TicketStats, error)
}
