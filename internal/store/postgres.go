// Package store persists tickets in PostgreSQL.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/rafael-rodrigues-dsv/component-betting-advisor-app/pkg/models"
)

// TicketPostgres implements contracts.TicketStore on PostgreSQL. Bets
// are stored as a JSONB document on the ticket row; the settlement
// engine always rewrites the full bet list, so there is no per-bet row
// bookkeeping to keep in sync.
type TicketPostgres struct {
	db *sql.DB
}

// NewTicketPostgres opens a connection pool against the given DSN.
func NewTicketPostgres(dsn string) (*TicketPostgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &TicketPostgres{db: db}, nil
}

// Ping checks database connectivity.
func (s *TicketPostgres) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// EnsureSchema creates the tickets table if it does not exist yet.
func (s *TicketPostgres) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS tickets (
			id           TEXT PRIMARY KEY,
			name         TEXT NOT NULL,
			bets         JSONB NOT NULL,
			stake        DOUBLE PRECISION NOT NULL,
			bookmaker_id TEXT NOT NULL DEFAULT '',
			status       TEXT NOT NULL DEFAULT 'PENDING',
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_tickets_status ON tickets (status);
	`

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create tickets schema: %w", err)
	}
	return nil
}

// Create inserts a new ticket.
func (s *TicketPostgres) Create(ctx context.Context, ticket *models.Ticket) error {
	betsJSON, err := json.Marshal(ticket.Bets)
	if err != nil {
		return fmt.Errorf("marshal bets: %w", err)
	}

	query := `
		INSERT INTO tickets (id, name, bets, stake, bookmaker_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = s.db.ExecContext(
		ctx, query,
		ticket.ID,
		ticket.Name,
		betsJSON,
		ticket.Stake,
		ticket.BookmakerID,
		string(ticket.Status),
		ticket.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}

	return nil
}

// FindByID retrieves one ticket. Returns (nil, nil) when missing.
func (s *TicketPostgres) FindByID(ctx context.Context, id string) (*models.Ticket, error) {
	query := `
		SELECT id, name, bets, stake, bookmaker_id, status, created_at
		FROM tickets
		WHERE id = $1
	`

	ticket, err := scanTicket(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query ticket: %w", err)
	}

	return ticket, nil
}

// FindAll retrieves tickets newest first. limit <= 0 means no limit.
func (s *TicketPostgres) FindAll(ctx context.Context, limit, offset int) ([]*models.Ticket, error) {
	query := `
		SELECT id, name, bets, stake, bookmaker_id, status, created_at
		FROM tickets
		ORDER BY created_at DESC
	`

	args := []interface{}{}
	argPos := 1

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argPos)
		args = append(args, limit)
		argPos++
	}
	if offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argPos)
		args = append(args, offset)
	}

	return s.queryTickets(ctx, query, args...)
}

// FindPending retrieves every ticket still awaiting settlement, oldest
// first so long-open tickets get looked at before fresh ones.
func (s *TicketPostgres) FindPending(ctx context.Context) ([]*models.Ticket, error) {
	query := `
		SELECT id, name, bets, stake, bookmaker_id, status, created_at
		FROM tickets
		WHERE status = $1
		ORDER BY created_at ASC
	`

	return s.queryTickets(ctx, query, string(models.TicketStatusPending))
}

// UpdateBetResults rewrites the ticket's bet list.
func (s *TicketPostgres) UpdateBetResults(ctx context.Context, ticketID string, bets []models.Bet) error {
	betsJSON, err := json.Marshal(bets)
	if err != nil {
		return fmt.Errorf("marshal bets: %w", err)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE tickets SET bets = $1 WHERE id = $2`,
		betsJSON, ticketID,
	)
	if err != nil {
		return fmt.Errorf("update bets: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update bets: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update bets: ticket %s not found", ticketID)
	}

	return nil
}

// UpdateStatus sets the ticket's aggregate status.
func (s *TicketPostgres) UpdateStatus(ctx context.Context, ticketID string, status models.TicketStatus) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE tickets SET status = $1 WHERE id = $2`,
		string(status), ticketID,
	)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update status: ticket %s not found", ticketID)
	}

	return nil
}

// Delete removes a ticket, reporting whether it existed.
func (s *TicketPostgres) Delete(ctx context.Context, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete ticket: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete ticket: %w", err)
	}

	return rows > 0, nil
}

// Stats retrieves aggregate counts and money totals over all tickets.
// Returned money only counts won tickets at their combined odds; the
// multiplication happens in Go because the odds live inside the bets
// JSON.
func (s *TicketPostgres) Stats(ctx context.Context) (*models.TicketStats, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = 'PENDING' THEN 1 ELSE 0 END), 0) AS pending,
			COALESCE(SUM(CASE WHEN status = 'WON' THEN 1 ELSE 0 END), 0) AS won,
			COALESCE(SUM(CASE WHEN status = 'LOST' THEN 1 ELSE 0 END), 0) AS lost,
			COALESCE(SUM(stake), 0) AS total_staked
		FROM tickets
	`

	stats := &models.TicketStats{}
	err := s.db.QueryRowContext(ctx, query).Scan(
		&stats.Total,
		&stats.Pending,
		&stats.Won,
		&stats.Lost,
		&stats.TotalStaked,
	)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}

	won, err := s.queryTickets(ctx,
		`SELECT id, name, bets, stake, bookmaker_id, status, created_at
		 FROM tickets WHERE status = $1`,
		string(models.TicketStatusWon),
	)
	if err != nil {
		return nil, fmt.Errorf("query won tickets: %w", err)
	}
	for _, t := range won {
		stats.TotalReturned += t.PotentialReturn()
	}

	return stats, nil
}

// Close closes the connection pool.
func (s *TicketPostgres) Close() error {
	return s.db.Close()
}

func (s *TicketPostgres) queryTickets(ctx context.Context, query string, args ...interface{}) ([]*models.Ticket, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*models.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, ticket)
	}

	return tickets, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTicket(row rowScanner) (*models.Ticket, error) {
	ticket := &models.Ticket{}

	var betsJSON []byte
	var status string

	err := row.Scan(
		&ticket.ID,
		&ticket.Name,
		&betsJSON,
		&ticket.Stake,
		&ticket.BookmakerID,
		&status,
		&ticket.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	ticket.Status = models.TicketStatus(status)
	if err := json.Unmarshal(betsJSON, &ticket.Bets); err != nil {
		return nil, fmt.Errorf("parse bets JSON: %w", err)
	}

	return ticket, nil
}
