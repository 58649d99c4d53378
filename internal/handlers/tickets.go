package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rafael-rodrigues-dsv/component-betting-advisor-app/internal/settlement"
	"github.com/rafael-rodrigues-dsv/component-betting-advisor-app/pkg/contracts"
	"github.com/rafael-rodrigues-dsv/component-betting-advisor-app/pkg/models"
)

// TicketHandler handles ticket CRUD and resolution requests.
type TicketHandler struct {
	store  contracts.TicketStore
	ledger *settlement.Ledger
}

// NewTicketHandler creates a ticket handler.
func NewTicketHandler(store contracts.TicketStore, ledger *settlement.Ledger) *TicketHandler {
	return &TicketHandler{
		store:  store,
		ledger: ledger,
	}
}

type createTicketRequest struct {
	Name        string       `json:"name"`
	Stake       float64      `json:"stake"`
	BookmakerID string       `json:"bookmaker_id"`
	Bets        []models.Bet `json:"bets"`
}

// CreateTicket stores a new ticket. Bets, stake and bookmaker are
// immutable after this point.
func (h *TicketHandler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req createTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if len(req.Bets) == 0 {
		respondError(w, http.StatusBadRequest, "ticket requires at least one bet", nil)
		return
	}
	if req.Stake <= 0 {
		respondError(w, http.StatusBadRequest, "stake must be positive", nil)
		return
	}

	for i := range req.Bets {
		bet := &req.Bets[i]

		if bet.MatchID == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("bet %d: match_id is required", i), nil)
			return
		}

		market, ok := models.ParseMarket(string(bet.Market))
		if !ok {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("bet %d: unknown market %q", i, bet.Market), nil)
			return
		}
		bet.Market = market

		if bet.PredictedOutcome == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("bet %d: predicted_outcome is required", i), nil)
			return
		}
		if bet.Odds <= 1.0 {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("bet %d: odds must be greater than 1.0", i), nil)
			return
		}

		// Bets always start unsettled regardless of what the client sent.
		bet.Result = ""
		bet.FinalScore = ""
	}

	ticket := &models.Ticket{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Bets:        req.Bets,
		Stake:       req.Stake,
		BookmakerID: req.BookmakerID,
		Status:      models.TicketStatusPending,
		CreatedAt:   time.Now().UTC(),
	}

	if err := h.store.Create(ctx, ticket); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create ticket", err)
		return
	}

	respondJSON(w, http.StatusCreated, ticket)
}

// GetTickets lists tickets newest first.
// Query params: limit, offset
func (h *TicketHandler) GetTickets(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	limit := parseIntParam(r, "limit", 50)
	offset := parseIntParam(r, "offset", 0)
	if limit > 500 {
		limit = 500
	}

	tickets, err := h.store.FindAll(ctx, limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve tickets", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"tickets": tickets,
		"count":   len(tickets),
		"limit":   limit,
		"offset":  offset,
	})
}

// GetTicket retrieves a single ticket by ID.
func (h *TicketHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	ticketID := chi.URLParam(r, "ticketID")

	ticket, err := h.store.FindByID(ctx, ticketID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve ticket", err)
		return
	}
	if ticket == nil {
		respondError(w, http.StatusNotFound, "ticket not found", nil)
		return
	}

	respondJSON(w, http.StatusOK, ticket)
}

// DeleteTicket removes a ticket.
func (h *TicketHandler) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	ticketID := chi.URLParam(r, "ticketID")

	deleted, err := h.store.Delete(ctx, ticketID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete ticket", err)
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "ticket not found", nil)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"deleted": true,
		"id":      ticketID,
	})
}

// GetStats returns aggregate counts and money totals over all tickets.
func (h *TicketHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	stats, err := h.store.Stats(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve stats", err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

type simulateRequest struct {
	Results []string `json:"results"`
}

// SimulateTicket applies caller-supplied bet results to a ticket and
// resolves it immediately.
func (h *TicketHandler) SimulateTicket(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	ticketID := chi.URLParam(r, "ticketID")

	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	results := make([]models.BetResult, len(req.Results))
	for i, raw := range req.Results {
		result, ok := models.ParseBetResult(raw)
		if !ok {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid result %q at index %d", raw, i), nil)
			return
		}
		results[i] = result
	}

	ticket, err := h.ledger.Simulate(ctx, ticketID, results)
	if err != nil {
		respondSettlementError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ticket)
}

// SimulateTicketLive resolves a ticket immediately against current
// fixture results.
func (h *TicketHandler) SimulateTicketLive(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	ticketID := chi.URLParam(r, "ticketID")

	ticket, err := h.ledger.SimulateLive(ctx, ticketID)
	if err != nil {
		respondSettlementError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ticket)
}

func respondSettlementError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, settlement.ErrTicketNotFound):
		respondError(w, http.StatusNotFound, "ticket not found", nil)
	case errors.Is(err, settlement.ErrTicketNotPending):
		respondError(w, http.StatusConflict, "ticket is not pending", nil)
	case errors.Is(err, settlement.ErrResultCountMismatch):
		respondError(w, http.StatusBadRequest, err.Error(), nil)
	default:
		respondError(w, http.StatusInternalServerError, "settlement failed", err)
	}
}
