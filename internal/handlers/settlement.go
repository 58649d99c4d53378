package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rafael-rodrigues-dsv/component-betting-advisor-app/internal/settlement"
)

// SettlementHandler exposes the batch settlement pass over HTTP so it
// can be triggered outside the ticker schedule.
type SettlementHandler struct {
	ledger *settlement.Ledger
}

// NewSettlementHandler creates a settlement handler.
func NewSettlementHandler(ledger *settlement.Ledger) *SettlementHandler {
	return &SettlementHandler{ledger: ledger}
}

// RunSettlement runs one batch settlement pass over all pending
// tickets and reports the pass statistics.
func (h *SettlementHandler) RunSettlement(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	stats, err := h.ledger.SettlePending(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "settlement pass failed", err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// SettleTicket settles one pending ticket with the batch policy.
func (h *SettlementHandler) SettleTicket(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	ticketID := chi.URLParam(r, "ticketID")

	ticket, settled, err := h.ledger.SettleTicket(ctx, ticketID)
	if err != nil {
		respondSettlementError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"settled": settled,
		"ticket":  ticket,
	})
}
