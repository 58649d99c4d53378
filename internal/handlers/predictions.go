package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rafael-rodrigues-dsv/component-betting-advisor-app/internal/analyzer"
	"github.com/rafael-rodrigues-dsv/component-betting-advisor-app/pkg/contracts"
	"github.com/rafael-rodrigues-dsv/component-betting-advisor-app/pkg/models"
)

// SnapshotWriter caches odds snapshots posted with analysis requests
// so later requests can omit the odds body.
type SnapshotWriter interface {
	WriteSnapshot(ctx context.Context, snapshot *models.OddsSnapshot) error
}

// PredictionHandler scores odds snapshots into ranked predictions.
type PredictionHandler struct {
	analyzer *analyzer.Analyzer
	odds     contracts.OddsProvider
	cache    SnapshotWriter
}

// NewPredictionHandler creates a prediction handler. odds and cache may
// be nil; analysis then requires inline bookmaker odds.
func NewPredictionHandler(a *analyzer.Analyzer, odds contracts.OddsProvider, cache SnapshotWriter) *PredictionHandler {
	return &PredictionHandler{
		analyzer: a,
		odds:     odds,
		cache:    cache,
	}
}

// analyzeRequest is the analysis request body. Bookmakers is optional;
// when absent the snapshot is looked up through the odds provider.
type analyzeRequest struct {
	MatchID    string                          `json:"match_id"`
	HomeTeam   string                          `json:"home_team"`
	AwayTeam   string                          `json:"away_team"`
	League     string                          `json:"league"`
	Date       string                          `json:"date"`
	Strategy   string                          `json:"strategy"`
	Bookmakers map[string]models.BookmakerOdds `json:"bookmakers,omitempty"`
}

// Analyze scores a fixture's odds under one strategy.
func (h *PredictionHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if req.MatchID == "" {
		respondError(w, http.StatusBadRequest, "match_id is required", nil)
		return
	}

	strategy := models.StrategyBalanced
	if req.Strategy != "" {
		parsed, ok := models.ParseStrategy(req.Strategy)
		if !ok {
			respondError(w, http.StatusBadRequest, "unknown strategy: "+req.Strategy, nil)
			return
		}
		strategy = parsed
	}

	snapshot := models.OddsSnapshot{
		MatchID:    req.MatchID,
		Bookmakers: req.Bookmakers,
	}

	if len(req.Bookmakers) == 0 {
		if h.odds == nil {
			respondError(w, http.StatusBadRequest, "bookmakers odds are required", nil)
			return
		}

		cached, err := h.odds.GetOddsSnapshot(ctx, req.MatchID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to load odds snapshot", err)
			return
		}
		if cached == nil {
			respondError(w, http.StatusNotFound, "no odds snapshot for match", nil)
			return
		}
		snapshot = *cached
	} else if h.cache != nil {
		// Keep the posted snapshot around for follow-up analyses.
		if err := h.cache.WriteSnapshot(ctx, &snapshot); err != nil {
			respondError(w, http.StatusInternalServerError, "failed to cache odds snapshot", err)
			return
		}
	}

	prediction := h.analyzer.Analyze(req.MatchID, req.HomeTeam, req.AwayTeam,
		req.League, req.Date, snapshot, strategy)

	respondJSON(w, http.StatusOK, prediction)
}
