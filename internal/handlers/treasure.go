package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jwebster45206/encounter-engine/pkg/dice"
	"github.com/jwebster45206/encounter-engine/pkg/treasure"
)

// TreasureRequest is the body of POST /v1/treasure.
type TreasureRequest struct {
	EncounterLevel int      `json:"encounter_level"`
	IsHoard        bool     `json:"is_hoard"`
	WealthModifier *float64 `json:"wealth_modifier,omitempty"`
	Seed           *uint64  `json:"seed,omitempty"`
}

type TreasureResponse struct {
	Seed     uint64           `json:"seed"`
	Treasure *treasure.Result `json:"treasure"`
}

type TreasureHandler struct {
	allocator *treasure.Allocator
	logger    *slog.Logger
}

func NewTreasureHandler(allocator *treasure.Allocator, logger *slog.Logger) *TreasureHandler {
	return &TreasureHandler{
		allocator: allocator,
		logger:    logger,
	}
}

func (h *TreasureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
		return
	}

	var req TreasureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid treasure request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	seed := seedOrRandom(req.Seed)
	res := h.allocator.GenerateTreasure(dice.NewSource(seed), req.EncounterLevel, req.IsHoard, wealthOrDefault(req.WealthModifier))

	h.logger.Debug("Treasure generated",
		"seed", seed,
		"tier", res.Tier,
		"hoard", req.IsHoard,
		"total_value", res.TotalValue)

	writeJSON(w, h.logger, http.StatusOK, TreasureResponse{Seed: seed, Treasure: res})
}
