package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jwebster45206/encounter-engine/pkg/dice"
	"github.com/jwebster45206/encounter-engine/pkg/encounter"
	"github.com/jwebster45206/encounter-engine/pkg/storage"
	"github.com/jwebster45206/encounter-engine/pkg/tables"
	"github.com/jwebster45206/encounter-engine/pkg/treasure"
)

// CreateEncounterRequest is the body of POST /v1/encounters.
type CreateEncounterRequest struct {
	Party        []encounter.Character `json:"party"`
	LocationType string                `json:"location_type"`
	Difficulty   encounter.Difficulty  `json:"difficulty"`
	Seed         *uint64               `json:"seed,omitempty"`
	Treasure     *TreasureOptions      `json:"treasure,omitempty"`
}

// TreasureOptions asks for treasure to be rolled alongside the encounter.
// An omitted wealth_modifier reads as 1.
type TreasureOptions struct {
	IsHoard        bool     `json:"is_hoard"`
	WealthModifier *float64 `json:"wealth_modifier,omitempty"`
}

type EncounterHandler struct {
	balancer  *encounter.Balancer
	allocator *treasure.Allocator
	storage   storage.Storage
	logger    *slog.Logger
}

func NewEncounterHandler(balancer *encounter.Balancer, allocator *treasure.Allocator, storage storage.Storage, logger *slog.Logger) *EncounterHandler {
	return &EncounterHandler{
		balancer:  balancer,
		allocator: allocator,
		storage:   storage,
		logger:    logger,
	}
}

// ServeHTTP routes:
// POST /v1/encounters        - generate and store an encounter
// GET /v1/encounters/{id}    - read a stored encounter
// DELETE /v1/encounters/{id} - delete a stored encounter
func (h *EncounterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var id uuid.UUID
	if path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/encounters"), "/"); path != "" {
		parsed, err := uuid.Parse(path)
		if err != nil {
			h.logger.Warn("Invalid encounter ID", "id", path, "error", err)
			writeError(w, h.logger, http.StatusBadRequest, "Invalid encounter ID format")
			return
		}
		id = parsed
	}

	switch r.Method {
	case http.MethodPost:
		if id != uuid.Nil {
			writeError(w, h.logger, http.StatusMethodNotAllowed, "POST is only supported on /v1/encounters")
			return
		}
		h.handleCreate(w, r)
	case http.MethodGet:
		if id == uuid.Nil {
			writeError(w, h.logger, http.StatusBadRequest, "Encounter ID is required for GET requests")
			return
		}
		h.handleRead(w, r, id)
	case http.MethodDelete:
		if id == uuid.Nil {
			writeError(w, h.logger, http.StatusBadRequest, "Encounter ID is required for DELETE requests")
			return
		}
		h.handleDelete(w, r, id)
	default:
		h.logger.Warn("Method not allowed for encounters endpoint", "method", r.Method)
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST, GET, DELETE")
	}
}

func (h *EncounterHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateEncounterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid encounter request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.LocationType == "" {
		req.LocationType = tables.DefaultLocation
	}
	if req.Difficulty == "" {
		req.Difficulty = encounter.Medium
	}

	seed := seedOrRandom(req.Seed)
	rng := dice.NewSource(seed)
	party := encounter.Party(req.Party)

	res := h.balancer.CreateEncounter(rng, party, req.LocationType, req.Difficulty)
	if !res.OK() {
		writeJSON(w, h.logger, http.StatusBadRequest, res)
		return
	}

	rec := storage.NewRecord(seed, party, req.LocationType, req.Difficulty)
	rec.Encounter = res
	if req.Treasure != nil {
		rec.Treasure = h.allocator.GenerateTreasure(rng, res.EncounterLevel, req.Treasure.IsHoard, wealthOrDefault(req.Treasure.WealthModifier))
	}

	if err := h.storage.SaveRecord(r.Context(), rec); err != nil {
		h.logger.Error("Failed to save encounter", "id", rec.ID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save encounter")
		return
	}

	h.logger.Info("Encounter created",
		"id", rec.ID,
		"seed", seed,
		"location_type", res.LocationType,
		"difficulty", res.Difficulty,
		"monsters", len(res.Monsters),
		"target_xp", res.TargetXP,
		"actual_xp", res.ActualXP)

	writeJSON(w, h.logger, http.StatusCreated, rec)
}

func (h *EncounterHandler) handleRead(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	rec, err := h.storage.LoadRecord(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load encounter", "id", id, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load encounter")
		return
	}
	if rec == nil {
		writeError(w, h.logger, http.StatusNotFound, "Encounter not found")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, rec)
}

func (h *EncounterHandler) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.storage.DeleteRecord(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete encounter", "id", id, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete encounter")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
