package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jwebster45206/encounter-engine/pkg/tables"
)

type Location struct {
	Name     string   `json:"name"`
	Monsters []string `json:"monsters"`
}

type LocationsResponse struct {
	Default   string     `json:"default"`
	Locations []Location `json:"locations"`
}

type LocationsHandler struct {
	tables *tables.Tables
	logger *slog.Logger
}

func NewLocationsHandler(t *tables.Tables, logger *slog.Logger) *LocationsHandler {
	return &LocationsHandler{
		tables: t,
		logger: logger,
	}
}

func (h *LocationsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET")
		return
	}

	resp := LocationsResponse{
		Default:   tables.DefaultLocation,
		Locations: []Location{},
	}
	for _, name := range h.tables.Locations() {
		monsters, _ := h.tables.Monsters(name)
		if monsters == nil {
			monsters = []string{}
		}
		resp.Locations = append(resp.Locations, Location{Name: name, Monsters: monsters})
	}
	writeJSON(w, h.logger, http.StatusOK, resp)
}
