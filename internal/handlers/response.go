package handlers

import (
	"encoding/json"
	"log/slog"
	"math/rand/v2"
	"net/http"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, msg string) {
	writeJSON(w, logger, status, ErrorResponse{Error: msg})
}

// seedOrRandom returns *seed, or a fresh seed when the caller sent none so
// the response can echo it back for replay.
func seedOrRandom(seed *uint64) uint64 {
	if seed != nil {
		return *seed
	}
	return rand.Uint64()
}

// defaultWealth is the wealth modifier used when a request omits one.
const defaultWealth = 1.0

func wealthOrDefault(w *float64) float64 {
	if w != nil {
		return *w
	}
	return defaultWealth
}
