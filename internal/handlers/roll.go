package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/jwebster45206/encounter-engine/pkg/dice"
)

type RollResponse struct {
	Dice   string `json:"dice"`
	Seed   uint64 `json:"seed"`
	Result int    `json:"result"`
	Rolls  []int  `json:"rolls,omitempty"`
	Detail string `json:"detail"`
	Min    int    `json:"min"`
	Max    int    `json:"max"`
}

type RollHandler struct {
	logger *slog.Logger
}

func NewRollHandler(logger *slog.Logger) *RollHandler {
	return &RollHandler{logger: logger}
}

// ServeHTTP handles GET /v1/roll?dice=3d6+2&seed=7. A literal '+' in a
// query string decodes to a space, so "3d6 2" is read as "3d6+2".
func (h *RollHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET")
		return
	}

	q := r.URL.Query()
	notation := q.Get("dice")
	if notation == "" {
		writeError(w, h.logger, http.StatusBadRequest, "Query parameter 'dice' is required")
		return
	}
	expr, err := dice.Parse(plusFromQuery(notation))
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	var seedPtr *uint64
	if s := q.Get("seed"); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			writeError(w, h.logger, http.StatusBadRequest, "Invalid seed")
			return
		}
		seedPtr = &seed
	}
	seed := seedOrRandom(seedPtr)

	outcome, err := expr.Outcome(dice.NewSource(seed))
	if err != nil {
		h.logger.Error("Dice roll failed", "dice", expr.String(), "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to roll dice")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, RollResponse{
		Dice:   expr.String(),
		Seed:   seed,
		Result: outcome.Value,
		Rolls:  outcome.DiceRolls,
		Detail: outcome.Detail,
		Min:    expr.Min(),
		Max:    expr.Max(),
	})
}

func plusFromQuery(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "+")
}
