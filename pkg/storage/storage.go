package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/encounter-engine/pkg/encounter"
	"github.com/jwebster45206/encounter-engine/pkg/treasure"
)

// Storage persists generated encounter records.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// SaveRecord stores rec under rec.ID, replacing any previous record.
	SaveRecord(ctx context.Context, rec *Record) error
	// LoadRecord returns nil, nil when no record exists for id.
	LoadRecord(ctx context.Context, id uuid.UUID) (*Record, error)
	DeleteRecord(ctx context.Context, id uuid.UUID) error
}

// Record is a generated encounter together with the inputs that produced
// it. Replaying Seed with the same request yields the same Encounter.
type Record struct {
	ID           uuid.UUID            `json:"id"`
	Seed         uint64               `json:"seed"`
	PartyLevels  []int                `json:"party_levels"`
	LocationType string               `json:"location_type"`
	Difficulty   encounter.Difficulty `json:"difficulty"`
	Encounter    *encounter.Result    `json:"encounter"`
	Treasure     *treasure.Result     `json:"treasure,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}

// NewRecord returns a record with a fresh ID for the given request.
func NewRecord(seed uint64, party encounter.Party, locationType string, difficulty encounter.Difficulty) *Record {
	levels := make([]int, len(party))
	for i, c := range party {
		levels[i] = c.Level
	}
	return &Record{
		ID:           uuid.New(),
		Seed:         seed,
		PartyLevels:  levels,
		LocationType: locationType,
		Difficulty:   difficulty,
		CreatedAt:    time.Now().UTC(),
	}
}
