package runner

import (
	"encoding/json"
	"time"

	"github.com/jwebster45206/encounter-engine/pkg/encounter"
	"github.com/jwebster45206/encounter-engine/pkg/treasure"
)

// TestSuite is one case file: a named sequence of API calls, or a list of
// other case files to run in order.
type TestSuite struct {
	Name  string     `json:"name"`
	Steps []TestStep `json:"steps,omitempty"`
	Cases []string   `json:"cases,omitempty"`
}

// IsSequence returns true if this is a suite that sequences other cases
func (ts *TestSuite) IsSequence() bool {
	return len(ts.Cases) > 0
}

// TestStep is a single request and its expected outcome. "{{id}}" in Path
// is replaced with the id of the last encounter created in the suite.
type TestStep struct {
	Name         string          `json:"name,omitempty"`
	Method       string          `json:"method"`
	Path         string          `json:"path"`
	Body         json.RawMessage `json:"body,omitempty"`
	Expectations Expectations    `json:"expect"`
}

// Expectations defines what to check after a test step executes. Unset
// fields are not checked.
type Expectations struct {
	Status int `json:"status"`

	EncounterStatus *string  `json:"encounter_status,omitempty"`
	LocationType    *string  `json:"location_type,omitempty"`
	MinMonsters     *int     `json:"min_monsters,omitempty"`
	MaxMonsters     *int     `json:"max_monsters,omitempty"`
	MaxXPRatio      *float64 `json:"max_xp_ratio,omitempty"` // actual_xp / target_xp
	TargetXP        *int     `json:"target_xp,omitempty"`
	HasNote         *bool    `json:"has_note,omitempty"`

	TreasureTier *treasure.Tier `json:"treasure_tier,omitempty"`
	HasTreasure  *bool          `json:"has_treasure,omitempty"`

	// SameEncounterAs names an earlier step whose encounter and treasure
	// this step must reproduce exactly.
	SameEncounterAs string `json:"same_encounter_as,omitempty"`

	ResponseContains    []string `json:"response_contains,omitempty"`
	ResponseNotContains []string `json:"response_not_contains,omitempty"`
}

// apiResponse is the union of the response bodies the API returns.
type apiResponse struct {
	ID        string            `json:"id"`
	Seed      uint64            `json:"seed"`
	Encounter *encounter.Result `json:"encounter"`
	Treasure  *treasure.Result  `json:"treasure"`
	Status    string            `json:"status"`
	Message   string            `json:"message"`
	Error     string            `json:"error"`
}

// TestResult contains the outcome of running a test step
type TestResult struct {
	StepName     string
	Success      bool
	Error        error
	Duration     time.Duration
	StatusCode   int
	ResponseText string
}

// TestJob represents a test suite loaded from a case file
type TestJob struct {
	Name     string
	Suite    TestSuite
	CaseFile string
}

// TestRunResult contains the results of running an entire test suite
type TestRunResult struct {
	Job      TestJob
	Results  []TestResult
	Error    error
	Duration time.Duration
}
