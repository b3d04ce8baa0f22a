package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/jwebster45206/encounter-engine/pkg/encounter"
)

type ErrorHandlingMode string

const ErrorHandlingExit ErrorHandlingMode = "exit"
const ErrorHandlingContinue ErrorHandlingMode = "continue"

// Runner executes integration tests against a running encounter-engine API
type Runner struct {
	BaseURL           string
	Client            *http.Client
	Timeout           time.Duration
	Logger            func(format string, args ...any)
	ErrorHandlingMode ErrorHandlingMode
}

// NewRunner creates a new test runner
func NewRunner(baseURL string) *Runner {
	return &Runner{
		BaseURL:           strings.TrimSuffix(baseURL, "/"),
		Client:            &http.Client{Timeout: 60 * time.Second},
		Timeout:           30 * time.Second,
		Logger:            func(string, ...any) {},
		ErrorHandlingMode: ErrorHandlingContinue,
	}
}

// LoadTestSuite loads a test suite from a JSON file
func LoadTestSuite(filename string) (TestSuite, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return TestSuite{}, fmt.Errorf("failed to read test file %s: %w", filename, err)
	}

	var suite TestSuite
	if err := json.Unmarshal(content, &suite); err != nil {
		return TestSuite{}, fmt.Errorf("failed to parse JSON in %s: %w", filename, err)
	}

	return suite, nil
}

// LoadTestSuiteWithExpansion loads a test suite and expands it if it's a sequence
// Returns a list of actual test suites (expanded from the sequence if needed)
func LoadTestSuiteWithExpansion(filename string, casesDir string) ([]TestJob, error) {
	suite, err := LoadTestSuite(filename)
	if err != nil {
		return nil, err
	}

	if !suite.IsSequence() {
		return []TestJob{{
			Name:     suite.Name,
			Suite:    suite,
			CaseFile: filename,
		}}, nil
	}

	var jobs []TestJob
	for _, caseFile := range suite.Cases {
		subJobs, err := LoadTestSuiteWithExpansion(filepath.Join(casesDir, caseFile), casesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load case '%s' referenced by sequence '%s': %w", caseFile, suite.Name, err)
		}
		jobs = append(jobs, subJobs...)
	}

	return jobs, nil
}

// RunSuite executes a complete test suite
func (r *Runner) RunSuite(ctx context.Context, suite TestSuite) (TestRunResult, error) {
	start := time.Now()
	result := TestRunResult{
		Job: TestJob{
			Name:  suite.Name,
			Suite: suite,
		},
		Results: make([]TestResult, 0, len(suite.Steps)),
	}

	var lastID string
	seen := make(map[string]*apiResponse)

	for i, step := range suite.Steps {
		r.Logger("    [%d/%d] Running step: %s", i+1, len(suite.Steps), step.Name)

		stepResult, resp := r.runStep(ctx, step, lastID, seen)
		result.Results = append(result.Results, stepResult)

		if stepResult.Error != nil {
			r.Logger("    [%d/%d] ✗ %s: %v", i+1, len(suite.Steps), step.Name, stepResult.Error)
			if result.Error == nil {
				result.Error = fmt.Errorf("step %d (%s) failed: %w", i, step.Name, stepResult.Error)
			}
			if r.ErrorHandlingMode == ErrorHandlingExit {
				break
			}
			continue
		}

		r.Logger("    [%d/%d] ✓ %s (%v)", i+1, len(suite.Steps), step.Name, stepResult.Duration)
		if resp != nil {
			if step.Name != "" {
				seen[step.Name] = resp
			}
			if resp.ID != "" {
				lastID = resp.ID
			}
		}
	}

	result.Duration = time.Since(start)
	return result, result.Error
}

func (r *Runner) runStep(ctx context.Context, step TestStep, lastID string, seen map[string]*apiResponse) (TestResult, *apiResponse) {
	start := time.Now()
	res := TestResult{StepName: step.Name}

	stepCtx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	method := step.Method
	if method == "" {
		method = http.MethodGet
	}
	path := strings.ReplaceAll(step.Path, "{{id}}", lastID)

	var body io.Reader
	if len(step.Body) > 0 {
		body = bytes.NewReader(step.Body)
	}
	req, err := http.NewRequestWithContext(stepCtx, method, r.BaseURL+path, body)
	if err != nil {
		res.Error = fmt.Errorf("failed to create request: %w", err)
		return res, nil
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpResp, err := r.Client.Do(req)
	if err != nil {
		res.Error = fmt.Errorf("request failed: %w", err)
		return res, nil
	}
	defer func() { _ = httpResp.Body.Close() }()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		res.Error = fmt.Errorf("failed to read response: %w", err)
		return res, nil
	}
	res.StatusCode = httpResp.StatusCode
	res.ResponseText = string(raw)
	res.Duration = time.Since(start)

	var resp apiResponse
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &resp); err != nil {
			res.Error = fmt.Errorf("failed to parse response: %w", err)
			return res, nil
		}
	}

	if err := checkExpectations(step.Expectations, res, &resp, seen); err != nil {
		res.Error = err
		return res, &resp
	}
	res.Success = true
	return res, &resp
}

func checkExpectations(exp Expectations, res TestResult, resp *apiResponse, seen map[string]*apiResponse) error {
	var problems []string
	fail := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if exp.Status != 0 && res.StatusCode != exp.Status {
		fail("expected status %d, got %d: %s", exp.Status, res.StatusCode, res.ResponseText)
	}

	enc := resp.Encounter
	if enc == nil && resp.Status != "" {
		// error results come back unwrapped
		enc = &encounter.Result{Status: resp.Status, Message: resp.Message}
	}

	if exp.EncounterStatus != nil {
		if enc == nil || enc.Status != *exp.EncounterStatus {
			fail("expected encounter status %q", *exp.EncounterStatus)
		}
	}
	if exp.LocationType != nil && (enc == nil || enc.LocationType != *exp.LocationType) {
		fail("expected location_type %q", *exp.LocationType)
	}
	if exp.MinMonsters != nil && (enc == nil || len(enc.Monsters) < *exp.MinMonsters) {
		fail("expected at least %d monsters", *exp.MinMonsters)
	}
	if exp.MaxMonsters != nil && (enc == nil || len(enc.Monsters) > *exp.MaxMonsters) {
		fail("expected at most %d monsters", *exp.MaxMonsters)
	}
	if exp.TargetXP != nil && (enc == nil || enc.TargetXP != *exp.TargetXP) {
		fail("expected target_xp %d", *exp.TargetXP)
	}
	if exp.MaxXPRatio != nil {
		if enc == nil || enc.TargetXP <= 0 || float64(enc.ActualXP)/float64(enc.TargetXP) > *exp.MaxXPRatio {
			fail("expected actual_xp within %gx of target_xp", *exp.MaxXPRatio)
		}
	}
	if exp.HasNote != nil && (enc == nil || (enc.Note != "") != *exp.HasNote) {
		fail("expected note present=%t", *exp.HasNote)
	}

	if exp.HasTreasure != nil && (resp.Treasure != nil) != *exp.HasTreasure {
		fail("expected treasure present=%t", *exp.HasTreasure)
	}
	if exp.TreasureTier != nil && (resp.Treasure == nil || resp.Treasure.Tier != *exp.TreasureTier) {
		fail("expected treasure tier %q", *exp.TreasureTier)
	}

	if exp.SameEncounterAs != "" {
		prev, ok := seen[exp.SameEncounterAs]
		switch {
		case !ok:
			fail("no earlier step named %q", exp.SameEncounterAs)
		case !reflect.DeepEqual(prev.Encounter, resp.Encounter) || !reflect.DeepEqual(prev.Treasure, resp.Treasure):
			fail("result differs from step %q", exp.SameEncounterAs)
		}
	}

	for _, s := range exp.ResponseContains {
		if !strings.Contains(res.ResponseText, s) {
			fail("response does not contain %q", s)
		}
	}
	for _, s := range exp.ResponseNotContains {
		if strings.Contains(res.ResponseText, s) {
			fail("response unexpectedly contains %q", s)
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
