package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/jwebster45206/encounter-engine/internal/handlers"
	"github.com/jwebster45206/encounter-engine/pkg/storage"
)

// apiClient talks to the encounter engine HTTP API. Every call returns the
// raw response body alongside the decoded value so the UI can copy it.
type apiClient struct {
	client  *http.Client
	baseURL string
}

func newAPIClient(client *http.Client, baseURL string) *apiClient {
	return &apiClient{client: client, baseURL: baseURL}
}

func (a *apiClient) testConnection() bool {
	resp, err := a.client.Get(a.baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

func (a *apiClient) createEncounter(req handlers.CreateEncounterRequest) (*storage.Record, []byte, error) {
	var rec storage.Record
	body, err := a.post("/v1/encounters", req, http.StatusCreated, &rec)
	if err != nil {
		return nil, body, err
	}
	return &rec, body, nil
}

func (a *apiClient) getEncounter(id uuid.UUID) (*storage.Record, []byte, error) {
	var rec storage.Record
	body, err := a.get("/v1/encounters/"+id.String(), &rec)
	if err != nil {
		return nil, body, err
	}
	return &rec, body, nil
}

func (a *apiClient) generateTreasure(req handlers.TreasureRequest) (*handlers.TreasureResponse, []byte, error) {
	var resp handlers.TreasureResponse
	body, err := a.post("/v1/treasure", req, http.StatusOK, &resp)
	if err != nil {
		return nil, body, err
	}
	return &resp, body, nil
}

func (a *apiClient) roll(notation string, seed *uint64) (*handlers.RollResponse, []byte, error) {
	q := url.Values{}
	q.Set("dice", notation)
	if seed != nil {
		q.Set("seed", strconv.FormatUint(*seed, 10))
	}

	var resp handlers.RollResponse
	body, err := a.get("/v1/roll?"+q.Encode(), &resp)
	if err != nil {
		return nil, body, err
	}
	return &resp, body, nil
}

func (a *apiClient) listLocations() (*handlers.LocationsResponse, []byte, error) {
	var resp handlers.LocationsResponse
	body, err := a.get("/v1/locations", &resp)
	if err != nil {
		return nil, body, err
	}
	return &resp, body, nil
}

func (a *apiClient) get(path string, out any) ([]byte, error) {
	resp, err := a.client.Get(a.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return decodeResponse(resp, http.StatusOK, out)
}

func (a *apiClient) post(path string, in any, want int, out any) ([]byte, error) {
	jsonData, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := a.client.Post(a.baseURL+path, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return decodeResponse(resp, want, out)
}

func decodeResponse(resp *http.Response, want int, out any) ([]byte, error) {
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != want {
		var apiErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &apiErr); err != nil || (apiErr.Error == "" && apiErr.Message == "") {
			return body, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		if apiErr.Error != "" {
			return body, errors.New(apiErr.Error)
		}
		return body, errors.New(apiErr.Message)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return body, fmt.Errorf("failed to parse response: %w", err)
	}
	return body, nil
}
