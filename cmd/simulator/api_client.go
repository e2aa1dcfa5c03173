package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// APIClient handles HTTP communication with the backend
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL + "/api/v1",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Response types matching backend

type League struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	NumRounds         int         `json:"num_rounds"`
	DraftStarted      bool        `json:"draft_started"`
	DraftCompleted    bool        `json:"draft_completed"`
	CurrentPickNumber int         `json:"current_pick_number"`
	Teams             []Team      `json:"teams"`
	DraftPicks        []DraftPick `json:"draft_picks"`
}

type Team struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	DraftOrder int    `json:"draft_order"`
}

type DraftPick struct {
	ID             string  `json:"id"`
	PickNumber     int     `json:"pick_number"`
	RoundNumber    int     `json:"round_number"`
	PickInRound    int     `json:"pick_in_round"`
	OriginalTeamID string  `json:"original_team_id"`
	CurrentTeamID  string  `json:"current_team_id"`
	ProspectID     *string `json:"prospect_id"`
	IsUsed         bool    `json:"is_used"`
}

type Prospect struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	College  string `json:"college"`
}

type draftResult struct {
	Prospect Prospect  `json:"prospect"`
	Pick     DraftPick `json:"pick"`
	League   League    `json:"league"`
}

type apiError struct {
	Error string `json:"error"`
}

func (c *APIClient) CreateLeague(name string, rounds int) (*League, error) {
	var league League
	err := c.do(http.MethodPost, "/leagues", map[string]interface{}{
		"name":       name,
		"num_rounds": rounds,
	}, http.StatusCreated, &league)
	return &league, err
}

func (c *APIClient) InitializeLeague(leagueID string, teams []ScenarioTeam) (*League, error) {
	var league League
	err := c.do(http.MethodPost, "/leagues/"+leagueID+"/initialize", map[string]interface{}{
		"teams": teams,
	}, http.StatusCreated, &league)
	return &league, err
}

// GetLeague loads the league with its teams and picks.
func (c *APIClient) GetLeague(leagueID string) (*League, error) {
	var league League
	err := c.do(http.MethodGet, "/leagues/"+leagueID+"?include_relations=true", nil, http.StatusOK, &league)
	return &league, err
}

func (c *APIClient) CreateProspects(leagueID string, prospects []ScenarioProspect) (int, error) {
	var result struct {
		Prospects []Prospect `json:"prospects"`
	}
	err := c.do(http.MethodPost, "/prospects/bulk", map[string]interface{}{
		"league_id": leagueID,
		"prospects": prospects,
	}, http.StatusCreated, &result)
	return len(result.Prospects), err
}

func (c *APIClient) AvailableProspects(leagueID string) ([]Prospect, error) {
	query := url.Values{"league_id": {leagueID}, "is_drafted": {"false"}}
	var prospects []Prospect
	err := c.do(http.MethodGet, "/prospects?"+query.Encode(), nil, http.StatusOK, &prospects)
	return prospects, err
}

// CurrentPick returns nil once the draft has no pick left.
func (c *APIClient) CurrentPick(leagueID string) (*DraftPick, error) {
	var pick DraftPick
	err := c.do(http.MethodGet, "/draft/current?league_id="+leagueID, nil, http.StatusOK, &pick)
	if statusErr, ok := err.(*statusError); ok && statusErr.status == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pick, nil
}

func (c *APIClient) ExecuteDraft(leagueID, teamID, prospectID string) (*draftResult, error) {
	var result draftResult
	err := c.do(http.MethodPost, "/draft/execute", map[string]string{
		"league_id":   leagueID,
		"team_id":     teamID,
		"prospect_id": prospectID,
	}, http.StatusOK, &result)
	return &result, err
}

func (c *APIClient) ExecuteTrade(leagueID, fromTeamID, toTeamID string, pickIDs []string) error {
	return c.do(http.MethodPost, "/trades", map[string]interface{}{
		"league_id":    leagueID,
		"from_team_id": fromTeamID,
		"to_team_id":   toTeamID,
		"pick_ids":     pickIDs,
	}, http.StatusCreated, nil)
}

// HTTP helpers

type statusError struct {
	status  int
	message string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.status, e.message)
}

func (c *APIClient) do(method, path string, body interface{}, want int, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		var apiErr apiError
		bodyBytes, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(bodyBytes, &apiErr) != nil || apiErr.Error == "" {
			apiErr.Error = string(bodyBytes)
		}
		return &statusError{status: resp.StatusCode, message: apiErr.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
