package handlers

import (
	"net/http"

	"github.com/dom/league-ledger/internal/service"
)

type LeagueHandler struct {
	leagueService *service.LeagueService
}

func NewLeagueHandler(leagueService *service.LeagueService) *LeagueHandler {
	return &LeagueHandler{leagueService: leagueService}
}

type CreateLeagueRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	NumRounds   *int   `json:"num_rounds"`
}

type UpdateLeagueRequest struct {
	Name              *string `json:"name"`
	Description       *string `json:"description"`
	NumRounds         *int    `json:"num_rounds"`
	DraftStarted      *bool   `json:"draft_started"`
	CurrentPickNumber *int    `json:"current_pick_number"`
}

type TeamRequest struct {
	Name    string `json:"name"`
	Icon    string `json:"icon"`
	Color   string `json:"color"`
	BgColor string `json:"bg_color"`
}

type InitializeLeagueRequest struct {
	Teams []TeamRequest `json:"teams"`
}

func (h *LeagueHandler) List(w http.ResponseWriter, r *http.Request) {
	leagues, err := h.leagueService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, leagues)
}

func (h *LeagueHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	league, err := h.leagueService.Get(r.Context(), id, queryBool(r, "include_relations"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, league)
}

func (h *LeagueHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateLeagueRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	league, err := h.leagueService.Create(r.Context(), service.CreateLeagueInput{
		Name:        req.Name,
		Description: req.Description,
		NumRounds:   req.NumRounds,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, league)
}

func (h *LeagueHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateLeagueRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	league, err := h.leagueService.Update(r.Context(), id, service.UpdateLeagueInput{
		Name:              req.Name,
		Description:       req.Description,
		NumRounds:         req.NumRounds,
		DraftStarted:      req.DraftStarted,
		CurrentPickNumber: req.CurrentPickNumber,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, league)
}

func (h *LeagueHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.leagueService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "League deleted successfully")
}

func (h *LeagueHandler) Initialize(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req InitializeLeagueRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	teams := make([]service.TeamInput, len(req.Teams))
	for i, t := range req.Teams {
		teams[i] = service.TeamInput{Name: t.Name, Icon: t.Icon, Color: t.Color, BgColor: t.BgColor}
	}

	league, err := h.leagueService.Initialize(r.Context(), id, teams)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, league)
}
