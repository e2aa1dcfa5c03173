package handlers

import (
	"net/http"

	"github.com/dom/league-ledger/internal/service"
)

type TeamHandler struct {
	teamService *service.TeamService
}

func NewTeamHandler(teamService *service.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

type UpdateTeamRequest struct {
	Name       *string `json:"name"`
	Icon       *string `json:"icon"`
	Color      *string `json:"color"`
	BgColor    *string `json:"bg_color"`
	DraftOrder *int    `json:"draft_order"`
}

func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := queryUUID(w, r, "league_id")
	if !ok {
		return
	}

	teams, err := h.teamService.List(r.Context(), leagueID, queryBool(r, "include_roster"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	team, err := h.teamService.Get(r.Context(), id, queryBool(r, "include_roster"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateTeamRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	team, err := h.teamService.Update(r.Context(), id, service.UpdateTeamInput{
		Name:       req.Name,
		Icon:       req.Icon,
		Color:      req.Color,
		BgColor:    req.BgColor,
		DraftOrder: req.DraftOrder,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.teamService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Team deleted successfully")
}

func (h *TeamHandler) Roster(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	roster, err := h.teamService.Roster(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, roster)
}
