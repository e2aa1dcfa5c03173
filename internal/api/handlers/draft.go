package handlers

import (
	"errors"
	"net/http"

	"github.com/dom/league-ledger/internal/domain"
	"github.com/dom/league-ledger/internal/service"
	"github.com/google/uuid"
)

type DraftHandler struct {
	draftService *service.DraftService
}

func NewDraftHandler(draftService *service.DraftService) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

type ExecuteDraftRequest struct {
	LeagueID   uuid.UUID `json:"league_id"`
	TeamID     uuid.UUID `json:"team_id"`
	ProspectID uuid.UUID `json:"prospect_id"`
}

type UndraftRequest struct {
	LeagueID   uuid.UUID `json:"league_id"`
	ProspectID uuid.UUID `json:"prospect_id"`
}

type DraftResponse struct {
	Message  string            `json:"message"`
	Prospect *domain.Prospect  `json:"prospect"`
	Pick     *domain.DraftPick `json:"pick,omitempty"`
	League   *domain.League    `json:"league"`
}

func (h *DraftHandler) ListPicks(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := queryUUID(w, r, "league_id")
	if !ok {
		return
	}
	teamID, ok := queryUUID(w, r, "team_id")
	if !ok {
		return
	}

	picks, err := h.draftService.ListPicks(r.Context(), leagueID, teamID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, picks)
}

func (h *DraftHandler) GetPick(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	pick, err := h.draftService.GetPick(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pick)
}

func (h *DraftHandler) Current(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := queryUUID(w, r, "league_id")
	if !ok {
		return
	}
	if leagueID == nil {
		writeError(w, http.StatusBadRequest, "league_id is required")
		return
	}

	pick, err := h.draftService.Current(r.Context(), *leagueID)
	if errors.Is(err, domain.ErrNoCurrentPick) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pick)
}

func (h *DraftHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req ExecuteDraftRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.LeagueID == uuid.Nil || req.TeamID == uuid.Nil || req.ProspectID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "league_id, team_id and prospect_id are required")
		return
	}

	result, err := h.draftService.Execute(r.Context(), service.ExecuteDraftInput{
		LeagueID:   req.LeagueID,
		TeamID:     req.TeamID,
		ProspectID: req.ProspectID,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, DraftResponse{
		Message:  "Draft executed successfully",
		Prospect: result.Prospect,
		Pick:     result.Pick,
		League:   result.League,
	})
}

func (h *DraftHandler) Undraft(w http.ResponseWriter, r *http.Request) {
	var req UndraftRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.LeagueID == uuid.Nil || req.ProspectID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "league_id and prospect_id are required")
		return
	}

	result, err := h.draftService.Undraft(r.Context(), service.UndraftInput{
		LeagueID:   req.LeagueID,
		ProspectID: req.ProspectID,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, DraftResponse{
		Message:  "Prospect undrafted successfully",
		Prospect: result.Prospect,
		League:   result.League,
	})
}
