package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dom/league-ledger/internal/repository"
	"github.com/dom/league-ledger/internal/service"
	"github.com/google/uuid"
)

type ProspectHandler struct {
	prospectService *service.ProspectService
}

func NewProspectHandler(prospectService *service.ProspectService) *ProspectHandler {
	return &ProspectHandler{prospectService: prospectService}
}

type ProspectRequest struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	College  string `json:"college"`
}

type CreateProspectRequest struct {
	ProspectRequest
	LeagueID uuid.UUID `json:"league_id"`
}

type BulkProspectRequest struct {
	LeagueID  uuid.UUID         `json:"league_id"`
	Prospects []ProspectRequest `json:"prospects"`
}

type UpdateProspectRequest struct {
	Name     *string `json:"name"`
	Position *string `json:"position"`
	College  *string `json:"college"`
}

func (h *ProspectHandler) List(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := queryUUID(w, r, "league_id")
	if !ok {
		return
	}

	filter := repository.ProspectFilter{
		LeagueID: leagueID,
		Position: r.URL.Query().Get("position"),
	}
	if raw := r.URL.Query().Get("is_drafted"); raw != "" {
		drafted, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid is_drafted")
			return
		}
		filter.IsDrafted = &drafted
	}

	prospects, err := h.prospectService.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, prospects)
}

func (h *ProspectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	prospect, err := h.prospectService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, prospect)
}

func (h *ProspectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProspectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.LeagueID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "name, position and league_id are required")
		return
	}

	prospect, err := h.prospectService.Create(r.Context(), req.LeagueID, req.ProspectRequest.input())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, prospect)
}

func (h *ProspectHandler) CreateBulk(w http.ResponseWriter, r *http.Request) {
	var req BulkProspectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.LeagueID == uuid.Nil || req.Prospects == nil {
		writeError(w, http.StatusBadRequest, "prospects array and league_id are required")
		return
	}

	inputs := make([]service.ProspectInput, len(req.Prospects))
	for i, p := range req.Prospects {
		inputs[i] = p.input()
	}

	prospects, err := h.prospectService.CreateBulk(r.Context(), req.LeagueID, inputs)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   fmt.Sprintf("%d prospects created successfully", len(prospects)),
		"prospects": prospects,
	})
}

func (h *ProspectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateProspectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	prospect, err := h.prospectService.Update(r.Context(), id, service.UpdateProspectInput{
		Name:     req.Name,
		Position: req.Position,
		College:  req.College,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, prospect)
}

func (h *ProspectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.prospectService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Prospect deleted successfully")
}

func (p ProspectRequest) input() service.ProspectInput {
	return service.ProspectInput{Name: p.Name, Position: p.Position, College: p.College}
}
