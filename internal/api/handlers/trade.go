package handlers

import (
	"net/http"
	"time"

	"github.com/dom/league-ledger/internal/domain"
	"github.com/dom/league-ledger/internal/service"
	"github.com/google/uuid"
)

type TradeHandler struct {
	tradeService *service.TradeService
}

func NewTradeHandler(tradeService *service.TradeService) *TradeHandler {
	return &TradeHandler{tradeService: tradeService}
}

type ExecuteTradeRequest struct {
	LeagueID   uuid.UUID   `json:"league_id"`
	FromTeamID uuid.UUID   `json:"from_team_id"`
	ToTeamID   uuid.UUID   `json:"to_team_id"`
	PickIDs    []uuid.UUID `json:"pick_ids"`
}

type TradeResponse struct {
	ID         string    `json:"id"`
	LeagueID   string    `json:"league_id"`
	FromTeamID string    `json:"from_team_id"`
	ToTeamID   string    `json:"to_team_id"`
	PickIDs    []string  `json:"pick_ids"`
	ExecutedAt time.Time `json:"executed_at"`
}

type ExecuteTradeResponse struct {
	Message string              `json:"message"`
	Trade   TradeResponse       `json:"trade"`
	Picks   []*domain.DraftPick `json:"picks"`
}

func (h *TradeHandler) List(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := queryUUID(w, r, "league_id")
	if !ok {
		return
	}

	trades, err := h.tradeService.List(r.Context(), leagueID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := make([]TradeResponse, len(trades))
	for i, t := range trades {
		resp[i] = toTradeResponse(t)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *TradeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	trade, err := h.tradeService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTradeResponse(trade))
}

func (h *TradeHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req ExecuteTradeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.LeagueID == uuid.Nil || req.FromTeamID == uuid.Nil || req.ToTeamID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "league_id, from_team_id and to_team_id are required")
		return
	}

	result, err := h.tradeService.Execute(r.Context(), service.ExecuteTradeInput{
		LeagueID:   req.LeagueID,
		FromTeamID: req.FromTeamID,
		ToTeamID:   req.ToTeamID,
		PickIDs:    req.PickIDs,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, ExecuteTradeResponse{
		Message: "Trade executed successfully",
		Trade:   toTradeResponse(result.Trade),
		Picks:   result.Picks,
	})
}

func (h *TradeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.tradeService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Trade deleted successfully")
}

func toTradeResponse(t *domain.Trade) TradeResponse {
	ids := t.PickIDs()
	pickIDs := make([]string, len(ids))
	for i, id := range ids {
		pickIDs[i] = id.String()
	}

	return TradeResponse{
		ID:         t.ID.String(),
		LeagueID:   t.LeagueID.String(),
		FromTeamID: t.FromTeamID.String(),
		ToTeamID:   t.ToTeamID.String(),
		PickIDs:    pickIDs,
		ExecutedAt: t.ExecutedAt,
	}
}
