package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dom/league-ledger/internal/api/middleware"
	"github.com/dom/league-ledger/internal/domain"
	"github.com/dom/league-ledger/internal/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

type SplitRequest struct {
	UserID uuid.UUID       `json:"user_id"`
	Amount decimal.Decimal `json:"amount"`
}

type CreateExpenseRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	GroupID     *uuid.UUID      `json:"group_id"`
	Splits      []SplitRequest  `json:"splits"`
}

type SettleRequest struct {
	ExpenseID uuid.UUID `json:"expense_id"`
	UserID    uuid.UUID `json:"user_id"`
}

type SplitResponse struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	Amount    json.Number `json:"amount"`
	IsSettled bool        `json:"is_settled"`
}

type ExpenseResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      json.Number     `json:"amount"`
	Date        string          `json:"date"`
	PayerID     string          `json:"payer_id"`
	GroupID     *string         `json:"group_id"`
	Splits      []SplitResponse `json:"splits"`
}

type ExpenseMessageResponse struct {
	Message string          `json:"message"`
	Expense ExpenseResponse `json:"expense"`
}

type BalanceResponse struct {
	User       UserResponse `json:"user"`
	Paid       json.Number  `json:"paid"`
	Owed       json.Number  `json:"owed"`
	NetBalance json.Number  `json:"net_balance"`
}

func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	groupID, ok := queryUUID(w, r, "group_id")
	if !ok {
		return
	}

	expenses, err := h.expenseService.List(r.Context(), userID, groupID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		resp[i] = toExpenseResponse(e)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Description == "" || req.Date == "" || len(req.Splits) == 0 {
		writeError(w, http.StatusBadRequest, "description, amount, date and splits are required")
		return
	}

	splits := make([]service.SplitInput, len(req.Splits))
	for i, s := range req.Splits {
		splits[i] = service.SplitInput{UserID: s.UserID, Amount: s.Amount}
	}

	expense, err := h.expenseService.Create(r.Context(), userID, service.CreateExpenseInput{
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		GroupID:     req.GroupID,
		Splits:      splits,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ExpenseMessageResponse{
		Message: "Expense created successfully",
		Expense: toExpenseResponse(expense),
	})
}

// Balances answers with a map keyed by user id.
func (h *ExpenseHandler) Balances(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	groupID, ok := queryUUID(w, r, "group_id")
	if !ok {
		return
	}

	balances, err := h.expenseService.Balances(r.Context(), userID, groupID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := make(map[string]BalanceResponse, len(balances))
	for _, b := range balances {
		resp[b.User.ID.String()] = BalanceResponse{
			User:       toUserResponse(&b.User),
			Paid:       money(b.Paid),
			Owed:       money(b.Owed),
			NetBalance: money(b.NetBalance),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ExpenseHandler) Settle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req SettleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ExpenseID == uuid.Nil || req.UserID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "expense_id and user_id are required")
		return
	}

	expense, err := h.expenseService.Settle(r.Context(), userID, req.ExpenseID, req.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ExpenseMessageResponse{
		Message: "Expense settled successfully",
		Expense: toExpenseResponse(expense),
	})
}

func toExpenseResponse(e *domain.Expense) ExpenseResponse {
	splits := make([]SplitResponse, len(e.Splits))
	for i, s := range e.Splits {
		splits[i] = SplitResponse{
			ID:        s.ID.String(),
			UserID:    s.UserID.String(),
			Amount:    money(s.Amount),
			IsSettled: s.IsSettled,
		}
	}

	var groupID *string
	if e.GroupID != nil {
		id := e.GroupID.String()
		groupID = &id
	}

	return ExpenseResponse{
		ID:          e.ID.String(),
		Description: e.Description,
		Amount:      money(e.Amount),
		Date:        time.Time(e.Date).Format(service.DateLayout),
		PayerID:     e.PayerID.String(),
		GroupID:     groupID,
		Splits:      splits,
	}
}
