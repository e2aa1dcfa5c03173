package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dom/league-ledger/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"
	"github.com/shopspring/decimal"
)

var (
	notFoundErrors = []error{
		domain.ErrLeagueNotFound,
		domain.ErrTeamNotFound,
		domain.ErrProspectNotFound,
		domain.ErrPickNotFound,
		domain.ErrPicksNotFound,
		domain.ErrTradeNotFound,
		domain.ErrUserNotFound,
		domain.ErrGroupNotFound,
		domain.ErrSplitNotFound,
	}

	badRequestErrors = []error{
		domain.ErrInvalidInput,
		domain.ErrNoTeams,
		domain.ErrEmptyPickList,
		domain.ErrInvalidNumRounds,
		domain.ErrCursorOutOfRange,
		domain.ErrInvalidAmount,
		domain.ErrInvalidDate,
		domain.ErrSplitMismatch,
		domain.ErrAlreadyDrafted,
		domain.ErrNotDrafted,
		domain.ErrNoCurrentPick,
		domain.ErrPickAlreadyUsed,
		domain.ErrPickOwnershipMismatch,
		domain.ErrSameTeamTrade,
		domain.ErrLeagueAlreadyInitialized,
		domain.ErrLeagueInitialized,
		domain.ErrTeamHasPicks,
		domain.ErrProspectDrafted,
		domain.ErrUsernameExists,
		domain.ErrEmailExists,
		domain.ErrAlreadyMember,
		domain.ErrDuplicate,
	}

	unauthorizedErrors = []error{
		domain.ErrInvalidCredentials,
		domain.ErrInvalidToken,
	}

	forbiddenErrors = []error{
		domain.ErrNotGroupMember,
		domain.ErrNotPayer,
	}
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// statusFor maps a service error onto its HTTP status.
func statusFor(err error) int {
	switch {
	case matchesAny(err, notFoundErrors):
		return http.StatusNotFound
	case matchesAny(err, unauthorizedErrors):
		return http.StatusUnauthorized
	case matchesAny(err, forbiddenErrors):
		return http.StatusForbidden
	case matchesAny(err, badRequestErrors):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func matchesAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// writeServiceError answers with the status of err's kind. Unknown errors
// are logged and hidden behind a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
		writeError(w, status, "Internal server error")
		return
	}
	writeError(w, status, err.Error())
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// pathUUID reads a uuid route parameter, answering 400 when malformed.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// queryUUID reads an optional uuid query parameter. A present but
// malformed value answers 400.
func queryUUID(w http.ResponseWriter, r *http.Request, name string) (*uuid.UUID, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid "+name)
		return nil, false
	}
	return &id, true
}

func queryBool(r *http.Request, name string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return v
}

// money renders an amount as a JSON number with cents.
func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}
