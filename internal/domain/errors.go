package domain

import "errors"

// Not found
var (
	ErrLeagueNotFound   = errors.New("league not found")
	ErrTeamNotFound     = errors.New("team not found")
	ErrProspectNotFound = errors.New("prospect not found")
	ErrPickNotFound     = errors.New("draft pick not found")
	ErrPicksNotFound    = errors.New("some picks not found")
	ErrTradeNotFound    = errors.New("trade not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrGroupNotFound    = errors.New("group not found")
	ErrSplitNotFound    = errors.New("expense split not found")
)

// Validation
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNoTeams          = errors.New("teams data is required")
	ErrEmptyPickList    = errors.New("pick_ids must be a non-empty array")
	ErrInvalidNumRounds = errors.New("num_rounds must be at least 1")
	ErrCursorOutOfRange = errors.New("current_pick_number is out of range")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date format, use YYYY-MM-DD")
	ErrSplitMismatch    = errors.New("sum of splits must equal the total amount")
)

// Draft and trade conflicts
var (
	ErrAlreadyDrafted           = errors.New("prospect already drafted")
	ErrNotDrafted               = errors.New("prospect is not drafted")
	ErrNoCurrentPick            = errors.New("no current pick available")
	ErrPickAlreadyUsed          = errors.New("pick has already been used")
	ErrPickOwnershipMismatch    = errors.New("pick does not belong to team")
	ErrSameTeamTrade            = errors.New("cannot trade with the same team")
	ErrLeagueAlreadyInitialized = errors.New("league is already initialized")
	ErrLeagueInitialized        = errors.New("num_rounds cannot change after initialization")
	ErrTeamHasPicks             = errors.New("team still holds draft picks or drafted prospects")
	ErrProspectDrafted          = errors.New("drafted prospects cannot be deleted")
)

// Expense ledger
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameExists     = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already exists")
	ErrAlreadyMember      = errors.New("user is already a member of this group")
	ErrNotGroupMember     = errors.New("not authorized to access this group")
	ErrNotPayer           = errors.New("not authorized to settle this expense")
	ErrInvalidToken       = errors.New("invalid token")
	ErrDuplicate          = errors.New("record already exists")
)
