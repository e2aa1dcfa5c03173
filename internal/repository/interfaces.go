package repository

import (
	"context"

	"github.com/dom/league-ledger/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LeagueRepository interface {
	Create(ctx context.Context, league *domain.League) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.League, error)
	// GetByIDForUpdate loads the league holding a row lock until the
	// surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.League, error)
	GetWithRelations(ctx context.Context, id uuid.UUID) (*domain.League, error)
	List(ctx context.Context) ([]*domain.League, error)
	Update(ctx context.Context, league *domain.League) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TeamRepository interface {
	CreateMany(ctx context.Context, teams []*domain.Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Team, error)
	GetInLeague(ctx context.Context, leagueID, id uuid.UUID) (*domain.Team, error)
	List(ctx context.Context, leagueID *uuid.UUID, includeRoster bool) ([]*domain.Team, error)
	CountByLeague(ctx context.Context, leagueID uuid.UUID) (int64, error)
	// HasHoldings reports whether any pick or drafted prospect still points at the team.
	HasHoldings(ctx context.Context, id uuid.UUID) (bool, error)
	Update(ctx context.Context, team *domain.Team) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProspectFilter struct {
	LeagueID  *uuid.UUID
	Position  string
	IsDrafted *bool
}

type ProspectRepository interface {
	Create(ctx context.Context, prospect *domain.Prospect) error
	CreateMany(ctx context.Context, prospects []*domain.Prospect) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Prospect, error)
	List(ctx context.Context, filter ProspectFilter) ([]*domain.Prospect, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*domain.Prospect, error)
	// Update writes every column; only the draft paths use it, under the league lock.
	Update(ctx context.Context, prospect *domain.Prospect) error
	// UpdateDetails writes name, position and college and leaves the draft
	// columns alone.
	UpdateDetails(ctx context.Context, prospect *domain.Prospect) error
	// DeleteUndrafted removes the prospect only while it is undrafted and
	// reports whether a row went away.
	DeleteUndrafted(ctx context.Context, id uuid.UUID) (bool, error)
}

type DraftPickRepository interface {
	CreateMany(ctx context.Context, picks []*domain.DraftPick) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DraftPick, error)
	GetByNumber(ctx context.Context, leagueID uuid.UUID, pickNumber int) (*domain.DraftPick, error)
	GetByProspect(ctx context.Context, leagueID, prospectID uuid.UUID) (*domain.DraftPick, error)
	// GetManyInLeague returns the distinct picks among ids that belong to the league.
	GetManyInLeague(ctx context.Context, leagueID uuid.UUID, ids []uuid.UUID) ([]*domain.DraftPick, error)
	ListByLeague(ctx context.Context, leagueID uuid.UUID) ([]*domain.DraftPick, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*domain.DraftPick, error)
	CountByLeague(ctx context.Context, leagueID uuid.UUID) (int64, error)
	Update(ctx context.Context, pick *domain.DraftPick) error
	SetOwner(ctx context.Context, ids []uuid.UUID, teamID uuid.UUID) error
}

type TradeRepository interface {
	// Create stores the trade and its ordered pick rows.
	Create(ctx context.Context, trade *domain.Trade) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Trade, error)
	List(ctx context.Context, leagueID *uuid.UUID) ([]*domain.Trade, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

type SessionRepository interface {
	// Replace stores session as the user's only session.
	Replace(ctx context.Context, session *domain.UserSession) error
	// Take deletes the session and returns what was stored.
	Take(ctx context.Context, id uuid.UUID) (*domain.UserSession, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type GroupRepository interface {
	// Create stores the group together with its initial members.
	Create(ctx context.Context, group *domain.Group) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error)
	ListByMember(ctx context.Context, userID uuid.UUID) ([]*domain.Group, error)
	AddMember(ctx context.Context, group *domain.Group, user *domain.User) error
}

type ExpenseFilter struct {
	// ParticipantID matches expenses the user paid or holds a split in.
	ParticipantID uuid.UUID
	GroupID       *uuid.UUID
}

type ExpenseRepository interface {
	// Create stores the expense together with its splits.
	Create(ctx context.Context, expense *domain.Expense) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Expense, error)
	List(ctx context.Context, filter ExpenseFilter) ([]*domain.Expense, error)
	GetSplit(ctx context.Context, expenseID, userID uuid.UUID) (*domain.ExpenseSplit, error)
	SettleSplit(ctx context.Context, split *domain.ExpenseSplit) error
	SumPaid(ctx context.Context, userID uuid.UUID, groupID *uuid.UUID) (decimal.Decimal, error)
	SumOwed(ctx context.Context, userID uuid.UUID, groupID *uuid.UUID) (decimal.Decimal, error)
}

// Transactor runs fn against repositories bound to a single transaction.
// Returning an error from fn rolls the transaction back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(repos *Repositories) error) error
}

type Repositories struct {
	League    LeagueRepository
	Team      TeamRepository
	Prospect  ProspectRepository
	DraftPick DraftPickRepository
	Trade     TradeRepository
	User      UserRepository
	Session   SessionRepository
	Group     GroupRepository
	Expense   ExpenseRepository
	Tx        Transactor
}
