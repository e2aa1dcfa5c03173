package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dom/league-ledger/internal/domain"
	"github.com/dom/league-ledger/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const DateLayout = "2006-01-02"

type ExpenseService struct {
	expenseRepo repository.ExpenseRepository
	userRepo    repository.UserRepository
	groupRepo   repository.GroupRepository
}

func NewExpenseService(expenseRepo repository.ExpenseRepository, userRepo repository.UserRepository, groupRepo repository.GroupRepository) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		userRepo:    userRepo,
		groupRepo:   groupRepo,
	}
}

type SplitInput struct {
	UserID uuid.UUID
	Amount decimal.Decimal
}

type CreateExpenseInput struct {
	Description string
	Amount      decimal.Decimal
	Date        string
	GroupID     *uuid.UUID
	Splits      []SplitInput
}

func (s *ExpenseService) Create(ctx context.Context, payerID uuid.UUID, input CreateExpenseInput) (*domain.Expense, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", domain.ErrInvalidInput)
	}
	if !input.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidAmount)
	}
	date, err := time.Parse(DateLayout, input.Date)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}

	expense := &domain.Expense{
		ID:          uuid.New(),
		Description: description,
		Amount:      input.Amount.Round(2),
		Date:        datatypes.Date(date),
		PayerID:     payerID,
		GroupID:     input.GroupID,
	}

	for _, split := range input.Splits {
		if !split.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: split amount must be positive", domain.ErrInvalidAmount)
		}
		if _, err := s.userRepo.GetByID(ctx, split.UserID); err != nil {
			return nil, fmt.Errorf("%w: %s", notFound(err, domain.ErrUserNotFound), split.UserID)
		}
		expense.Splits = append(expense.Splits, domain.ExpenseSplit{
			ID:        uuid.New(),
			ExpenseID: expense.ID,
			UserID:    split.UserID,
			Amount:    split.Amount.Round(2),
		})
	}

	if !expense.SplitsBalance() {
		return nil, domain.ErrSplitMismatch
	}

	if input.GroupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *input.GroupID); err != nil {
			return nil, notFound(err, domain.ErrGroupNotFound)
		}
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// List returns the expenses the user paid for or takes part in.
func (s *ExpenseService) List(ctx context.Context, userID uuid.UUID, groupID *uuid.UUID) ([]*domain.Expense, error) {
	return s.expenseRepo.List(ctx, repository.ExpenseFilter{
		ParticipantID: userID,
		GroupID:       groupID,
	})
}

// Balances reports paid, owed and net amounts per user. With a group, only
// that group's members and expenses count and the caller must be a member.
func (s *ExpenseService) Balances(ctx context.Context, userID uuid.UUID, groupID *uuid.UUID) ([]domain.Balance, error) {
	var users []*domain.User
	if groupID != nil {
		group, err := s.groupRepo.GetByID(ctx, *groupID)
		if err != nil {
			return nil, notFound(err, domain.ErrGroupNotFound)
		}
		if !group.HasMember(userID) {
			return nil, domain.ErrNotGroupMember
		}
		for i := range group.Members {
			users = append(users, &group.Members[i])
		}
	} else {
		var err error
		users, err = s.userRepo.List(ctx)
		if err != nil {
			return nil, err
		}
	}

	balances := make([]domain.Balance, 0, len(users))
	for _, user := range users {
		paid, err := s.expenseRepo.SumPaid(ctx, user.ID, groupID)
		if err != nil {
			return nil, err
		}
		owed, err := s.expenseRepo.SumOwed(ctx, user.ID, groupID)
		if err != nil {
			return nil, err
		}
		balances = append(balances, domain.Balance{
			User:       *user,
			Paid:       paid,
			Owed:       owed,
			NetBalance: paid.Sub(owed),
		})
	}
	return balances, nil
}

// Settle marks a participant's split as paid back. Only the payer may settle.
func (s *ExpenseService) Settle(ctx context.Context, actorID, expenseID, userID uuid.UUID) (*domain.Expense, error) {
	split, err := s.expenseRepo.GetSplit(ctx, expenseID, userID)
	if err != nil {
		return nil, notFound(err, domain.ErrSplitNotFound)
	}

	expense, err := s.expenseRepo.GetByID(ctx, split.ExpenseID)
	if err != nil {
		return nil, err
	}
	if expense.PayerID != actorID {
		return nil, domain.ErrNotPayer
	}

	if err := s.expenseRepo.SettleSplit(ctx, split); err != nil {
		return nil, err
	}
	for i := range expense.Splits {
		if expense.Splits[i].ID == split.ID {
			expense.Splits[i].IsSettled = true
		}
	}
	return expense, nil
}
