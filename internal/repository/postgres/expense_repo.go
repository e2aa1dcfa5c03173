package postgres

import (
	"context"

	"github.com/dom/league-ledger/internal/domain"
	"github.com/dom/league-ledger/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type expenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *expenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	return translateError(r.db.WithContext(ctx).Omit("Payer", "Group").Create(expense).Error)
}

func (r *expenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Expense, error) {
	var expense domain.Expense
	err := r.db.WithContext(ctx).
		Preload("Splits", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&expense, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) List(ctx context.Context, filter repository.ExpenseFilter) ([]*domain.Expense, error) {
	participating := r.db.Model(&domain.ExpenseSplit{}).
		Select("expense_id").
		Where("user_id = ?", filter.ParticipantID)

	query := r.db.WithContext(ctx).
		Preload("Splits", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("payer_id = ? OR id IN (?)", filter.ParticipantID, participating).
		Order("date DESC, created_at DESC")
	if filter.GroupID != nil {
		query = query.Where("group_id = ?", *filter.GroupID)
	}

	var expenses []*domain.Expense
	err := query.Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepository) GetSplit(ctx context.Context, expenseID, userID uuid.UUID) (*domain.ExpenseSplit, error) {
	var split domain.ExpenseSplit
	err := r.db.WithContext(ctx).
		Where("expense_id = ? AND user_id = ?", expenseID, userID).
		First(&split).Error
	if err != nil {
		return nil, err
	}
	return &split, nil
}

func (r *expenseRepository) SettleSplit(ctx context.Context, split *domain.ExpenseSplit) error {
	err := r.db.WithContext(ctx).Model(split).Update("is_settled", true).Error
	if err != nil {
		return err
	}
	split.IsSettled = true
	return nil
}

func (r *expenseRepository) SumPaid(ctx context.Context, userID uuid.UUID, groupID *uuid.UUID) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).
		Model(&domain.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("payer_id = ?", userID)
	if groupID != nil {
		query = query.Where("group_id = ?", *groupID)
	}

	var total decimal.Decimal
	err := query.Row().Scan(&total)
	return total, err
}

func (r *expenseRepository) SumOwed(ctx context.Context, userID uuid.UUID, groupID *uuid.UUID) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).
		Model(&domain.ExpenseSplit{}).
		Select("COALESCE(SUM(expense_splits.amount), 0)").
		Joins("JOIN expenses ON expenses.id = expense_splits.expense_id").
		Where("expense_splits.user_id = ? AND expense_splits.is_settled = ?", userID, false)
	if groupID != nil {
		query = query.Where("expenses.group_id = ?", *groupID)
	}

	var total decimal.Decimal
	err := query.Row().Scan(&total)
	return total, err
}
