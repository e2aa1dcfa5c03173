package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dom/league-ledger/internal/domain"
	"github.com/dom/league-ledger/internal/repository"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const uniqueViolation = "23505"

func NewConnection(databaseURL string, logLevel logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates every table the service uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.League{},
		&domain.Team{},
		&domain.Prospect{},
		&domain.DraftPick{},
		&domain.Trade{},
		&domain.TradePick{},
		&domain.User{},
		&domain.UserSession{},
		&domain.Group{},
		&domain.Expense{},
		&domain.ExpenseSplit{},
	)
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		League:    NewLeagueRepository(db),
		Team:      NewTeamRepository(db),
		Prospect:  NewProspectRepository(db),
		DraftPick: NewDraftPickRepository(db),
		Trade:     NewTradeRepository(db),
		User:      NewUserRepository(db),
		Session:   NewSessionRepository(db),
		Group:     NewGroupRepository(db),
		Expense:   NewExpenseRepository(db),
		Tx:        &transactor{db: db},
	}
}

type transactor struct {
	db *gorm.DB
}

func (t *transactor) WithinTransaction(ctx context.Context, fn func(repos *repository.Repositories) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

// translateError maps driver errors the services care about onto domain errors.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", domain.ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}
