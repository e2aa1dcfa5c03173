package postgres

import (
	"context"

	"github.com/dom/league-ledger/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type leagueRepository struct {
	db *gorm.DB
}

func NewLeagueRepository(db *gorm.DB) *leagueRepository {
	return &leagueRepository{db: db}
}

func (r *leagueRepository) Create(ctx context.Context, league *domain.League) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(league).Error)
}

func (r *leagueRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.League, error) {
	var league domain.League
	err := r.db.WithContext(ctx).First(&league, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &league, nil
}

func (r *leagueRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.League, error) {
	var league domain.League
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&league, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &league, nil
}

func (r *leagueRepository) GetWithRelations(ctx context.Context, id uuid.UUID) (*domain.League, error) {
	var league domain.League
	err := r.db.WithContext(ctx).
		Preload("Teams", func(db *gorm.DB) *gorm.DB { return db.Order("draft_order ASC") }).
		Preload("Prospects", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("DraftPicks", func(db *gorm.DB) *gorm.DB { return db.Order("pick_number ASC") }).
		First(&league, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &league, nil
}

func (r *leagueRepository) List(ctx context.Context) ([]*domain.League, error) {
	var leagues []*domain.League
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&leagues).Error
	return leagues, err
}

func (r *leagueRepository) Update(ctx context.Context, league *domain.League) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(league).Error)
}

func (r *leagueRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.League{}, "id = ?", id).Error
}
