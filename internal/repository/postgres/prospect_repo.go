package postgres

import (
	"context"

	"github.com/dom/league-ledger/internal/domain"
	"github.com/dom/league-ledger/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type prospectRepository struct {
	db *gorm.DB
}

func NewProspectRepository(db *gorm.DB) *prospectRepository {
	return &prospectRepository{db: db}
}

func (r *prospectRepository) Create(ctx context.Context, prospect *domain.Prospect) error {
	return translateError(r.db.WithContext(ctx).Create(prospect).Error)
}

func (r *prospectRepository) CreateMany(ctx context.Context, prospects []*domain.Prospect) error {
	if len(prospects) == 0 {
		return nil
	}
	return translateError(r.db.WithContext(ctx).CreateInBatches(&prospects, 100).Error)
}

func (r *prospectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Prospect, error) {
	var prospect domain.Prospect
	err := r.db.WithContext(ctx).First(&prospect, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &prospect, nil
}

func (r *prospectRepository) List(ctx context.Context, filter repository.ProspectFilter) ([]*domain.Prospect, error) {
	query := r.db.WithContext(ctx).Order("created_at ASC")
	if filter.LeagueID != nil {
		query = query.Where("league_id = ?", *filter.LeagueID)
	}
	if filter.Position != "" {
		query = query.Where("position = ?", filter.Position)
	}
	if filter.IsDrafted != nil {
		query = query.Where("is_drafted = ?", *filter.IsDrafted)
	}

	var prospects []*domain.Prospect
	err := query.Find(&prospects).Error
	return prospects, err
}

func (r *prospectRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*domain.Prospect, error) {
	var prospects []*domain.Prospect
	err := r.db.WithContext(ctx).
		Where("drafted_by = ?", teamID).
		Order("draft_pick_number ASC").
		Find(&prospects).Error
	return prospects, err
}

func (r *prospectRepository) Update(ctx context.Context, prospect *domain.Prospect) error {
	return translateError(r.db.WithContext(ctx).Save(prospect).Error)
}

func (r *prospectRepository) UpdateDetails(ctx context.Context, prospect *domain.Prospect) error {
	err := r.db.WithContext(ctx).
		Model(prospect).
		Select("name", "position", "college", "updated_at").
		Updates(prospect).Error
	return translateError(err)
}

func (r *prospectRepository) DeleteUndrafted(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND is_drafted = ?", id, false).
		Delete(&domain.Prospect{})
	if result.Error != nil {
		return false, translateError(result.Error)
	}
	return result.RowsAffected > 0, nil
}
