package postgres

import (
	"context"

	"github.com/dom/league-ledger/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type teamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *teamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) CreateMany(ctx context.Context, teams []*domain.Team) error {
	if len(teams) == 0 {
		return nil
	}
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(&teams).Error)
}

func (r *teamRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Team, error) {
	var team domain.Team
	err := r.db.WithContext(ctx).First(&team, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) GetInLeague(ctx context.Context, leagueID, id uuid.UUID) (*domain.Team, error) {
	var team domain.Team
	err := r.db.WithContext(ctx).First(&team, "id = ? AND league_id = ?", id, leagueID).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) List(ctx context.Context, leagueID *uuid.UUID, includeRoster bool) ([]*domain.Team, error) {
	query := r.db.WithContext(ctx).Order("draft_order ASC")
	if leagueID != nil {
		query = query.Where("league_id = ?", *leagueID)
	}
	if includeRoster {
		query = query.Preload("Roster", func(db *gorm.DB) *gorm.DB {
			return db.Order("draft_pick_number ASC")
		})
	}

	var teams []*domain.Team
	err := query.Find(&teams).Error
	return teams, err
}

func (r *teamRepository) CountByLeague(ctx context.Context, leagueID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Team{}).Where("league_id = ?", leagueID).Count(&count).Error
	return count, err
}

func (r *teamRepository) HasHoldings(ctx context.Context, id uuid.UUID) (bool, error) {
	var picks int64
	err := r.db.WithContext(ctx).Model(&domain.DraftPick{}).
		Where("original_team_id = ? OR current_team_id = ?", id, id).
		Count(&picks).Error
	if err != nil {
		return false, err
	}
	if picks > 0 {
		return true, nil
	}

	var drafted int64
	err = r.db.WithContext(ctx).Model(&domain.Prospect{}).Where("drafted_by = ?", id).Count(&drafted).Error
	return drafted > 0, err
}

func (r *teamRepository) Update(ctx context.Context, team *domain.Team) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(team).Error)
}

func (r *teamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Team{}, "id = ?", id).Error
}
