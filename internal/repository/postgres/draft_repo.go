package postgres

import (
	"context"

	"github.com/dom/league-ledger/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type draftPickRepository struct {
	db *gorm.DB
}

func NewDraftPickRepository(db *gorm.DB) *draftPickRepository {
	return &draftPickRepository{db: db}
}

func (r *draftPickRepository) CreateMany(ctx context.Context, picks []*domain.DraftPick) error {
	if len(picks) == 0 {
		return nil
	}
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).CreateInBatches(&picks, 200).Error)
}

func (r *draftPickRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.DraftPick, error) {
	var pick domain.DraftPick
	err := r.db.WithContext(ctx).First(&pick, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &pick, nil
}

func (r *draftPickRepository) GetByNumber(ctx context.Context, leagueID uuid.UUID, pickNumber int) (*domain.DraftPick, error) {
	var pick domain.DraftPick
	err := r.db.WithContext(ctx).
		Where("league_id = ? AND pick_number = ?", leagueID, pickNumber).
		First(&pick).Error
	if err != nil {
		return nil, err
	}
	return &pick, nil
}

func (r *draftPickRepository) GetByProspect(ctx context.Context, leagueID, prospectID uuid.UUID) (*domain.DraftPick, error) {
	var pick domain.DraftPick
	err := r.db.WithContext(ctx).
		Where("league_id = ? AND prospect_id = ?", leagueID, prospectID).
		First(&pick).Error
	if err != nil {
		return nil, err
	}
	return &pick, nil
}

func (r *draftPickRepository) GetManyInLeague(ctx context.Context, leagueID uuid.UUID, ids []uuid.UUID) ([]*domain.DraftPick, error) {
	var picks []*domain.DraftPick
	if len(ids) == 0 {
		return picks, nil
	}
	err := r.db.WithContext(ctx).
		Where("league_id = ? AND id IN ?", leagueID, ids).
		Order("pick_number ASC").
		Find(&picks).Error
	return picks, err
}

func (r *draftPickRepository) ListByLeague(ctx context.Context, leagueID uuid.UUID) ([]*domain.DraftPick, error) {
	var picks []*domain.DraftPick
	err := r.db.WithContext(ctx).
		Where("league_id = ?", leagueID).
		Order("pick_number ASC").
		Find(&picks).Error
	return picks, err
}

func (r *draftPickRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*domain.DraftPick, error) {
	var picks []*domain.DraftPick
	err := r.db.WithContext(ctx).
		Where("current_team_id = ?", teamID).
		Order("pick_number ASC").
		Find(&picks).Error
	return picks, err
}

func (r *draftPickRepository) CountByLeague(ctx context.Context, leagueID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.DraftPick{}).Where("league_id = ?", leagueID).Count(&count).Error
	return count, err
}

func (r *draftPickRepository) Update(ctx context.Context, pick *domain.DraftPick) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(pick).Error)
}

func (r *draftPickRepository) SetOwner(ctx context.Context, ids []uuid.UUID, teamID uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&domain.DraftPick{}).
		Where("id IN ?", ids).
		Update("current_team_id", teamID).Error
}

type tradeRepository struct {
	db *gorm.DB
}

func NewTradeRepository(db *gorm.DB) *tradeRepository {
	return &tradeRepository{db: db}
}

func (r *tradeRepository) Create(ctx context.Context, trade *domain.Trade) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(trade).Error; err != nil {
			return translateError(err)
		}
		if len(trade.Picks) == 0 {
			return nil
		}
		return translateError(tx.Create(&trade.Picks).Error)
	})
}

func (r *tradeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Trade, error) {
	var trade domain.Trade
	err := r.db.WithContext(ctx).
		Preload("Picks", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&trade, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &trade, nil
}

func (r *tradeRepository) List(ctx context.Context, leagueID *uuid.UUID) ([]*domain.Trade, error) {
	query := r.db.WithContext(ctx).
		Preload("Picks", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("executed_at DESC")
	if leagueID != nil {
		query = query.Where("league_id = ?", *leagueID)
	}

	var trades []*domain.Trade
	err := query.Find(&trades).Error
	return trades, err
}

func (r *tradeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Trade{}, "id = ?", id).Error
}
