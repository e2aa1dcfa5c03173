package postgres

import (
	"context"

	"github.com/dom/league-ledger/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type groupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *groupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, group *domain.Group) error {
	// Members already exist; only the join rows are written.
	return translateError(r.db.WithContext(ctx).Omit("Creator", "Members.*").Create(group).Error)
}

func (r *groupRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	var group domain.Group
	err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("users.username ASC") }).
		First(&group, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) ListByMember(ctx context.Context, userID uuid.UUID) ([]*domain.Group, error) {
	var groups []*domain.Group
	err := r.db.WithContext(ctx).
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", userID).
		Order("groups.created_at ASC").
		Find(&groups).Error
	return groups, err
}

func (r *groupRepository) AddMember(ctx context.Context, group *domain.Group, user *domain.User) error {
	row := map[string]interface{}{
		"group_id": group.ID,
		"user_id":  user.ID,
	}
	if err := r.db.WithContext(ctx).Table("group_members").Create(row).Error; err != nil {
		return translateError(err)
	}
	group.Members = append(group.Members, *user)
	return nil
}
