package postgres

import (
	"context"

	"github.com/dom/league-ledger/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *sessionRepository {
	return &sessionRepository{db: db}
}

// Replace drops every session of the user and stores session in one
// transaction, so a user holds at most one refresh session.
func (r *sessionRepository) Replace(ctx context.Context, session *domain.UserSession) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", session.UserID).Delete(&domain.UserSession{}).Error; err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(session).Error
	})
}

// Take loads a session and removes it, so a refresh token is good for one
// exchange even when two requests race with it.
func (r *sessionRepository) Take(ctx context.Context, id uuid.UUID) (*domain.UserSession, error) {
	var sessions []domain.UserSession
	err := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Delete(&sessions).Error
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &sessions[0], nil
}

func (r *sessionRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.UserSession{}).Error
}
