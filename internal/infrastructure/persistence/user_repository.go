package persistence

import (
	"context"
	"errors"

	"github.com/erp/warehouse-bot/internal/domain/identity"
	"github.com/erp/warehouse-bot/internal/domain/shared"
	"gorm.io/gorm"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByChatID finds a user by external chat ID
func (r *GormUserRepository) FindByChatID(ctx context.Context, chatID int64) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).
		First(&user, "chat_id = ?", chatID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Ensure GormUserRepository implements identity.UserRepository
var _ identity.UserRepository = (*GormUserRepository)(nil)
