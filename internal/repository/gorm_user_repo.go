package repository

import (
	"context"
	"errors"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/weiawesome/amigos-chat/internal/domain"
	"github.com/weiawesome/amigos-chat/pkg/database"
)

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM-based user repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts a user. The unique index on wallet_address decides
// duplicates; there is no read before the insert.
func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	model := domain.UserToModel(user)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return ErrWalletAddressExists
		}
		return err
	}

	user.ID = model.ID
	user.CreatedAt = model.CreatedAt
	return nil
}

// GetByWalletAddress retrieves a user by exact wallet address.
func (r *GormUserRepository) GetByWalletAddress(ctx context.Context, walletAddress string) (*domain.User, error) {
	var model domain.UserModel
	result := r.db.WithContext(ctx).Where("wallet_address = ?", walletAddress).Take(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// List returns all users ordered by created_at DESC, id DESC.
func (r *GormUserRepository) List(ctx context.Context) ([]domain.User, error) {
	var models []domain.UserModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	return lo.Map(models, func(m domain.UserModel, _ int) domain.User {
		return *m.ToDomain()
	}), nil
}

var _ UserRepository = (*GormUserRepository)(nil)
