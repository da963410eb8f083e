package repository

import (
	"context"
	"errors"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/weiawesome/amigos-chat/internal/domain"
	"github.com/weiawesome/amigos-chat/pkg/database"
)

// GormGroupRepository implements GroupRepository using GORM.
type GormGroupRepository struct {
	db *gorm.DB
}

// NewGormGroupRepository creates a new GORM-backed group repository.
func NewGormGroupRepository(db *gorm.DB) *GormGroupRepository {
	return &GormGroupRepository{db: db}
}

// Create inserts a group keyed by its external group id.
func (r *GormGroupRepository) Create(ctx context.Context, group *domain.Group) error {
	model := domain.GroupToModel(group)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return ErrGroupIDExists
		}
		return err
	}

	group.ID = model.ID
	group.CreatedAt = model.CreatedAt
	return nil
}

// GetByGroupID retrieves a group by its external group id.
func (r *GormGroupRepository) GetByGroupID(ctx context.Context, groupID int64) (*domain.Group, error) {
	var model domain.GroupModel
	result := r.db.WithContext(ctx).Where("group_id = ?", groupID).Take(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// List returns all groups ordered by id ASC.
func (r *GormGroupRepository) List(ctx context.Context) ([]domain.Group, error) {
	var models []domain.GroupModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return toGroups(models), nil
}

// AddMember inserts a membership row. Concurrent duplicates are rejected by
// uidx_group_member and reported as ErrMembershipExists.
func (r *GormGroupRepository) AddMember(ctx context.Context, membership *domain.GroupMembership) error {
	model := domain.MembershipToModel(membership)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return ErrMembershipExists
		}
		return err
	}

	membership.ID = model.ID
	return nil
}

// IsMember checks whether walletAddress has joined groupID.
func (r *GormGroupRepository) IsMember(ctx context.Context, groupID int64, walletAddress string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.GroupMembershipModel{}).
		Where("group_id = ? AND user_wallet_address = ?", groupID, walletAddress).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByMember returns the groups walletAddress belongs to, ordered by
// group id.
func (r *GormGroupRepository) ListByMember(ctx context.Context, walletAddress string) ([]domain.Group, error) {
	var models []domain.GroupModel
	err := r.db.WithContext(ctx).
		Table("chat_groups").
		Select("chat_groups.*").
		Joins("INNER JOIN group_memberships ON group_memberships.group_id = chat_groups.group_id").
		Where("group_memberships.user_wallet_address = ?", walletAddress).
		Order("chat_groups.group_id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toGroups(models), nil
}

func toGroups(models []domain.GroupModel) []domain.Group {
	return lo.Map(models, func(m domain.GroupModel, _ int) domain.Group {
		return *m.ToDomain()
	})
}

var _ GroupRepository = (*GormGroupRepository)(nil)
