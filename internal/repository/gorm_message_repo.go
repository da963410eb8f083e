package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/weiawesome/amigos-chat/internal/domain"
)

// GormMessageRepository implements MessageRepository using GORM.
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GORM-backed message repository.
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// Create persists a message.
func (r *GormMessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	model := domain.MessageToModel(msg)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}

	msg.ID = model.ID
	msg.CreatedAt = model.CreatedAt
	return nil
}

// ListGroupMessages returns the newest group messages for groupID.
func (r *GormMessageRepository) ListGroupMessages(ctx context.Context, groupID int64, limit int) ([]domain.Message, error) {
	return r.list(ctx, limit, func(q *gorm.DB) *gorm.DB {
		return q.Where("group_id = ? AND message_type = ?", groupID, string(domain.MessageTypeGroup))
	})
}

// ListConversation returns the newest private messages exchanged between a
// and b, regardless of direction.
func (r *GormMessageRepository) ListConversation(ctx context.Context, a, b string, limit int) ([]domain.Message, error) {
	return r.list(ctx, limit, func(q *gorm.DB) *gorm.DB {
		return q.Where("message_type = ?", string(domain.MessageTypePrivate)).
			Where(
				r.db.Where("from_address = ? AND to_address = ?", a, b).
					Or("from_address = ? AND to_address = ?", b, a),
			)
	})
}

func (r *GormMessageRepository) list(ctx context.Context, limit int, scope func(*gorm.DB) *gorm.DB) ([]domain.Message, error) {
	var models []domain.MessageModel
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Order("timestamp DESC").
		Order("id DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	messages := make([]domain.Message, 0, len(models))
	for i := range models {
		msg, err := models[i].ToDomain()
		if err != nil {
			return nil, err
		}
		messages = append(messages, *msg)
	}
	return messages, nil
}

var _ MessageRepository = (*GormMessageRepository)(nil)
