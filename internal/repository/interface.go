//go:generate go run go.uber.org/mock/mockgen -source=interface.go -destination=../mocks/mock_repository.go -package=mocks
package repository

import (
	"context"
	"errors"

	"github.com/weiawesome/amigos-chat/internal/domain"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrGroupNotFound       = errors.New("group not found")
	ErrWalletAddressExists = errors.New("wallet address already registered")
	ErrGroupIDExists       = errors.New("group id already exists")
	ErrMembershipExists    = errors.New("membership already exists")
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByWalletAddress(ctx context.Context, walletAddress string) (*domain.User, error)
	// List returns every user, newest first.
	List(ctx context.Context) ([]domain.User, error)
}

// GroupRepository defines persistence operations for groups and memberships.
type GroupRepository interface {
	Create(ctx context.Context, group *domain.Group) error
	GetByGroupID(ctx context.Context, groupID int64) (*domain.Group, error)
	// List returns every group in insertion order.
	List(ctx context.Context) ([]domain.Group, error)

	AddMember(ctx context.Context, membership *domain.GroupMembership) error
	IsMember(ctx context.Context, groupID int64, walletAddress string) (bool, error)
	ListByMember(ctx context.Context, walletAddress string) ([]domain.Group, error)
}

// MessageRepository defines persistence operations for messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	// ListGroupMessages returns group messages for groupID, newest first.
	ListGroupMessages(ctx context.Context, groupID int64, limit int) ([]domain.Message, error)
	// ListConversation returns private messages exchanged between a and b in
	// either direction, newest first.
	ListConversation(ctx context.Context, a, b string, limit int) ([]domain.Message, error)
}
