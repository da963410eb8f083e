package service

import (
	"context"

	"github.com/weiawesome/amigos-chat/internal/domain"
)

// UserService defines the interface for user business logic.
type UserService interface {
	RegisterUser(ctx context.Context, req *domain.RegisterUserRequest) (*domain.User, error)
	// GetUser returns (nil, nil) when no user has walletAddress.
	GetUser(ctx context.Context, walletAddress string) (*domain.User, error)
	GetAllUsers(ctx context.Context) ([]domain.User, error)
}

// GroupService defines the interface for group and membership logic.
type GroupService interface {
	CreateGroup(ctx context.Context, req *domain.CreateGroupRequest) (*domain.Group, error)
	GetAllGroups(ctx context.Context) ([]domain.Group, error)
	JoinGroup(ctx context.Context, req *domain.JoinGroupRequest) (*domain.GroupMembership, error)
	GetUserGroups(ctx context.Context, walletAddress string) ([]domain.Group, error)
}

// MessageService defines the interface for message persistence and history.
type MessageService interface {
	SendMessage(ctx context.Context, req *domain.SendMessageRequest) (*domain.Message, error)
	GetMessages(ctx context.Context, req *domain.GetMessagesRequest) ([]domain.Message, error)
}
