package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/weiawesome/amigos-chat/internal/audit"
	"github.com/weiawesome/amigos-chat/internal/cache"
	"github.com/weiawesome/amigos-chat/internal/domain"
	"github.com/weiawesome/amigos-chat/internal/repository"
	"github.com/weiawesome/amigos-chat/pkg/log"
)

// userServiceImpl implements UserService interface.
type userServiceImpl struct {
	repo   repository.UserRepository
	lookup *entityLookup
	clock  func() time.Time
}

// NewUserService creates a new user service. c may be nil.
func NewUserService(repo repository.UserRepository, c cache.Cache, cacheTTL time.Duration) UserService {
	return &userServiceImpl{
		repo:   repo,
		lookup: newEntityLookup(repo, nil, c, cacheTTL),
		clock:  time.Now,
	}
}

// RegisterUser registers a wallet. Duplicates are rejected by the store.
func (s *userServiceImpl) RegisterUser(ctx context.Context, req *domain.RegisterUserRequest) (*domain.User, error) {
	l := log.Ctx(ctx)

	user := &domain.User{
		WalletAddress:         req.WalletAddress,
		Username:              req.Username,
		IPFSProfilePicHash:    req.IPFSProfilePicHash,
		RegistrationTimestamp: s.clock().UTC(),
		IsRegistered:          true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrWalletAddressExists) {
			return nil, fmt.Errorf("%w: %s", ErrWalletAddressExists, req.WalletAddress)
		}
		l.Error().Err(err).Str(log.FieldWalletAddress, req.WalletAddress).Msg("failed to create user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	audit.Log(ctx, audit.ActionRegisterUser, user.WalletAddress, "user registered")
	return user, nil
}

// GetUser returns the user or (nil, nil) when the address is unknown.
func (s *userServiceImpl) GetUser(ctx context.Context, walletAddress string) (*domain.User, error) {
	user, err := s.lookup.user(ctx, walletAddress)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil
		}
		l := log.Ctx(ctx)
		l.Error().Err(err).Str(log.FieldWalletAddress, walletAddress).Msg("failed to get user")
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetAllUsers returns every user, newest first.
func (s *userServiceImpl) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		l := log.Ctx(ctx)
		l.Error().Err(err).Msg("failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}
