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

type groupServiceImpl struct {
	groups repository.GroupRepository
	lookup *entityLookup
	clock  func() time.Time
}

// NewGroupService creates a new group service. c may be nil.
func NewGroupService(
	groups repository.GroupRepository,
	users repository.UserRepository,
	c cache.Cache,
	cacheTTL time.Duration,
) GroupService {
	return &groupServiceImpl{
		groups: groups,
		lookup: newEntityLookup(users, groups, c, cacheTTL),
		clock:  time.Now,
	}
}

// CreateGroup records an on-chain group. The creator is stored as given:
// group events may be synced before the creator's registration.
func (s *groupServiceImpl) CreateGroup(ctx context.Context, req *domain.CreateGroupRequest) (*domain.Group, error) {
	group := &domain.Group{
		GroupID: *req.GroupID,
		Name:    req.Name,
		Creator: req.Creator,
	}

	if err := s.groups.Create(ctx, group); err != nil {
		if errors.Is(err, repository.ErrGroupIDExists) {
			return nil, fmt.Errorf("%w: %d", ErrGroupIDExists, group.GroupID)
		}
		l := log.Ctx(ctx)
		l.Error().Err(err).Int64(log.FieldGroupID, group.GroupID).Msg("failed to create group")
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	audit.LogGroup(ctx, audit.ActionCreateGroup, group.Creator, group.GroupID, "group created")
	return group, nil
}

// GetAllGroups returns every group in insertion order.
func (s *groupServiceImpl) GetAllGroups(ctx context.Context) ([]domain.Group, error) {
	groups, err := s.groups.List(ctx)
	if err != nil {
		l := log.Ctx(ctx)
		l.Error().Err(err).Msg("failed to list groups")
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	if groups == nil {
		groups = []domain.Group{}
	}
	return groups, nil
}

// JoinGroup adds a member. The existence and membership checks only give
// callers a precise error; uidx_group_member decides concurrent joins.
func (s *groupServiceImpl) JoinGroup(ctx context.Context, req *domain.JoinGroupRequest) (*domain.GroupMembership, error) {
	l := log.Ctx(ctx).With().
		Int64(log.FieldGroupID, *req.GroupID).
		Str(log.FieldWalletAddress, req.UserWalletAddress).
		Logger()

	ok, err := s.lookup.groupExists(ctx, *req.GroupID)
	if err != nil {
		l.Error().Err(err).Msg("failed to look up group")
		return nil, fmt.Errorf("failed to look up group: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrGroupNotFound, *req.GroupID)
	}

	ok, err = s.lookup.userExists(ctx, req.UserWalletAddress)
	if err != nil {
		l.Error().Err(err).Msg("failed to look up user")
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, req.UserWalletAddress)
	}

	member, err := s.groups.IsMember(ctx, *req.GroupID, req.UserWalletAddress)
	if err != nil {
		l.Error().Err(err).Msg("failed to check membership")
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if member {
		return nil, s.alreadyMember(req)
	}

	membership := &domain.GroupMembership{
		GroupID:           *req.GroupID,
		UserWalletAddress: req.UserWalletAddress,
		JoinedAt:          s.clock().UTC(),
	}
	if err := s.groups.AddMember(ctx, membership); err != nil {
		if errors.Is(err, repository.ErrMembershipExists) {
			// Lost the race against a concurrent join.
			return nil, s.alreadyMember(req)
		}
		l.Error().Err(err).Msg("failed to add group member")
		return nil, fmt.Errorf("failed to add group member: %w", err)
	}

	audit.LogGroup(ctx, audit.ActionJoinGroup, req.UserWalletAddress, *req.GroupID, "user joined group")
	return membership, nil
}

func (s *groupServiceImpl) alreadyMember(req *domain.JoinGroupRequest) error {
	return fmt.Errorf("%w (user %s, group %d)", ErrAlreadyMember, req.UserWalletAddress, *req.GroupID)
}

// GetUserGroups returns the groups walletAddress has joined. Unknown
// addresses yield an empty list.
func (s *groupServiceImpl) GetUserGroups(ctx context.Context, walletAddress string) ([]domain.Group, error) {
	groups, err := s.groups.ListByMember(ctx, walletAddress)
	if err != nil {
		l := log.Ctx(ctx)
		l.Error().Err(err).Str(log.FieldWalletAddress, walletAddress).Msg("failed to list user groups")
		return nil, fmt.Errorf("failed to list user groups: %w", err)
	}
	if groups == nil {
		groups = []domain.Group{}
	}
	return groups, nil
}
