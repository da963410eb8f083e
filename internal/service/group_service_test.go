package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"

	"github.com/weiawesome/amigos-chat/internal/domain"
	"github.com/weiawesome/amigos-chat/internal/mocks"
	"github.com/weiawesome/amigos-chat/internal/repository"
	"github.com/weiawesome/amigos-chat/internal/testutil"
)

type fixture struct {
	db       *gorm.DB
	users    UserService
	groups   GroupService
	messages MessageService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	userRepo := repository.NewGormUserRepository(db)
	groupRepo := repository.NewGormGroupRepository(db)
	messageRepo := repository.NewGormMessageRepository(db)

	return &fixture{
		db:       db,
		users:    NewUserService(userRepo, nil, 0),
		groups:   NewGroupService(groupRepo, userRepo, nil, 0),
		messages: NewMessageService(messageRepo, userRepo, groupRepo, nil, 0),
	}
}

func (f *fixture) register(t *testing.T, addrs ...string) {
	t.Helper()
	for _, addr := range addrs {
		_, err := f.users.RegisterUser(context.Background(), &domain.RegisterUserRequest{WalletAddress: addr, Username: "user-" + addr[2:6]})
		require.NoError(t, err)
	}
}

func (f *fixture) createGroup(t *testing.T, id int64, creator string) {
	t.Helper()
	_, err := f.groups.CreateGroup(context.Background(), &domain.CreateGroupRequest{GroupID: lo.ToPtr(id), Name: "group", Creator: creator})
	require.NoError(t, err)
}

func (f *fixture) membershipCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&domain.GroupMembershipModel{}).Count(&n).Error)
	return n
}

func TestGroupService_CreateGroup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("should not require the creator to be registered", func(t *testing.T) {
		g, err := f.groups.CreateGroup(ctx, &domain.CreateGroupRequest{GroupID: lo.ToPtr(int64(1)), Name: "Amigos", Creator: carol})
		require.NoError(t, err)
		require.Equal(t, int64(1), g.GroupID)
		require.Equal(t, carol, g.Creator)
	})

	t.Run("should reject a duplicate group id", func(t *testing.T) {
		_, err := f.groups.CreateGroup(ctx, &domain.CreateGroupRequest{GroupID: lo.ToPtr(int64(1)), Name: "Other", Creator: alice})
		require.ErrorIs(t, err, ErrGroupIDExists)
		require.ErrorIs(t, err, ErrAlreadyExists)
	})

	t.Run("should allow duplicate names", func(t *testing.T) {
		_, err := f.groups.CreateGroup(ctx, &domain.CreateGroupRequest{GroupID: lo.ToPtr(int64(2)), Name: "Amigos", Creator: alice})
		require.NoError(t, err)

		all, err := f.groups.GetAllGroups(ctx)
		require.NoError(t, err)
		require.Equal(t, []int64{1, 2}, lo.Map(all, func(g domain.Group, _ int) int64 { return g.GroupID }))
	})
}

func TestGroupService_JoinGroup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, alice, bob)
	f.createGroup(t, 1, alice)

	t.Run("should fail for an unknown group", func(t *testing.T) {
		_, err := f.groups.JoinGroup(ctx, &domain.JoinGroupRequest{GroupID: lo.ToPtr(int64(99)), UserWalletAddress: alice})
		require.ErrorIs(t, err, ErrGroupNotFound)
		require.ErrorIs(t, err, ErrNotFound)
		require.Zero(t, f.membershipCount(t))
	})

	t.Run("should fail for an unknown user", func(t *testing.T) {
		_, err := f.groups.JoinGroup(ctx, &domain.JoinGroupRequest{GroupID: lo.ToPtr(int64(1)), UserWalletAddress: carol})
		require.ErrorIs(t, err, ErrUserNotFound)
		require.Zero(t, f.membershipCount(t))
	})

	t.Run("should join once", func(t *testing.T) {
		req := require.New(t)

		m, err := f.groups.JoinGroup(ctx, &domain.JoinGroupRequest{GroupID: lo.ToPtr(int64(1)), UserWalletAddress: alice})
		req.NoError(err)
		req.NotZero(m.ID)
		req.Equal(alice, m.UserWalletAddress)
		req.False(m.JoinedAt.IsZero())

		_, err = f.groups.JoinGroup(ctx, &domain.JoinGroupRequest{GroupID: lo.ToPtr(int64(1)), UserWalletAddress: alice})
		req.ErrorIs(err, ErrAlreadyMember)
		req.ErrorIs(err, ErrAlreadyExists)
		req.Equal(int64(1), f.membershipCount(t))
	})
}

func TestGroupService_JoinGroup_Concurrent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, bob)
	f.createGroup(t, 7, bob)

	const attempts = 12
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.groups.JoinGroup(ctx, &domain.JoinGroupRequest{GroupID: lo.ToPtr(int64(7)), UserWalletAddress: bob})
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, successes)
	require.Equal(t, int64(1), f.membershipCount(t))
}

func TestGroupService_JoinGroup_LosesRace(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	groupRepo := mocks.NewMockGroupRepository(ctrl)
	userRepo := mocks.NewMockUserRepository(ctrl)
	svc := NewGroupService(groupRepo, userRepo, nil, 0)
	req := require.New(t)

	groupRepo.EXPECT().GetByGroupID(gomock.Any(), int64(3)).Return(&domain.Group{GroupID: 3}, nil)
	userRepo.EXPECT().GetByWalletAddress(gomock.Any(), alice).Return(&domain.User{WalletAddress: alice}, nil)
	groupRepo.EXPECT().IsMember(gomock.Any(), int64(3), alice).Return(false, nil)
	groupRepo.EXPECT().AddMember(gomock.Any(), gomock.Any()).Return(repository.ErrMembershipExists)

	_, err := svc.JoinGroup(context.Background(), &domain.JoinGroupRequest{GroupID: lo.ToPtr(int64(3)), UserWalletAddress: alice})

	req.ErrorIs(err, ErrAlreadyMember)
}

func TestGroupService_JoinGroup_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	groupRepo := mocks.NewMockGroupRepository(ctrl)
	userRepo := mocks.NewMockUserRepository(ctrl)
	svc := NewGroupService(groupRepo, userRepo, nil, 0)
	boom := errors.New("disk full")

	groupRepo.EXPECT().GetByGroupID(gomock.Any(), int64(3)).Return(nil, boom)
	userRepo.EXPECT().GetByWalletAddress(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.JoinGroup(context.Background(), &domain.JoinGroupRequest{GroupID: lo.ToPtr(int64(3)), UserWalletAddress: alice})

	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, ErrNotFound)
}

func TestGroupService_GetUserGroups(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, alice, bob)
	for _, id := range []int64{5, 1, 3} {
		f.createGroup(t, id, alice)
	}
	for _, id := range []int64{5, 1} {
		_, err := f.groups.JoinGroup(ctx, &domain.JoinGroupRequest{GroupID: lo.ToPtr(id), UserWalletAddress: alice})
		require.NoError(t, err)
	}
	_, err := f.groups.JoinGroup(ctx, &domain.JoinGroupRequest{GroupID: lo.ToPtr(int64(3)), UserWalletAddress: bob})
	require.NoError(t, err)

	t.Run("should list exactly the joined groups", func(t *testing.T) {
		groups, err := f.groups.GetUserGroups(ctx, alice)
		require.NoError(t, err)
		require.ElementsMatch(t, []int64{1, 5}, lo.Map(groups, func(g domain.Group, _ int) int64 { return g.GroupID }))
	})

	t.Run("should return an empty list for unknown users", func(t *testing.T) {
		groups, err := f.groups.GetUserGroups(ctx, carol)
		require.NoError(t, err)
		require.NotNil(t, groups)
		require.Empty(t, groups)
	})
}
