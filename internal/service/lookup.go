package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/weiawesome/amigos-chat/internal/cache"
	"github.com/weiawesome/amigos-chat/internal/domain"
	"github.com/weiawesome/amigos-chat/internal/repository"
	"github.com/weiawesome/amigos-chat/pkg/log"
)

// cacheWriteTimeout bounds the cache write that follows a database hit.
const cacheWriteTimeout = 2 * time.Second

// entityLookup resolves users and groups by their natural keys, optionally
// through the lookup cache. Only hits are cached: neither entity can be
// modified or deleted, so a cached entry stays correct until it expires.
type entityLookup struct {
	users    repository.UserRepository
	groups   repository.GroupRepository
	cache    cache.Cache // nil when caching is disabled
	cacheTTL time.Duration
	sf       singleflight.Group
}

func newEntityLookup(users repository.UserRepository, groups repository.GroupRepository, c cache.Cache, ttl time.Duration) *entityLookup {
	return &entityLookup{
		users:    users,
		groups:   groups,
		cache:    c,
		cacheTTL: ttl,
	}
}

// user returns repository.ErrUserNotFound when walletAddress is unknown.
func (e *entityLookup) user(ctx context.Context, walletAddress string) (*domain.User, error) {
	if e.cache == nil {
		return e.users.GetByWalletAddress(ctx, walletAddress)
	}

	key := e.cache.BuildUserKey(walletAddress)
	result, err, _ := e.sf.Do(key, func() (interface{}, error) {
		l := log.Ctx(ctx)

		cached, err := e.cache.GetUser(ctx, key)
		if err == nil {
			return &cached.User, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			l.Warn().Err(err).Str(log.FieldWalletAddress, walletAddress).Msg("cache get error")
		}

		user, err := e.users.GetByWalletAddress(ctx, walletAddress)
		if err != nil {
			return nil, err
		}

		cacheCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheWriteTimeout)
		defer cancel()
		if err := e.cache.SetUser(cacheCtx, key, &cache.UserCacheResult{User: *user}, e.cacheTTL); err != nil {
			l.Warn().Err(err).Msg("cache set error")
		}
		return user, nil
	})
	if err != nil {
		return nil, err
	}

	user, ok := result.(*domain.User)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from singleflight")
	}
	// Callers sharing a flight must not share the pointer.
	cp := *user
	return &cp, nil
}

// group returns repository.ErrGroupNotFound when groupID is unknown.
func (e *entityLookup) group(ctx context.Context, groupID int64) (*domain.Group, error) {
	if e.cache == nil {
		return e.groups.GetByGroupID(ctx, groupID)
	}

	key := e.cache.BuildGroupKey(groupID)
	result, err, _ := e.sf.Do(key, func() (interface{}, error) {
		l := log.Ctx(ctx)

		cached, err := e.cache.GetGroup(ctx, key)
		if err == nil {
			return &cached.Group, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			l.Warn().Err(err).Int64(log.FieldGroupID, groupID).Msg("cache get error")
		}

		group, err := e.groups.GetByGroupID(ctx, groupID)
		if err != nil {
			return nil, err
		}

		cacheCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheWriteTimeout)
		defer cancel()
		if err := e.cache.SetGroup(cacheCtx, key, &cache.GroupCacheResult{Group: *group}, e.cacheTTL); err != nil {
			l.Warn().Err(err).Msg("cache set error")
		}
		return group, nil
	})
	if err != nil {
		return nil, err
	}

	group, ok := result.(*domain.Group)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from singleflight")
	}
	cp := *group
	return &cp, nil
}

// userExists reports whether walletAddress is registered.
func (e *entityLookup) userExists(ctx context.Context, walletAddress string) (bool, error) {
	_, err := e.user(ctx, walletAddress)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repository.ErrUserNotFound):
		return false, nil
	default:
		return false, err
	}
}

// groupExists reports whether groupID has been created.
func (e *entityLookup) groupExists(ctx context.Context, groupID int64) (bool, error) {
	_, err := e.group(ctx, groupID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repository.ErrGroupNotFound):
		return false, nil
	default:
		return false, err
	}
}
