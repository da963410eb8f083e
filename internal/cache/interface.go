//go:generate go run go.uber.org/mock/mockgen -source=interface.go -destination=../mocks/mock_cache.go -package=mocks
package cache

import (
	"context"
	"time"

	"github.com/weiawesome/amigos-chat/internal/domain"
)

// UserCacheResult is the cached form of a registered user.
type UserCacheResult struct {
	User domain.User `json:"user"`
}

// GroupCacheResult is the cached form of a group.
type GroupCacheResult struct {
	Group domain.Group `json:"group"`
}

// Cache stores positive lookups of users and groups. Both are immutable
// once created, so entries never need invalidation.
type Cache interface {
	GetUser(ctx context.Context, key string) (*UserCacheResult, error)
	SetUser(ctx context.Context, key string, result *UserCacheResult, ttl time.Duration) error
	GetGroup(ctx context.Context, key string) (*GroupCacheResult, error)
	SetGroup(ctx context.Context, key string, result *GroupCacheResult, ttl time.Duration) error
	BuildUserKey(walletAddress string) string
	BuildGroupKey(groupID int64) string
	Close() error
}
