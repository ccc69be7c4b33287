package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultLockTTL   = 30 * time.Second
	defaultLockRetry = 50 * time.Millisecond
)

var ErrLockLost = errors.New("chat lock expired before release")

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// ChatLockRepository serializes update handling per chat across bot replicas.
type ChatLockRepository struct {
	client *redis.Client
	ttl    time.Duration
	retry  time.Duration
}

func NewChatLockRepository(client *redis.Client, ttl time.Duration) *ChatLockRepository {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}

	return &ChatLockRepository{
		client: client,
		ttl:    ttl,
		retry:  defaultLockRetry,
	}
}

// Lock blocks until the chat is free or ctx is done. The returned func releases the lock.
func (that *ChatLockRepository) Lock(ctx context.Context, chatID int64) (func() error, error) {
	lockKey := "chat-lock:" + strconv.FormatInt(chatID, 10)
	token := uuid.NewString()

	for {
		acquired, err := that.client.SetNX(ctx, lockKey, token, that.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire chat lock: %w", err)
		}

		if acquired {
			return func() error {
				return that.release(lockKey, token)
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("failed to acquire chat lock: %w", ctx.Err())
		case <-time.After(that.retry):
		}
	}
}

func (that *ChatLockRepository) release(lockKey, token string) error {
	// the handling context may already be cancelled; release anyway
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	deleted, err := releaseScript.Run(ctx, that.client, []string{lockKey}, token).Int()
	if err != nil {
		return fmt.Errorf("failed to release chat lock: %w", err)
	}

	if deleted == 0 {
		return ErrLockLost
	}

	return nil
}
