package repository

import (
	"context"
	"fmt"
	"sync"
)

// MemoryChatLock is the in-process chat lock used when Redis is disabled.
type MemoryChatLock struct {
	mu    sync.Mutex
	chats map[int64]*chatSlot
}

type chatSlot struct {
	held  chan struct{}
	users int
}

func NewMemoryChatLock() *MemoryChatLock {
	return &MemoryChatLock{chats: make(map[int64]*chatSlot)}
}

// Lock blocks until the chat is free or ctx is done. The returned func releases the lock.
func (that *MemoryChatLock) Lock(ctx context.Context, chatID int64) (func() error, error) {
	that.mu.Lock()
	slot, ok := that.chats[chatID]
	if !ok {
		slot = &chatSlot{held: make(chan struct{}, 1)}
		that.chats[chatID] = slot
	}
	slot.users++
	that.mu.Unlock()

	select {
	case slot.held <- struct{}{}:
	case <-ctx.Done():
		that.leave(chatID, slot)
		return nil, fmt.Errorf("failed to acquire chat lock: %w", ctx.Err())
	}

	var once sync.Once

	return func() error {
		once.Do(func() {
			<-slot.held
			that.leave(chatID, slot)
		})

		return nil
	}, nil
}

func (that *MemoryChatLock) leave(chatID int64, slot *chatSlot) {
	that.mu.Lock()
	defer that.mu.Unlock()

	slot.users--
	if slot.users == 0 {
		delete(that.chats, chatID)
	}
}
