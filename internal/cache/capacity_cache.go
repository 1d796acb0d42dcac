package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	apperrors "ticket-inventory-manager/pkg/app_errors"
)

// CapacityCache 活動容量總額在 Redis 的鏡像。和記憶體裡的容量帳一樣吃增量，
// 冷快取從資料庫總和回填(Warm)，不會憑空 INCRBY
type CapacityCache interface {
	// Warm 回填容量總額
	Warm(ctx context.Context, eventID int, total int) error
	// GetTotal 讀取容量總額，key 不存在回 ErrCapacityNotCached
	GetTotal(ctx context.Context, eventID int) (int, error)
	// ApplyDelta 套用增量 (使用Lua腳本，key 不存在時不動作)
	ApplyDelta(ctx context.Context, eventID int, delta int) error
	Invalidate(ctx context.Context, eventID int) error
}

type CapacityCacheImpl struct {
	client *redis.Client
}

func NewCapacityCache(client *redis.Client) CapacityCache {
	return &CapacityCacheImpl{
		client: client,
	}
}

// 容量總額 key
func (c *CapacityCacheImpl) getCapacityKey(eventID int) string {
	return fmt.Sprintf("event:%d:capacity", eventID)
}

func (c *CapacityCacheImpl) Warm(ctx context.Context, eventID int, total int) error {
	return c.client.Set(ctx, c.getCapacityKey(eventID), total, 0).Err()
}

func (c *CapacityCacheImpl) GetTotal(ctx context.Context, eventID int) (int, error) {
	val, err := c.client.Get(ctx, c.getCapacityKey(eventID)).Int()
	if err == redis.Nil {
		return 0, apperrors.ErrCapacityNotCached
	}
	return val, err
}

func (c *CapacityCacheImpl) ApplyDelta(ctx context.Context, eventID int, delta int) error {
	// key 不存在時跳過，等下一次 list 從資料庫回填，避免從 0 開始累加出錯的總額
	script := `
		local key = KEYS[1]
		local delta = tonumber(ARGV[1])

		if redis.call('EXISTS', key) == 0 then
			return 0
		end

		return redis.call('INCRBY', key, delta)
	`

	return c.client.Eval(ctx, script, []string{c.getCapacityKey(eventID)}, delta).Err()
}

func (c *CapacityCacheImpl) Invalidate(ctx context.Context, eventID int) error {
	return c.client.Del(ctx, c.getCapacityKey(eventID)).Err()
}
