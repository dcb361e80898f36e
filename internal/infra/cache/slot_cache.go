package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/BruksfildServices01/autorepair-scheduler/internal/domain/appointment"
)

const (
	slotKeyPrefix = "slots:available:"
	genKeyPrefix  = "slots:gen:"

	// genTTL outlives any listing TTL; an expired counter restarts at 0.
	genTTL = 24 * time.Hour
)

// setIfCurrent writes KEYS[2] only while the generation in KEYS[1] still
// equals ARGV[1].
var setIfCurrent = redis.NewScript(`
local cur = redis.call('GET', KEYS[1]) or '0'
if cur ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`)

// RedisSlotCache stores each day's available slots as one JSON value,
// guarded by a per-day generation counter.
type RedisSlotCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisSlotCache(rdb *redis.Client, ttl time.Duration) *RedisSlotCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RedisSlotCache{redis: rdb, ttl: ttl}
}

func slotKey(date string) string {
	return slotKeyPrefix + date
}

func genKey(date string) string {
	return genKeyPrefix + date
}

func (c *RedisSlotCache) GetSlots(ctx context.Context, date string) ([]domain.AvailableSlot, int64, bool, error) {
	vals, err := c.redis.MGet(ctx, genKey(date), slotKey(date)).Result()
	if err != nil {
		return nil, 0, false, fmt.Errorf("get cached slots: %w", err)
	}

	var gen int64
	if raw, ok := vals[0].(string); ok {
		if gen, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, 0, false, fmt.Errorf("decode slot generation: %w", err)
		}
	}

	raw, ok := vals[1].(string)
	if !ok {
		return nil, gen, false, nil
	}

	var slots []domain.AvailableSlot
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, gen, false, fmt.Errorf("decode cached slots: %w", err)
	}
	return slots, gen, true, nil
}

// SetSlots reports whether the listing was stored. false with a nil error
// means an invalidation happened after gen was read.
func (c *RedisSlotCache) SetSlots(ctx context.Context, date string, gen int64, slots []domain.AvailableSlot) (bool, error) {
	if slots == nil {
		slots = []domain.AvailableSlot{}
	}

	data, err := json.Marshal(slots)
	if err != nil {
		return false, fmt.Errorf("encode slots: %w", err)
	}

	stored, err := setIfCurrent.Run(ctx, c.redis,
		[]string{genKey(date), slotKey(date)},
		strconv.FormatInt(gen, 10), data, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("cache slots: %w", err)
	}
	return stored == 1, nil
}

// Invalidate bumps the day's generation and drops the listing.
func (c *RedisSlotCache) Invalidate(ctx context.Context, date string) error {
	_, err := c.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey(date))
		pipe.Expire(ctx, genKey(date), genTTL)
		pipe.Del(ctx, slotKey(date))
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate slots %s: %w", date, err)
	}
	return nil
}

// NoopSlotCache is used when redis is not configured.
type NoopSlotCache struct{}

func (NoopSlotCache) GetSlots(context.Context, string) ([]domain.AvailableSlot, int64, bool, error) {
	return nil, 0, false, nil
}

func (NoopSlotCache) SetSlots(context.Context, string, int64, []domain.AvailableSlot) (bool, error) {
	return false, nil
}

func (NoopSlotCache) Invalidate(context.Context, string) error {
	return nil
}

var (
	_ domain.SlotCache = (*RedisSlotCache)(nil)
	_ domain.SlotCache = NoopSlotCache{}
)
