package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"

	domain "github.com/BruksfildServices01/autorepair-scheduler/internal/domain/appointment"
)

func newTestCache(t *testing.T) (*RedisSlotCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewRedisSlotCache(rdb, 30*time.Second), mr
}

func TestRedisSlotCache_RoundTripAndInvalidate(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	_, gen, ok, err := c.GetSlots(ctx, "2024-06-18")
	if ok || err != nil || gen != 0 {
		t.Fatalf("empty cache: gen=%d ok=%v err=%v", gen, ok, err)
	}

	want := []domain.AvailableSlot{{ID: 1, Date: "2024-06-18", StartTime: "08:00:00", EndTime: "09:00:00", MaxAppointments: 2, AvailableSpots: 2}}
	if stored, err := c.SetSlots(ctx, "2024-06-18", gen, want); err != nil || !stored {
		t.Fatalf("set: stored=%v err=%v", stored, err)
	}

	got, _, ok, err := c.GetSlots(ctx, "2024-06-18")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if len(got) != 1 || got[0] != want[0] {
		t.Fatalf("got %+v", got)
	}

	if ttl := mr.TTL(slotKey("2024-06-18")); ttl != 30*time.Second {
		t.Errorf("ttl = %v", ttl)
	}

	if err := c.Invalidate(ctx, "2024-06-18"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, gen, ok, _ := c.GetSlots(ctx, "2024-06-18"); ok || gen != 1 {
		t.Fatalf("after invalidation: ok=%v gen=%d", ok, gen)
	}
}

func TestRedisSlotCache_EmptyDayIsCached(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	if _, err := c.SetSlots(ctx, "2024-06-15", 0, nil); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, _, ok, err := c.GetSlots(ctx, "2024-06-15")
	if err != nil || !ok || got == nil || len(got) != 0 {
		t.Fatalf("got %v ok=%v err=%v", got, ok, err)
	}
}

func TestRedisSlotCache_WriteAfterInvalidationIsRefused(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	date := "2024-06-18"

	_, gen, _, err := c.GetSlots(ctx, date)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	// A booking commits between the database read and the cache write.
	if err := c.Invalidate(ctx, date); err != nil {
		t.Fatalf("invalidate: %v", err)
	}

	old := []domain.AvailableSlot{{ID: 1, Date: date, StartTime: "08:00:00", AvailableSpots: 2}}
	stored, err := c.SetSlots(ctx, date, gen, old)
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if stored || mr.Exists(slotKey(date)) {
		t.Fatal("listing read before the invalidation was cached")
	}

	_, gen, _, _ = c.GetSlots(ctx, date)
	if stored, _ := c.SetSlots(ctx, date, gen, old); !stored {
		t.Fatal("write with the current generation was refused")
	}
	if ttl := mr.TTL(genKey(date)); ttl != genTTL {
		t.Errorf("generation ttl = %v", ttl)
	}
}

func TestRedisSlotCache_ErrorsSurface(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	if _, _, _, err := c.GetSlots(context.Background(), "2024-06-18"); err == nil {
		t.Fatal("expected error with redis down")
	}
}

func TestConnectRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := ConnectRedis(context.Background(), mr.Addr(), "", 0)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	_ = rdb.Close()
}
