package appointment

import "context"

// SlotCache holds the available-slot listing of a day. Implementations
// treat a miss as (nil, gen, false, nil).
//
// gen is the day's invalidation generation observed by GetSlots. SetSlots
// only stores the listing while the generation is unchanged, so a read
// that raced with Invalidate never repopulates the cache with old data.
type SlotCache interface {
	GetSlots(ctx context.Context, date string) (slots []AvailableSlot, gen int64, ok bool, err error)
	SetSlots(ctx context.Context, date string, gen int64, slots []AvailableSlot) (bool, error)
	Invalidate(ctx context.Context, date string) error
}
