package appointment

import (
	"context"
	"strings"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/autorepair-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/httperr"
)

type GetAvailability struct {
	Deps
}

func NewGetAvailability(deps Deps) *GetAvailability {
	return &GetAvailability{Deps: deps.withDefaults()}
}

// Slots lists the bookable slots of a day, materializing it first. A
// weekend yields an empty list.
func (uc *GetAvailability) Slots(
	ctx context.Context,
	date string,
) ([]domain.AvailableSlot, error) {

	if strings.TrimSpace(date) == "" {
		return nil, httperr.ErrInvalidInput
	}

	day, err := domain.ParseDate(date, uc.Clock.Location())
	if err != nil {
		return nil, err
	}
	if day.Before(domain.StartOfDay(uc.Clock.Now())) {
		return nil, httperr.ErrPastDate
	}
	date = day.Format(domain.DateLayout)

	if !domain.IsWorkingDay(day) {
		return []domain.AvailableSlot{}, nil
	}

	cached, gen, ok, err := uc.Cache.GetSlots(ctx, date)
	cacheUp := err == nil
	if err != nil {
		uc.Log.Warn("slot cache read failed", zap.String("date", date), zap.Error(err))
	}
	if ok {
		return cached, nil
	}

	if err := uc.Repo.EnsureDayMaterialized(ctx, day); err != nil {
		uc.logUnexpected("materialize day", err, zap.String("date", date))
		return nil, err
	}

	rows, err := uc.Repo.ListAvailableSlots(ctx, date)
	if err != nil {
		uc.logUnexpected("list slots", err, zap.String("date", date))
		return nil, err
	}

	slots := make([]domain.AvailableSlot, 0, len(rows))
	for _, s := range rows {
		slots = append(slots, domain.ToAvailableSlot(s))
	}

	// Without a generation from the read the write could resurrect a
	// listing that was invalidated meanwhile.
	if cacheUp {
		if _, err := uc.Cache.SetSlots(ctx, date, gen, slots); err != nil {
			uc.Log.Warn("slot cache write failed", zap.String("date", date), zap.Error(err))
		}
	}

	return slots, nil
}

func (uc *GetAvailability) Check(
	ctx context.Context,
	date string,
	clock string,
) (domain.SlotCheck, error) {

	day, err := domain.ParseDate(date, uc.Clock.Location())
	if err != nil {
		return domain.SlotCheck{}, err
	}
	clock, err = domain.NormalizeTime(clock)
	if err != nil {
		return domain.SlotCheck{}, err
	}

	check, err := uc.Repo.CheckSlotAvailability(ctx, day, clock)
	if err != nil {
		uc.logUnexpected("check slot", err, zap.String("date", date))
		return domain.SlotCheck{}, err
	}
	return check, nil
}
