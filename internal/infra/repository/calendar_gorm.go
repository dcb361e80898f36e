package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/autorepair-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/httperr"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/models"
)

// --------------------------------------------------
// Calendar slots
// --------------------------------------------------

func (r *AppointmentGormRepository) EnsureDayMaterialized(
	ctx context.Context,
	day time.Time,
) error {

	if !domain.IsWorkingDay(day) {
		return nil
	}

	date := day.Format(domain.DateLayout)

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CalendarSlot{}).
		Where("slot_date = ?", date).
		Count(&count).Error; err != nil {
		return fmt.Errorf("count slots: %w", err)
	}
	if count > 0 {
		return nil
	}

	blocks := r.hours.Blocks()
	slots := make([]models.CalendarSlot, 0, len(blocks))
	for _, b := range blocks {
		slots = append(slots, models.CalendarSlot{
			Date:            date,
			StartTime:       b.Start,
			EndTime:         b.End,
			MaxAppointments: r.hours.MaxAppointments,
			IsAvailable:     true,
		})
	}

	// A concurrent request may materialize the same day; the unique
	// (slot_date, start_time) index turns the loser into a no-op.
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&slots).Error; err != nil {
		return fmt.Errorf("materialize slots for %s: %w", date, err)
	}

	return nil
}

func (r *AppointmentGormRepository) ListAvailableSlots(
	ctx context.Context,
	date string,
) ([]models.CalendarSlot, error) {

	var slots []models.CalendarSlot
	if err := r.db.WithContext(ctx).
		Where(
			"slot_date = ? AND is_available = ? AND current_appointments < max_appointments",
			date, true,
		).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}

	return slots, nil
}

func (r *AppointmentGormRepository) CheckSlotAvailability(
	ctx context.Context,
	day time.Time,
	clock string,
) (domain.SlotCheck, error) {

	if err := r.EnsureDayMaterialized(ctx, day); err != nil {
		return domain.SlotCheck{}, err
	}

	slot, err := r.findSlot(ctx, day.Format(domain.DateLayout), clock)
	if err != nil {
		return domain.SlotCheck{}, err
	}

	return domain.EvaluateSlot(slot), nil
}

// AdjustSlotCount moves current_appointments by delta in one conditional
// UPDATE. Increments never pass max_appointments and decrements never go
// below zero.
func (r *AppointmentGormRepository) AdjustSlotCount(
	ctx context.Context,
	day time.Time,
	clock string,
	delta int,
) error {

	if delta == 0 {
		return nil
	}

	if err := r.EnsureDayMaterialized(ctx, day); err != nil {
		return err
	}

	date := day.Format(domain.DateLayout)

	q := r.db.WithContext(ctx).
		Model(&models.CalendarSlot{}).
		Where("slot_date = ? AND start_time <= ? AND end_time > ?", date, clock, clock)

	if delta > 0 {
		q = q.Where("is_available = ? AND current_appointments + ? <= max_appointments", true, delta)
	} else {
		q = q.Where("current_appointments + ? >= 0", delta)
	}

	res := q.Updates(map[string]any{
		"current_appointments": gorm.Expr("current_appointments + ?", delta),
		"updated_at":           time.Now(),
	})
	if res.Error != nil {
		return fmt.Errorf("adjust slot count: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	slot, err := r.findSlot(ctx, date, clock)
	if err != nil {
		return err
	}
	if slot == nil {
		return httperr.ErrSlotNotFound
	}
	if delta > 0 {
		return httperr.ErrSlotUnavailable
	}

	// Releasing an already empty slot.
	return nil
}

func (r *AppointmentGormRepository) findSlot(
	ctx context.Context,
	date string,
	clock string,
) (*models.CalendarSlot, error) {

	var slot models.CalendarSlot
	err := r.db.WithContext(ctx).
		Where("slot_date = ? AND start_time <= ? AND end_time > ?", date, clock, clock).
		First(&slot).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find slot: %w", err)
	}
	return &slot, nil
}
