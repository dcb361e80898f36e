package appointment

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/autorepair-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/autorepair-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/httperr"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/models"
)

const minDescriptionLength = 10

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	UserID      uint
	VehicleID   *uint
	Date        string
	Time        string
	Description string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	Deps
}

func NewCreateAppointment(deps Deps) *CreateAppointment {
	return &CreateAppointment{Deps: deps.withDefaults()}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	loc := uc.Clock.Location()

	// --------------------------------------------------
	// 1. Input
	// --------------------------------------------------
	day, err := domain.ParseDate(in.Date, loc)
	if err != nil {
		return nil, err
	}
	clock, err := domain.NormalizeTime(in.Time)
	if err != nil {
		return nil, err
	}
	description := strings.TrimSpace(in.Description)
	if utf8.RuneCountInString(description) < minDescriptionLength {
		return nil, httperr.ErrDescriptionTooShort
	}
	date := day.Format(domain.DateLayout)

	// --------------------------------------------------
	// 2. Must be in the future
	// --------------------------------------------------
	at, err := domain.ScheduledAt(date, clock, loc)
	if err != nil {
		return nil, err
	}
	if !at.After(uc.Clock.Now()) {
		return nil, httperr.ErrPastDateTime
	}

	// --------------------------------------------------
	// 3. Caller and vehicle
	// --------------------------------------------------
	if _, err := uc.Repo.GetUserByID(ctx, in.UserID); err != nil {
		uc.logUnexpected("load user", err, zap.Uint("user_id", in.UserID))
		return nil, err
	}
	if in.VehicleID != nil {
		if _, err := uc.Repo.GetVehicleForUser(ctx, *in.VehicleID, in.UserID); err != nil {
			uc.logUnexpected("load vehicle", err, zap.Uint("vehicle_id", *in.VehicleID))
			return nil, err
		}
	}

	// --------------------------------------------------
	// 4. Duplicate booking
	// --------------------------------------------------
	dup, err := uc.Repo.HasActiveBooking(ctx, in.UserID, date, clock)
	if err != nil {
		uc.logUnexpected("check duplicate booking", err, zap.Uint("user_id", in.UserID))
		return nil, err
	}
	if dup {
		return nil, httperr.ErrDuplicateBooking
	}

	// --------------------------------------------------
	// 5. Slot pre-check
	// --------------------------------------------------
	if err := uc.Repo.EnsureDayMaterialized(ctx, day); err != nil {
		uc.logUnexpected("materialize day", err, zap.String("date", date))
		return nil, err
	}
	check, err := uc.Repo.CheckSlotAvailability(ctx, day, clock)
	if err != nil {
		uc.logUnexpected("check slot", err, zap.String("date", date))
		return nil, err
	}
	if !check.Available {
		return nil, httperr.ErrSlotUnavailable
	}

	// --------------------------------------------------
	// 6. Booking transaction
	// --------------------------------------------------
	ap := &models.Appointment{
		UserID:      in.UserID,
		VehicleID:   in.VehicleID,
		Date:        date,
		Time:        clock,
		Status:      string(domain.InitialStatus()),
		Description: description,
	}

	err = uc.Repo.WithinTx(ctx, func(tx domain.Repository) error {
		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}
		if err := tx.AdjustSlotCount(ctx, day, clock, +1); err != nil {
			return err
		}
		return tx.AppendHistory(ctx, &models.AppointmentHistory{
			AppointmentID: ap.ID,
			UserID:        in.UserID,
			Action:        string(domain.ActionCreated),
			NewStatus:     ap.Status,
			Comment:       "Appointment requested for " + date + " " + clock,
		})
	})
	if err != nil {
		if errors.Is(err, httperr.ErrSlotUnavailable) {
			uc.Audit.Dispatch(audit.Event{
				UserID: &in.UserID,
				Action: audit.ActionSlotRaceLost,
				Entity: "calendar_slot",
				Metadata: map[string]string{
					"date": date,
					"time": clock,
				},
			})
		}
		uc.logUnexpected("create appointment", err,
			zap.Uint("user_id", in.UserID),
			zap.String("date", date),
			zap.String("time", clock),
		)
		return nil, err
	}

	// --------------------------------------------------
	// 7. After commit
	// --------------------------------------------------
	invalidateDay(ctx, uc.Deps, date)

	uc.Audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   audit.ActionAppointmentCreated,
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

func invalidateDay(ctx context.Context, d Deps, date string) {
	if err := d.Cache.Invalidate(ctx, date); err != nil {
		d.Log.Warn("slot cache invalidation failed", zap.String("date", date), zap.Error(err))
	}
}
