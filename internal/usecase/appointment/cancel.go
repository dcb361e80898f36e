package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/autorepair-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/autorepair-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/httperr"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/models"
)

// MinCancelNotice is how far ahead of the appointment a client may cancel.
const MinCancelNotice = time.Hour

type CancelAppointment struct {
	Deps
}

func NewCancelAppointment(deps Deps) *CancelAppointment {
	return &CancelAppointment{Deps: deps.withDefaults()}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.Repo.GetAppointmentForUser(ctx, appointmentID, userID)
	if err != nil {
		uc.logUnexpected("load appointment", err, zap.Uint("appointment_id", appointmentID))
		return nil, err
	}

	previous := domain.Status(ap.Status)
	if err := domain.CanCancel(previous); err != nil {
		return nil, err
	}

	loc := uc.Clock.Location()
	at, err := domain.ScheduledAt(ap.Date, ap.Time, loc)
	if err != nil {
		return nil, err
	}
	if at.Sub(uc.Clock.Now()) < MinCancelNotice {
		return nil, httperr.ErrTooLateToCancel
	}

	day, err := domain.ParseDate(ap.Date, loc)
	if err != nil {
		return nil, err
	}

	if err := domain.Cancel(ap); err != nil {
		return nil, err
	}

	err = uc.Repo.WithinTx(ctx, func(tx domain.Repository) error {
		if err := tx.TransitionAppointment(ctx, ap, previous); err != nil {
			return err
		}
		if err := tx.AdjustSlotCount(ctx, day, ap.Time, -1); err != nil {
			return err
		}
		old := string(previous)
		return tx.AppendHistory(ctx, &models.AppointmentHistory{
			AppointmentID: ap.ID,
			UserID:        userID,
			Action:        string(domain.ActionCancelled),
			OldStatus:     &old,
			NewStatus:     ap.Status,
			Comment:       "Cancelled by client",
		})
	})
	if err != nil {
		uc.logUnexpected("cancel appointment", err, zap.Uint("appointment_id", ap.ID))
		return nil, err
	}

	invalidateDay(ctx, uc.Deps, ap.Date)

	uc.Audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   audit.ActionAppointmentCancelled,
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
