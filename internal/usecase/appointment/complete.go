package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/autorepair-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/autorepair-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/models"
)

// CompleteAppointment closes approved work. It is the only way into the
// completed status.
type CompleteAppointment struct {
	Deps
}

func NewCompleteAppointment(deps Deps) *CompleteAppointment {
	return &CompleteAppointment{Deps: deps.withDefaults()}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	adminID uint,
	appointmentID uint,
	comment string,
) (*models.Appointment, error) {

	ap, err := uc.Repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		uc.logUnexpected("load appointment", err, zap.Uint("appointment_id", appointmentID))
		return nil, err
	}

	previous := domain.Status(ap.Status)
	if err := domain.Complete(ap); err != nil {
		return nil, err
	}

	if comment == "" {
		comment = "Service completed"
	}

	err = uc.Repo.WithinTx(ctx, func(tx domain.Repository) error {
		if err := tx.TransitionAppointment(ctx, ap, previous); err != nil {
			return err
		}
		old := string(previous)
		return tx.AppendHistory(ctx, &models.AppointmentHistory{
			AppointmentID: ap.ID,
			UserID:        adminID,
			Action:        string(domain.ActionCompleted),
			OldStatus:     &old,
			NewStatus:     ap.Status,
			Comment:       comment,
		})
	})
	if err != nil {
		uc.logUnexpected("complete appointment", err, zap.Uint("appointment_id", ap.ID))
		return nil, err
	}

	uc.Audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   audit.ActionAppointmentCompleted,
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
