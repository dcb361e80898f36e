package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/autorepair-scheduler/internal/models"
)

type AppointmentDetail struct {
	Appointment *models.Appointment         `json:"appointment"`
	Parts       []models.AppointmentPart    `json:"parts"`
	History     []models.AppointmentHistory `json:"history"`
}

type GetAppointmentDetail struct {
	Deps
}

func NewGetAppointmentDetail(deps Deps) *GetAppointmentDetail {
	return &GetAppointmentDetail{Deps: deps.withDefaults()}
}

func (uc *GetAppointmentDetail) Execute(
	ctx context.Context,
	appointmentID uint,
) (*AppointmentDetail, error) {

	ap, err := uc.Repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		uc.logUnexpected("load appointment", err, zap.Uint("appointment_id", appointmentID))
		return nil, err
	}

	parts, err := uc.Repo.ListAppointmentParts(ctx, ap.ID)
	if err != nil {
		uc.logUnexpected("list appointment parts", err, zap.Uint("appointment_id", ap.ID))
		return nil, err
	}

	history, err := uc.Repo.ListHistory(ctx, ap.ID)
	if err != nil {
		uc.logUnexpected("list history", err, zap.Uint("appointment_id", ap.ID))
		return nil, err
	}

	return &AppointmentDetail{
		Appointment: ap,
		Parts:       parts,
		History:     history,
	}, nil
}
