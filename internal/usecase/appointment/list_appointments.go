package appointment

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/autorepair-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/dto"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/httperr"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/models"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type ListAppointments struct {
	Deps
}

func NewListAppointments(deps Deps) *ListAppointments {
	return &ListAppointments{Deps: deps.withDefaults()}
}

// ForUser lists the caller's own appointments, newest first.
func (uc *ListAppointments) ForUser(
	ctx context.Context,
	userID uint,
) ([]dto.AppointmentListDTO, error) {

	apps, err := uc.Repo.ListAppointmentsForUser(ctx, userID)
	if err != nil {
		uc.logUnexpected("list user appointments", err, zap.Uint("user_id", userID))
		return nil, err
	}
	return toListDTO(apps), nil
}

// All is the admin listing, filtered by status and day.
func (uc *ListAppointments) All(
	ctx context.Context,
	filter domain.ListFilter,
) ([]dto.AppointmentListDTO, int64, error) {

	if filter.Status != "" {
		if _, ok := domain.ParseStatus(filter.Status); !ok {
			return nil, 0, httperr.ErrInvalidStatus
		}
	}
	if filter.Date != "" {
		day, err := domain.ParseDate(filter.Date, uc.Clock.Location())
		if err != nil {
			return nil, 0, err
		}
		filter.Date = day.Format(domain.DateLayout)
	}
	if filter.Limit <= 0 || filter.Limit > maxPageSize {
		filter.Limit = defaultPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	apps, total, err := uc.Repo.ListAppointments(ctx, filter)
	if err != nil {
		uc.logUnexpected("list appointments", err)
		return nil, 0, err
	}
	return toListDTO(apps), total, nil
}

func toListDTO(apps []models.Appointment) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, dto.NewAppointmentListDTO(ap))
	}
	return out
}
