package dto

import (
	"time"

	"github.com/BruksfildServices01/autorepair-scheduler/internal/models"
)

type AppointmentListDTO struct {
	ID          uint      `json:"id"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	ClientName  string    `json:"client_name,omitempty"`
	Vehicle     string    `json:"vehicle,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewAppointmentListDTO(ap models.Appointment) AppointmentListDTO {
	out := AppointmentListDTO{
		ID:          ap.ID,
		Date:        ap.Date,
		Time:        ap.Time,
		Status:      ap.Status,
		Description: ap.Description,
		CreatedAt:   ap.CreatedAt,
	}
	if ap.User != nil {
		out.ClientName = ap.User.Name
	}
	if ap.Vehicle != nil {
		out.Vehicle = ap.Vehicle.Make + " " + ap.Vehicle.Model
		if ap.Vehicle.LicensePlate != "" {
			out.Vehicle += " (" + ap.Vehicle.LicensePlate + ")"
		}
	}
	return out
}
