package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/autorepair-scheduler/internal/models"
)

type ListFilter struct {
	Status string
	Date   string
	Limit  int
	Offset int
}

type PartFilter struct {
	Category string
	Query    string
	LowStock bool
}

type Repository interface {
	// -------- Transaction --------
	// WithinTx runs fn against a repository bound to one database
	// transaction. Any error returned by fn rolls everything back.
	WithinTx(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Collaborators --------
	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetVehicleForUser(
		ctx context.Context,
		vehicleID uint,
		userID uint,
	) (*models.Vehicle, error)

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	GetAppointmentForUser(
		ctx context.Context,
		id uint,
		userID uint,
	) (*models.Appointment, error)

	HasActiveBooking(
		ctx context.Context,
		userID uint,
		date string,
		clock string,
	) (bool, error)

	// TransitionAppointment persists status and decision fields only if the
	// stored status still equals from.
	TransitionAppointment(
		ctx context.Context,
		ap *models.Appointment,
		from Status,
	) error

	ListAppointmentsForUser(
		ctx context.Context,
		userID uint,
	) ([]models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, int64, error)

	// -------- Calendar slots --------
	EnsureDayMaterialized(
		ctx context.Context,
		day time.Time,
	) error

	ListAvailableSlots(
		ctx context.Context,
		date string,
	) ([]models.CalendarSlot, error)

	CheckSlotAvailability(
		ctx context.Context,
		day time.Time,
		clock string,
	) (SlotCheck, error)

	AdjustSlotCount(
		ctx context.Context,
		day time.Time,
		clock string,
		delta int,
	) error

	// -------- Part inventory --------
	ListParts(
		ctx context.Context,
		filter PartFilter,
	) ([]models.Part, error)

	CheckPartsAvailability(
		ctx context.Context,
		parts []PartRequest,
	) (PartsAvailability, error)

	DeductStock(
		ctx context.Context,
		partID uint,
		quantity int,
	) (*StockUpdate, error)

	DeductMultiple(
		ctx context.Context,
		parts []PartRequest,
	) ([]StockUpdate, error)

	// -------- Parts allocation --------
	ReplaceAppointmentParts(
		ctx context.Context,
		appointmentID uint,
		parts []models.AppointmentPart,
	) error

	ListAppointmentParts(
		ctx context.Context,
		appointmentID uint,
	) ([]models.AppointmentPart, error)

	// -------- History --------
	AppendHistory(
		ctx context.Context,
		entry *models.AppointmentHistory,
	) error

	ListHistory(
		ctx context.Context,
		appointmentID uint,
	) ([]models.AppointmentHistory, error)
}
