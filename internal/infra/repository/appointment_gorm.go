package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/autorepair-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/httperr"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db    *gorm.DB
	hours domain.WorkingHours
	inTx  bool
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{
		db:    db,
		hours: domain.DefaultWorkingHours,
	}
}

// WithWorkingHours overrides the day layout used to materialize slots.
func (r *AppointmentGormRepository) WithWorkingHours(wh domain.WorkingHours) *AppointmentGormRepository {
	cp := *r
	cp.hours = wh
	return &cp
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *AppointmentGormRepository) WithinTx(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {

	// Nested calls join the running transaction.
	if r.inTx {
		return fn(r)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{
			db:    tx,
			hours: r.hours,
			inTx:  true,
		})
	})
}

// --------------------------------------------------
// Collaborators
// --------------------------------------------------

func (r *AppointmentGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, httperr.ErrUserNotFound, "get user")
	}
	return &user, nil
}

func (r *AppointmentGormRepository) GetVehicleForUser(
	ctx context.Context,
	vehicleID uint,
	userID uint,
) (*models.Vehicle, error) {

	var v models.Vehicle
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", vehicleID, userID).
		First(&v).Error; err != nil {
		return nil, notFound(err, httperr.ErrVehicleNotFound, "get vehicle")
	}
	return &v, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	if err := r.db.WithContext(ctx).Create(ap).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			return httperr.ErrDuplicateBooking
		}
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, notFound(err, httperr.ErrAppointmentNotFound, "get appointment")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentForUser(
	ctx context.Context,
	id uint,
	userID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&ap).Error; err != nil {
		return nil, notFound(err, httperr.ErrAppointmentNotFound, "get appointment")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) HasActiveBooking(
	ctx context.Context,
	userID uint,
	date string,
	clock string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"user_id = ? AND appointment_date = ? AND appointment_time = ? AND status NOT IN ?",
			userID, date, clock,
			[]string{string(domain.StatusCancelled), string(domain.StatusRejected)},
		).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check duplicate booking: %w", err)
	}

	return count > 0, nil
}

func (r *AppointmentGormRepository) TransitionAppointment(
	ctx context.Context,
	ap *models.Appointment,
	from domain.Status,
) error {

	now := time.Now()

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", ap.ID, string(from)).
		Updates(map[string]any{
			"status":           ap.Status,
			"admin_response":   ap.AdminResponse,
			"rejection_reason": ap.RejectionReason,
			"retry_days":       ap.RetryDays,
			"estimated_price":  ap.EstimatedPrice,
			"warranty_info":    ap.WarrantyInfo,
			"updated_at":       now,
		})
	if res.Error != nil {
		return fmt.Errorf("update appointment status: %w", res.Error)
	}

	// Somebody else moved the appointment since it was read.
	if res.RowsAffected == 0 {
		return httperr.ErrAlreadyProcessed
	}

	ap.UpdatedAt = now
	return nil
}

func (r *AppointmentGormRepository) ListAppointmentsForUser(
	ctx context.Context,
	userID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Where("user_id = ?", userID).
		Order("appointment_date DESC, appointment_time DESC").
		Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list user appointments: %w", err)
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Appointment, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Appointment{})

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Date != "" {
		q = q.Where("appointment_date = ?", filter.Date)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count appointments: %w", err)
	}

	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}

	var apps []models.Appointment
	if err := q.
		Preload("User").
		Preload("Vehicle").
		Order("appointment_date ASC, appointment_time ASC").
		Find(&apps).Error; err != nil {
		return nil, 0, fmt.Errorf("list appointments: %w", err)
	}

	return apps, total, nil
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func notFound(err error, sentinel error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return fmt.Errorf("%s: %w", op, err)
}

func likePattern(q string) string {
	return "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
