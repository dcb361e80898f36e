package repository

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/autorepair-scheduler/internal/models"
)

// --------------------------------------------------
// Parts allocation
// --------------------------------------------------

// ReplaceAppointmentParts swaps the whole allocation set of an
// appointment. Callers run it inside WithinTx.
func (r *AppointmentGormRepository) ReplaceAppointmentParts(
	ctx context.Context,
	appointmentID uint,
	parts []models.AppointmentPart,
) error {

	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Delete(&models.AppointmentPart{}).Error; err != nil {
		return fmt.Errorf("clear appointment parts: %w", err)
	}

	if len(parts) == 0 {
		return nil
	}

	for i := range parts {
		parts[i].AppointmentID = appointmentID
	}

	if err := r.db.WithContext(ctx).Create(&parts).Error; err != nil {
		return fmt.Errorf("insert appointment parts: %w", err)
	}
	return nil
}

func (r *AppointmentGormRepository) ListAppointmentParts(
	ctx context.Context,
	appointmentID uint,
) ([]models.AppointmentPart, error) {

	var parts []models.AppointmentPart
	if err := r.db.WithContext(ctx).
		Preload("Part").
		Where("appointment_id = ?", appointmentID).
		Order("id ASC").
		Find(&parts).Error; err != nil {
		return nil, fmt.Errorf("list appointment parts: %w", err)
	}
	return parts, nil
}

// --------------------------------------------------
// History
// --------------------------------------------------

func (r *AppointmentGormRepository) AppendHistory(
	ctx context.Context,
	entry *models.AppointmentHistory,
) error {

	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

func (r *AppointmentGormRepository) ListHistory(
	ctx context.Context,
	appointmentID uint,
) ([]models.AppointmentHistory, error) {

	var rows []models.AppointmentHistory
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return rows, nil
}
