package models

import "gorm.io/gorm"

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Vehicle{},
		&Part{},
		&CalendarSlot{},
		&Appointment{},
		&AppointmentPart{},
		&AppointmentHistory{},
		&AuditLog{},
	)
}
