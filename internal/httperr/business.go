package httperr

import (
	"errors"
	"fmt"
	"strings"
)

type Kind string

const (
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindConflict          Kind = "conflict"
	KindBusinessRule      Kind = "business_rule"
	KindInsufficientStock Kind = "insufficient_stock"
	KindInternal          Kind = "internal"
)

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

// ErrBusiness builds a business-rule error for code.
func ErrBusiness(code string) error {
	return BusinessError{Kind: KindBusinessRule, Code: code}
}

func Validation(code, message string) error {
	return BusinessError{Kind: KindValidation, Code: code, Message: message}
}

func NotFound(code, message string) error {
	return BusinessError{Kind: KindNotFound, Code: code, Message: message}
}

func Conflict(code, message string) error {
	return BusinessError{Kind: KindConflict, Code: code, Message: message}
}

func Rule(code, message string) error {
	return BusinessError{Kind: KindBusinessRule, Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	var se *InsufficientStockError
	if errors.As(err, &se) {
		return code == CodeInsufficientStock
	}
	return false
}

// KindOf classifies err; anything unrecognised is internal.
func KindOf(err error) Kind {
	var se *InsufficientStockError
	if errors.As(err, &se) {
		return KindInsufficientStock
	}
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindInternal
}

// PartShortfall describes one part that cannot be served from stock.
type PartShortfall struct {
	PartID    uint   `json:"part_id"`
	PartName  string `json:"part_name,omitempty"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
	Reason    string `json:"reason"`
}

type InsufficientStockError struct {
	Parts []PartShortfall
}

func (e *InsufficientStockError) Error() string {
	reasons := make([]string, 0, len(e.Parts))
	for _, p := range e.Parts {
		reasons = append(reasons, fmt.Sprintf("part %d: %s", p.PartID, p.Reason))
	}
	return CodeInsufficientStock + ": " + strings.Join(reasons, "; ")
}

const CodeInsufficientStock = "insufficient_stock"

var (
	ErrInvalidInput        = Validation("invalid_input", "Invalid request data.")
	ErrInvalidDate         = Validation("invalid_date", "Date must be in YYYY-MM-DD format.")
	ErrInvalidTime         = Validation("invalid_time", "Time must be in HH:MM or HH:MM:SS format.")
	ErrDescriptionTooShort = Validation("description_too_short", "Description must have at least 10 characters.")
	ErrInvalidStatus       = Validation("invalid_status", "Invalid appointment status.")
	ErrInvalidRejection    = Validation("invalid_rejection_reason", "A valid rejection reason is required.")
	ErrInvalidRetryDays    = Validation("invalid_retry_days", "Retry days must be a positive number.")
	ErrInvalidPrice        = Validation("invalid_price", "Estimated price must be greater than zero.")
	ErrInvalidWarranty     = Validation("invalid_warranty", "Warranty must be zero or more months.")
	ErrInvalidParts        = Validation("invalid_parts", "Selected parts are invalid.")

	ErrAppointmentNotFound = NotFound("appointment_not_found", "Appointment not found.")
	ErrUserNotFound        = NotFound("user_not_found", "User not found.")
	ErrVehicleNotFound     = NotFound("vehicle_not_found", "Vehicle not found.")
	ErrPartNotFound        = NotFound("part_not_found", "Part not found.")
	ErrSlotNotFound        = NotFound("slot_not_found", "Calendar slot not found.")

	ErrAlreadyProcessed = Conflict("already_processed", "Appointment has already been approved or rejected.")
	ErrAlreadyCancelled = Conflict("already_cancelled", "Appointment is already cancelled.")
	ErrAlreadyCompleted = Conflict("already_completed", "Appointment is already completed.")
	ErrInvalidState     = Conflict("invalid_state", "Appointment cannot change from its current status.")
	ErrDuplicateBooking = Conflict("duplicate_booking", "You already have an appointment at this date and time.")
	ErrSlotUnavailable  = Conflict("slot_unavailable", "The selected time slot is not available.")

	ErrPastDate        = Rule("past_date", "Date is in the past.")
	ErrPastDateTime    = Rule("past_date_time", "Appointment time must be in the future.")
	ErrTooLateToCancel = Rule("too_late_to_cancel", "Appointments can only be cancelled more than 1 hour in advance.")
)
