package appointment

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/autorepair-scheduler/internal/httperr"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/models"
)

// ===============================
// History actions
// ===============================

type Action string

const (
	ActionCreated   Action = "created"
	ActionApproved  Action = "approved"
	ActionRejected  Action = "rejected"
	ActionCancelled Action = "cancelled"
	ActionCompleted Action = "completed"
	ActionUpdated   Action = "updated"
)

func ActionFor(target Status) Action {
	switch target {
	case StatusApproved:
		return ActionApproved
	case StatusRejected:
		return ActionRejected
	case StatusCancelled:
		return ActionCancelled
	case StatusCompleted:
		return ActionCompleted
	}
	return ActionUpdated
}

// ===============================
// Admin decision
// ===============================

// Decision is the admin input for a status change, before validation.
type Decision struct {
	Status         Status
	AdminResponse  *string
	RejectionCode  string
	RejectionOther string
	RetryDays      *int
	EstimatedPrice *decimal.Decimal
	WarrantyMonths *int
}

// Resolved carries exactly the fields that belong to the target status;
// everything else is nil and gets cleared on the row.
type Resolved struct {
	Status          Status
	AdminResponse   *string
	RejectionReason *string
	RetryDays       *int
	EstimatedPrice  decimal.NullDecimal
	WarrantyInfo    *string
}

func (d Decision) Resolve() (Resolved, error) {
	r := Resolved{Status: d.Status}

	switch d.Status {
	case StatusApproved:
		if d.EstimatedPrice == nil || !d.EstimatedPrice.IsPositive() {
			return Resolved{}, httperr.ErrInvalidPrice
		}
		if d.WarrantyMonths == nil || *d.WarrantyMonths < 0 {
			return Resolved{}, httperr.ErrInvalidWarranty
		}
		r.EstimatedPrice = decimal.NewNullDecimal(*d.EstimatedPrice)
		r.WarrantyInfo = strPtr(warrantyText(*d.WarrantyMonths))
		r.AdminResponse = trimmed(d.AdminResponse)

	case StatusRejected:
		text, err := RejectionText(d.RejectionCode, d.RejectionOther)
		if err != nil {
			return Resolved{}, err
		}
		if d.RetryDays != nil && *d.RetryDays <= 0 {
			return Resolved{}, httperr.ErrInvalidRetryDays
		}
		r.RejectionReason = &text
		r.RetryDays = d.RetryDays

	case StatusPending:
		r.AdminResponse = trimmed(d.AdminResponse)

	default:
		return Resolved{}, httperr.ErrInvalidStatus
	}

	return r, nil
}

// Apply copies the resolved decision onto the appointment.
func Apply(ap *models.Appointment, r Resolved) {
	ap.Status = string(r.Status)
	ap.AdminResponse = r.AdminResponse
	ap.RejectionReason = r.RejectionReason
	ap.RetryDays = r.RetryDays
	ap.EstimatedPrice = r.EstimatedPrice
	ap.WarrantyInfo = r.WarrantyInfo
}

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}
	ap.Status = string(StatusCancelled)
	return nil
}

func Complete(ap *models.Appointment) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}
	ap.Status = string(StatusCompleted)
	return nil
}

func warrantyText(months int) string {
	if months == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", months)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func strPtr(s string) *string {
	return &s
}
