package appointment

import "github.com/BruksfildServices01/autorepair-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, bool) {
	switch st := Status(s); st {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted, StatusCancelled:
		return st, true
	}
	return "", false
}

// IsLocked reports whether an admin decision was already taken.
func (s Status) IsLocked() bool {
	return s == StatusApproved || s == StatusRejected
}

// HoldsSlot reports whether an appointment in this status occupies
// calendar capacity.
func (s Status) HoldsSlot() bool {
	return s == StatusPending || s == StatusApproved || s == StatusCompleted
}

// ===============================
// Validations
// ===============================

// CanCancel: only a pending appointment can be cancelled by its client.
func CanCancel(current Status) error {
	switch current {
	case StatusPending:
		return nil
	case StatusCancelled:
		return httperr.ErrAlreadyCancelled
	case StatusCompleted:
		return httperr.ErrAlreadyCompleted
	case StatusApproved, StatusRejected:
		return httperr.ErrAlreadyProcessed
	}
	return httperr.ErrInvalidState
}

// CanProcess guards the admin decision flow. There is no path back out of
// a decided, cancelled or completed appointment.
func CanProcess(current Status) error {
	switch current {
	case StatusPending:
		return nil
	case StatusApproved, StatusRejected:
		return httperr.ErrAlreadyProcessed
	case StatusCancelled:
		return httperr.ErrAlreadyCancelled
	case StatusCompleted:
		return httperr.ErrAlreadyCompleted
	}
	return httperr.ErrInvalidState
}

// CanComplete: only approved work can be marked as completed.
func CanComplete(current Status) error {
	switch current {
	case StatusApproved:
		return nil
	case StatusCompleted:
		return httperr.ErrAlreadyCompleted
	}
	return httperr.ErrInvalidState
}

// DecisionTarget validates the status an admin may set.
func DecisionTarget(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusApproved, StatusRejected:
		return st, nil
	}
	return "", httperr.ErrInvalidStatus
}

func InitialStatus() Status {
	return StatusPending
}
