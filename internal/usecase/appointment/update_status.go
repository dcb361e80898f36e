package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/autorepair-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/autorepair-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/httperr"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/models"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type UpdateStatusInput struct {
	AppointmentID uint
	AdminID       uint
	Decision      domain.Decision
	SelectedParts []domain.PartRequest
}

type UpdateStatusResult struct {
	Appointment  *models.Appointment
	Parts        []models.AppointmentPart
	StockUpdates []domain.StockUpdate
}

// LowStock lists the updates that left a part at or under its threshold.
func (r *UpdateStatusResult) LowStock() []domain.StockUpdate {
	var out []domain.StockUpdate
	for _, u := range r.StockUpdates {
		if u.IsLow() {
			out = append(out, u)
		}
	}
	return out
}

// ======================================================
// USE CASE
// ======================================================

// UpdateAppointmentStatus applies an admin decision. Stock deduction, the
// status change, the parts allocation, the slot release and the history
// row commit together or not at all.
type UpdateAppointmentStatus struct {
	Deps
}

func NewUpdateAppointmentStatus(deps Deps) *UpdateAppointmentStatus {
	return &UpdateAppointmentStatus{Deps: deps.withDefaults()}
}

func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	in UpdateStatusInput,
) (*UpdateStatusResult, error) {

	// --------------------------------------------------
	// 1. Current state
	// --------------------------------------------------
	ap, err := uc.Repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		uc.logUnexpected("load appointment", err, zap.Uint("appointment_id", in.AppointmentID))
		return nil, err
	}

	previous := domain.Status(ap.Status)
	if err := domain.CanProcess(previous); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Decision
	// --------------------------------------------------
	resolved, err := in.Decision.Resolve()
	if err != nil {
		return nil, err
	}
	target := resolved.Status

	var parts []domain.PartRequest
	if target == domain.StatusApproved {
		parts = in.SelectedParts
	}
	if err := validateParts(parts); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Stock pre-check, outside the transaction
	// --------------------------------------------------
	if len(parts) > 0 {
		check, err := uc.Repo.CheckPartsAvailability(ctx, parts)
		if err != nil {
			uc.logUnexpected("check parts", err, zap.Uint("appointment_id", ap.ID))
			return nil, err
		}
		if err := check.Shortfall(); err != nil {
			return nil, err
		}
	}

	day, err := domain.ParseDate(ap.Date, uc.Clock.Location())
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Transaction
	// --------------------------------------------------
	result := &UpdateStatusResult{Appointment: ap}

	err = uc.Repo.WithinTx(ctx, func(tx domain.Repository) error {
		// a. stock
		var updates []domain.StockUpdate
		if len(parts) > 0 {
			var err error
			if updates, err = tx.DeductMultiple(ctx, parts); err != nil {
				return err
			}
		}

		// b. appointment row
		domain.Apply(ap, resolved)
		if err := tx.TransitionAppointment(ctx, ap, previous); err != nil {
			return err
		}

		// c. allocation
		lines := allocationLines(parts, updates)
		if err := tx.ReplaceAppointmentParts(ctx, ap.ID, lines); err != nil {
			return err
		}

		// d. a rejected appointment gives its slot back
		if target == domain.StatusRejected && previous != domain.StatusRejected {
			if err := tx.AdjustSlotCount(ctx, day, ap.Time, -1); err != nil {
				return err
			}
		}

		// e. history
		old := string(previous)
		if err := tx.AppendHistory(ctx, &models.AppointmentHistory{
			AppointmentID: ap.ID,
			UserID:        in.AdminID,
			Action:        string(domain.ActionFor(target)),
			OldStatus:     &old,
			NewStatus:     string(target),
			Comment:       historyComment(previous, resolved, updates),
		}); err != nil {
			return err
		}

		result.Parts = lines
		result.StockUpdates = updates
		return nil
	})
	if err != nil {
		var se *httperr.InsufficientStockError
		if errors.As(err, &se) {
			uc.Audit.Dispatch(audit.Event{
				UserID:   &in.AdminID,
				Action:   audit.ActionStockRaceLost,
				Entity:   "appointment",
				EntityID: &ap.ID,
				Metadata: se.Parts,
			})
		}
		uc.logUnexpected("update appointment status", err,
			zap.Uint("appointment_id", ap.ID),
			zap.String("target", string(target)),
		)
		return nil, err
	}

	// --------------------------------------------------
	// 5. After commit
	// --------------------------------------------------
	if target == domain.StatusRejected {
		invalidateDay(ctx, uc.Deps, ap.Date)
	}

	for _, u := range result.LowStock() {
		partID := u.PartID
		uc.Audit.Dispatch(audit.Event{
			UserID:   &in.AdminID,
			Action:   audit.ActionLowStock,
			Entity:   "part",
			EntityID: &partID,
			Metadata: u,
		})
	}

	uc.Audit.Dispatch(audit.Event{
		UserID:   &in.AdminID,
		Action:   audit.ActionAppointmentStatus,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{
			"from": string(previous),
			"to":   string(target),
		},
	})

	return result, nil
}

// ======================================================
// helpers
// ======================================================

func validateParts(parts []domain.PartRequest) error {
	seen := make(map[uint]struct{}, len(parts))
	for _, p := range parts {
		if p.PartID == 0 || p.Quantity <= 0 {
			return httperr.ErrInvalidParts
		}
		if p.UnitPrice != nil && p.UnitPrice.IsNegative() {
			return httperr.ErrInvalidParts
		}
		if _, dup := seen[p.PartID]; dup {
			return httperr.ErrInvalidParts
		}
		seen[p.PartID] = struct{}{}
	}
	return nil
}

// allocationLines snapshots the unit price of every selected part. A
// missing price falls back to the part's catalog price.
func allocationLines(parts []domain.PartRequest, updates []domain.StockUpdate) []models.AppointmentPart {
	if len(parts) == 0 {
		return nil
	}

	catalog := make(map[uint]decimal.Decimal, len(updates))
	for _, u := range updates {
		catalog[u.PartID] = u.UnitPrice
	}

	lines := make([]models.AppointmentPart, 0, len(parts))
	for _, p := range parts {
		price := catalog[p.PartID]
		if p.UnitPrice != nil {
			price = *p.UnitPrice
		}
		lines = append(lines, models.AppointmentPart{
			PartID:    p.PartID,
			Quantity:  p.Quantity,
			UnitPrice: price,
			Subtotal:  price.Mul(decimal.NewFromInt(int64(p.Quantity))),
		})
	}
	return lines
}

func historyComment(from domain.Status, r domain.Resolved, updates []domain.StockUpdate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Status changed from %s to %s.", from, r.Status)

	if r.RejectionReason != nil {
		fmt.Fprintf(&b, " Reason: %s.", *r.RejectionReason)
	}
	if r.EstimatedPrice.Valid {
		fmt.Fprintf(&b, " Estimated price: %s.", r.EstimatedPrice.Decimal.StringFixed(2))
	}

	if len(updates) > 0 {
		fmt.Fprintf(&b, " Parts allocated: %d.", len(updates))
		stock := make([]string, 0, len(updates))
		for _, u := range updates {
			stock = append(stock, fmt.Sprintf("%s %d->%d", u.PartName, u.PreviousStock, u.NewStock))
		}
		fmt.Fprintf(&b, " Stock: %s.", strings.Join(stock, ", "))
	}

	return b.String()
}
