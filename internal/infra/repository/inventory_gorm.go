package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/autorepair-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/httperr"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/models"
)

var errNoTransaction = errors.New("stock deduction requires a transaction")

// --------------------------------------------------
// Part inventory
// --------------------------------------------------

func (r *AppointmentGormRepository) ListParts(
	ctx context.Context,
	filter domain.PartFilter,
) ([]models.Part, error) {

	q := r.db.WithContext(ctx).Model(&models.Part{})

	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Query != "" {
		p := likePattern(filter.Query)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(part_number) LIKE ?", p, p)
	}
	if filter.LowStock {
		q = q.Where("stock_quantity <= minimum_stock_level")
	}

	var parts []models.Part
	if err := q.Order("name ASC").Find(&parts).Error; err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	return parts, nil
}

func (r *AppointmentGormRepository) CheckPartsAvailability(
	ctx context.Context,
	parts []domain.PartRequest,
) (domain.PartsAvailability, error) {

	byID, err := r.loadParts(ctx, parts)
	if err != nil {
		return domain.PartsAvailability{}, err
	}

	out := domain.PartsAvailability{
		Available: true,
		Parts:     make([]domain.PartCheck, 0, len(parts)),
	}

	for _, req := range parts {
		check := domain.PartCheck{
			PartID:    req.PartID,
			Requested: req.Quantity,
		}

		part, ok := byID[req.PartID]
		switch {
		case !ok:
			check.Reason = "Part not found"
		case part.StockQuantity < req.Quantity:
			check.PartName = part.Name
			check.Available = part.StockQuantity
			check.Reason = fmt.Sprintf(
				"Insufficient stock: requested %d, available %d",
				req.Quantity, part.StockQuantity,
			)
		default:
			check.PartName = part.Name
			check.Available = part.StockQuantity
			check.OK = true
		}

		if !check.OK {
			out.Available = false
		}
		out.Parts = append(out.Parts, check)
	}

	return out, nil
}

// DeductStock removes quantity from a part with a single conditional
// UPDATE. Zero affected rows means another transaction got there first.
func (r *AppointmentGormRepository) DeductStock(
	ctx context.Context,
	partID uint,
	quantity int,
) (*domain.StockUpdate, error) {

	if !r.inTx {
		return nil, errNoTransaction
	}

	res := r.db.WithContext(ctx).
		Model(&models.Part{}).
		Where("id = ? AND stock_quantity >= ?", partID, quantity).
		Updates(map[string]any{
			"stock_quantity": gorm.Expr("stock_quantity - ?", quantity),
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return nil, fmt.Errorf("deduct stock: %w", res.Error)
	}

	var part models.Part
	err := r.db.WithContext(ctx).First(&part, partID).Error

	if res.RowsAffected == 0 {
		short := httperr.PartShortfall{PartID: partID, Requested: quantity}
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			short.Reason = "Part not found"
		case err != nil:
			return nil, fmt.Errorf("reload part: %w", err)
		default:
			short.PartName = part.Name
			short.Available = part.StockQuantity
			short.Reason = fmt.Sprintf(
				"Insufficient stock: requested %d, available %d",
				quantity, part.StockQuantity,
			)
		}
		return nil, &httperr.InsufficientStockError{Parts: []httperr.PartShortfall{short}}
	}
	if err != nil {
		return nil, fmt.Errorf("reload part: %w", err)
	}

	return &domain.StockUpdate{
		PartID:        part.ID,
		PartName:      part.Name,
		PartNumber:    part.PartNumber,
		PreviousStock: part.StockQuantity + quantity,
		NewStock:      part.StockQuantity,
		QuantityUsed:  quantity,
		MinimumStock:  part.MinimumStockLevel,
		UnitPrice:     part.Price,
	}, nil
}

// DeductMultiple re-validates every part inside the transaction and then
// deducts them in order. The per-row conditional update in DeductStock is
// what actually protects stock from concurrent approvals.
func (r *AppointmentGormRepository) DeductMultiple(
	ctx context.Context,
	parts []domain.PartRequest,
) ([]domain.StockUpdate, error) {

	if !r.inTx {
		return nil, errNoTransaction
	}

	check, err := r.CheckPartsAvailability(ctx, parts)
	if err != nil {
		return nil, err
	}
	if !check.Available {
		return nil, check.Shortfall()
	}

	updates := make([]domain.StockUpdate, 0, len(parts))
	for _, p := range parts {
		u, err := r.DeductStock(ctx, p.PartID, p.Quantity)
		if err != nil {
			return nil, err
		}
		updates = append(updates, *u)
	}

	return updates, nil
}

func (r *AppointmentGormRepository) loadParts(
	ctx context.Context,
	parts []domain.PartRequest,
) (map[uint]models.Part, error) {

	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		ids = append(ids, p.PartID)
	}

	byID := make(map[uint]models.Part, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}

	q := r.db.WithContext(ctx)
	if r.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var found []models.Part
	if err := q.Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, fmt.Errorf("load parts: %w", err)
	}

	for _, p := range found {
		byID[p.ID] = p
	}
	return byID, nil
}
