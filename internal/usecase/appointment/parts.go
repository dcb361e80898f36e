package appointment

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/autorepair-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/httperr"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/models"
)

// CheckParts is the inventory pre-check an admin runs before approving.
type CheckParts struct {
	Deps
}

func NewCheckParts(deps Deps) *CheckParts {
	return &CheckParts{Deps: deps.withDefaults()}
}

func (uc *CheckParts) Execute(
	ctx context.Context,
	parts []domain.PartRequest,
) (domain.PartsAvailability, error) {

	if len(parts) == 0 {
		return domain.PartsAvailability{}, httperr.ErrInvalidParts
	}
	if err := validateParts(parts); err != nil {
		return domain.PartsAvailability{}, err
	}

	out, err := uc.Repo.CheckPartsAvailability(ctx, parts)
	if err != nil {
		uc.logUnexpected("check parts", err, zap.Int("parts", len(parts)))
		return domain.PartsAvailability{}, err
	}
	return out, nil
}

func (uc *CheckParts) List(
	ctx context.Context,
	filter domain.PartFilter,
) ([]models.Part, error) {

	parts, err := uc.Repo.ListParts(ctx, filter)
	if err != nil {
		uc.logUnexpected("list parts", err,
			zap.String("category", filter.Category),
			zap.Bool("low_stock", filter.LowStock),
		)
		return nil, err
	}
	return parts, nil
}
