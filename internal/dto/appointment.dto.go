package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/autorepair-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/models"
)

// AppointmentDTO is the client-facing shape of a booking.
type AppointmentDTO struct {
	ID          uint      `json:"id"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewAppointmentDTO(ap *models.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:          ap.ID,
		Date:        ap.Date,
		Time:        ap.Time,
		Status:      ap.Status,
		Description: ap.Description,
		CreatedAt:   ap.CreatedAt,
	}
}

type PartInfoDTO struct {
	PartID    uint            `json:"partId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type LowStockWarningDTO struct {
	PartID       uint   `json:"partId"`
	PartName     string `json:"partName"`
	PartNumber   string `json:"partNumber"`
	CurrentStock int    `json:"currentStock"`
	MinimumStock int    `json:"minimumStock"`
	Message      string `json:"message"`
}

func NewPartsInfo(lines []models.AppointmentPart) []PartInfoDTO {
	out := make([]PartInfoDTO, 0, len(lines))
	for _, l := range lines {
		out = append(out, PartInfoDTO{
			PartID:    l.PartID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
		})
	}
	return out
}

func NewLowStockWarnings(updates []domain.StockUpdate) []LowStockWarningDTO {
	out := make([]LowStockWarningDTO, 0, len(updates))
	for _, u := range updates {
		out = append(out, LowStockWarningDTO{
			PartID:       u.PartID,
			PartName:     u.PartName,
			PartNumber:   u.PartNumber,
			CurrentStock: u.NewStock,
			MinimumStock: u.MinimumStock,
			Message:      fmt.Sprintf("%s is running low: %d left", u.PartName, u.NewStock),
		})
	}
	return out
}
