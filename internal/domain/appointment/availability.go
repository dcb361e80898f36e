package appointment

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/autorepair-scheduler/internal/httperr"
)

type AvailableSlot struct {
	ID                  uint   `json:"id"`
	Date                string `json:"date"`
	StartTime           string `json:"start_time"`
	EndTime             string `json:"end_time"`
	MaxAppointments     int    `json:"max_appointments"`
	CurrentAppointments int    `json:"current_appointments"`
	AvailableSpots      int    `json:"available_spots"`
}

type SlotState string

const (
	SlotAvailable      SlotState = "available"
	SlotMissing        SlotState = "slot_does_not_exist"
	SlotMarkedDisabled SlotState = "marked_unavailable"
	SlotFull           SlotState = "full"
)

// SlotCheck is the outcome of checkSlotAvailability.
type SlotCheck struct {
	Available      bool      `json:"available"`
	State          SlotState `json:"state"`
	Reason         string    `json:"reason,omitempty"`
	SlotID         uint      `json:"slot_id,omitempty"`
	StartTime      string    `json:"start_time,omitempty"`
	EndTime        string    `json:"end_time,omitempty"`
	AvailableSpots int       `json:"available_spots"`
}

// PartRequest is one selected part. A nil UnitPrice snapshots the
// part's current price.
type PartRequest struct {
	PartID    uint             `json:"part_id"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

type PartCheck struct {
	PartID    uint   `json:"part_id"`
	PartName  string `json:"part_name,omitempty"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
	OK        bool   `json:"ok"`
	Reason    string `json:"reason,omitempty"`
}

type PartsAvailability struct {
	Available bool        `json:"available"`
	Parts     []PartCheck `json:"parts"`
}

// Shortfall converts the failing lines into the structured stock error.
// It returns nil when every part clears.
func (a PartsAvailability) Shortfall() error {
	var short []httperr.PartShortfall
	for _, p := range a.Parts {
		if p.OK {
			continue
		}
		short = append(short, httperr.PartShortfall{
			PartID:    p.PartID,
			PartName:  p.PartName,
			Requested: p.Requested,
			Available: p.Available,
			Reason:    p.Reason,
		})
	}
	if len(short) == 0 {
		return nil
	}
	return &httperr.InsufficientStockError{Parts: short}
}

// LowStockThreshold flags a part after deduction regardless of its own
// minimum level.
const LowStockThreshold = 5

type StockUpdate struct {
	PartID        uint            `json:"part_id"`
	PartName      string          `json:"part_name"`
	PartNumber    string          `json:"part_number"`
	PreviousStock int             `json:"previous_stock"`
	NewStock      int             `json:"new_stock"`
	QuantityUsed  int             `json:"quantity_used"`
	MinimumStock  int             `json:"minimum_stock_level"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
}

func (u StockUpdate) IsLow() bool {
	return u.NewStock <= LowStockThreshold || u.NewStock <= u.MinimumStock
}
