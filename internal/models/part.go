package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Part struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name       string `gorm:"size:100;not null" json:"name"`
	PartNumber string `gorm:"size:50;index" json:"part_number"`
	Category   string `gorm:"size:50" json:"category"`

	Price             decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"price"`
	StockQuantity     int             `gorm:"not null;default:0;check:stock_quantity >= 0" json:"stock_quantity"`
	MinimumStockLevel int             `gorm:"not null;default:0" json:"minimum_stock_level"`

	SupplierID *uint `json:"supplier_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Part) IsLowStock() bool {
	return p.StockQuantity <= p.MinimumStockLevel
}
