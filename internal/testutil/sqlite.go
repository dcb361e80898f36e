// Package testutil provides a throwaway database for package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/autorepair-scheduler/internal/models"
)

// NewDB opens a migrated sqlite database in the test's temp dir. The pool
// holds a single connection so transactions serialize the way row locks
// would on postgres.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

func SeedUser(t *testing.T, db *gorm.DB, name string, role string) *models.User {
	t.Helper()

	u := &models.User{
		Name:  name,
		Email: name + "@garage.test",
		Role:  role,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedVehicle(t *testing.T, db *gorm.DB, userID uint) *models.Vehicle {
	t.Helper()

	v := &models.Vehicle{
		UserID:       userID,
		Make:         "Fiat",
		Model:        "Uno",
		Year:         2012,
		LicensePlate: "ABC1D23",
	}
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}
	return v
}

func SeedPart(t *testing.T, db *gorm.DB, name string, stock int, price string) *models.Part {
	t.Helper()

	p := &models.Part{
		Name:              name,
		PartNumber:        "PN-" + name,
		Category:          "brakes",
		Price:             decimal.RequireFromString(price),
		StockQuantity:     stock,
		MinimumStockLevel: 2,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed part: %v", err)
	}
	return p
}

// Slot returns the stored slot starting at start on date, failing the
// test when it is missing.
func Slot(t *testing.T, db *gorm.DB, date, start string) models.CalendarSlot {
	t.Helper()

	var s models.CalendarSlot
	if err := db.Where("slot_date = ? AND start_time = ?", date, start).First(&s).Error; err != nil {
		t.Fatalf("load slot %s %s: %v", date, start, err)
	}
	return s
}

func Stock(t *testing.T, db *gorm.DB, partID uint) int {
	t.Helper()

	var p models.Part
	if err := db.First(&p, partID).Error; err != nil {
		t.Fatalf("load part %d: %v", partID, err)
	}
	return p.StockQuantity
}
