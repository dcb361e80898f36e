package appointment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/autorepair-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/models"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/testutil"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/timezone"
)

// Monday 2024-06-17 09:00 UTC. The next day is a Tuesday.
var mondayMorning = time.Date(2024, 6, 17, 9, 0, 0, 0, time.UTC)

const (
	tuesday     = "2024-06-18"
	brakeReport = "Brake pads worn out, need replacement"
)

type fixture struct {
	db     *gorm.DB
	deps   Deps
	client *models.User
	admin  *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)

	return &fixture{
		db: db,
		deps: Deps{
			Repo:  repository.NewAppointmentGormRepository(db),
			Clock: timezone.FixedClock(mondayMorning),
			Log:   zap.NewNop(),
		},
		client: testutil.SeedUser(t, db, "client", models.RoleClient),
		admin:  testutil.SeedUser(t, db, "admin", models.RoleAdmin),
	}
}

func (f *fixture) newClient(t *testing.T, n int) *models.User {
	t.Helper()
	return testutil.SeedUser(t, f.db, fmt.Sprintf("client%d", n), models.RoleClient)
}

func (f *fixture) book(t *testing.T, userID uint, date, clock string) *models.Appointment {
	t.Helper()

	ap, err := NewCreateAppointment(f.deps).Execute(context.Background(), CreateAppointmentInput{
		UserID:      userID,
		Date:        date,
		Time:        clock,
		Description: brakeReport,
	})
	if err != nil {
		t.Fatalf("book %s %s: %v", date, clock, err)
	}
	return ap
}

func (f *fixture) reload(t *testing.T, id uint) models.Appointment {
	t.Helper()

	var ap models.Appointment
	if err := f.db.First(&ap, id).Error; err != nil {
		t.Fatalf("reload appointment %d: %v", id, err)
	}
	return ap
}

func (f *fixture) slotCount(t *testing.T, date, start string) int {
	t.Helper()
	return testutil.Slot(t, f.db, date, start).CurrentAppointments
}

func (f *fixture) historyCount(t *testing.T, appointmentID uint) int64 {
	t.Helper()

	var n int64
	f.db.Model(&models.AppointmentHistory{}).Where("appointment_id = ?", appointmentID).Count(&n)
	return n
}

func (f *fixture) setStatus(t *testing.T, id uint, status string) {
	t.Helper()

	if err := f.db.Model(&models.Appointment{}).Where("id = ?", id).Update("status", status).Error; err != nil {
		t.Fatalf("set status: %v", err)
	}
}
