package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/autorepair-scheduler/internal/audit"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/middleware"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/models"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/testutil"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/autorepair-scheduler/internal/usecase/appointment"
)

const tuesday = "2024-06-18"

func init() {
	gin.SetMode(gin.TestMode)
}

type env struct {
	db     *gorm.DB
	client *models.User
	admin  *models.User
	router *gin.Engine
}

// as stands in for the JWT middleware.
func as(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, user.ID)
		c.Set(middleware.ContextUserRole, user.Role)
		c.Next()
	}
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db := testutil.NewDB(t)
	e := &env{
		db:     db,
		client: testutil.SeedUser(t, db, "client", models.RoleClient),
		admin:  testutil.SeedUser(t, db, "admin", models.RoleAdmin),
	}

	repo := repository.NewAppointmentGormRepository(db)
	clock := timezone.FixedClock(time.Date(2024, 6, 17, 9, 0, 0, 0, time.UTC))
	deps := ucAppointment.Deps{Repo: repo, Clock: clock, Log: zap.NewNop()}
	list := ucAppointment.NewListAppointments(deps)

	appointments := NewAppointmentHandler(
		ucAppointment.NewCreateAppointment(deps),
		ucAppointment.NewCancelAppointment(deps),
		list,
	)
	admin := NewAdminAppointmentHandler(
		ucAppointment.NewUpdateAppointmentStatus(deps),
		ucAppointment.NewCompleteAppointment(deps),
		list,
		ucAppointment.NewGetAppointmentDetail(deps),
	)
	calendar := NewCalendarHandler(ucAppointment.NewGetAvailability(deps))
	parts := NewPartsHandler(ucAppointment.NewCheckParts(deps))
	auditLogs := NewAuditLogsHandler(audit.New(db), clock)
	me := NewMeHandler(repo)

	r := gin.New()

	c := r.Group("/client", as(e.client))
	c.GET("/me", me.GetMe)
	c.POST("/appointments", appointments.Create)
	c.GET("/appointments", appointments.ListMine)
	c.PUT("/appointments/:id", appointments.Update)
	c.GET("/calendar/available-slots", calendar.AvailableSlots)
	c.GET("/calendar/check", calendar.Check)

	a := r.Group("/admin", as(e.admin))
	a.GET("/appointments", admin.List)
	a.GET("/appointments/:id", admin.Detail)
	a.PUT("/appointments/:id/status", admin.UpdateStatus)
	a.PUT("/appointments/:id/complete", admin.Complete)
	a.GET("/parts", parts.List)
	a.POST("/parts/check-availability", parts.CheckAvailability)
	a.GET("/audit-logs", auditLogs.List)

	e.router = r
	return e
}

func (e *env) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	out := map[string]any{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func (e *env) book(t *testing.T, clock string) uint {
	t.Helper()

	w, body := e.do(t, http.MethodPost, "/client/appointments", gin.H{
		"date":        tuesday,
		"time":        clock,
		"description": "Engine makes a knocking noise",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("book: status %d body %s", w.Code, w.Body.String())
	}
	return uint(body["id"].(float64))
}

func errorCode(body map[string]any) string {
	code, _ := body["error_code"].(string)
	return code
}

// ======================================================
// CLIENT
// ======================================================

func TestCreateAppointment_Created(t *testing.T) {
	e := newEnv(t)

	w, body := e.do(t, http.MethodPost, "/client/appointments", gin.H{
		"date":        tuesday,
		"time":        "10:00",
		"description": "Engine makes a knocking noise",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if body["status"] != "pending" || body["date"] != tuesday {
		t.Errorf("body = %v", body)
	}
	if _, ok := body["createdAt"]; !ok {
		t.Errorf("createdAt missing: %v", body)
	}
}

func TestCreateAppointment_Errors(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		name     string
		body     any
		wantCode int
		wantErr  string
	}{
		{"malformed json", `{"date":`, http.StatusBadRequest, "invalid_input"},
		{"missing fields", gin.H{"date": tuesday}, http.StatusBadRequest, "invalid_input"},
		{"short description", gin.H{"date": tuesday, "time": "10:00", "description": "noise"}, http.StatusBadRequest, "description_too_short"},
		{"bad date", gin.H{"date": "18/06/2024", "time": "10:00", "description": "Engine makes a knocking noise"}, http.StatusBadRequest, "invalid_date"},
		{"lunch hour", gin.H{"date": tuesday, "time": "12:00", "description": "Engine makes a knocking noise"}, http.StatusConflict, "slot_unavailable"},
		{"foreign vehicle", gin.H{"date": tuesday, "time": "10:00", "description": "Engine makes a knocking noise", "vehicleId": 42}, http.StatusNotFound, "vehicle_not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := e.do(t, http.MethodPost, "/client/appointments", tt.body)
			if w.Code != tt.wantCode || errorCode(body) != tt.wantErr {
				t.Fatalf("got %d %q, want %d %q", w.Code, errorCode(body), tt.wantCode, tt.wantErr)
			}
		})
	}
}

func TestClientListAndCancel(t *testing.T) {
	e := newEnv(t)
	id := e.book(t, "14:00")

	w, body := e.do(t, http.MethodGet, "/client/appointments", nil)
	if w.Code != http.StatusOK || body["total"].(float64) != 1 {
		t.Fatalf("list: %d %v", w.Code, body)
	}

	path := "/client/appointments/" + itoa(id)

	w, body = e.do(t, http.MethodPut, path, gin.H{"status": "approved"})
	if w.Code != http.StatusBadRequest || errorCode(body) != "invalid_status" {
		t.Fatalf("client approve: %d %v", w.Code, body)
	}

	w, body = e.do(t, http.MethodPut, path, gin.H{"status": "cancelled"})
	if w.Code != http.StatusOK {
		t.Fatalf("cancel: %d %s", w.Code, w.Body.String())
	}
	ap := body["appointment"].(map[string]any)
	if ap["status"] != "cancelled" {
		t.Errorf("status = %v", ap["status"])
	}

	w, body = e.do(t, http.MethodPut, path, gin.H{"status": "cancelled"})
	if w.Code != http.StatusConflict || errorCode(body) != "already_cancelled" {
		t.Fatalf("second cancel: %d %v", w.Code, body)
	}

	w, _ = e.do(t, http.MethodPut, "/client/appointments/abc", gin.H{"status": "cancelled"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad id: %d", w.Code)
	}
}

func TestGetMe(t *testing.T) {
	e := newEnv(t)

	w, body := e.do(t, http.MethodGet, "/client/me", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	user := body["user"].(map[string]any)
	if user["email"] != "client@garage.test" || user["role"] != models.RoleClient {
		t.Errorf("user = %v", user)
	}
}

// ======================================================
// CALENDAR
// ======================================================

func TestCalendar(t *testing.T) {
	e := newEnv(t)

	w, body := e.do(t, http.MethodGet, "/client/calendar/available-slots?date="+tuesday, nil)
	if w.Code != http.StatusOK || body["total"].(float64) != 8 {
		t.Fatalf("slots: %d %v", w.Code, body)
	}

	w, body = e.do(t, http.MethodGet, "/client/calendar/available-slots?date=2024-06-22", nil)
	if w.Code != http.StatusOK || body["total"].(float64) != 0 {
		t.Fatalf("weekend: %d %v", w.Code, body)
	}

	w, body = e.do(t, http.MethodGet, "/client/calendar/available-slots?date=2024-06-10", nil)
	if w.Code != http.StatusBadRequest || errorCode(body) != "past_date" {
		t.Fatalf("past: %d %v", w.Code, body)
	}

	w, body = e.do(t, http.MethodGet, "/client/calendar/check?date="+tuesday+"&time=10:00", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("check: %d %s", w.Code, w.Body.String())
	}
	if data := body["data"].(map[string]any); data["available"] != true {
		t.Errorf("check data = %v", data)
	}

	w, _ = e.do(t, http.MethodGet, "/client/calendar/check?date="+tuesday, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("check without time: %d", w.Code)
	}
}

// ======================================================
// ADMIN
// ======================================================

func TestAdminApproveWithParts(t *testing.T) {
	e := newEnv(t)
	id := e.book(t, "10:00")
	part := testutil.SeedPart(t, e.db, "oil-filter", 6, "30")

	w, body := e.do(t, http.MethodPut, "/admin/appointments/"+itoa(id)+"/status", gin.H{
		"status":         "approved",
		"estimatedPrice": 250,
		"warranty":       3,
		"selectedParts": []gin.H{
			{"partId": part.ID, "quantity": 2, "unitPrice": 28},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", w.Code, w.Body.String())
	}

	if got := testutil.Stock(t, e.db, part.ID); got != 4 {
		t.Errorf("stock = %d, want 4", got)
	}
	if info, ok := body["partsInfo"].([]any); !ok || len(info) != 1 {
		t.Errorf("partsInfo = %v", body["partsInfo"])
	}
	if _, ok := body["stockInfo"]; !ok {
		t.Errorf("stockInfo missing")
	}
	warnings, ok := body["lowStockWarnings"].([]any)
	if !ok || len(warnings) != 1 {
		t.Fatalf("lowStockWarnings = %v", body["lowStockWarnings"])
	}
	if w := warnings[0].(map[string]any); w["currentStock"].(float64) != 4 {
		t.Errorf("warning = %v", w)
	}

	w, body = e.do(t, http.MethodPut, "/admin/appointments/"+itoa(id)+"/status", gin.H{
		"status":          "rejected",
		"rejectionReason": "schedule",
	})
	if w.Code != http.StatusConflict || errorCode(body) != "already_processed" {
		t.Fatalf("re-process: %d %v", w.Code, body)
	}
}

func TestAdminInsufficientStock(t *testing.T) {
	e := newEnv(t)
	id := e.book(t, "10:00")
	part := testutil.SeedPart(t, e.db, "timing-belt", 1, "90")

	w, body := e.do(t, http.MethodPut, "/admin/appointments/"+itoa(id)+"/status", gin.H{
		"status":         "approved",
		"estimatedPrice": 400,
		"warranty":       12,
		"selectedParts":  []gin.H{{"partId": part.ID, "quantity": 3}},
	})
	if w.Code != http.StatusBadRequest || errorCode(body) != "insufficient_stock" {
		t.Fatalf("got %d %v", w.Code, body)
	}
	details := body["details"].(map[string]any)
	if parts := details["unavailable_parts"].([]any); len(parts) != 1 {
		t.Errorf("unavailable_parts = %v", parts)
	}
	if got := testutil.Stock(t, e.db, part.ID); got != 1 {
		t.Errorf("stock touched: %d", got)
	}
}

func TestAdminUpdateStatus_InvalidStatus(t *testing.T) {
	e := newEnv(t)
	id := e.book(t, "10:00")

	w, body := e.do(t, http.MethodPut, "/admin/appointments/"+itoa(id)+"/status", gin.H{"status": "completed"})
	if w.Code != http.StatusBadRequest || errorCode(body) != "invalid_status" {
		t.Fatalf("got %d %v", w.Code, body)
	}
}

func TestAdminCompleteListAndDetail(t *testing.T) {
	e := newEnv(t)
	id := e.book(t, "10:00")

	w, _ := e.do(t, http.MethodPut, "/admin/appointments/"+itoa(id)+"/status", gin.H{
		"status":         "approved",
		"estimatedPrice": 100,
		"warranty":       0,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("approve: %d %s", w.Code, w.Body.String())
	}

	w, _ = e.do(t, http.MethodPut, "/admin/appointments/"+itoa(id)+"/complete", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("complete: %d %s", w.Code, w.Body.String())
	}

	w, body := e.do(t, http.MethodGet, "/admin/appointments?status=completed", nil)
	if w.Code != http.StatusOK || body["total"].(float64) != 1 {
		t.Fatalf("list: %d %v", w.Code, body)
	}

	w, body = e.do(t, http.MethodGet, "/admin/appointments?status=bogus", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad filter: %d %v", w.Code, body)
	}

	w, body = e.do(t, http.MethodGet, "/admin/appointments/"+itoa(id), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("detail: %d", w.Code)
	}
	history := body["data"].(map[string]any)["history"].([]any)
	if len(history) != 3 {
		t.Errorf("history rows = %d, want 3", len(history))
	}

	w, body = e.do(t, http.MethodGet, "/admin/appointments/999", nil)
	if w.Code != http.StatusNotFound || errorCode(body) != "appointment_not_found" {
		t.Fatalf("missing: %d %v", w.Code, body)
	}
}

func TestParts(t *testing.T) {
	e := newEnv(t)
	pad := testutil.SeedPart(t, e.db, "brake-pad", 10, "25")
	testutil.SeedPart(t, e.db, "brake-disc", 1, "80")

	w, body := e.do(t, http.MethodGet, "/admin/parts?q=disc", nil)
	if w.Code != http.StatusOK || body["total"].(float64) != 1 {
		t.Fatalf("search: %d %v", w.Code, body)
	}

	w, body = e.do(t, http.MethodPost, "/admin/parts/check-availability", gin.H{
		"parts": []gin.H{{"partId": pad.ID, "quantity": 20}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("check: %d %s", w.Code, w.Body.String())
	}
	if data := body["data"].(map[string]any); data["available"] != false {
		t.Errorf("data = %v", data)
	}

	w, body = e.do(t, http.MethodPost, "/admin/parts/check-availability", gin.H{"parts": []gin.H{}})
	if w.Code != http.StatusBadRequest || errorCode(body) != "invalid_parts" {
		t.Fatalf("empty: %d %v", w.Code, body)
	}
}

func TestAuditLogs(t *testing.T) {
	e := newEnv(t)
	logs := audit.New(e.db)

	for _, action := range []string{audit.ActionLowStock, audit.ActionSlotRaceLost} {
		if err := logs.Log(context.Background(), audit.Event{Action: action, Entity: "part"}); err != nil {
			t.Fatalf("log: %v", err)
		}
	}

	w, body := e.do(t, http.MethodGet, "/admin/audit-logs?action="+audit.ActionLowStock, nil)
	if w.Code != http.StatusOK || body["total"].(float64) != 1 {
		t.Fatalf("filter: %d %v", w.Code, body)
	}

	w, body = e.do(t, http.MethodGet, "/admin/audit-logs?from=yesterday", nil)
	if w.Code != http.StatusBadRequest || errorCode(body) != "invalid_date" {
		t.Fatalf("bad from: %d %v", w.Code, body)
	}
}

func TestPageParams(t *testing.T) {
	tests := []struct {
		query     string
		wantPage  int
		wantLimit int
	}{
		{"", 1, 50},
		{"page=3&limit=20", 3, 20},
		{"page=0&limit=200", 1, 200},
		{"page=2&limit=5000", 2, 50},
		{"page=-1&limit=-4", 1, 50},
		{"page=x&limit=y", 1, 50},
	}

	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)

		page, limit := pageParams(c)
		if page != tt.wantPage || limit != tt.wantLimit {
			t.Errorf("%q: page=%d limit=%d, want %d %d", tt.query, page, limit, tt.wantPage, tt.wantLimit)
		}
	}
}

func TestAdminList_OversizedLimitKeepsPagesAligned(t *testing.T) {
	e := newEnv(t)
	e.book(t, "10:00")

	w, body := e.do(t, http.MethodGet, "/admin/appointments?limit=100000&page=1", nil)
	if w.Code != http.StatusOK || body["total"].(float64) != 1 {
		t.Fatalf("list: %d %v", w.Code, body)
	}
	if data := body["data"].([]any); len(data) != 1 {
		t.Fatalf("page 1 rows = %d", len(data))
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
