package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/autorepair-scheduler/internal/audit"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/config"
	domain "github.com/BruksfildServices01/autorepair-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/autorepair-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/middleware"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/models"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/autorepair-scheduler/internal/usecase/appointment"
)

// Deps are the process-wide singletons built in main.
type Deps struct {
	DB          *gorm.DB
	Config      *config.Config
	Log         *zap.Logger
	Cache       domain.SlotCache
	AuditLogger *audit.Logger
	Audit       *audit.Dispatcher
	Clock       timezone.Clock
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORSMiddleware(d.Config.CORSAllowOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)

	ucDeps := ucAppointment.Deps{
		Repo:  appointmentRepo,
		Cache: d.Cache,
		Audit: d.Audit,
		Clock: d.Clock,
		Log:   d.Log,
	}

	// ======================================================
	// USE CASES
	// ======================================================
	createUC := ucAppointment.NewCreateAppointment(ucDeps)
	cancelUC := ucAppointment.NewCancelAppointment(ucDeps)
	updateStatusUC := ucAppointment.NewUpdateAppointmentStatus(ucDeps)
	completeUC := ucAppointment.NewCompleteAppointment(ucDeps)
	listUC := ucAppointment.NewListAppointments(ucDeps)
	detailUC := ucAppointment.NewGetAppointmentDetail(ucDeps)
	availabilityUC := ucAppointment.NewGetAvailability(ucDeps)
	partsUC := ucAppointment.NewCheckParts(ucDeps)

	// ======================================================
	// HANDLERS
	// ======================================================
	meHandler := handlers.NewMeHandler(appointmentRepo)
	appointmentHandler := handlers.NewAppointmentHandler(createUC, cancelUC, listUC)
	adminHandler := handlers.NewAdminAppointmentHandler(updateStatusUC, completeUC, listUC, detailUC)
	calendarHandler := handlers.NewCalendarHandler(availabilityUC)
	partsHandler := handlers.NewPartsHandler(partsUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogger, d.Clock)

	// ======================================================
	// API
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(d.Config))
	{
		api.GET("/me", meHandler.GetMe)

		api.GET("/calendar/available-slots", calendarHandler.AvailableSlots)
		api.GET("/calendar/check", calendarHandler.Check)

		api.POST("/appointments", appointmentHandler.Create)
		api.GET("/appointments", appointmentHandler.ListMine)
		api.PUT("/appointments/:id", appointmentHandler.Update)

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.RequireRole(models.RoleAdmin, models.RoleManager))
		{
			admin.GET("/appointments", adminHandler.List)
			admin.GET("/appointments/:id", adminHandler.Detail)
			admin.PUT("/appointments/:id/status", adminHandler.UpdateStatus)
			admin.PUT("/appointments/:id/complete", adminHandler.Complete)

			admin.GET("/parts", partsHandler.List)
			admin.POST("/parts/check-availability", partsHandler.CheckAvailability)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
