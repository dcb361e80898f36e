package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/autorepair-scheduler/internal/dto"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/httperr"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/autorepair-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// AppointmentHandler serves the client side of bookings.
type AppointmentHandler struct {
	create *ucAppointment.CreateAppointment
	cancel *ucAppointment.CancelAppointment
	list   *ucAppointment.ListAppointments
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	cancel *ucAppointment.CancelAppointment,
	list *ucAppointment.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		create: create,
		cancel: cancel,
		list:   list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Description string `json:"description" binding:"required"`
	VehicleID   *uint  `json:"vehicleId"`
}

type UpdateAppointmentRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.ErrInvalidInput)
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		UserID:      middleware.UserID(c),
		VehicleID:   req.VehicleID,
		Date:        req.Date,
		Time:        req.Time,
		Description: req.Description,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.NewAppointmentDTO(ap))
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	apps, err := h.list.ForUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, apps)
}

// ======================================================
// UPDATE (client may only cancel)
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.ErrInvalidInput)
		return
	}
	if req.Status != "cancelled" {
		httperr.Respond(c, httperr.ErrInvalidStatus)
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"success":     true,
		"message":     "Appointment cancelled.",
		"appointment": dto.NewAppointmentDTO(ap),
	})
}
