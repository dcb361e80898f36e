package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/autorepair-scheduler/internal/httperr"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/autorepair-scheduler/internal/usecase/appointment"
)

type CalendarHandler struct {
	availability *ucAppointment.GetAvailability
}

func NewCalendarHandler(availability *ucAppointment.GetAvailability) *CalendarHandler {
	return &CalendarHandler{availability: availability}
}

// GET /api/calendar/available-slots?date=YYYY-MM-DD
func (h *CalendarHandler) AvailableSlots(c *gin.Context) {
	slots, err := h.availability.Slots(c.Request.Context(), c.Query("date"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, slots)
}

// GET /api/calendar/check?date=YYYY-MM-DD&time=HH:MM
func (h *CalendarHandler) Check(c *gin.Context) {
	date, clock := c.Query("date"), c.Query("time")
	if date == "" || clock == "" {
		httperr.Respond(c, httperr.ErrInvalidInput)
		return
	}

	check, err := h.availability.Check(c.Request.Context(), date, clock)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"success": true, "data": check})
}
