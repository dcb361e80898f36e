package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/autorepair-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/httperr"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/autorepair-scheduler/internal/usecase/appointment"
)

type PartsHandler struct {
	parts *ucAppointment.CheckParts
}

func NewPartsHandler(parts *ucAppointment.CheckParts) *PartsHandler {
	return &PartsHandler{parts: parts}
}

type CheckPartsRequest struct {
	Parts []SelectedPartRequest `json:"parts" binding:"required"`
}

// GET /api/admin/parts?category=&q=&lowStock=true
func (h *PartsHandler) List(c *gin.Context) {
	parts, err := h.parts.List(c.Request.Context(), domain.PartFilter{
		Category: c.Query("category"),
		Query:    c.Query("q"),
		LowStock: c.Query("lowStock") == "true",
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, parts)
}

// POST /api/admin/parts/check-availability
func (h *PartsHandler) CheckAvailability(c *gin.Context) {
	var req CheckPartsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.ErrInvalidParts)
		return
	}

	out, err := h.parts.Execute(c.Request.Context(), toPartRequests(req.Parts))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"success": true, "data": out})
}
