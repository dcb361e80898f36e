package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/autorepair-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/dto"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/httperr"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/autorepair-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AdminAppointmentHandler struct {
	updateStatus *ucAppointment.UpdateAppointmentStatus
	complete     *ucAppointment.CompleteAppointment
	list         *ucAppointment.ListAppointments
	detail       *ucAppointment.GetAppointmentDetail
}

func NewAdminAppointmentHandler(
	updateStatus *ucAppointment.UpdateAppointmentStatus,
	complete *ucAppointment.CompleteAppointment,
	list *ucAppointment.ListAppointments,
	detail *ucAppointment.GetAppointmentDetail,
) *AdminAppointmentHandler {
	return &AdminAppointmentHandler{
		updateStatus: updateStatus,
		complete:     complete,
		list:         list,
		detail:       detail,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type SelectedPartRequest struct {
	PartID    uint             `json:"partId"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unitPrice"`
}

type UpdateStatusRequest struct {
	Status          string                `json:"status" binding:"required"`
	AdminResponse   *string               `json:"adminResponse"`
	EstimatedPrice  *decimal.Decimal      `json:"estimatedPrice"`
	Warranty        *int                  `json:"warranty"`
	RejectionReason string                `json:"rejectionReason"`
	OtherReason     string                `json:"otherReason"`
	RetryDays       *int                  `json:"retryDays"`
	SelectedParts   []SelectedPartRequest `json:"selectedParts"`
}

type CompleteRequest struct {
	Comment string `json:"comment"`
}

func toPartRequests(in []SelectedPartRequest) []domain.PartRequest {
	out := make([]domain.PartRequest, 0, len(in))
	for _, p := range in {
		out = append(out, domain.PartRequest{
			PartID:    p.PartID,
			Quantity:  p.Quantity,
			UnitPrice: p.UnitPrice,
		})
	}
	return out
}

// ======================================================
// UPDATE STATUS
// ======================================================

func (h *AdminAppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.ErrInvalidInput)
		return
	}

	target, err := domain.DecisionTarget(req.Status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	res, err := h.updateStatus.Execute(c.Request.Context(), ucAppointment.UpdateStatusInput{
		AppointmentID: id,
		AdminID:       middleware.UserID(c),
		Decision: domain.Decision{
			Status:         target,
			AdminResponse:  req.AdminResponse,
			RejectionCode:  req.RejectionReason,
			RejectionOther: req.OtherReason,
			RetryDays:      req.RetryDays,
			EstimatedPrice: req.EstimatedPrice,
			WarrantyMonths: req.Warranty,
		},
		SelectedParts: toPartRequests(req.SelectedParts),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	body := gin.H{
		"success":     true,
		"message":     "Appointment status updated.",
		"appointment": res.Appointment,
	}
	if len(res.Parts) > 0 {
		body["partsInfo"] = dto.NewPartsInfo(res.Parts)
		body["stockInfo"] = res.StockUpdates
	}
	if low := res.LowStock(); len(low) > 0 {
		body["lowStockWarnings"] = dto.NewLowStockWarnings(low)
	}

	httpresp.OK(c, body)
}

// ======================================================
// COMPLETE
// ======================================================

func (h *AdminAppointmentHandler) Complete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req CompleteRequest
	// The body is optional.
	_ = c.ShouldBindJSON(&req)

	ap, err := h.complete.Execute(c.Request.Context(), middleware.UserID(c), id, req.Comment)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"success": true, "appointment": ap})
}

// ======================================================
// READ
// ======================================================

func (h *AdminAppointmentHandler) List(c *gin.Context) {
	page, limit := pageParams(c)

	apps, total, err := h.list.All(c.Request.Context(), domain.ListFilter{
		Status: c.Query("status"),
		Date:   c.Query("date"),
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Page(c, apps, total)
}

func (h *AdminAppointmentHandler) Detail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	detail, err := h.detail.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"success": true, "data": detail})
}
