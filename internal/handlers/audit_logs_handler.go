package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/autorepair-scheduler/internal/audit"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/httperr"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs  *audit.Logger
	clock timezone.Clock
}

func NewAuditLogsHandler(logs *audit.Logger, clock timezone.Clock) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, clock: clock}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, limit := pageParams(c)

	// --------------------------------------------------
	// Optional date window, "to" is inclusive
	// --------------------------------------------------

	from, err := queryDay(c, "from", h.clock.Location())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	to, err := queryDay(c, "to", h.clock.Location())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if to != nil {
		end := to.Add(24 * time.Hour)
		to = &end
	}

	logs, total, err := h.logs.List(c.Request.Context(), audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		From:   from,
		To:     to,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
