package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/autorepair-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/httperr"
)

// --------------------------------------------------
// Request helpers
// --------------------------------------------------

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.Respond(c, httperr.ErrInvalidInput)
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	return v
}

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// pageParams reads page (1-based) and limit, capping limit so the offset
// always matches the page size the store applies.
func pageParams(c *gin.Context) (page, limit int) {
	page = queryInt(c, "page", 1)
	if page <= 0 {
		page = 1
	}
	limit = queryInt(c, "limit", defaultPageSize)
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	return page, limit
}

// queryDay parses an optional YYYY-MM-DD query value in loc.
func queryDay(c *gin.Context, name string, loc *time.Location) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(raw, loc)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
