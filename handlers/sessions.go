package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"session-demand-api/models"
	"session-demand-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultSessionPageSize = 50
	maxSessionPageSize     = 200
)

// sessionPage is a cursor window over session history. The cursor is a
// start_time value; any layout the store itself emits is accepted.
type sessionPage struct {
	Limit  int
	Before *time.Time
}

type sessionPageResponse struct {
	Data       []models.Session `json:"data"`
	NextCursor string           `json:"next_cursor,omitempty"`
	HasMore    bool             `json:"has_more"`
}

func parseSessionPage(c *gin.Context) sessionPage {
	p := sessionPage{Limit: defaultSessionPageSize}

	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			p.Limit = l
		}
	}
	if p.Limit > maxSessionPageSize {
		p.Limit = maxSessionPageSize
	}

	if beforeStr := c.Query("before"); beforeStr != "" {
		if t, ok := models.ParseSessionTime(beforeStr); ok {
			p.Before = &t
		}
	}

	return p
}

// nextSessionCursor derives the cursor for the page after rows. Malformed
// rows still paginate: their raw start_time is handed back as-is, since the
// cursor parser accepts every layout the store emits.
func nextSessionCursor(rows []models.Session, hasMore bool) string {
	if !hasMore || len(rows) == 0 {
		return ""
	}
	last := rows[len(rows)-1]
	if ts, ok := last.StartedAt(); ok {
		return ts.Format(time.RFC3339Nano)
	}
	return last.StartTime
}

type SessionsHandler struct {
	db    *gorm.DB
	cache *services.CacheService
}

func NewSessionsHandler(db *gorm.DB, cache *services.CacheService) *SessionsHandler {
	return &SessionsHandler{db: db, cache: cache}
}

// GetRecent lists session history, newest first, with cursor pagination on
// start_time.
func (h *SessionsHandler) GetRecent(c *gin.Context) {
	p := parseSessionPage(c)

	beforeStr := ""
	if p.Before != nil {
		beforeStr = p.Before.Format(time.RFC3339Nano)
	}
	cacheKey := fmt.Sprintf("sessions:recent:%d:%s", p.Limit, beforeStr)

	var cached sessionPageResponse
	if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil && cached.Data != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	query := h.db.WithContext(c.Request.Context()).
		Model(&models.Session{}).
		Order("start_time DESC").
		Limit(p.Limit + 1)
	if p.Before != nil {
		query = query.Where("start_time < ?", *p.Before)
	}

	var rows []models.Session
	if err := query.Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database query failed"})
		return
	}

	hasMore := len(rows) > p.Limit
	if hasMore {
		rows = rows[:p.Limit]
	}

	resp := sessionPageResponse{
		Data:       rows,
		NextCursor: nextSessionCursor(rows, hasMore),
		HasMore:    hasMore,
	}
	go h.cache.Set(context.Background(), cacheKey, resp, 5*time.Second)

	c.JSON(http.StatusOK, resp)
}
