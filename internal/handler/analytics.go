package handler

import (
	"DocVault/internal/service"
	"DocVault/utils"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler serves owner-facing viewer analytics.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

// NewAnalyticsHandler creates an analytics handler.
func NewAnalyticsHandler(analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// GetViewerEvents returns recent access attempts for the current user.
func (h *AnalyticsHandler) GetViewerEvents(c *gin.Context) {
	userID := c.MustGet("user_id").(uint64)
	limit := parsePositiveInt(c.Query("limit"), 50)
	linkID := strings.TrimSpace(c.Query("link_id"))

	items, err := h.analytics.ListViewerEvents(c.Request.Context(), userID, linkID, limit)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "list viewer events failed: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetDailyStats returns grouped daily view stats for the current user.
func (h *AnalyticsHandler) GetDailyStats(c *gin.Context) {
	userID := c.MustGet("user_id").(uint64)
	days := parsePositiveInt(c.Query("days"), 30)

	stats, err := h.analytics.GetDailyStats(c.Request.Context(), userID, days)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "get daily stats failed: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": stats})
}

func parsePositiveInt(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
