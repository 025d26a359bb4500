package handlers

import (
	"net/http"
	"time"

	"jobboard_front/internal/services"

	"github.com/gin-gonic/gin"
)

// JournalHandler exposes submission outcome counts for operators.
type JournalHandler struct {
	*BaseHandler
	journal *services.JournalService
}

func NewJournalHandler(base *BaseHandler, journal *services.JournalService) *JournalHandler {
	return &JournalHandler{BaseHandler: base, journal: journal}
}

func (h *JournalHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/internal/submissions/stats", h.Stats)
}

func (h *JournalHandler) Stats(c *gin.Context) {
	window := 24 * time.Hour
	if hours := ParseQueryInt(c, "hours", 24); hours > 0 {
		window = time.Duration(hours) * time.Hour
	}

	stats, err := h.journal.Stats(c.Request.Context(), window)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"window_hours": int(window.Hours()), "outcomes": stats})
}
