package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusbot/schedule-api/pkg/response"
)

type calendarBuilder interface {
	Build(ctx context.Context, userID, term string) ([]byte, error)
}

// CalendarHandler exposes the ICS export endpoint.
type CalendarHandler struct {
	calendars calendarBuilder
}

// NewCalendarHandler constructs CalendarHandler.
func NewCalendarHandler(calendars calendarBuilder) *CalendarHandler {
	return &CalendarHandler{calendars: calendars}
}

// Export godoc
// @Summary Export a user's schedule as iCalendar text
// @Tags Calendar
// @Produce plain
// @Param userId query string true "User ID"
// @Param term query string true "Term prefix"
// @Success 200 {string} string "text/calendar"
// @Router /calendar.ics [get]
func (h *CalendarHandler) Export(c *gin.Context) {
	ics, err := h.calendars.Build(c.Request.Context(), c.Query("userId"), c.Query("term"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "text/calendar", ics)
}
