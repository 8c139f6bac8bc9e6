package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusbot/schedule-api/pkg/response"
)

type scheduleRenderService interface {
	Render(ctx context.Context, userID, term string) ([]byte, error)
}

// ScheduleHandler exposes the schedule image endpoint.
type ScheduleHandler struct {
	schedules scheduleRenderService
}

// NewScheduleHandler constructs ScheduleHandler.
func NewScheduleHandler(schedules scheduleRenderService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules}
}

// Render godoc
// @Summary Render a user's weekly schedule as a PNG image
// @Tags Schedules
// @Produce png
// @Param userId query string true "User ID"
// @Param term query string true "Term prefix (A, B, C or D)"
// @Success 200 {file} binary "800x600 PNG"
// @Failure 400 {object} response.Envelope
// @Router /schedule [get]
func (h *ScheduleHandler) Render(c *gin.Context) {
	imageBytes, err := h.schedules.Render(c.Request.Context(), c.Query("userId"), c.Query("term"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", imageBytes)
}
