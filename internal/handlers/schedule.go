package handlers

import (
	"github.com/gin-gonic/gin"

	"appointments-server/internal/booking"
	"appointments-server/internal/config"
	"appointments-server/internal/middleware"
	"appointments-server/internal/models"
	"appointments-server/internal/utils"
)

// ScheduleHandler serves a provider's own day schedule.
type ScheduleHandler struct {
	Bookings *booking.Service
	Cfg      *config.Config
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(bookings *booking.Service, cfg *config.Config) *ScheduleHandler {
	return &ScheduleHandler{Bookings: bookings, Cfg: cfg}
}

// GetSchedule returns the provider's appointments on the day in the date query.
// Access is limited to providers by the route.
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	day, err := h.Bookings.ParseDate(c.Query("date"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	appointments, err := h.Bookings.Schedule(c.Request.Context(), userID, day)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	now := h.Bookings.Now()
	views := make([]models.AppointmentView, 0, len(appointments))
	for i := range appointments {
		views = append(views, appointments[i].View(now, h.Cfg.AppURL))
	}
	utils.Success(c, "Schedule retrieved successfully", views)
}
