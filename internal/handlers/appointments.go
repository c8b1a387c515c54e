package handlers

import (
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"

	"appointments-server/internal/booking"
	"appointments-server/internal/config"
	"appointments-server/internal/middleware"
	"appointments-server/internal/models"
	"appointments-server/internal/utils"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	Bookings *booking.Service
	Cfg      *config.Config
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(bookings *booking.Service, cfg *config.Config) *AppointmentHandler {
	return &AppointmentHandler{Bookings: bookings, Cfg: cfg}
}

// CreateAppointmentRequest represents the request body for creating an appointment.
// provider_id accepts a JSON number; date is an RFC 3339 timestamp.
type CreateAppointmentRequest struct {
	ProviderID json.Number `json:"provider_id" validate:"required"`
	Date       string      `json:"date" validate:"required"`
}

// GetAppointments returns one page of the requester's scheduled appointments.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	page := 1
	if raw := c.Query("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			utils.BadRequest(c, "Invalid page")
			return
		}
		page = p
	}

	appointments, err := h.Bookings.List(c.Request.Context(), userID, page)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Success(c, "Appointments retrieved successfully", h.views(appointments))
}

// CreateAppointment books a provider's hour slot for the requester.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	providerID, err := booking.ParseProviderID(req.ProviderID.String())
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	date, err := h.Bookings.ParseDate(req.Date)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	appointment, err := h.Bookings.Create(c.Request.Context(), userID, providerID, date)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Created(c, "Appointment created successfully", appointment.View(h.Bookings.Now(), h.Cfg.AppURL))
}

// CancelAppointment cancels one of the requester's appointments.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.NotFound(c, booking.ErrNotFound.Message)
		return
	}

	appointment, err := h.Bookings.Cancel(c.Request.Context(), userID, uint(id))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Success(c, "Appointment canceled successfully", appointment.View(h.Bookings.Now(), h.Cfg.AppURL))
}

func (h *AppointmentHandler) views(appointments []models.Appointment) []models.AppointmentView {
	now := h.Bookings.Now()
	out := make([]models.AppointmentView, 0, len(appointments))
	for i := range appointments {
		out = append(out, appointments[i].View(now, h.Cfg.AppURL))
	}
	return out
}
