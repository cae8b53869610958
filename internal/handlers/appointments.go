package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"booking-server/internal/appointments"
	"booking-server/internal/models"
	"booking-server/internal/utils"
)

// AppointmentService is the appointment workflow used by the handlers.
type AppointmentService interface {
	List(ctx context.Context, userID uint, page int) ([]appointments.Summary, error)
	Create(ctx context.Context, userID uint, in appointments.CreateInput) (*models.Appointment, error)
	Cancel(ctx context.Context, userID, appointmentID uint) (*models.Appointment, error)
}

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	Service AppointmentService
	Log     zerolog.Logger
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(service AppointmentService, log zerolog.Logger) *AppointmentHandler {
	return &AppointmentHandler{Service: service, Log: log}
}

// Index lists the authenticated user's active appointments, 20 per page.
func (h *AppointmentHandler) Index(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
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

	list, err := h.Service.List(c.Request.Context(), userID, page)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	utils.Success(c, "Appointments fetched successfully", list)
}

// Store books an appointment with a provider.
func (h *AppointmentHandler) Store(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	// Shape errors are reported by the workflow, in its own order.
	var req appointments.CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Rejected(c, rejectionStatus[appointments.KindValidation],
			string(appointments.KindValidation), appointments.ErrValidation.Message)
		return
	}

	appointment, err := h.Service.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	utils.Success(c, "Appointment created successfully", appointment)
}

// Delete cancels one of the authenticated user's appointments.
func (h *AppointmentHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		respondError(c, h.Log, appointments.ErrNotFound)
		return
	}

	appointment, err := h.Service.Cancel(c.Request.Context(), userID, uint(id))
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	utils.Success(c, "Appointment canceled successfully", appointment)
}
