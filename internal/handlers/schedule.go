package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"booking-server/internal/models"
	"booking-server/internal/utils"
)

// ScheduleService returns a provider's own appointments for a day.
type ScheduleService interface {
	Schedule(ctx context.Context, providerID uint, day time.Time) ([]models.Appointment, error)
}

// ScheduleHandler serves the provider's daily schedule.
type ScheduleHandler struct {
	Service ScheduleService
	Log     zerolog.Logger
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(service ScheduleService, log zerolog.Logger) *ScheduleHandler {
	return &ScheduleHandler{Service: service, Log: log}
}

// Index lists the authenticated provider's appointments on ?date=.
func (h *ScheduleHandler) Index(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	day, ok := dayQuery(c)
	if !ok {
		return
	}

	rows, err := h.Service.Schedule(c.Request.Context(), userID, day)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	utils.Success(c, "Schedule fetched successfully", rows)
}
