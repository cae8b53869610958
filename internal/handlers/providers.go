package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"booking-server/internal/appointments"
	"booking-server/internal/models"
	"booking-server/internal/utils"
)

// ProviderLister lists users flagged as providers.
type ProviderLister interface {
	ListProviders(ctx context.Context) ([]models.User, error)
}

// Availability answers which hours of a provider's day are bookable.
type Availability interface {
	Available(ctx context.Context, providerID uint, day time.Time) ([]appointments.Slot, error)
}

// ProviderHandler handles provider listing and availability.
type ProviderHandler struct {
	Providers    ProviderLister
	Availability Availability
	Log          zerolog.Logger
}

// NewProviderHandler creates a new ProviderHandler.
func NewProviderHandler(providers ProviderLister, availability Availability, log zerolog.Logger) *ProviderHandler {
	return &ProviderHandler{Providers: providers, Availability: availability, Log: log}
}

// Index lists providers with their avatars.
func (h *ProviderHandler) Index(c *gin.Context) {
	providers, err := h.Providers.ListProviders(c.Request.Context())
	if err != nil {
		respondError(c, h.Log, err)
		return
	}

	sanitized := make([]models.UserSanitized, len(providers))
	for i := range providers {
		sanitized[i] = providers[i].Sanitize()
	}
	utils.Success(c, "Providers fetched successfully", sanitized)
}

// Available lists a provider's hourly slots for ?date=.
func (h *ProviderHandler) Available(c *gin.Context) {
	providerID, ok := idParam(c, "id")
	if !ok {
		return
	}
	day, ok := dayQuery(c)
	if !ok {
		return
	}

	slots, err := h.Availability.Available(c.Request.Context(), providerID, day)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	utils.Success(c, "Availability fetched successfully", slots)
}
