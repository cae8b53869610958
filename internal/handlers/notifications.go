package handlers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"booking-server/internal/appointments"
	"booking-server/internal/models"
	"booking-server/internal/store"
	"booking-server/internal/utils"
)

// notificationLimit caps how many notifications Index returns.
const notificationLimit = 20

// NotificationRepository reads and updates a user's notifications.
type NotificationRepository interface {
	ListByUser(ctx context.Context, userID uint, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, userID uint) (*models.Notification, error)
}

// ProviderFinder resolves the acting user as a provider.
type ProviderFinder interface {
	FindProvider(ctx context.Context, id uint) (*models.User, error)
}

// NotificationHandler serves provider notifications.
type NotificationHandler struct {
	Notifications NotificationRepository
	Providers     ProviderFinder
	Log           zerolog.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notifications NotificationRepository, providers ProviderFinder, log zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{Notifications: notifications, Providers: providers, Log: log}
}

// Index lists the provider's newest notifications.
func (h *NotificationHandler) Index(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Providers.FindProvider(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			err = appointments.ErrProviderOnly
		}
		respondError(c, h.Log, err)
		return
	}

	list, err := h.Notifications.ListByUser(ctx, userID, notificationLimit)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	utils.Success(c, "Notifications fetched successfully", list)
}

// Update marks one of the user's notifications as read.
func (h *NotificationHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	notification, err := h.Notifications.MarkRead(c.Request.Context(), id, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "Notification not found")
			return
		}
		respondError(c, h.Log, err)
		return
	}
	utils.Success(c, "Notification marked as read", notification)
}
