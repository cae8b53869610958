package store

import (
	"context"

	"gorm.io/gorm"

	"booking-server/internal/models"
)

// NotificationStore persists in-app notifications.
type NotificationStore struct {
	db *gorm.DB
}

// NewNotificationStore creates a new NotificationStore.
func NewNotificationStore(db *gorm.DB) *NotificationStore {
	return &NotificationStore{db: db}
}

// Create appends a notification for userID.
func (s *NotificationStore) Create(ctx context.Context, userID uint, content string) (*models.Notification, error) {
	notification := models.Notification{Content: content, UserID: userID}
	if err := s.db.WithContext(ctx).Create(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// ListByUser returns the newest notifications of userID.
func (s *NotificationStore) ListByUser(ctx context.Context, userID uint, limit int) ([]models.Notification, error) {
	notifications := []models.Notification{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

// MarkRead flags the notification as read. Only the recipient can mark it.
func (s *NotificationStore) MarkRead(ctx context.Context, id, userID uint) (*models.Notification, error) {
	var notification models.Notification
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&notification).Error
	if err != nil {
		return nil, notFound(err)
	}
	if notification.Read {
		return &notification, nil
	}
	notification.Read = true
	if err := s.db.WithContext(ctx).Model(&notification).Update("read", true).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}
