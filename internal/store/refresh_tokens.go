package store

import (
	"context"

	"gorm.io/gorm"

	"booking-server/internal/models"
)

// RefreshTokenStore persists issued refresh tokens.
type RefreshTokenStore struct {
	db *gorm.DB
}

// NewRefreshTokenStore creates a new RefreshTokenStore.
func NewRefreshTokenStore(db *gorm.DB) *RefreshTokenStore {
	return &RefreshTokenStore{db: db}
}

// Create stores a newly issued token.
func (s *RefreshTokenStore) Create(ctx context.Context, token *models.RefreshToken) error {
	return s.db.WithContext(ctx).Omit("User").Create(token).Error
}

// FindByToken loads a stored token by its value.
func (s *RefreshTokenStore) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	if err := s.db.WithContext(ctx).Where("token = ?", token).First(&rt).Error; err != nil {
		return nil, notFound(err)
	}
	return &rt, nil
}

// Revoke marks the token revoked.
func (s *RefreshTokenStore) Revoke(ctx context.Context, token string) error {
	return s.db.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("token = ?", token).
		Update("is_revoked", true).Error
}

// RevokeAllForUser revokes every active token of userID.
func (s *RefreshTokenStore) RevokeAllForUser(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("user_id = ? AND is_revoked = ?", userID, false).
		Update("is_revoked", true).Error
}
