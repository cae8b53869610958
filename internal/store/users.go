package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"booking-server/internal/models"
)

// UserStore persists users and answers provider lookups.
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a new UserStore.
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// FindByID loads a user with its avatar.
func (s *UserStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Preload("Avatar").First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// FindProvider loads the user with the given id only if it is a provider.
func (s *UserStore) FindProvider(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("id = ? AND provider = ?", id, true).
		First(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// FindByEmail loads a user by email.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// ListProviders returns all providers with their avatars, ordered by name.
func (s *UserStore) ListProviders(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := s.db.WithContext(ctx).
		Where("provider = ?", true).
		Order("name asc").
		Preload("Avatar").
		Find(&users).Error
	return users, err
}

// Create inserts a user. A taken email is reported as ErrDuplicateEmail.
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateEmail
	}
	return err
}

// Save persists the user's own columns.
func (s *UserStore) Save(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateEmail
	}
	return err
}
