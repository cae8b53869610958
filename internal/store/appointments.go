package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"booking-server/internal/models"
)

// AppointmentStore persists appointments.
type AppointmentStore struct {
	db *gorm.DB
}

// NewAppointmentStore creates a new AppointmentStore.
func NewAppointmentStore(db *gorm.DB) *AppointmentStore {
	return &AppointmentStore{db: db}
}

// FindByID loads an appointment with its provider's name and email and its
// requester's name.
func (s *AppointmentStore) FindByID(ctx context.Context, id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := s.db.WithContext(ctx).
		Preload("Provider", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		First(&appointment, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &appointment, nil
}

// FindActiveSlot returns the non-canceled appointment of providerID at date.
func (s *AppointmentStore) FindActiveSlot(ctx context.Context, providerID uint, date time.Time) (*models.Appointment, error) {
	var appointment models.Appointment
	err := s.db.WithContext(ctx).
		Where("provider_id = ? AND date = ? AND canceled_at IS NULL", providerID, date).
		First(&appointment).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &appointment, nil
}

// ListActiveByUser returns a page of the user's non-canceled appointments
// ordered by date, each with its provider and the provider's avatar.
func (s *AppointmentStore) ListActiveByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Appointment, error) {
	appointments := []models.Appointment{}
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND canceled_at IS NULL", userID).
		Order("date asc").
		Limit(limit).
		Offset(offset).
		Preload("Provider", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "avatar_id")
		}).
		Preload("Provider.Avatar").
		Find(&appointments).Error
	return appointments, err
}

// ListActiveByProvider returns the provider's non-canceled appointments with
// date in [from, to), each with its requester.
func (s *AppointmentStore) ListActiveByProvider(ctx context.Context, providerID uint, from, to time.Time) ([]models.Appointment, error) {
	appointments := []models.Appointment{}
	err := s.db.WithContext(ctx).
		Where("provider_id = ? AND canceled_at IS NULL AND date >= ? AND date < ?", providerID, from, to).
		Order("date asc").
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "avatar_id")
		}).
		Preload("User.Avatar").
		Find(&appointments).Error
	return appointments, err
}

// Create inserts a new appointment. A unique violation on the active slot
// index is reported as ErrDuplicateSlot.
func (s *AppointmentStore) Create(ctx context.Context, appointment *models.Appointment) error {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(appointment).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateSlot
	}
	return err
}

// Save persists the appointment's own columns, leaving loaded relations untouched.
func (s *AppointmentStore) Save(ctx context.Context, appointment *models.Appointment) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Save(appointment).Error
}
