package appointments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"booking-server/internal/models"
	"booking-server/internal/store"
)

// CreateInput is the body of a booking request. ProviderID accepts a JSON
// number or a numeric string.
type CreateInput struct {
	Date       string      `json:"date" validate:"required"`
	ProviderID json.Number `json:"provider_id" validate:"required"`
}

// dateLayouts are the accepted date-time forms. Layouts without an offset
// are read in the service location.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func (s *Service) parseCreate(in CreateInput) (uint, time.Time, error) {
	if err := s.validate.Struct(in); err != nil {
		return 0, time.Time{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	providerID, err := strconv.ParseUint(in.ProviderID.String(), 10, 0)
	if err != nil || providerID == 0 {
		return 0, time.Time{}, fmt.Errorf("%w: provider_id %q is not an id", ErrValidation, in.ProviderID)
	}
	date, err := parseDate(in.Date, s.loc)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return uint(providerID), date, nil
}

// Create books the hour of in.Date with the provider for the acting user and
// notifies the provider. Checks run in order and the first failure wins:
// input shape, self-booking, provider existence, past date, availability.
func (s *Service) Create(ctx context.Context, userID uint, in CreateInput) (*models.Appointment, error) {
	providerID, date, err := s.parseCreate(in)
	if err != nil {
		return nil, err
	}

	if userID == providerID {
		return nil, ErrSelfBooking
	}

	if _, err := s.providers.FindProvider(ctx, providerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotProvider
		}
		return nil, fmt.Errorf("find provider %d: %w", providerID, err)
	}

	hourStart := startOfHour(date, s.loc)
	now := s.now()
	if hourStart.Before(now) {
		return nil, ErrPastDate
	}

	_, err = s.appointments.FindActiveSlot(ctx, providerID, hourStart)
	switch {
	case err == nil:
		return nil, ErrUnavailable
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("check availability: %w", err)
	}

	appointment := &models.Appointment{
		UserID:     userID,
		ProviderID: providerID,
		Date:       hourStart,
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		// lost the race to a concurrent booking of the same slot
		if errors.Is(err, store.ErrDuplicateSlot) {
			return nil, ErrUnavailable
		}
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find requester %d: %w", userID, err)
	}
	content := fmt.Sprintf("Novo agendamento de %s para %s", user.Name, FormatDate(hourStart))
	if _, err := s.notifications.Create(ctx, providerID, content); err != nil {
		return nil, fmt.Errorf("notify provider %d: %w", providerID, err)
	}

	appointment.Derive(now)
	s.log.Info().
		Uint("appointment_id", appointment.ID).
		Uint("user_id", userID).
		Uint("provider_id", providerID).
		Time("date", hourStart).
		Msg("appointment created")
	return appointment, nil
}
