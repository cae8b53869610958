package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"booking-server/internal/models"
	"booking-server/internal/store"
)

// Working hours offered as bookable slots, one per hour.
const (
	firstSlotHour = 8
	lastSlotHour  = 19
)

// Slot is one bookable hour of a provider's day.
type Slot struct {
	Time      string    `json:"time"`
	Value     time.Time `json:"value"`
	Available bool      `json:"available"`
}

// Schedule returns the acting provider's active appointments on day.
func (s *Service) Schedule(ctx context.Context, providerID uint, day time.Time) ([]models.Appointment, error) {
	if _, err := s.providers.FindProvider(ctx, providerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProviderOnly
		}
		return nil, fmt.Errorf("find provider %d: %w", providerID, err)
	}

	from := startOfDay(day, s.loc)
	rows, err := s.appointments.ListActiveByProvider(ctx, providerID, from, from.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("list schedule: %w", err)
	}
	now := s.now()
	for i := range rows {
		rows[i].Derive(now)
	}
	return rows, nil
}

// Available lists the provider's hourly slots on day. A slot is available
// when it is in the future and no active appointment holds it.
func (s *Service) Available(ctx context.Context, providerID uint, day time.Time) ([]Slot, error) {
	if _, err := s.providers.FindProvider(ctx, providerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotProvider
		}
		return nil, fmt.Errorf("find provider %d: %w", providerID, err)
	}

	from := startOfDay(day, s.loc)
	rows, err := s.appointments.ListActiveByProvider(ctx, providerID, from, from.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("list provider appointments: %w", err)
	}
	taken := make(map[int64]bool, len(rows))
	for _, a := range rows {
		taken[a.Date.Unix()] = true
	}

	now := s.now()
	slots := make([]Slot, 0, lastSlotHour-firstSlotHour+1)
	for h := firstSlotHour; h <= lastSlotHour; h++ {
		value := time.Date(from.Year(), from.Month(), from.Day(), h, 0, 0, 0, s.loc)
		slots = append(slots, Slot{
			Time:      fmt.Sprintf("%02d:00", h),
			Value:     value,
			Available: value.After(now) && !taken[value.Unix()],
		})
	}
	return slots, nil
}
