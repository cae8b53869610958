package appointments

import (
	"context"
	"fmt"
	"time"

	"booking-server/internal/models"
)

// Summary is an appointment as shown in the requester's list.
type Summary struct {
	ID         uint            `json:"id"`
	Date       time.Time       `json:"date"`
	Past       bool            `json:"past"`
	Cancelable bool            `json:"cancelable"`
	Provider   ProviderSummary `json:"provider"`
}

// ProviderSummary is the provider attached to a Summary.
type ProviderSummary struct {
	ID     uint           `json:"id"`
	Name   string         `json:"name"`
	Avatar *AvatarSummary `json:"avatar"`
}

// AvatarSummary locates a provider's avatar.
type AvatarSummary struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// List returns page (1-based) of the acting user's active appointments,
// ordered by date. Pages below 1 are treated as 1.
func (s *Service) List(ctx context.Context, userID uint, page int) ([]Summary, error) {
	if page < 1 {
		page = 1
	}
	rows, err := s.appointments.ListActiveByUser(ctx, userID, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	now := s.now()
	out := make([]Summary, 0, len(rows))
	for i := range rows {
		out = append(out, summarize(&rows[i], now))
	}
	return out, nil
}

func summarize(a *models.Appointment, now time.Time) Summary {
	sum := Summary{
		ID:         a.ID,
		Date:       a.Date,
		Past:       a.IsPast(now),
		Cancelable: a.IsCancelable(now),
	}
	if p := a.Provider; p != nil {
		sum.Provider = ProviderSummary{ID: p.ID, Name: p.Name}
		if p.Avatar != nil {
			sum.Provider.Avatar = &AvatarSummary{Path: p.Avatar.Path, URL: p.Avatar.URL}
		}
	} else {
		sum.Provider.ID = a.ProviderID
	}
	return sum
}
