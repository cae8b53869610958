package appointments

import (
	"context"
	"errors"
	"fmt"

	"booking-server/internal/models"
	"booking-server/internal/store"
)

// CancellationJobKey is the job kind handled by the cancellation mailer.
const CancellationJobKey = "CancellationMail"

// CancellationPayload is the job body of a CancellationJobKey job. The
// appointment carries its provider's name and email and its requester's name.
type CancellationPayload struct {
	Appointment *models.Appointment `json:"appointment"`
}

// Cancel cancels the appointment on behalf of its requester and submits a
// cancellation mail job. Checks run in order: existence, already canceled,
// ownership, cancellation window.
func (s *Service) Cancel(ctx context.Context, userID, appointmentID uint) (*models.Appointment, error) {
	appointment, err := s.appointments.FindByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find appointment %d: %w", appointmentID, err)
	}

	if appointment.IsCanceled() {
		return nil, ErrAlreadyCanceled
	}

	if appointment.UserID != userID {
		return nil, ErrNoPermission
	}

	now := s.now()
	if appointment.WindowClosed(now) {
		return nil, ErrTooLate
	}

	canceledAt := now
	appointment.CanceledAt = &canceledAt
	if err := s.appointments.Save(ctx, appointment); err != nil {
		return nil, fmt.Errorf("save appointment %d: %w", appointmentID, err)
	}
	appointment.Derive(now)

	jobID, err := s.dispatcher.Enqueue(ctx, CancellationJobKey, CancellationPayload{Appointment: appointment})
	if err != nil {
		s.log.Error().Err(err).
			Uint("appointment_id", appointment.ID).
			Msg("cancellation mail not submitted")
		return nil, fmt.Errorf("%w: %w", ErrDispatch, err)
	}

	s.log.Info().
		Uint("appointment_id", appointment.ID).
		Uint("user_id", userID).
		Str("job_id", jobID).
		Msg("appointment canceled")
	return appointment, nil
}

