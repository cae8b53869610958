// Package appointments implements listing, booking and cancellation of
// appointments between users and providers.
package appointments

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"booking-server/internal/models"
)

// PageSize is the fixed number of appointments per List page.
const PageSize = 20

// AppointmentRepository is the appointment table.
type AppointmentRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Appointment, error)
	FindActiveSlot(ctx context.Context, providerID uint, date time.Time) (*models.Appointment, error)
	ListActiveByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Appointment, error)
	ListActiveByProvider(ctx context.Context, providerID uint, from, to time.Time) ([]models.Appointment, error)
	Create(ctx context.Context, appointment *models.Appointment) error
	Save(ctx context.Context, appointment *models.Appointment) error
}

// ProviderDirectory finds users flagged as providers.
type ProviderDirectory interface {
	FindProvider(ctx context.Context, id uint) (*models.User, error)
}

// UserDirectory finds any user.
type UserDirectory interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

// NotificationSink appends in-app notifications.
type NotificationSink interface {
	Create(ctx context.Context, userID uint, content string) (*models.Notification, error)
}

// Dispatcher submits background jobs. A nil error means the job was
// accepted; its execution is never awaited.
type Dispatcher interface {
	Enqueue(ctx context.Context, kind string, payload any) (string, error)
}

// Deps are the collaborators of a Service.
type Deps struct {
	Appointments  AppointmentRepository
	Providers     ProviderDirectory
	Users         UserDirectory
	Notifications NotificationSink
	Dispatcher    Dispatcher
	Logger        zerolog.Logger

	// Optional
	Clock    func() time.Time
	Location *time.Location
}

// Service orchestrates the appointment workflow.
type Service struct {
	appointments  AppointmentRepository
	providers     ProviderDirectory
	users         UserDirectory
	notifications NotificationSink
	dispatcher    Dispatcher
	log           zerolog.Logger
	now           func() time.Time
	loc           *time.Location
	validate      *validator.Validate
}

// NewService creates a Service from its collaborators.
func NewService(d Deps) *Service {
	s := &Service{
		appointments:  d.Appointments,
		providers:     d.Providers,
		users:         d.Users,
		notifications: d.Notifications,
		dispatcher:    d.Dispatcher,
		log:           d.Logger.With().Str("component", "appointments").Logger(),
		now:           d.Clock,
		loc:           d.Location,
		validate:      validator.New(),
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	return s
}

// startOfHour truncates t to the beginning of its hour in loc.
func startOfHour(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, loc)
}

// startOfDay truncates t to midnight in loc.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
