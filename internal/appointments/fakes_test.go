package appointments

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"booking-server/internal/models"
	"booking-server/internal/store"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type fakeUsers struct {
	users map[uint]*models.User
}

func newFakeUsers(users ...models.User) *fakeUsers {
	f := &fakeUsers{users: map[uint]*models.User{}}
	for i := range users {
		u := users[i]
		f.users[u.ID] = &u
	}
	return f
}

func (f *fakeUsers) FindByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) FindProvider(_ context.Context, id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok || !u.Provider {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// fakeAppointments enforces the active slot uniqueness like the real index.
type fakeAppointments struct {
	mu     sync.Mutex
	rows   map[uint]models.Appointment
	nextID uint
	users  *fakeUsers

	// hideSlots makes FindActiveSlot miss, as a concurrent insert would.
	hideSlots bool
	failWith  error
}

func newFakeAppointments(users *fakeUsers) *fakeAppointments {
	return &fakeAppointments{rows: map[uint]models.Appointment{}, users: users}
}

func (f *fakeAppointments) attach(a *models.Appointment) {
	if p, ok := f.users.users[a.ProviderID]; ok {
		cp := *p
		a.Provider = &cp
	}
	if u, ok := f.users.users[a.UserID]; ok {
		cp := *u
		a.User = &cp
	}
}

func (f *fakeAppointments) FindByID(_ context.Context, id uint) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	a, ok := f.rows[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	f.attach(&a)
	return &a, nil
}

func (f *fakeAppointments) FindActiveSlot(_ context.Context, providerID uint, date time.Time) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hideSlots {
		return nil, store.ErrNotFound
	}
	for _, a := range f.rows {
		if a.ProviderID == providerID && a.CanceledAt == nil && a.Date.Equal(date) {
			return &a, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeAppointments) sorted(keep func(models.Appointment) bool) []models.Appointment {
	var out []models.Appointment
	for _, a := range f.rows {
		if keep(a) {
			f.attach(&a)
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (f *fakeAppointments) ListActiveByUser(_ context.Context, userID uint, limit, offset int) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.sorted(func(a models.Appointment) bool {
		return a.UserID == userID && a.CanceledAt == nil
	})
	if offset >= len(out) {
		return []models.Appointment{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeAppointments) ListActiveByProvider(_ context.Context, providerID uint, from, to time.Time) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sorted(func(a models.Appointment) bool {
		return a.ProviderID == providerID && a.CanceledAt == nil &&
			!a.Date.Before(from) && a.Date.Before(to)
	}), nil
}

func (f *fakeAppointments) Create(_ context.Context, a *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.ProviderID == a.ProviderID && row.CanceledAt == nil && row.Date.Equal(a.Date) {
			return store.ErrDuplicateSlot
		}
	}
	f.nextID++
	a.ID = f.nextID
	row := *a
	row.Provider, row.User = nil, nil
	f.rows[a.ID] = row
	return nil
}

func (f *fakeAppointments) Save(_ context.Context, a *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[a.ID]; !ok {
		return errors.New("save of unknown appointment")
	}
	row := *a
	row.Provider, row.User = nil, nil
	f.rows[a.ID] = row
	return nil
}

// seed inserts a row directly, bypassing the workflow.
func (f *fakeAppointments) seed(a models.Appointment) uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	a.ID = f.nextID
	f.rows[a.ID] = a
	return a.ID
}

type fakeNotifications struct {
	created []models.Notification
}

func (f *fakeNotifications) Create(_ context.Context, userID uint, content string) (*models.Notification, error) {
	n := models.Notification{Content: content, UserID: userID}
	n.ID = uint(len(f.created) + 1)
	f.created = append(f.created, n)
	return &n, nil
}

type enqueued struct {
	kind    string
	payload any
}

type fakeDispatcher struct {
	jobs []enqueued
	err  error
}

func (f *fakeDispatcher) Enqueue(_ context.Context, kind string, payload any) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.jobs = append(f.jobs, enqueued{kind: kind, payload: payload})
	return "job-1", nil
}

const (
	requesterID = uint(1)
	providerID  = uint(2)
	otherUserID = uint(3)
	plainUserID = uint(4)
)

type harness struct {
	svc           *Service
	clock         *fakeClock
	users         *fakeUsers
	appointments  *fakeAppointments
	notifications *fakeNotifications
	dispatcher    *fakeDispatcher
}

func newHarness() *harness {
	users := newFakeUsers(
		models.User{BaseModel: models.BaseModel{ID: requesterID}, Name: "Ana", Email: "ana@example.com"},
		models.User{
			BaseModel: models.BaseModel{ID: providerID}, Name: "Bruno", Email: "bruno@example.com", Provider: true,
			Avatar: &models.File{Path: "bruno.png", URL: "http://localhost/files/bruno.png"},
		},
		models.User{BaseModel: models.BaseModel{ID: otherUserID}, Name: "Carla", Email: "carla@example.com"},
		models.User{BaseModel: models.BaseModel{ID: plainUserID}, Name: "Davi", Email: "davi@example.com"},
	)
	h := &harness{
		clock:         &fakeClock{now: time.Date(2025, 6, 1, 7, 59, 0, 0, time.UTC)},
		users:         users,
		appointments:  newFakeAppointments(users),
		notifications: &fakeNotifications{},
		dispatcher:    &fakeDispatcher{},
	}
	h.svc = NewService(Deps{
		Appointments:  h.appointments,
		Providers:     users,
		Users:         users,
		Notifications: h.notifications,
		Dispatcher:    h.dispatcher,
		Logger:        zerolog.Nop(),
		Clock:         h.clock.Now,
		Location:      time.UTC,
	})
	return h
}

func jsonNumber(s string) json.Number { return json.Number(s) }
