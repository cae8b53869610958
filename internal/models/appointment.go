package models

import (
	"time"
)

// CancellationWindow is how long before its date an appointment can still
// be canceled by its requester.
const CancellationWindow = 2 * time.Hour

// Appointment is a booking of a provider's hour by a user. An appointment
// with a nil CanceledAt is active; once set, CanceledAt is never cleared.
type Appointment struct {
	BaseModel
	Date       time.Time  `gorm:"not null;index" json:"date"`
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	ProviderID uint       `gorm:"not null;index" json:"provider_id"`
	CanceledAt *time.Time `json:"canceled_at"`

	// Derived on read, never stored
	Past       bool `gorm:"-" json:"past"`
	Cancelable bool `gorm:"-" json:"cancelable"`

	// Relations
	User     *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Provider *User `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
}

// IsCanceled reports whether the appointment has been canceled.
func (a *Appointment) IsCanceled() bool {
	return a.CanceledAt != nil
}

// IsPast reports whether the appointment date is before now.
func (a *Appointment) IsPast(now time.Time) bool {
	return a.Date.Before(now)
}

// IsCancelable reports whether the appointment is active and now is not
// past the start of its cancellation window.
func (a *Appointment) IsCancelable(now time.Time) bool {
	return !a.IsCanceled() && !a.WindowClosed(now)
}

// WindowClosed reports whether now is later than CancellationWindow before
// the appointment date.
func (a *Appointment) WindowClosed(now time.Time) bool {
	return a.Date.Add(-CancellationWindow).Before(now)
}

// Derive fills the Past and Cancelable fields relative to now.
func (a *Appointment) Derive(now time.Time) {
	a.Past = a.IsPast(now)
	a.Cancelable = a.IsCancelable(now)
}
