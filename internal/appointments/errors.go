package appointments

import "errors"

// Kind identifies the exact rule a rejected request violated.
type Kind string

const (
	KindValidation      Kind = "validation_failed"
	KindSelfBooking     Kind = "self_booking"
	KindNotProvider     Kind = "not_provider"
	KindPastDate        Kind = "past_date"
	KindUnavailable     Kind = "unavailable"
	KindNotFound        Kind = "not_found"
	KindAlreadyCanceled Kind = "already_canceled"
	KindNoPermission    Kind = "no_permission"
	KindTooLate         Kind = "too_late"
	KindProviderOnly    Kind = "provider_only"
)

// Class groups kinds into the error taxonomy.
type Class int

const (
	ClassValidation Class = iota + 1
	ClassPolicy
	ClassNotFound
)

// Error is a rejection the caller can act on. Anything else returned by
// Service is a dependency failure.
type Error struct {
	Kind    Kind
	Class   Class
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrValidation      = &Error{KindValidation, ClassValidation, "Validation fails"}
	ErrSelfBooking     = &Error{KindSelfBooking, ClassPolicy, "Cannot create appointments for yourself"}
	ErrNotProvider     = &Error{KindNotProvider, ClassPolicy, "We can only create appointments with providers"}
	ErrPastDate        = &Error{KindPastDate, ClassPolicy, "Past dates are not permitted"}
	ErrUnavailable     = &Error{KindUnavailable, ClassPolicy, "Appointment date is not available"}
	ErrNotFound        = &Error{KindNotFound, ClassNotFound, "Appointment does not exist"}
	ErrAlreadyCanceled = &Error{KindAlreadyCanceled, ClassPolicy, "Appointment already canceled"}
	ErrNoPermission    = &Error{KindNoPermission, ClassPolicy, "You don't have permission to cancel this appointment"}
	ErrTooLate         = &Error{KindTooLate, ClassPolicy, "You can only cancel appointments 2 hours in advance"}
	ErrProviderOnly    = &Error{KindProviderOnly, ClassPolicy, "Only providers can access this resource"}
)

// ErrDispatch marks a failure to submit a background job. It never reports
// the outcome of the job itself.
var ErrDispatch = errors.New("background job submission failed")

// AsError returns the rejection carried by err, if any.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
