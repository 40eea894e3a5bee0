package services

import "errors"

// Business-rule violations get their own sentinel so handlers can map each
// one to an HTTP status and a descriptive reason instead of a silent no-op.
var (
	ErrNotAdmin          = errors.New("user is not an administrator")
	ErrNotOwner          = errors.New("user does not own this resource")
	ErrNotParticipant    = errors.New("user is not a participant of this order")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrSelfOrder         = errors.New("cannot order your own item")
	ErrItemUnavailable   = errors.New("item is not available for ordering")
	ErrOrderNotCompleted = errors.New("order is not completed")
	ErrDuplicateRating   = errors.New("rating already submitted for this order and party")
	ErrSuspended         = errors.New("account is suspended")
)

// ValidationError marks input rejected before any backend call.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErr(reason string) error {
	return &ValidationError{Reason: reason}
}

// IsValidation reports whether err is a validation rejection.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
