package booking

import (
	"net/http"

	"appointments-server/internal/apperrors"
)

var (
	ErrInvalidProvider  = apperrors.Validation("Validation fails: provider_id must be a positive number")
	ErrInvalidDate      = apperrors.Validation("Validation fails: date must be a valid timestamp")
	ErrNotProvider      = apperrors.Authorization("You can only create appointments with providers")
	ErrSelfBooking      = apperrors.Authorization("You cannot create an appointment with yourself")
	ErrPastDate         = apperrors.Validation("Past dates are not permitted")
	ErrUnavailable      = apperrors.Conflict("Appointment date is not available")
	ErrNotFound         = apperrors.NotFound("Appointment not found")
	ErrProviderNotFound = apperrors.NotFound("Provider not found")
	ErrNotOwner         = apperrors.Authorization("You don't have permission to cancel this appointment")
	ErrAlreadyCanceled  = apperrors.Conflict("Appointment is already canceled")
	ErrTooLateToCancel  = apperrors.Conflict("You can only cancel appointments 2 hours in advance").WithStatus(http.StatusUnauthorized)
)
