package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"appointments-server/internal/apperrors"
	"appointments-server/internal/metrics"
	"appointments-server/internal/models"
	"appointments-server/internal/store"
)

const notificationDateLayout = "Monday, January 2 at 15:04"

// List returns one page of the requester's scheduled appointments, earliest first.
func (s *Service) List(ctx context.Context, requesterID uint, page int) ([]models.Appointment, error) {
	if page < 1 {
		page = 1
	}
	appointments, err := s.appointments.ListByUser(ctx, requesterID, page, PageSize)
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch appointments", err)
	}
	return appointments, nil
}

// Create books the hour containing date with providerID on behalf of requesterID.
func (s *Service) Create(ctx context.Context, requesterID, providerID uint, date time.Time) (*models.Appointment, error) {
	appointment, err := s.create(ctx, requesterID, providerID, date)
	metrics.RecordBooking("create", outcome(err))
	return appointment, err
}

func (s *Service) create(ctx context.Context, requesterID, providerID uint, date time.Time) (*models.Appointment, error) {
	provider, err := s.users.FindByID(ctx, providerID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.Internal("Failed to verify provider", err)
	}
	if provider == nil || !provider.Provider {
		return nil, ErrNotProvider
	}

	if requesterID == providerID {
		return nil, ErrSelfBooking
	}

	hourStart := s.startOfHour(date)
	if hourStart.Before(s.now()) {
		return nil, ErrPastDate
	}

	appointment := &models.Appointment{
		UserID:     requesterID,
		ProviderID: providerID,
		Date:       hourStart.UTC(),
	}

	err = s.appointments.Transact(ctx, func(tx store.AppointmentStore) error {
		conflict, err := tx.FindConflicting(ctx, providerID, appointment.Date)
		if err != nil {
			return apperrors.Internal("Failed to check availability", err)
		}
		if conflict != nil {
			return ErrUnavailable
		}
		if err := tx.Insert(ctx, appointment); err != nil {
			return apperrors.Internal("Failed to create appointment", err)
		}
		return nil
	})
	if errors.Is(err, store.ErrLockConflict) {
		// a concurrent booking of the same slot won the lock
		return nil, ErrUnavailable
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("appointment created",
		zap.Uint("id", appointment.ID),
		zap.Uint("user_id", requesterID),
		zap.Uint("provider_id", providerID),
		zap.Time("date", appointment.Date))

	s.notifyProvider(ctx, appointment)
	s.publish(ctx, models.EventAppointmentCreated, appointment)

	appointment.Provider = provider
	return appointment, nil
}

// notifyProvider stores the booking message for the provider. The
// appointment stays booked when this fails.
func (s *Service) notifyProvider(ctx context.Context, a *models.Appointment) {
	requester, err := s.users.FindByID(ctx, a.UserID)
	if err != nil {
		metrics.RecordNotificationFailure()
		s.log.Error("failed to load requester for notification", zap.Uint("appointment_id", a.ID), zap.Error(err))
		return
	}

	notification := &models.Notification{
		Content: fmt.Sprintf("New appointment from %s for %s",
			requester.Name, a.Date.In(s.loc).Format(notificationDateLayout)),
		User: a.ProviderID,
	}
	if err := s.notifications.Append(ctx, notification); err != nil {
		metrics.RecordNotificationFailure()
		s.log.Error("failed to store notification", zap.Uint("appointment_id", a.ID), zap.Error(err))
	}
}

// Cancel marks the requester's appointment canceled.
func (s *Service) Cancel(ctx context.Context, requesterID, appointmentID uint) (*models.Appointment, error) {
	appointment, err := s.cancel(ctx, requesterID, appointmentID)
	metrics.RecordBooking("cancel", outcome(err))
	return appointment, err
}

func (s *Service) cancel(ctx context.Context, requesterID, appointmentID uint) (*models.Appointment, error) {
	appointment, err := s.appointments.FindByID(ctx, appointmentID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch appointment", err)
	}

	if appointment.UserID != requesterID {
		return nil, ErrNotOwner
	}
	if appointment.IsCanceled() {
		return nil, ErrAlreadyCanceled
	}

	now := s.now()
	if appointment.Date.Add(-models.CancellationWindow).Before(now) {
		return nil, ErrTooLateToCancel
	}

	canceledAt := now.UTC()
	appointment.CanceledAt = &canceledAt
	if err := s.appointments.Update(ctx, appointment); err != nil {
		return nil, apperrors.Internal("Failed to cancel appointment", err)
	}

	s.log.Info("appointment canceled",
		zap.Uint("id", appointment.ID),
		zap.Uint("user_id", requesterID),
		zap.Time("date", appointment.Date))

	s.publish(ctx, models.EventAppointmentCanceled, appointment)
	return appointment, nil
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return string(apperrors.KindOf(err))
}
