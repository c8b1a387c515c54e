// Package booking implements the appointment workflow: listing a
// requester's appointments, booking a provider's hour slot, and
// cancelling ahead of the cancellation window.
package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"appointments-server/internal/models"
	"appointments-server/internal/store"
)

// PageSize is the number of appointments returned per listing page.
const PageSize = 20

// NotificationSink receives the message sent to a provider on a new booking.
type NotificationSink interface {
	Append(ctx context.Context, n *models.Notification) error
}

// EventPublisher receives appointment lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, event models.AppointmentEvent) error
}

// Config carries the optional collaborators of a Service.
type Config struct {
	// Location is used for day boundaries and notification text. Defaults to UTC.
	Location *time.Location
	// Now defaults to time.Now.
	Now       func() time.Time
	Logger    *zap.Logger
	Publisher EventPublisher
}

type Service struct {
	users         store.UserStore
	appointments  store.AppointmentStore
	notifications NotificationSink
	publisher     EventPublisher
	loc           *time.Location
	now           func() time.Time
	log           *zap.Logger
}

func NewService(users store.UserStore, appointments store.AppointmentStore, notifications NotificationSink, cfg Config) *Service {
	s := &Service{
		users:         users,
		appointments:  appointments,
		notifications: notifications,
		publisher:     cfg.Publisher,
		loc:           cfg.Location,
		now:           cfg.Now,
		log:           cfg.Logger,
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

// Now returns the service clock reading.
func (s *Service) Now() time.Time {
	return s.now()
}

func (s *Service) publish(ctx context.Context, eventType string, a *models.Appointment) {
	if s.publisher == nil {
		return
	}
	event := models.AppointmentEvent{
		Type:          eventType,
		AppointmentID: a.ID,
		UserID:        a.UserID,
		ProviderID:    a.ProviderID,
		Date:          a.Date,
		CanceledAt:    a.CanceledAt,
		OccurredAt:    s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("failed to publish appointment event",
			zap.String("type", eventType),
			zap.Uint("appointment_id", a.ID),
			zap.Error(err))
	}
}

// startOfHour truncates t to its hour in the service location, so every
// slot lands on the same grid Availability uses whatever offset t carries.
func (s *Service) startOfHour(t time.Time) time.Time {
	t = t.In(s.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, s.loc)
}

func (s *Service) startOfDay(t time.Time) time.Time {
	t = t.In(s.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.loc)
}
